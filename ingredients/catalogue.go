package ingredients

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"foodgram/db"
	"foodgram/models"
	"foodgram/rdx"
	"foodgram/validators"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const catalogueKey = "ingredient_catalogue"

// All returns the full ingredient catalogue ordered by name, read through
// the Redis cache.
func All(ctx context.Context) ([]models.Ingredient, error) {
	var items []models.Ingredient

	if rdx.Available() {
		if val, err := rdx.Conn.Get(ctx, catalogueKey).Result(); err == nil && val != "" {
			if err := json.Unmarshal([]byte(val), &items); err == nil {
				return items, nil
			}
		}
	}

	cursor, err := db.IngredientsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	if rdx.Available() {
		if jsonBytes, err := json.Marshal(items); err == nil {
			_ = rdx.Conn.Set(ctx, catalogueKey, jsonBytes, 2*time.Hour).Err()
		}
	}
	return items, nil
}

// ByID resolves one ingredient; returns validators.ErrNotFound when no
// such ingredient exists.
func ByID(ctx context.Context, id int) (models.Ingredient, error) {
	var item models.Ingredient
	err := db.IngredientsCollection.FindOne(ctx, bson.M{"id": id}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return item, validators.ErrNotFound
	}
	return item, err
}

// EnsureCatalogue seeds the ingredient collection from a CSV file
// (name,measurement_unit per line) when the collection is empty.
func EnsureCatalogue(ctx context.Context, csvPath string) error {
	count, err := db.IngredientsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open ingredients csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	seen := make(map[string]bool)
	var docs []interface{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(record) < 2 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(record[0]))
		unit := strings.TrimSpace(record[1])
		if name == "" || unit == "" || seen[name+"\x00"+unit] {
			continue
		}
		seen[name+"\x00"+unit] = true

		id, err := db.NextID(ctx, "ingredients")
		if err != nil {
			return err
		}
		docs = append(docs, models.Ingredient{ID: id, Name: name, MeasurementUnit: unit})
	}
	if len(docs) == 0 {
		return nil
	}

	_, err = db.IngredientsCollection.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	rdx.InvalidateCache(ctx, catalogueKey)
	return nil
}
