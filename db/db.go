package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection             *mongo.Collection
	FollowingsCollection       *mongo.Collection
	TagsCollection             *mongo.Collection
	IngredientsCollection      *mongo.Collection
	RecipeCollection           *mongo.Collection
	IngredientAmountCollection *mongo.Collection
	FavoritesCollection        *mongo.Collection
	ShoppingCartCollection     *mongo.Collection
	CountersCollection         *mongo.Collection

	Client *mongo.Client
)

// Bind assigns the package-level collection handles. Called once from main
// after the client is connected.
func Bind(client *mongo.Client, dbName string) {
	Client = client
	database := client.Database(dbName)
	UserCollection = database.Collection("users")
	FollowingsCollection = database.Collection("followings")
	TagsCollection = database.Collection("tags")
	IngredientsCollection = database.Collection("ingredients")
	RecipeCollection = database.Collection("recipes")
	IngredientAmountCollection = database.Collection("ingredientamounts")
	FavoritesCollection = database.Collection("favorites")
	ShoppingCartCollection = database.Collection("shoppingcarts")
	CountersCollection = database.Collection("counters")
}

// EnsureIndexes creates the unique indexes backing the data-model
// invariants: login/email uniqueness, tag name/slug uniqueness, the
// (name, unit) ingredient pair and the (recipe, ingredient) junction pair.
func EnsureIndexes(ctx context.Context) error {
	type spec struct {
		coll *mongo.Collection
		keys bson.D
	}
	unique := []spec{
		{UserCollection, bson.D{{Key: "userid", Value: 1}}},
		{UserCollection, bson.D{{Key: "username", Value: 1}}},
		{UserCollection, bson.D{{Key: "email", Value: 1}}},
		{FollowingsCollection, bson.D{{Key: "userid", Value: 1}}},
		{TagsCollection, bson.D{{Key: "id", Value: 1}}},
		{TagsCollection, bson.D{{Key: "name", Value: 1}}},
		{TagsCollection, bson.D{{Key: "slug", Value: 1}}},
		{IngredientsCollection, bson.D{{Key: "id", Value: 1}}},
		{IngredientsCollection, bson.D{{Key: "name", Value: 1}, {Key: "measurementUnit", Value: 1}}},
		{RecipeCollection, bson.D{{Key: "recipeid", Value: 1}}},
		{IngredientAmountCollection, bson.D{{Key: "recipeid", Value: 1}, {Key: "ingredientId", Value: 1}}},
		{FavoritesCollection, bson.D{{Key: "userid", Value: 1}}},
		{ShoppingCartCollection, bson.D{{Key: "userid", Value: 1}}},
	}
	for _, s := range unique {
		_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    s.keys,
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// NextID allocates the next integer identifier for the named sequence.
// Tags and ingredients are referenced by small positive integers.
func NextID(ctx context.Context, name string) (int, error) {
	res := CountersCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var doc struct {
		Seq int `bson:"seq"`
	}
	if err := res.Decode(&doc); err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func OptionsFindLatest(limit int64) *options.FindOptions {
	opts := options.Find()
	opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	opts.SetLimit(limit)
	return opts
}
