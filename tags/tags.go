package tags

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"foodgram/db"
	"foodgram/models"
	"foodgram/permissions"
	"foodgram/rdx"
	"foodgram/utils"
	"foodgram/validators"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const catalogueKey = "tag_catalogue"

type tagPayload struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// All returns every tag ordered by name, read through the Redis cache.
func All(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag

	if rdx.Available() {
		if val, err := rdx.Conn.Get(ctx, catalogueKey).Result(); err == nil && val != "" {
			if err := json.Unmarshal([]byte(val), &tags); err == nil {
				return tags, nil
			}
		}
	}

	cursor, err := db.TagsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}

	if rdx.Available() {
		if jsonBytes, err := json.Marshal(tags); err == nil {
			_ = rdx.Conn.Set(ctx, catalogueKey, jsonBytes, 2*time.Hour).Err()
		}
	}
	return tags, nil
}

// ByIDs resolves the given tag IDs, skipping any that do not exist.
func ByIDs(ctx context.Context, ids []int) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	cursor, err := db.TagsCollection.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var tags []models.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// IDsBySlugs maps tag slugs to their integer IDs. Unknown slugs are
// dropped.
func IDsBySlugs(ctx context.Context, slugs []string) ([]int, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	cursor, err := db.TagsCollection.Find(ctx, bson.M{"slug": bson.M{"$in": slugs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var tags []models.Tag
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func GetTags(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tags, err := All(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch tags")
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	utils.RespondWithJSON(w, http.StatusOK, tags)
}

func GetTag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := validators.PositiveID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}
	var tag models.Tag
	if err := db.TagsCollection.FindOne(r.Context(), bson.M{"id": id}).Decode(&tag); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Tag not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tag)
}

func CreateTag(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := permissions.ActorFromContext(r.Context())
	if !permissions.AdminOrReadOnly(r.Method, actor) {
		permissions.Deny(w, actor)
		return
	}

	var req tagPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	tag, err := validatePayload(req)
	if err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}

	id, err := db.NextID(r.Context(), "tags")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to allocate tag id")
		return
	}
	tag.ID = id

	if _, err := db.TagsCollection.InsertOne(r.Context(), tag); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Tag name or slug already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create tag")
		return
	}

	rdx.InvalidateCache(r.Context(), catalogueKey)
	utils.RespondWithJSON(w, http.StatusCreated, tag)
}

func UpdateTag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := permissions.ActorFromContext(r.Context())
	if !permissions.AdminOrReadOnly(r.Method, actor) {
		permissions.Deny(w, actor)
		return
	}

	id, err := validators.PositiveID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}

	var req tagPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	tag, err := validatePayload(req)
	if err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}

	res, err := db.TagsCollection.UpdateOne(r.Context(), bson.M{"id": id}, bson.M{"$set": bson.M{
		"name":  tag.Name,
		"color": tag.Color,
		"slug":  tag.Slug,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Tag name or slug already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update tag")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Tag not found")
		return
	}

	rdx.InvalidateCache(r.Context(), catalogueKey)
	tag.ID = id
	utils.RespondWithJSON(w, http.StatusOK, tag)
}

func DeleteTag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := permissions.ActorFromContext(r.Context())
	if !permissions.AdminOrReadOnly(r.Method, actor) {
		permissions.Deny(w, actor)
		return
	}

	id, err := validators.PositiveID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}

	res, err := db.TagsCollection.DeleteOne(r.Context(), bson.M{"id": id})
	if err != nil || res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Tag not found")
		return
	}

	rdx.InvalidateCache(r.Context(), catalogueKey)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

func validatePayload(req tagPayload) (models.Tag, error) {
	var tag models.Tag
	if req.Name == "" || len(req.Name) > 200 {
		return tag, validators.NewFieldError("name", validators.ErrInvalidValue,
			"name must be 1 to 200 characters")
	}
	color, err := validators.HexColor(req.Color)
	if err != nil {
		return tag, err
	}
	slug, err := validators.Slug(req.Slug)
	if err != nil {
		return tag, err
	}
	tag.Name = req.Name
	tag.Color = color
	tag.Slug = slug
	return tag, nil
}
