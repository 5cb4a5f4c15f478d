package ingredients

import (
	"encoding/json"
	"net/http"
	"strings"

	"foodgram/db"
	"foodgram/models"
	"foodgram/permissions"
	"foodgram/rdx"
	"foodgram/utils"
	"foodgram/validators"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ingredientPayload struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// GetIngredients lists the catalogue, optionally filtered by the `name`
// query parameter with prefix-over-substring ranking.
func GetIngredients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	items, err := All(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ingredients")
		return
	}

	if name := r.URL.Query().Get("name"); name != "" {
		items = RankByName(items, name)
	}
	if items == nil {
		items = []models.Ingredient{}
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

func GetIngredient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := validators.PositiveID(ps.ByName("id"))
	if err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}
	item, err := ByID(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Ingredient not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, item)
}

func CreateIngredient(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := permissions.ActorFromContext(r.Context())
	if !permissions.AdminOrReadOnly(r.Method, actor) {
		permissions.Deny(w, actor)
		return
	}

	item, ok := decodePayload(w, r)
	if !ok {
		return
	}

	id, err := db.NextID(r.Context(), "ingredients")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to allocate ingredient id")
		return
	}
	item.ID = id

	if _, err := db.IngredientsCollection.InsertOne(r.Context(), item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Ingredient already exists with this unit")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create ingredient")
		return
	}

	rdx.InvalidateCache(r.Context(), catalogueKey)
	utils.RespondWithJSON(w, http.StatusCreated, item)
}

func UpdateIngredient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	item, ok := decodePayload(w, r)
	if !ok {
		return
	}

	res, err := db.IngredientsCollection.UpdateOne(r.Context(), bson.M{"id": id}, bson.M{"$set": bson.M{
		"name":            item.Name,
		"measurementUnit": item.MeasurementUnit,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Ingredient already exists with this unit")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update ingredient")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Ingredient not found")
		return
	}

	rdx.InvalidateCache(r.Context(), catalogueKey)
	item.ID = id
	utils.RespondWithJSON(w, http.StatusOK, item)
}

func DeleteIngredient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	res, err := db.IngredientsCollection.DeleteOne(r.Context(), bson.M{"id": id})
	if err != nil || res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Ingredient not found")
		return
	}

	rdx.InvalidateCache(r.Context(), catalogueKey)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

func decodePayload(w http.ResponseWriter, r *http.Request) (models.Ingredient, bool) {
	var req ingredientPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return models.Ingredient{}, false
	}
	name := strings.ToLower(strings.TrimSpace(req.Name))
	unit := strings.TrimSpace(req.MeasurementUnit)
	if name == "" || len(name) > 200 {
		utils.RespondWithValidationError(w, validators.NewFieldError(
			"name", validators.ErrInvalidValue, "name must be 1 to 200 characters"))
		return models.Ingredient{}, false
	}
	if unit == "" || len(unit) > 200 {
		utils.RespondWithValidationError(w, validators.NewFieldError(
			"measurement_unit", validators.ErrInvalidValue, "unit must be 1 to 200 characters"))
		return models.Ingredient{}, false
	}
	return models.Ingredient{Name: name, MeasurementUnit: unit}, true
}
