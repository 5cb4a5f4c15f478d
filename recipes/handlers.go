package recipes

import (
	"context"
	"encoding/json"
	"net/http"

	"foodgram/db"
	"foodgram/ingredients"
	"foodgram/models"
	"foodgram/mq"
	"foodgram/permissions"
	"foodgram/tags"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// catalogueLookup adapts the ingredient catalogue to the workflow's
// lookup interface.
type catalogueLookup struct{}

func (catalogueLookup) IngredientByID(ctx context.Context, id int) (models.Ingredient, error) {
	return ingredients.ByID(ctx, id)
}

// GetRecipes lists recipes, newest first, with tag/author filters for
// everyone and favorite/cart membership filters for authenticated users.
func GetRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	viewerID := utils.GetUserIDFromContext(ctx)
	vc := loadViewerContext(ctx, viewerID)

	query := bson.M{}
	params := r.URL.Query()

	if slugs := params["tags"]; len(slugs) > 0 {
		ids, err := tags.IDsBySlugs(ctx, slugs)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve tags")
			return
		}
		if ids == nil {
			ids = []int{}
		}
		query["tagIds"] = bson.M{"$in": ids}
	}
	if author := params.Get("author"); author != "" {
		query["authorId"] = author
	}

	// Membership filters apply to authenticated viewers only.
	if viewerID != "" {
		var conds []bson.M
		if c := membershipCond(params.Get("is_favorited"), vc.favorites); c != nil {
			conds = append(conds, c)
		}
		if c := membershipCond(params.Get("is_in_shopping_cart"), vc.cart); c != nil {
			conds = append(conds, c)
		}
		switch len(conds) {
		case 1:
			query["recipeid"] = conds[0]["recipeid"]
		case 2:
			query["$and"] = conds
		}
	}

	page, limit := utils.ParsePage(params.Get("page"), params.Get("limit"))
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := db.RecipeCollection.Find(ctx, query, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}
	defer cursor.Close(ctx)

	var recipeDocs []models.Recipe
	if err := cursor.All(ctx, &recipeDocs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode recipes")
		return
	}

	views := make([]models.RecipeView, 0, len(recipeDocs))
	for _, recipe := range recipeDocs {
		view, err := buildRecipeView(ctx, recipe, vc)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build recipe")
			return
		}
		views = append(views, view)
	}
	utils.RespondWithJSON(w, http.StatusOK, views)
}

func membershipCond(value string, membership map[string]bool) bson.M {
	ids := make([]string, 0, len(membership))
	for id := range membership {
		ids = append(ids, id)
	}
	switch value {
	case "1", "true":
		return bson.M{"recipeid": bson.M{"$in": ids}}
	case "0", "false":
		return bson.M{"recipeid": bson.M{"$nin": ids}}
	}
	return nil
}

func GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	recipe, err := ByID(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	vc := loadViewerContext(ctx, utils.GetUserIDFromContext(ctx))
	view, err := buildRecipeView(ctx, recipe, vc)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build recipe")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

func CreateRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	actor := permissions.ActorFromContext(ctx)
	if !actor.Authenticated {
		permissions.Deny(w, actor)
		return
	}

	var payload RecipePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	sub, err := ValidateSubmission(ctx, payload, catalogueLookup{}, false)
	if err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}

	if payload.Image != "" {
		imagePath, thumbPath, err := utils.SaveBase64Image(payload.Image, "recipes")
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid image data")
			return
		}
		sub.ImagePath, sub.ThumbPath = imagePath, thumbPath
	}

	recipe, err := Create(ctx, actor.UserID, sub)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create recipe")
		return
	}

	mq.Emit("recipe-created", mq.Event{
		EntityType: "recipe", Method: "POST", EntityID: recipe.RecipeID, ActorID: actor.UserID,
	})

	vc := loadViewerContext(ctx, actor.UserID)
	view, err := buildRecipeView(ctx, *recipe, vc)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build recipe")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, view)
}

func UpdateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	recipe, err := ByID(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	// Access control is consulted before any validation runs.
	actor := permissions.ActorFromContext(ctx)
	if !permissions.AuthorStaffOrReadOnly(r.Method, actor, recipe.AuthorID) {
		permissions.Deny(w, actor)
		return
	}

	var payload RecipePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	sub, err := ValidateSubmission(ctx, payload, catalogueLookup{}, true)
	if err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}

	if payload.Image != "" {
		imagePath, thumbPath, err := utils.SaveBase64Image(payload.Image, "recipes")
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid image data")
			return
		}
		sub.ImagePath, sub.ThumbPath = imagePath, thumbPath
	}

	if err := Update(ctx, &recipe, sub); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update recipe")
		return
	}

	mq.Emit("recipe-updated", mq.Event{
		EntityType: "recipe", Method: "PUT", EntityID: recipe.RecipeID, ActorID: actor.UserID,
	})

	updated, err := ByID(ctx, recipe.RecipeID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reload recipe")
		return
	}
	vc := loadViewerContext(ctx, actor.UserID)
	view, err := buildRecipeView(ctx, updated, vc)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build recipe")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

func DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	recipe, err := ByID(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	actor := permissions.ActorFromContext(ctx)
	if !permissions.AuthorStaffOrReadOnly(r.Method, actor, recipe.AuthorID) {
		permissions.Deny(w, actor)
		return
	}

	if err := Delete(ctx, recipe.RecipeID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete recipe")
		return
	}

	mq.Emit("recipe-deleted", mq.Event{
		EntityType: "recipe", Method: "DELETE", EntityID: recipe.RecipeID, ActorID: actor.UserID,
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
