package recipes

import (
	"context"
	"net/http"

	"foodgram/db"
	"foodgram/mq"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// addRelation records recipeID in the user's per-user membership doc.
// Returns false when the recipe was already present.
func addRelation(ctx context.Context, coll *mongo.Collection, userID, recipeID string) (bool, error) {
	res, err := coll.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$addToSet": bson.M{"recipeids": recipeID}},
		options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0 || res.UpsertedCount > 0, nil
}

func removeRelation(ctx context.Context, coll *mongo.Collection, userID, recipeID string) (bool, error) {
	res, err := coll.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$pull": bson.M{"recipeids": recipeID}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func addRelationHandler(coll *mongo.Collection, eventName, alreadyMsg string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := r.Context()
		userID := utils.GetUserIDFromContext(ctx)

		recipe, err := ByID(ctx, ps.ByName("id"))
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
			return
		}

		added, err := addRelation(ctx, coll, userID, recipe.RecipeID)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update relation")
			return
		}
		if !added {
			utils.RespondWithError(w, http.StatusBadRequest, alreadyMsg)
			return
		}

		mq.Emit(eventName, mq.Event{
			EntityType: "recipe", Method: "POST", EntityID: recipe.RecipeID, ActorID: userID,
		})
		utils.RespondWithJSON(w, http.StatusCreated, shortRecipe(recipe))
	}
}

func removeRelationHandler(coll *mongo.Collection, eventName, missingMsg string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := r.Context()
		userID := utils.GetUserIDFromContext(ctx)

		removed, err := removeRelation(ctx, coll, userID, ps.ByName("id"))
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update relation")
			return
		}
		if !removed {
			utils.RespondWithError(w, http.StatusBadRequest, missingMsg)
			return
		}

		mq.Emit(eventName, mq.Event{
			EntityType: "recipe", Method: "DELETE", EntityID: ps.ByName("id"), ActorID: userID,
		})
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
	}
}

// Favorite marks a recipe as favorited by the requesting user.
func Favorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	addRelationHandler(db.FavoritesCollection, "recipe-favorited",
		"Recipe is already in favorites")(w, r, ps)
}

func Unfavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	removeRelationHandler(db.FavoritesCollection, "recipe-unfavorited",
		"Recipe is not in favorites")(w, r, ps)
}

// AddToShoppingCart puts a recipe into the requesting user's cart.
func AddToShoppingCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	addRelationHandler(db.ShoppingCartCollection, "cart-added",
		"Recipe is already in the shopping cart")(w, r, ps)
}

func RemoveFromShoppingCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	removeRelationHandler(db.ShoppingCartCollection, "cart-removed",
		"Recipe is not in the shopping cart")(w, r, ps)
}
