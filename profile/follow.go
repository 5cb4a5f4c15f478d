package profile

import (
	"context"
	"net/http"

	"foodgram/db"
	"foodgram/models"
	"foodgram/mq"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Follow subscribes the requesting user to the author in the URL.
// Self-subscription and repeat subscription are both rejected.
func Follow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	followerID := utils.GetUserIDFromContext(ctx)
	authorID := ps.ByName("id")

	if authorID == followerID {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot subscribe to yourself")
		return
	}
	author, err := userByID(ctx, authorID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	res, err := db.FollowingsCollection.UpdateOne(ctx,
		bson.M{"userid": followerID},
		bson.M{"$addToSet": bson.M{"follows": author.UserID}},
		options.Update().SetUpsert(true))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to subscribe")
		return
	}
	if res.ModifiedCount == 0 && res.UpsertedCount == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Already subscribed")
		return
	}

	mq.Emit("user-followed", mq.Event{
		EntityType: "user", Method: "POST", EntityID: author.UserID, ActorID: followerID,
	})

	limit := utils.ParseInt(r.URL.Query().Get("recipes_limit"))
	sub, err := buildSubscription(ctx, author, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build subscription")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, sub)
}

func Unfollow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	followerID := utils.GetUserIDFromContext(ctx)
	authorID := ps.ByName("id")

	res, err := db.FollowingsCollection.UpdateOne(ctx,
		bson.M{"userid": followerID},
		bson.M{"$pull": bson.M{"follows": authorID}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to unsubscribe")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Not subscribed")
		return
	}

	mq.Emit("user-unfollowed", mq.Event{
		EntityType: "user", Method: "DELETE", EntityID: authorID, ActorID: followerID,
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// Subscriptions lists the authors the requesting user follows, each with
// their recipes. recipes_limit trims the per-author recipe list.
func Subscriptions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	followerID := utils.GetUserIDFromContext(ctx)

	var doc models.UserFollow
	err := db.FollowingsCollection.FindOne(ctx, bson.M{"userid": followerID}).Decode(&doc)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, []models.Subscription{})
		return
	}

	page, limit := utils.ParsePage(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
	start := (page - 1) * limit
	if start > len(doc.Follows) {
		start = len(doc.Follows)
	}
	end := start + limit
	if end > len(doc.Follows) {
		end = len(doc.Follows)
	}

	recipesLimit := utils.ParseInt(r.URL.Query().Get("recipes_limit"))
	subs := make([]models.Subscription, 0, end-start)
	for _, authorID := range doc.Follows[start:end] {
		author, err := userByID(ctx, authorID)
		if err != nil {
			continue
		}
		sub, err := buildSubscription(ctx, author, recipesLimit)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build subscription")
			return
		}
		subs = append(subs, sub)
	}
	utils.RespondWithJSON(w, http.StatusOK, subs)
}

func buildSubscription(ctx context.Context, author models.User, recipesLimit int) (models.Subscription, error) {
	sub := models.Subscription{
		UserView: models.UserView{
			ID:           author.UserID,
			Username:     author.Username,
			Email:        author.Email,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			IsSubscribed: true,
		},
		Recipes: []models.ShortRecipe{},
	}

	count, err := db.RecipeCollection.CountDocuments(ctx, bson.M{"authorId": author.UserID})
	if err != nil {
		return sub, err
	}
	sub.RecipesCount = int(count)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if recipesLimit > 0 {
		opts.SetLimit(int64(recipesLimit))
	}
	cursor, err := db.RecipeCollection.Find(ctx, bson.M{"authorId": author.UserID}, opts)
	if err != nil {
		return sub, err
	}
	defer cursor.Close(ctx)
	var recipeDocs []models.Recipe
	if err := cursor.All(ctx, &recipeDocs); err != nil {
		return sub, err
	}
	for _, recipe := range recipeDocs {
		sub.Recipes = append(sub.Recipes, models.ShortRecipe{
			ID:          recipe.RecipeID,
			Name:        recipe.Name,
			Image:       recipe.Image,
			CookingTime: recipe.CookingTime,
		})
	}
	return sub, nil
}
