package profile

import (
	"context"
	"encoding/json"
	"net/http"

	"foodgram/db"
	"foodgram/models"
	"foodgram/mq"
	"foodgram/permissions"
	"foodgram/utils"
	"foodgram/validators"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func userByID(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return user, validators.ErrNotFound
	}
	return user, err
}

func followsOf(ctx context.Context, userID string) map[string]bool {
	follows := map[string]bool{}
	if userID == "" {
		return follows
	}
	var doc models.UserFollow
	if err := db.FollowingsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&doc); err == nil {
		for _, id := range doc.Follows {
			follows[id] = true
		}
	}
	return follows
}

func viewOf(user models.User, follows map[string]bool) models.UserView {
	return models.UserView{
		ID:           user.UserID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: follows[user.UserID],
	}
}

// GetUsers lists registered users, oldest first.
func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	page, limit := utils.ParsePage(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := db.UserCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode users")
		return
	}

	follows := followsOf(ctx, utils.GetUserIDFromContext(ctx))
	views := make([]models.UserView, 0, len(users))
	for _, user := range users {
		views = append(views, viewOf(user, follows))
	}
	utils.RespondWithJSON(w, http.StatusOK, views)
}

func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	user, err := userByID(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	follows := followsOf(ctx, utils.GetUserIDFromContext(ctx))
	utils.RespondWithJSON(w, http.StatusOK, viewOf(user, follows))
}

// UpdateUser edits a profile. Only the account owner or staff may write.
func UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	user, err := userByID(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	actor := permissions.ActorFromContext(ctx)
	if !permissions.SelfOrAdminOrReadOnly(r.Method, actor, user.UserID) {
		permissions.Deny(w, actor)
		return
	}

	var payload struct {
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	set := bson.M{}
	if payload.Username != "" {
		name, err := validators.Username(payload.Username)
		if err != nil {
			utils.RespondWithValidationError(w, err)
			return
		}
		set["username"] = name
	}
	if payload.FirstName != "" {
		set["firstName"] = payload.FirstName
	}
	if payload.LastName != "" {
		set["lastName"] = payload.LastName
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx, bson.M{"userid": user.UserID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Username is already taken")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	mq.Emit("user-updated", mq.Event{
		EntityType: "user", Method: "PUT", EntityID: user.UserID, ActorID: actor.UserID,
	})

	updated, err := userByID(ctx, user.UserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reload user")
		return
	}
	follows := followsOf(ctx, actor.UserID)
	utils.RespondWithJSON(w, http.StatusOK, viewOf(updated, follows))
}
