package suggestions

import (
	"net/http"

	"foodgram/db"
	"foodgram/models"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SuggestFollowers returns authors the requesting user does not follow
// yet, excluding the user themselves.
func SuggestFollowers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromContext(ctx)

	var followData models.UserFollow
	err := db.FollowingsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&followData)
	if err != nil && err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch follow data")
		return
	}

	excluded := append(followData.Follows, userID)
	page, limit := utils.ParsePage(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{
			"userid":    1,
			"username":  1,
			"firstName": 1,
			"lastName":  1,
		})

	cursor, err := db.UserCollection.Find(ctx, bson.M{"userid": bson.M{"$nin": excluded}}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch suggestions")
		return
	}
	defer cursor.Close(ctx)

	suggested := make([]models.UserSuggest, 0, limit)
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			continue
		}
		suggested = append(suggested, models.UserSuggest{
			ID:          user.UserID,
			Username:    user.Username,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			IsFollowing: false,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, suggested)
}
