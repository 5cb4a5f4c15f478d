package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"foodgram/db"
	"foodgram/models"
	"foodgram/rdx"
	"foodgram/utils"
	"foodgram/validators"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type registerPayload struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req registerPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	username, err := validators.Username(req.Username)
	if err != nil {
		utils.RespondWithValidationError(w, err)
		return
	}
	if req.Email == "" || len(req.Email) > 254 || !strings.Contains(req.Email, "@") {
		utils.RespondWithError(w, http.StatusBadRequest, "A valid email address is required")
		return
	}
	if len(req.Password) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CreatedAt:    time.Now(),
	}

	if _, err := db.UserCollection.InsertOne(r.Context(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Username or email already in use")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, models.UserView{
		ID:        user.UserID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(r.Context(),
		bson.M{"username": validators.Capitalize(req.Username)}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := CreateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token, "userid": user.UserID})
}

// Logout revokes the presented token for the remainder of its lifetime.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tokenStr := BearerToken(r)
	if tokenStr == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing token")
		return
	}
	claims, err := VerifyToken(tokenStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	ttl := TokenTTL
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := rdx.RevokeToken(r.Context(), claims.ID, ttl); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to revoke token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// BearerToken extracts the raw token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
