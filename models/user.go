package models

import "time"

type User struct {
	UserID       string    `bson:"userid" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	FirstName    string    `bson:"firstName" json:"first_name"`
	LastName     string    `bson:"lastName" json:"last_name"`
	IsStaff      bool      `bson:"isStaff" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"-"`
}

// UserFollow is the per-user follow document. The relation is asymmetric:
// A listing B does not imply B listing A.
type UserFollow struct {
	UserID  string   `bson:"userid" json:"userid"`
	Follows []string `bson:"follows" json:"follows"`
}

// UserView is the API shape of a user as seen by another (possibly
// anonymous) viewer.
type UserView struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// Subscription embeds an author's recipes for the subscriptions listing.
type Subscription struct {
	UserView
	Recipes      []ShortRecipe `json:"recipes"`
	RecipesCount int           `json:"recipes_count"`
}

type UserSuggest struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsFollowing bool   `json:"is_following"`
}
