package models

import "time"

type Tag struct {
	ID    int    `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Color string `bson:"color" json:"color"`
	Slug  string `bson:"slug" json:"slug"`
}

type Ingredient struct {
	ID              int    `bson:"id" json:"id"`
	Name            string `bson:"name" json:"name"`
	MeasurementUnit string `bson:"measurementUnit" json:"measurement_unit"`
}

type Recipe struct {
	RecipeID    string    `bson:"recipeid" json:"id"`
	AuthorID    string    `bson:"authorId" json:"-"`
	Name        string    `bson:"name" json:"name"`
	Text        string    `bson:"text" json:"text"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Thumb       string    `bson:"thumb,omitempty" json:"thumb,omitempty"`
	TagIDs      []int     `bson:"tagIds" json:"-"`
	CookingTime int       `bson:"cookingTime" json:"cooking_time"`
	CreatedAt   time.Time `bson:"createdAt" json:"-"`
}

// IngredientAmount links one recipe to one ingredient with a quantity.
// The (recipeid, ingredientId) pair is unique; rows are created and
// replaced only inside the recipe persistence transaction.
type IngredientAmount struct {
	RecipeID     string `bson:"recipeid"`
	IngredientID int    `bson:"ingredientId"`
	Amount       int    `bson:"amount"`
}

// UserRecipes is the per-user document backing both favorites and the
// shopping cart.
type UserRecipes struct {
	UserID    string   `bson:"userid"`
	RecipeIDs []string `bson:"recipeids"`
}

type IngredientInRecipe struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type ShortRecipe struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeView is the full API shape of a recipe for a given viewer.
type RecipeView struct {
	ID               string               `json:"id"`
	Tags             []Tag                `json:"tags"`
	Author           UserView             `json:"author"`
	Ingredients      []IngredientInRecipe `json:"ingredients"`
	IsFavorited      bool                 `json:"is_favorited"`
	IsInShoppingCart bool                 `json:"is_in_shopping_cart"`
	Name             string               `json:"name"`
	Image            string               `json:"image,omitempty"`
	Text             string               `json:"text"`
	CookingTime      int                  `json:"cooking_time"`
}
