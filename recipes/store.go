package recipes

import (
	"context"
	"time"

	"foodgram/db"
	"foodgram/models"
	"foodgram/validators"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// withTransaction runs fn inside a multi-document transaction so the
// recipe document and its junction rows commit or roll back together.
func withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := db.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// insertJunctionRows writes one IngredientAmount row per resolved pair
// with insert-or-fetch semantics: resubmitting an identical pair never
// creates a duplicate row.
func insertJunctionRows(ctx context.Context, recipeID string, items []ResolvedIngredient) error {
	for _, item := range items {
		filter := bson.M{"recipeid": recipeID, "ingredientId": item.Ingredient.ID}
		update := bson.M{"$setOnInsert": bson.M{"amount": item.Amount}}
		_, err := db.IngredientAmountCollection.UpdateOne(ctx, filter, update,
			options.Update().SetUpsert(true))
		if err != nil {
			return err
		}
	}
	return nil
}

// Create persists a new recipe and its ingredient rows atomically.
func Create(ctx context.Context, authorID string, sub *Submission) (*models.Recipe, error) {
	recipe := &models.Recipe{
		RecipeID:    uuid.NewString(),
		AuthorID:    authorID,
		Name:        sub.Name,
		Text:        sub.Text,
		Image:       sub.ImagePath,
		Thumb:       sub.ThumbPath,
		TagIDs:      sub.TagIDs,
		CookingTime: sub.CookingTime,
		CreatedAt:   time.Now(),
	}
	if recipe.TagIDs == nil {
		recipe.TagIDs = []int{}
	}

	err := withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := db.RecipeCollection.InsertOne(sc, recipe); err != nil {
			return err
		}
		return insertJunctionRows(sc, recipe.RecipeID, sub.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// Update applies a validated submission to an existing recipe. Scalar
// fields are replaced only when supplied. A supplied tag set replaces the
// old one outright; a supplied ingredient set clears every junction row
// for the recipe and reinserts from the resolved pairs. All inside one
// transaction.
func Update(ctx context.Context, recipe *models.Recipe, sub *Submission) error {
	set := bson.M{}
	if sub.Name != "" {
		set["name"] = sub.Name
	}
	if sub.Text != "" {
		set["text"] = sub.Text
	}
	if sub.CookingTime > 0 {
		set["cookingTime"] = sub.CookingTime
	}
	if sub.ImagePath != "" {
		set["image"] = sub.ImagePath
		set["thumb"] = sub.ThumbPath
	}
	if sub.TagsSupplied && len(sub.TagIDs) > 0 {
		set["tagIds"] = sub.TagIDs
	}
	replaceIngredients := sub.IngredientsSupplied && len(sub.Ingredients) > 0

	return withTransaction(ctx, func(sc mongo.SessionContext) error {
		if len(set) > 0 {
			_, err := db.RecipeCollection.UpdateOne(sc,
				bson.M{"recipeid": recipe.RecipeID}, bson.M{"$set": set})
			if err != nil {
				return err
			}
		}
		if replaceIngredients {
			_, err := db.IngredientAmountCollection.DeleteMany(sc,
				bson.M{"recipeid": recipe.RecipeID})
			if err != nil {
				return err
			}
			return insertJunctionRows(sc, recipe.RecipeID, sub.Ingredients)
		}
		return nil
	})
}

// Delete removes the recipe, its junction rows and any favorite or
// shopping-cart references atomically.
func Delete(ctx context.Context, recipeID string) error {
	return withTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := db.RecipeCollection.DeleteOne(sc, bson.M{"recipeid": recipeID})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return validators.ErrNotFound
		}
		if _, err := db.IngredientAmountCollection.DeleteMany(sc, bson.M{"recipeid": recipeID}); err != nil {
			return err
		}
		pull := bson.M{"$pull": bson.M{"recipeids": recipeID}}
		if _, err := db.FavoritesCollection.UpdateMany(sc, bson.M{}, pull); err != nil {
			return err
		}
		_, err = db.ShoppingCartCollection.UpdateMany(sc, bson.M{}, pull)
		return err
	})
}

// ByID fetches one recipe; validators.ErrNotFound when absent.
func ByID(ctx context.Context, recipeID string) (models.Recipe, error) {
	var recipe models.Recipe
	err := db.RecipeCollection.FindOne(ctx, bson.M{"recipeid": recipeID}).Decode(&recipe)
	if err == mongo.ErrNoDocuments {
		return recipe, validators.ErrNotFound
	}
	return recipe, err
}
