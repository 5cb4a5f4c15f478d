package recipes

import (
	"context"

	"foodgram/db"
	"foodgram/models"
	"foodgram/tags"

	"go.mongodb.org/mongo-driver/bson"
)

// viewerContext carries the viewer's social state (favorites, cart,
// follows) so list endpoints load it once instead of per recipe.
type viewerContext struct {
	userID    string
	favorites map[string]bool
	cart      map[string]bool
	follows   map[string]bool
}

func loadViewerContext(ctx context.Context, userID string) *viewerContext {
	vc := &viewerContext{
		userID:    userID,
		favorites: map[string]bool{},
		cart:      map[string]bool{},
		follows:   map[string]bool{},
	}
	if userID == "" {
		return vc
	}

	var fav models.UserRecipes
	if err := db.FavoritesCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&fav); err == nil {
		for _, id := range fav.RecipeIDs {
			vc.favorites[id] = true
		}
	}
	var cart models.UserRecipes
	if err := db.ShoppingCartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&cart); err == nil {
		for _, id := range cart.RecipeIDs {
			vc.cart[id] = true
		}
	}
	var follow models.UserFollow
	if err := db.FollowingsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&follow); err == nil {
		for _, id := range follow.Follows {
			vc.follows[id] = true
		}
	}
	return vc
}

func buildRecipeView(ctx context.Context, recipe models.Recipe, vc *viewerContext) (models.RecipeView, error) {
	view := models.RecipeView{
		ID:               recipe.RecipeID,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		IsFavorited:      vc.favorites[recipe.RecipeID],
		IsInShoppingCart: vc.cart[recipe.RecipeID],
		Tags:             []models.Tag{},
		Ingredients:      []models.IngredientInRecipe{},
	}

	tagList, err := tags.ByIDs(ctx, recipe.TagIDs)
	if err != nil {
		return view, err
	}
	if tagList != nil {
		view.Tags = tagList
	}

	var author models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": recipe.AuthorID}).Decode(&author); err == nil {
		view.Author = models.UserView{
			ID:           author.UserID,
			Username:     author.Username,
			Email:        author.Email,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			IsSubscribed: vc.follows[author.UserID],
		}
	}

	rows, err := junctionRows(ctx, recipe.RecipeID)
	if err != nil {
		return view, err
	}
	if len(rows) == 0 {
		return view, nil
	}

	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.IngredientID)
	}
	cursor, err := db.IngredientsCollection.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return view, err
	}
	defer cursor.Close(ctx)
	var catalogue []models.Ingredient
	if err := cursor.All(ctx, &catalogue); err != nil {
		return view, err
	}
	byID := make(map[int]models.Ingredient, len(catalogue))
	for _, ing := range catalogue {
		byID[ing.ID] = ing
	}

	for _, row := range rows {
		ing, ok := byID[row.IngredientID]
		if !ok {
			continue
		}
		view.Ingredients = append(view.Ingredients, models.IngredientInRecipe{
			ID:              ing.ID,
			Name:            ing.Name,
			MeasurementUnit: ing.MeasurementUnit,
			Amount:          row.Amount,
		})
	}
	return view, nil
}

func junctionRows(ctx context.Context, recipeID string) ([]models.IngredientAmount, error) {
	cursor, err := db.IngredientAmountCollection.Find(ctx, bson.M{"recipeid": recipeID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var rows []models.IngredientAmount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func shortRecipe(recipe models.Recipe) models.ShortRecipe {
	return models.ShortRecipe{
		ID:          recipe.RecipeID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}
