package shopping

import (
	"fmt"
	"net/http"
	"time"

	"foodgram/db"
	"foodgram/models"
	"foodgram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DownloadShoppingCart renders the aggregated shopping list for the
// requesting user as a text/plain attachment. The empty-cart check runs
// before any recipe query is issued.
func DownloadShoppingCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromContext(ctx)

	var cart models.UserRecipes
	err := db.ShoppingCartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&cart)
	if code, msg := cartStatus(err, len(cart.RecipeIDs)); code != http.StatusOK {
		utils.RespondWithError(w, code, msg)
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	items, err := collectItems(r, cart.RecipeIDs)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to collect ingredients")
		return
	}

	report := Render(user.FirstName, Aggregate(items), time.Now())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s_shopping_list.txt", user.Username))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report))
}

// cartStatus maps the cart lookup outcome to an HTTP status. A missing
// cart document counts as empty; any other lookup error is a server
// failure, not an empty list.
func cartStatus(err error, recipeCount int) (int, string) {
	if err != nil && err != mongo.ErrNoDocuments {
		return http.StatusInternalServerError, "Failed to load shopping cart"
	}
	if recipeCount == 0 {
		return http.StatusBadRequest, "Shopping list is empty"
	}
	return http.StatusOK, ""
}

func collectItems(r *http.Request, recipeIDs []string) ([]Item, error) {
	ctx := r.Context()

	cursor, err := db.IngredientAmountCollection.Find(ctx,
		bson.M{"recipeid": bson.M{"$in": recipeIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var rows []models.IngredientAmount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.IngredientID)
	}
	ingCursor, err := db.IngredientsCollection.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer ingCursor.Close(ctx)
	var catalogue []models.Ingredient
	if err := ingCursor.All(ctx, &catalogue); err != nil {
		return nil, err
	}
	byID := make(map[int]models.Ingredient, len(catalogue))
	for _, ing := range catalogue {
		byID[ing.ID] = ing
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		ing, ok := byID[row.IngredientID]
		if !ok {
			continue
		}
		items = append(items, Item{Name: ing.Name, Unit: ing.MeasurementUnit, Amount: row.Amount})
	}
	return items, nil
}
