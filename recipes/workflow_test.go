package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"foodgram/models"
	"foodgram/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogue map[int]models.Ingredient

func (f fakeCatalogue) IngredientByID(_ context.Context, id int) (models.Ingredient, error) {
	if ing, ok := f[id]; ok {
		return ing, nil
	}
	return models.Ingredient{}, validators.ErrNotFound
}

func testCatalogue() fakeCatalogue {
	return fakeCatalogue{
		1: {ID: 1, Name: "salt", MeasurementUnit: "g"},
		2: {ID: 2, Name: "milk", MeasurementUnit: "ml"},
	}
}

func validPayload() RecipePayload {
	return RecipePayload{
		Name:        "  pancakes ",
		Text:        "Mix everything and fry.",
		CookingTime: 20,
		Tags:        json.RawMessage(`[1, 2]`),
		Ingredients: json.RawMessage(`[{"id": 1, "amount": 5}, {"id": "2", "amount": "100"}]`),
	}
}

func TestValidateSubmission(t *testing.T) {
	sub, err := ValidateSubmission(context.Background(), validPayload(), testCatalogue(), false)
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", sub.Name)
	assert.Equal(t, 20, sub.CookingTime)
	assert.Equal(t, []int{1, 2}, sub.TagIDs)
	require.Len(t, sub.Ingredients, 2)
	assert.Equal(t, "salt", sub.Ingredients[0].Ingredient.Name)
	assert.Equal(t, 5, sub.Ingredients[0].Amount)
	assert.Equal(t, 100, sub.Ingredients[1].Amount)
	assert.True(t, sub.TagsSupplied)
	assert.True(t, sub.IngredientsSupplied)
}

func TestValidateSubmissionDefaultsCookingTime(t *testing.T) {
	p := validPayload()
	p.CookingTime = 0
	sub, err := ValidateSubmission(context.Background(), p, testCatalogue(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, sub.CookingTime)
}

func TestValidateSubmissionCookingTimeBounds(t *testing.T) {
	for _, minutes := range []int{-1, 601} {
		p := validPayload()
		p.CookingTime = minutes
		_, err := ValidateSubmission(context.Background(), p, testCatalogue(), false)
		require.Error(t, err)

		var fe *validators.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "cooking_time", fe.Field)
	}
}

func TestValidateSubmissionRejectsDuplicateIngredient(t *testing.T) {
	p := validPayload()
	p.Ingredients = json.RawMessage(`[{"id": 1, "amount": 5}, {"id": 1, "amount": 7}]`)
	_, err := ValidateSubmission(context.Background(), p, testCatalogue(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, validators.ErrDuplicateIngredient))
}

func TestValidateSubmissionRejectsUnknownIngredient(t *testing.T) {
	p := validPayload()
	p.Ingredients = json.RawMessage(`[{"id": 99, "amount": 5}]`)
	_, err := ValidateSubmission(context.Background(), p, testCatalogue(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, validators.ErrNotFound))
}

func TestValidateSubmissionRejectsNonListTags(t *testing.T) {
	p := validPayload()
	p.Tags = json.RawMessage(`"breakfast"`)
	_, err := ValidateSubmission(context.Background(), p, testCatalogue(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, validators.ErrMalformedInput))
}

func TestValidateSubmissionRejectsNullTagsAndIngredients(t *testing.T) {
	p := validPayload()
	p.Tags = json.RawMessage(`null`)
	_, err := ValidateSubmission(context.Background(), p, testCatalogue(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, validators.ErrMalformedInput))

	p = validPayload()
	p.Ingredients = json.RawMessage(`null`)
	_, err = ValidateSubmission(context.Background(), p, testCatalogue(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, validators.ErrMalformedInput))
}

func TestValidateSubmissionRequiresTagsAndIngredientsOnCreate(t *testing.T) {
	p := validPayload()
	p.Tags = nil
	_, err := ValidateSubmission(context.Background(), p, testCatalogue(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, validators.ErrMalformedInput))

	p = validPayload()
	p.Ingredients = nil
	_, err = ValidateSubmission(context.Background(), p, testCatalogue(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, validators.ErrMalformedInput))
}

func TestValidateSubmissionPartialSkipsAbsentFields(t *testing.T) {
	sub, err := ValidateSubmission(context.Background(), RecipePayload{}, testCatalogue(), true)
	require.NoError(t, err)
	assert.Empty(t, sub.Name)
	assert.Zero(t, sub.CookingTime)
	assert.False(t, sub.TagsSupplied)
	assert.False(t, sub.IngredientsSupplied)
}

func TestValidateSubmissionAmountBounds(t *testing.T) {
	p := validPayload()
	p.Ingredients = json.RawMessage(`[{"id": 1, "amount": 1001}]`)
	_, err := ValidateSubmission(context.Background(), p, testCatalogue(), false)
	require.Error(t, err)

	var fe *validators.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "amount", fe.Field)

	p.Ingredients = json.RawMessage(`[{"id": 1, "amount": 0}]`)
	_, err = ValidateSubmission(context.Background(), p, testCatalogue(), false)
	require.Error(t, err)
}

func TestValidateSubmissionTextBounds(t *testing.T) {
	p := validPayload()
	p.Text = "too short"
	_, err := ValidateSubmission(context.Background(), p, testCatalogue(), false)
	require.Error(t, err)

	var fe *validators.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "text", fe.Field)
}
