package recipes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"foodgram/models"
	"foodgram/validators"
)

// RecipePayload is the submitted recipe body. Tags and ingredients stay
// raw until shape validation so that a non-list value can be reported as
// malformed rather than silently dropped by the decoder.
type RecipePayload struct {
	Name        string          `json:"name"`
	Text        string          `json:"text"`
	Image       string          `json:"image"`
	CookingTime int             `json:"cooking_time"`
	Tags        json.RawMessage `json:"tags"`
	Ingredients json.RawMessage `json:"ingredients"`
}

// IngredientLookup resolves an ingredient ID against the catalogue.
type IngredientLookup interface {
	IngredientByID(ctx context.Context, id int) (models.Ingredient, error)
}

type ResolvedIngredient struct {
	Ingredient models.Ingredient
	Amount     int
}

// Submission is a fully validated recipe ready for persistence.
type Submission struct {
	Name                string
	Text                string
	CookingTime         int
	ImagePath           string
	ThumbPath           string
	TagIDs              []int
	Ingredients         []ResolvedIngredient
	TagsSupplied        bool
	IngredientsSupplied bool
}

const (
	minTextLen     = 10
	maxTextLen     = 1000
	maxCookingTime = 600
	maxAmount      = 1000
)

// ValidateSubmission runs the shared validation phase for create and
// update. With partial set, absent fields are passed through untouched;
// otherwise every field is required. Any failure aborts before
// persistence and is attributed to the offending payload field.
func ValidateSubmission(ctx context.Context, p RecipePayload, lookup IngredientLookup, partial bool) (*Submission, error) {
	sub := &Submission{}

	name := strings.TrimSpace(p.Name)
	if name == "" && !partial {
		return nil, validators.NewFieldError("name", validators.ErrInvalidValue, "name is required")
	}
	if name != "" {
		if utf8.RuneCountInString(name) > 200 {
			return nil, validators.NewFieldError("name", validators.ErrInvalidValue, "name is too long")
		}
		sub.Name = validators.Capitalize(name)
	}

	if p.Text != "" || !partial {
		n := utf8.RuneCountInString(p.Text)
		if n < minTextLen {
			return nil, validators.NewFieldError("text", validators.ErrInvalidValue,
				"give a short description of at least %d characters", minTextLen)
		}
		if n > maxTextLen {
			return nil, validators.NewFieldError("text", validators.ErrInvalidValue,
				"description is longer than %d characters", maxTextLen)
		}
		sub.Text = p.Text
	}

	switch {
	case p.CookingTime == 0 && partial:
		// not supplied, keep existing
	case p.CookingTime == 0:
		sub.CookingTime = 1
	case p.CookingTime < 1 || p.CookingTime > maxCookingTime:
		return nil, validators.NewFieldError("cooking_time", validators.ErrInvalidValue,
			"cooking time must be between 1 and %d minutes", maxCookingTime)
	default:
		sub.CookingTime = p.CookingTime
	}

	if err := validateTags(p.Tags, partial, sub); err != nil {
		return nil, err
	}
	if err := validateIngredients(ctx, p.Ingredients, partial, lookup, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func validateTags(raw json.RawMessage, partial bool, sub *Submission) error {
	if raw == nil {
		if partial {
			return nil
		}
		return validators.NewFieldError("tags", validators.ErrMalformedInput, "tags must be a list")
	}
	values, err := decodeList(raw, "tags")
	if err != nil {
		return err
	}
	// Tag IDs are format-checked only; existence is verified on read.
	sub.TagIDs = make([]int, 0, len(values))
	for _, v := range values {
		id, err := validators.PositiveID(asString(v))
		if err != nil {
			return validators.NewFieldError("tags", validators.ErrInvalidValue,
				"%q is not a valid tag id", asString(v))
		}
		sub.TagIDs = append(sub.TagIDs, id)
	}
	sub.TagsSupplied = true
	return nil
}

func validateIngredients(ctx context.Context, raw json.RawMessage, partial bool, lookup IngredientLookup, sub *Submission) error {
	if raw == nil {
		if partial {
			return nil
		}
		return validators.NewFieldError("ingredients", validators.ErrMalformedInput, "ingredients must be a list")
	}
	values, err := decodeList(raw, "ingredients")
	if err != nil {
		return err
	}

	resolved := make([]ResolvedIngredient, 0, len(values))
	distinct := make(map[int]bool, len(values))
	for _, v := range values {
		entry, ok := v.(map[string]interface{})
		if !ok {
			return validators.NewFieldError("ingredients", validators.ErrMalformedInput,
				"each ingredient must be an object with id and amount")
		}

		id, err := validators.PositiveID(asString(entry["id"]))
		if err != nil {
			return validators.NewFieldError("ingredients", validators.ErrInvalidValue,
				"%q is not a valid ingredient id", asString(entry["id"]))
		}

		ingredient, err := lookup.IngredientByID(ctx, id)
		if err != nil {
			return validators.NewFieldError("ingredients", validators.ErrNotFound,
				"ingredient %d does not exist", id)
		}

		amount, err := validators.PositiveID(asString(entry["amount"]))
		if err != nil {
			return validators.NewFieldError("amount", validators.ErrInvalidValue,
				"amount must be a positive integer")
		}
		if amount > maxAmount {
			return validators.NewFieldError("amount", validators.ErrInvalidValue,
				"amount must not exceed %d", maxAmount)
		}

		distinct[ingredient.ID] = true
		resolved = append(resolved, ResolvedIngredient{Ingredient: ingredient, Amount: amount})
	}

	if len(resolved) != len(distinct) {
		return validators.NewFieldError("ingredients", validators.ErrDuplicateIngredient,
			"an ingredient may be used only once per recipe")
	}

	sub.Ingredients = resolved
	sub.IngredientsSupplied = true
	return nil
}

func decodeList(raw json.RawMessage, field string) ([]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var values []interface{}
	if err := dec.Decode(&values); err != nil || values == nil {
		// A JSON null decodes into a nil slice without error.
		return nil, validators.NewFieldError(field, validators.ErrMalformedInput,
			"%s must be a list", field)
	}
	return values, nil
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
