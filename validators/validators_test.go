package validators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"fff", "#fff"},
		{"#fff", "#fff"},
		{"FFF", "#FFF"},
		{"a1b2c3", "#a1b2c3"},
		{"#A1B2C3", "#A1B2C3"},
		{" #0af ", "#0af"},
	}
	for _, c := range cases {
		got, err := HexColor(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got)

		// Normalization is idempotent.
		again, err := HexColor(got)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
}

func TestHexColorRejectsBadValues(t *testing.T) {
	for _, in := range []string{"", "12", "1234", "12345", "1234567", "zzzzzz", "#ggg", "12 456"} {
		_, err := HexColor(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrInvalidValue))

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "color", fe.Field)
	}
}

func TestPositiveID(t *testing.T) {
	for in, want := range map[string]int{"1": 1, "5": 5, "042": 42, "600": 600} {
		got, err := PositiveID(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
}

func TestPositiveIDRejectsBadValues(t *testing.T) {
	for _, in := range []string{"", "0", "-1", "abc", "1.5", "1e3", " 7"} {
		_, err := PositiveID(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrInvalidValue))
	}
}

func TestUsername(t *testing.T) {
	got, err := Username("aLICE")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got)

	got, err = Username("мария")
	require.NoError(t, err)
	assert.Equal(t, "Мария", got)
}

func TestUsernameRejectsBadValues(t *testing.T) {
	for _, in := range []string{"", "ab", "bob42", "a b", "user_name"} {
		_, err := Username(in)
		require.Error(t, err, in)
	}
}

func TestSlug(t *testing.T) {
	got, err := Slug("breakfast_2-go")
	require.NoError(t, err)
	assert.Equal(t, "breakfast_2-go", got)

	for _, in := range []string{"", "white space", "ümlaut", "semi;colon"} {
		_, err := Slug(in)
		require.Error(t, err, in)
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Pie", Capitalize("pIE"))
	assert.Equal(t, "Борщ", Capitalize("БОРЩ"))
}
