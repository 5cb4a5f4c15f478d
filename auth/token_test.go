package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	user := models.User{UserID: "u1", Username: "Alice", IsStaff: true}
	tokenStr, err := CreateToken(user)
	require.NoError(t, err)

	claims, err := VerifyToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Alice", claims.Username)
	assert.True(t, claims.IsStaff)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, err := VerifyToken("not-a-token")
	assert.Error(t, err)
}

func TestLogout(t *testing.T) {
	tokenStr, err := CreateToken(models.User{UserID: "u1", Username: "Alice"})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	r.Header.Set("Authorization", "Bearer "+tokenStr)
	rec := httptest.NewRecorder()
	Logout(rec, r, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	r = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec = httptest.NewRecorder()
	Logout(rec, r, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	r = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	Logout(rec, r, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerToken(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, BearerToken(r))

	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", BearerToken(r))

	r.Header.Set("Authorization", "Token abc")
	assert.Empty(t, BearerToken(r))
}
