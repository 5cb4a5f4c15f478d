package permissions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	anonymous = Actor{}
	author    = Actor{UserID: "u1", Authenticated: true}
	other     = Actor{UserID: "u2", Authenticated: true}
	staff     = Actor{UserID: "u3", IsStaff: true, Authenticated: true}
)

func TestAuthorStaffOrReadOnly(t *testing.T) {
	assert.True(t, AuthorStaffOrReadOnly(http.MethodGet, anonymous, "u1"))
	assert.True(t, AuthorStaffOrReadOnly(http.MethodGet, other, "u1"))

	assert.False(t, AuthorStaffOrReadOnly(http.MethodPut, anonymous, "u1"))
	assert.False(t, AuthorStaffOrReadOnly(http.MethodDelete, other, "u1"))
	assert.True(t, AuthorStaffOrReadOnly(http.MethodPut, author, "u1"))
	assert.True(t, AuthorStaffOrReadOnly(http.MethodDelete, staff, "u1"))
}

func TestAdminOrReadOnly(t *testing.T) {
	assert.True(t, AdminOrReadOnly(http.MethodGet, anonymous))
	assert.False(t, AdminOrReadOnly(http.MethodPost, anonymous))
	assert.False(t, AdminOrReadOnly(http.MethodPost, author))
	assert.True(t, AdminOrReadOnly(http.MethodPost, staff))
}

func TestSelfOrAdminOrReadOnly(t *testing.T) {
	assert.True(t, SelfOrAdminOrReadOnly(http.MethodGet, anonymous, "u1"))
	assert.False(t, SelfOrAdminOrReadOnly(http.MethodPut, anonymous, "u1"))
	assert.False(t, SelfOrAdminOrReadOnly(http.MethodPut, other, "u1"))
	assert.True(t, SelfOrAdminOrReadOnly(http.MethodPut, author, "u1"))
	assert.True(t, SelfOrAdminOrReadOnly(http.MethodPut, staff, "u1"))
}

func TestDenyStatusCodes(t *testing.T) {
	rec := httptest.NewRecorder()
	Deny(rec, anonymous)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	Deny(rec, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
