package permissions

import (
	"context"
	"net/http"

	"foodgram/globals"
	"foodgram/utils"
)

// Actor is the authenticated (or anonymous) caller of a request, passed
// explicitly into every predicate instead of living in global state.
type Actor struct {
	UserID        string
	IsStaff       bool
	Authenticated bool
}

func ActorFromContext(ctx context.Context) Actor {
	uid, _ := ctx.Value(globals.UserIDKey).(string)
	staff, _ := ctx.Value(globals.IsStaffKey).(bool)
	return Actor{UserID: uid, IsStaff: staff, Authenticated: uid != ""}
}

func readOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AuthorStaffOrReadOnly allows reads for everyone; writes only for the
// object's author or staff.
func AuthorStaffOrReadOnly(method string, actor Actor, authorID string) bool {
	if readOnly(method) {
		return true
	}
	if !actor.Authenticated {
		return false
	}
	return actor.UserID == authorID || actor.IsStaff
}

// AdminOrReadOnly allows reads for everyone; writes only for authenticated
// staff.
func AdminOrReadOnly(method string, actor Actor) bool {
	if readOnly(method) {
		return true
	}
	return actor.Authenticated && actor.IsStaff
}

// SelfOrAdminOrReadOnly allows reads for everyone; writes only for the
// target user or staff.
func SelfOrAdminOrReadOnly(method string, actor Actor, targetID string) bool {
	if readOnly(method) {
		return true
	}
	if !actor.Authenticated {
		return false
	}
	return actor.UserID == targetID || actor.IsStaff
}

// Deny writes the 401/403 response for a failed predicate: 401 when the
// actor is anonymous, 403 otherwise.
func Deny(w http.ResponseWriter, actor Actor) {
	if !actor.Authenticated {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	utils.RespondWithError(w, http.StatusForbidden, "You do not have permission to perform this action")
}
