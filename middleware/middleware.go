package middleware

import (
	"context"
	"log"
	"net/http"

	"foodgram/auth"
	"foodgram/globals"
	"foodgram/rdx"

	"github.com/julienschmidt/httprouter"
)

// Authenticate verifies the bearer token and injects the actor's user ID
// and staff flag into the request context. Requests without a valid token
// are rejected with 401.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, ok := verify(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r.WithContext(withActor(r.Context(), claims)), ps)
	}
}

// OptionalAuth injects the actor when a valid token is present and lets
// the request through anonymously otherwise.
func OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if claims, ok := verify(r); ok {
			r = r.WithContext(withActor(r.Context(), claims))
		}
		next(w, r, ps)
	}
}

func verify(r *http.Request) (*auth.Claims, bool) {
	tokenStr := auth.BearerToken(r)
	if tokenStr == "" {
		return nil, false
	}
	claims, err := auth.VerifyToken(tokenStr)
	if err != nil {
		return nil, false
	}
	if rdx.IsTokenRevoked(r.Context(), claims.ID) {
		return nil, false
	}
	return claims, true
}

func withActor(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, globals.UserIDKey, claims.UserID)
	return context.WithValue(ctx, globals.IsStaffKey, claims.IsStaff)
}

func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
