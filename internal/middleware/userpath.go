// Package middleware provides HTTP middlewares for caller identification and
// request logging.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type ctxKey string

const userKey ctxKey = "user"

// UserParam is the route parameter carrying the caller's user id.
const UserParam = "userID"

// UserFromPath reads the {userID} route parameter and stores it in the
// request context. A missing, non-numeric or non-positive id is rejected
// with 400 before the handler runs.
//
// It must be attached to routes that declare {userID}, e.g. with r.With.
func UserFromPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, UserParam), 10, 64)
		if err != nil || id <= 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Missing 'user_id' in URL"})
			return
		}
		ctx := context.WithValue(r.Context(), userKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext returns the user id stored by UserFromPath, or 0.
func GetUserIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(userKey).(int64); ok {
		return id
	}
	return 0
}

// WithUserID returns a copy of ctx carrying id, for handlers invoked
// outside the router.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userKey, id)
}
