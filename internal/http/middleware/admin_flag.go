package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const adminModeKey contextKey = "adminMode"

// AdminQueryParam is the query flag that switches the site into admin mode.
const AdminQueryParam = "admin"

// IsAdminRequest reports whether the request carries ?admin=1. This is a
// visibility toggle for the operator export, not an access control.
func IsAdminRequest(r *http.Request) bool {
	return r.URL.Query().Get(AdminQueryParam) == "1"
}

// AdminFlag marks requests with ?admin=1 as admin mode and answers 404 for the
// rest, so admin routes stay out of sight of regular visitors.
func AdminFlag(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdminRequest(r) {
			http.NotFound(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), adminModeKey, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminModeFromContext reports whether AdminFlag admitted the request.
func AdminModeFromContext(ctx context.Context) bool {
	admin, _ := ctx.Value(adminModeKey).(bool)
	return admin
}
