package middleware

import (
	"net/http"
	"strings"

	"github.com/acme/todoflag/internal/auth"
)

const (
	userIDHeader = "X-User-ID"
	rightsHeader = "X-User-Rights"
)

// RequireUser reads the identity headers set by the upstream gateway and
// populates the auth context. Requests without a user id are rejected.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(userIDHeader))
		if userID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ac := auth.Context{
			UserID: userID,
			Rights: parseRights(r.Header.Get(rightsHeader)),
		}

		ctx := auth.WithContext(r.Context(), ac)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRight checks that the authenticated caller holds the given right.
func RequireRight(right string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.HasRight(r.Context(), right) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parseRights(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	parts := strings.Split(header, ",")
	rights := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			rights = append(rights, p)
		}
	}
	return rights
}
