package middleware

import (
	"net/http"
	"strings"

	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// UserIDHeader carries the caller id forwarded by the session layer in front
// of this service.
const UserIDHeader = "X-User-ID"

// Identity puts the forwarded caller id into the request context. The id is
// taken from X-User-ID, or from an "Authorization: Bearer <id>" header.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(UserIDHeader))

			if userID == "" {
				authHeader := r.Header.Get("Authorization")
				if authHeader == "" {
					utils.ResponseUnauthorized(w, "Missing caller identity")
					return
				}

				parts := strings.Fields(authHeader)
				if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
					logger.Warn("Malformed authorization header", zap.String("path", r.URL.Path))
					utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <user-id>")
					return
				}
				userID = parts[1]
			}

			if len(userID) > 64 {
				utils.ResponseUnauthorized(w, "Invalid caller identity")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
