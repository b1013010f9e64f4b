package middleware

import (
	"net/http"

	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity extracts the requester identity injected by the upstream gateway.
// Authentication itself happens there; this service only needs a validated
// user ID to book on behalf of.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDHeader := r.Header.Get("X-User-ID")
			if userIDHeader == "" {
				utils.ResponseUnauthorized(w, "Missing X-User-ID header")
				return
			}

			userID, err := uuid.Parse(userIDHeader)
			if err != nil {
				logger.Warn("Invalid user ID header", zap.String("x_user_id", userIDHeader))
				utils.ResponseUnauthorized(w, "Invalid X-User-ID header")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
