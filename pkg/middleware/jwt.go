package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"vehicledb/pkg/claims"
	"vehicledb/pkg/session"
)

// RequireAuth admits requests carrying an auth cookie whose token is valid
// and whose session is still live. Claims are placed on the request context.
func RequireAuth(secret []byte, sessions session.Repository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(claims.CookieName)
			if err != nil || cookie.Value == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			c, err := claims.Parse(cookie.Value, secret)
			if err != nil {
				logger.Debug("rejected token", "error", err, "path", r.URL.Path)
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}

			ok, err := sessions.IsValid(r.Context(), c.SessionID)
			if err != nil {
				logger.Error("session lookup", "error", err, "user", c.User.ID)
				writeError(w, http.StatusInternalServerError, "internal_error")
				return
			}
			if !ok {
				logger.Debug("revoked session", "user", c.User.ID)
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(claims.WithClaims(r.Context(), c)))
		})
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": code}); err != nil {
		return
	}
}
