package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"merchant-admin-layer/internal/domain"

	"github.com/rs/zerolog"
)

// HeaderRetryInvalidSession tells App Bridge to fetch a fresh session token and retry
const HeaderRetryInvalidSession = "X-Shopify-Retry-Invalid-Session-Request"

// Authenticator resolves a bearer token to the shop's stored session
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}

// SessionAuthMiddleware requires a valid App Bridge session token on every request
func SessionAuthMiddleware(auth Authenticator, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				rejectSession(w, "Missing session token")
				return
			}

			session, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Warn().
					Err(err).
					Str("path", r.URL.Path).
					Msg("Session authentication failed")
				rejectSession(w, "Invalid session token")
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.WithSession(r.Context(), session)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func rejectSession(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(HeaderRetryInvalidSession, "1")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
