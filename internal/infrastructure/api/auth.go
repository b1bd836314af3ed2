package api

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"

	"merchant-admin-layer/internal/application"
	"merchant-admin-layer/internal/domain"

	"github.com/rs/zerolog"
)

const (
	stateCookieName = "shopify_oauth_state"
	stateCookieTTL  = 600
)

// OAuthFlow is the Shopify side of the install flow
type OAuthFlow interface {
	AuthorizeURL(shop string, state string) string
	VerifyCallback(u *url.URL) (bool, error)
	ExchangeToken(ctx context.Context, shop string, code string) (string, error)
	Scope() string
}

// oauthInitHandler initiates the OAuth flow
func oauthInitHandler(flow OAuthFlow, secureCookies bool, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop := r.URL.Query().Get("shop")
		if !domain.IsValidShopDomain(shop) {
			http.Error(w, "A valid shop parameter is required", http.StatusBadRequest)
			return
		}

		// Random state for CSRF protection, echoed back by Shopify on the callback
		stateBytes := make([]byte, 16)
		if _, err := rand.Read(stateBytes); err != nil {
			logger.Error().Err(err).Msg("Failed to generate state")
			http.Error(w, ErrMsgInternal, http.StatusInternalServerError)
			return
		}
		state := hex.EncodeToString(stateBytes)

		http.SetCookie(w, &http.Cookie{
			Name:     stateCookieName,
			Value:    state,
			Path:     "/auth",
			MaxAge:   stateCookieTTL,
			HttpOnly: true,
			Secure:   secureCookies,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, flow.AuthorizeURL(shop, state), http.StatusFound)
	}
}

// oauthCallbackHandler handles the OAuth callback
func oauthCallbackHandler(flow OAuthFlow, auth *application.AuthService, apiKey string, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query := r.URL.Query()
		shop := query.Get("shop")
		code := query.Get("code")
		state := query.Get("state")

		if shop == "" || code == "" || state == "" {
			http.Error(w, "Missing required parameters", http.StatusBadRequest)
			return
		}
		if !domain.IsValidShopDomain(shop) {
			http.Error(w, "Invalid shop domain", http.StatusBadRequest)
			return
		}

		valid, err := flow.VerifyCallback(r.URL)
		if err != nil || !valid {
			logger.Warn().Err(err).Str("shop", shop).Msg("OAuth callback HMAC verification failed")
			http.Error(w, "Invalid signature", http.StatusUnauthorized)
			return
		}

		cookie, err := r.Cookie(stateCookieName)
		if err != nil || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(state)) != 1 {
			logger.Warn().Str("shop", shop).Msg("OAuth state mismatch")
			http.Error(w, "Invalid session", http.StatusUnauthorized)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:   stateCookieName,
			Value:  "",
			Path:   "/auth",
			MaxAge: -1,
		})

		token, err := flow.ExchangeToken(ctx, shop, code)
		if err != nil {
			logger.Error().Err(err).Str("shop", shop).Msg("Failed to exchange token")
			http.Error(w, "Failed to complete installation", http.StatusInternalServerError)
			return
		}

		if _, err := auth.SaveOfflineSession(ctx, shop, token, flow.Scope()); err != nil {
			logger.Error().Err(err).Str("shop", shop).Msg("Failed to save session")
			http.Error(w, "Failed to complete installation", http.StatusInternalServerError)
			return
		}

		redirectURL := fmt.Sprintf("https://%s/admin/apps/%s", shop, url.PathEscape(apiKey))

		logger.Info().
			Str("shop", shop).
			Str("returnURL", redirectURL).
			Msg("Installation completed, redirecting to admin")

		http.Redirect(w, r, redirectURL, http.StatusFound)
	}
}
