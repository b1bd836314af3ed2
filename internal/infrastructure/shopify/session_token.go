package shopify

import (
	"fmt"
	"net/url"
	"time"

	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/ports"

	"github.com/golang-jwt/jwt/v5"
)

// sessionTokenLeeway absorbs clock skew between the admin and this service
const sessionTokenLeeway = 5 * time.Second

// sessionTokenClaims are the claims App Bridge puts into a session token
type sessionTokenClaims struct {
	Dest string `json:"dest"`
	Sid  string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// SessionTokenVerifier validates App Bridge session tokens signed with the app secret
type SessionTokenVerifier struct {
	apiKey    string
	apiSecret []byte
	now       func() time.Time
}

// NewSessionTokenVerifier creates a verifier for the app's credentials
func NewSessionTokenVerifier(apiKey string, apiSecret string) ports.SessionTokenVerifier {
	return &SessionTokenVerifier{
		apiKey:    apiKey,
		apiSecret: []byte(apiSecret),
		now:       time.Now,
	}
}

// Verify checks signature, audience and validity window and returns the shop in dest
func (v *SessionTokenVerifier) Verify(token string) (string, error) {
	claims := &sessionTokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) {
			return v.apiSecret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(v.apiKey),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(sessionTokenLeeway),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}

	dest, err := url.Parse(claims.Dest)
	if err != nil {
		return "", fmt.Errorf("invalid session token destination: %w", err)
	}
	shop := dest.Hostname()
	if !domain.IsValidShopDomain(shop) {
		return "", fmt.Errorf("session token destination %q is not a shop", claims.Dest)
	}

	return shop, nil
}
