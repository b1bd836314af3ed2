package application

import (
	"context"
	"fmt"
	"time"

	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/ports"

	"github.com/rs/zerolog"
)

// AuthService resolves admin requests to stored shop sessions
type AuthService struct {
	sessions ports.SessionRepository
	verifier ports.SessionTokenVerifier
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	sessions ports.SessionRepository,
	verifier ports.SessionTokenVerifier,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		sessions: sessions,
		verifier: verifier,
		logger:   logger,
	}
}

// Authenticate verifies a session token and returns the shop's offline session.
// Every failure is reported as domain.ErrUnauthorized so callers can answer 401 uniformly.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	shop, err := s.verifier.Verify(token)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Rejected session token")
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	session, err := s.sessions.Load(ctx, domain.OfflineSessionID(shop))
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil || session.AccessToken == "" {
		s.logger.Warn().Str("shop", shop).Msg("No offline session stored for shop")
		return nil, domain.ErrUnauthorized
	}

	return session, nil
}

// SaveOfflineSession stores the access token obtained at install time
func (s *AuthService) SaveOfflineSession(ctx context.Context, shop string, accessToken string, scope string) (*domain.Session, error) {
	if !domain.IsValidShopDomain(shop) {
		return nil, domain.NewValidationError("Invalid shop domain.")
	}
	if accessToken == "" {
		return nil, domain.NewValidationError("Access token is required.")
	}

	session := &domain.Session{
		ID:          domain.OfflineSessionID(shop),
		Shop:        shop,
		AccessToken: accessToken,
		Scope:       scope,
		IsOnline:    false,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.sessions.Store(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info().Str("shop", shop).Str("scope", scope).Msg("Stored offline session")
	return session, nil
}

// RevokeShop forgets every session stored for the shop
func (s *AuthService) RevokeShop(ctx context.Context, shop string) error {
	if err := s.sessions.DeleteByShop(ctx, shop); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	s.logger.Info().Str("shop", shop).Msg("Revoked shop sessions")
	return nil
}
