package domain

import "context"

type contextKey string

const sessionKey contextKey = "session"

// WithSession stores the authenticated admin session in the context
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSessionFromContext returns the authenticated admin session, or nil
func GetSessionFromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionKey).(*Session)
	return session
}

// GetShopFromContext returns the shop of the authenticated session, or ""
func GetShopFromContext(ctx context.Context) string {
	if session := GetSessionFromContext(ctx); session != nil {
		return session.Shop
	}
	return ""
}
