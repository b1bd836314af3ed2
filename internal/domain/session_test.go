package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidShopDomain(t *testing.T) {
	tests := []struct {
		shop string
		want bool
	}{
		{"demo-store.myshopify.com", true},
		{"store42.myshopify.com", true},
		{"myshopify.com", false},
		{".myshopify.com", false},
		{"-bad.myshopify.com", false},
		{"evil.com", false},
		{"demo.myshopify.com.evil.com", false},
		{"Demo.myshopify.com", false},
		{"demo_store.myshopify.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.shop, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidShopDomain(tt.shop))
		})
	}
}

func TestSessionContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetSessionFromContext(ctx))
	assert.Equal(t, "", GetShopFromContext(ctx))

	session := &Session{ID: OfflineSessionID("a.myshopify.com"), Shop: "a.myshopify.com"}
	ctx = WithSession(ctx, session)
	assert.Same(t, session, GetSessionFromContext(ctx))
	assert.Equal(t, "a.myshopify.com", GetShopFromContext(ctx))
	assert.Equal(t, "offline_a.myshopify.com", session.ID)
}

func TestBadgeIconValid(t *testing.T) {
	for _, icon := range BadgeIcons {
		assert.True(t, icon.Valid(), string(icon))
	}
	assert.False(t, BadgeIcon("Rocket").Valid())
	assert.False(t, BadgeIcon("").Valid())
}

func TestRemoteAPIErrorMessage(t *testing.T) {
	err := &RemoteAPIError{UserErrors: []UserError{
		{Field: []string{"metafields", "0", "value"}, Message: "Value is invalid"},
		{Message: "second"},
	}}
	assert.Equal(t, "Value is invalid", err.Error())
	assert.Equal(t, "remote api rejected the request", (&RemoteAPIError{}).Error())
}
