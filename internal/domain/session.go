package domain

import (
	"strings"
	"time"
)

// Session is a stored Admin API session for a shop.
// Offline sessions are keyed "offline_<shop>" and outlive any single user login.
type Session struct {
	ID          string    `json:"id"`
	Shop        string    `json:"shop"`
	AccessToken string    `json:"access_token"`
	Scope       string    `json:"scope"`
	IsOnline    bool      `json:"is_online"`
	CreatedAt   time.Time `json:"created_at"`
}

// OfflineSessionID returns the session id used for a shop's offline token
func OfflineSessionID(shop string) string {
	return "offline_" + shop
}

// IsValidShopDomain reports whether shop looks like "<name>.myshopify.com"
func IsValidShopDomain(shop string) bool {
	name, ok := strings.CutSuffix(shop, ".myshopify.com")
	if !ok || name == "" {
		return false
	}
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			return false
		}
	}
	return name[0] != '-'
}
