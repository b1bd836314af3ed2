package domain

import "time"

// BadgeIcon identifies one of the icons the admin UI can render next to a badge
type BadgeIcon string

const (
	BadgeIconStarFilled BadgeIcon = "StarFilled"
	BadgeIconFire       BadgeIcon = "Fire"
	BadgeIconCirclePlus BadgeIcon = "CirclePlus"
	BadgeIconGlobe      BadgeIcon = "Globe"
)

// BadgeIcons lists every icon value accepted on create and update
var BadgeIcons = []BadgeIcon{
	BadgeIconStarFilled,
	BadgeIconFire,
	BadgeIconCirclePlus,
	BadgeIconGlobe,
}

// Valid reports whether the icon is one of the known values
func (i BadgeIcon) Valid() bool {
	for _, known := range BadgeIcons {
		if i == known {
			return true
		}
	}
	return false
}

// Badge is a merchant-defined label that can be assigned to products.
// The assignment itself lives in the product's badge metafield, not here.
type Badge struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      BadgeIcon `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
}
