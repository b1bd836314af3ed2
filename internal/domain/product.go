package domain

// BadgeNone is the label written to a product that has no badge assigned
const BadgeNone = "N/A"

// Metafield coordinates used by the apps
const (
	MetafieldNamespace = "custom"
	MetafieldKeyBadge  = "badge"
	MetafieldKeyFAQ    = "faq"

	MetafieldTypeSingleLineText = "single_line_text_field"
	MetafieldTypeJSON           = "json"
)

// Product is the row shown in the product badge list
type Product struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Inventory int    `json:"inventory"`
	Badge     string `json:"badge"`
}

// ProductOption is the minimal product shape used by pickers
type ProductOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// PageInfo mirrors the connection page info returned by the Admin API
type PageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor,omitempty"`
	EndCursor       string `json:"endCursor,omitempty"`
}

// ProductPage is one slice of the product catalog
type ProductPage struct {
	Products []Product
	PageInfo PageInfo
}

// CursorPage is a run of edge cursors used to locate a later page
type CursorPage struct {
	Cursors     []string
	HasNextPage bool
	EndCursor   string
}

// MetafieldInput describes a single metafieldsSet entry
type MetafieldInput struct {
	OwnerID   string
	Namespace string
	Key       string
	Type      string
	Value     string
}
