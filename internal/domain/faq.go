package domain

// FAQ is one question/answer pair stored inside a product's FAQ metafield
type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQIntent selects the mutation applied to a product's FAQ list
type FAQIntent string

const (
	FAQIntentAdd    FAQIntent = "add"
	FAQIntentEdit   FAQIntent = "edit"
	FAQIntentDelete FAQIntent = "delete"
)
