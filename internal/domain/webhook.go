package domain

// Webhook topics handled by the service
const (
	TopicAppUninstalled       = "app/uninstalled"
	TopicShopRedact           = "shop/redact"
	TopicCustomersDataRequest = "customers/data_request"
	TopicCustomersRedact      = "customers/redact"
)

// WebhookEvent is a verified webhook delivery
type WebhookEvent struct {
	Topic   string
	Shop    string
	Payload []byte
}
