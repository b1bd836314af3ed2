package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"

	MetricNameShopifyRequestsTotal   = "shopify_graphql_requests_total"
	MetricNameShopifyRequestDuration = "shopify_graphql_request_duration_seconds"
	MetricNameShopifyClientsCached   = "shopify_clients_cached"

	MetricNameWebhooksReceived = "webhooks_received_total"
	MetricNameMetafieldWrites  = "metafield_writes_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextShopifyRequestsTotal   = "Total number of Admin API GraphQL operations by outcome"
	HelpTextShopifyRequestDuration = "Admin API GraphQL operation latency in seconds"
	HelpTextShopifyClientsCached   = "Number of per-shop Admin API clients held in the pool"

	HelpTextWebhooksReceived = "Total number of webhook deliveries by topic and outcome"
	HelpTextMetafieldWrites  = "Total number of metafield writes by key and outcome"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelOperation = "operation"
	LabelTopic     = "topic"
	LabelKey       = "key"
)

// Label values
const (
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusUserError = "user_error"
	StatusRejected  = "rejected"
)

// HTTPLatencyBuckets covers fast local reads up to slow deep-page cursor walks
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
