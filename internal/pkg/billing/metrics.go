package billing

import "time"

// Metrics receives webhook processing measurements. A nil Metrics passed to
// NewReceiver is replaced by NoopMetrics.
type Metrics interface {
	// RecordWebhookEvent counts a delivery. status is one of "granted",
	// "duplicate", "ignored" or "error".
	RecordWebhookEvent(eventType, status string)

	RecordWebhookProcessingDuration(eventType string, duration time.Duration)

	// RecordCreditsGranted adds the granted amount under the product slug,
	// or "unknown" for unrecognized products.
	RecordCreditsGranted(product string, credits int)
}

// NoopMetrics is a no-op implementation of the Metrics interface.
type NoopMetrics struct{}

func (NoopMetrics) RecordWebhookEvent(_, _ string)                            {}
func (NoopMetrics) RecordWebhookProcessingDuration(_ string, _ time.Duration) {}
func (NoopMetrics) RecordCreditsGranted(_ string, _ int)                      {}

const (
	StatusGranted   = "granted"
	StatusDuplicate = "duplicate"
	StatusIgnored   = "ignored"
	StatusError     = "error"
)
