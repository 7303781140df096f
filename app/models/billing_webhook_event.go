package models

import "time"

// Billing provider constants used across billing-related models.
const (
	BillingProviderPolar = "polar"
)

// BillingWebhookEvent records a verified provider webhook delivery. The
// unique (provider, provider_event_id) pair is what makes credit grants
// idempotent under redelivery.
type BillingWebhookEvent struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Provider           string     `gorm:"type:varchar(20);not null;index:ux_billing_webhook_events_provider_event,unique,priority:1" json:"provider"`
	ProviderEventID    string     `gorm:"type:varchar(191);not null;index:ux_billing_webhook_events_provider_event,unique,priority:2" json:"provider_event_id"`
	EventType          string     `gorm:"type:varchar(100);not null;index" json:"event_type"`
	ExternalCustomerID string     `gorm:"type:varchar(64);not null;default:'';index" json:"external_customer_id"`
	ProductID          string     `gorm:"type:varchar(191);not null;default:''" json:"product_id"`
	CreditsGranted     int        `gorm:"not null;default:0" json:"credits_granted"`
	PayloadJSON        string     `gorm:"type:longtext;not null" json:"payload_json"`
	ProcessedAt        *time.Time `gorm:"type:timestamp;default:null" json:"processed_at,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}
