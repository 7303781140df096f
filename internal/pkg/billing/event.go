package billing

import (
	"encoding/json"
	"fmt"
	"strings"
)

const EventTypeOrderPaid = "order.paid"

// Event is a decoded provider webhook. It is either OrderPaid or Unhandled.
type Event interface {
	Type() string
	isEvent()
}

// OrderPaid is the only event that changes balances.
type OrderPaid struct {
	OrderID string
	// ExternalCustomerID is empty when the order's customer was never
	// linked to a local user.
	ExternalCustomerID string
	ProductID          string
}

func (OrderPaid) Type() string { return EventTypeOrderPaid }
func (OrderPaid) isEvent()     {}

// Unhandled is any event type the ledger does not act on.
type Unhandled struct {
	EventType string
}

func (u Unhandled) Type() string { return u.EventType }
func (Unhandled) isEvent()       {}

type rawEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type rawCustomer struct {
	ExternalID      *string `json:"external_id"`
	ExternalIDCamel *string `json:"externalId"`
}

type rawOrder struct {
	ID             string       `json:"id"`
	ProductID      string       `json:"product_id"`
	ProductIDCamel string       `json:"productId"`
	Customer       *rawCustomer `json:"customer"`
}

// ParseEvent decodes a verified webhook body. Unknown types are returned as
// Unhandled without looking at their data.
func ParseEvent(body []byte) (Event, error) {
	var raw rawEvent
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	raw.Type = strings.TrimSpace(raw.Type)
	if raw.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrInvalidPayload)
	}
	if raw.Type != EventTypeOrderPaid {
		return Unhandled{EventType: raw.Type}, nil
	}

	var order rawOrder
	if len(raw.Data) == 0 || string(raw.Data) == "null" {
		return nil, fmt.Errorf("%w: order.paid without data", ErrInvalidPayload)
	}
	if err := json.Unmarshal(raw.Data, &order); err != nil {
		return nil, fmt.Errorf("%w: order data: %v", ErrInvalidPayload, err)
	}

	ev := OrderPaid{
		OrderID:   strings.TrimSpace(order.ID),
		ProductID: strings.TrimSpace(firstNonEmpty(order.ProductID, order.ProductIDCamel)),
	}
	if order.Customer != nil {
		ev.ExternalCustomerID = strings.TrimSpace(firstNonEmpty(deref(order.Customer.ExternalID), deref(order.Customer.ExternalIDCamel)))
	}
	return ev, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
