package billing

import "errors"

var (
	// ErrSignatureInvalid is returned when a delivery fails webhook signature
	// verification. Nothing is parsed or written in that case.
	ErrSignatureInvalid = errors.New("invalid webhook signature")

	// ErrInvalidPayload is returned when a verified body cannot be decoded.
	ErrInvalidPayload = errors.New("invalid webhook payload")

	// ErrMissingCustomerReference is returned when a paid order carries no
	// external customer id.
	ErrMissingCustomerReference = errors.New("order has no external customer reference")

	// ErrUserNotFound is returned when no user owns the external customer id.
	ErrUserNotFound = errors.New("no user for external customer id")

	// ErrUnrecognizedProduct is returned in strict mode for product ids
	// missing from the product table.
	ErrUnrecognizedProduct = errors.New("unrecognized product")

	// ErrNegativeGrant guards the ledger against subtracting credits.
	ErrNegativeGrant = errors.New("credit grant must not be negative")
)
