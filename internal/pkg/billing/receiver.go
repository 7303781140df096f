package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pixelcraft/studio/app/models"
)

// ReceiverConfig carries everything the webhook path needs to know about the
// provider account. It is passed explicitly at construction.
type ReceiverConfig struct {
	WebhookSecret string
	Products      *ProductTable
	// StrictProducts rejects paid orders for products missing from the
	// table instead of granting zero credits.
	StrictProducts bool
	// Tolerance is the accepted clock drift of the delivery timestamp.
	// Zero means DefaultSignatureTolerance.
	Tolerance time.Duration
}

// Delivery is one inbound webhook request as received on the wire.
type Delivery struct {
	ID        string
	Timestamp string
	Signature string
	Body      []byte
}

// Result describes what a delivery changed.
type Result struct {
	EventID            string `json:"eventId"`
	EventType          string `json:"eventType"`
	Duplicate          bool   `json:"duplicate,omitempty"`
	Ignored            bool   `json:"ignored,omitempty"`
	ExternalCustomerID string `json:"externalCustomerId,omitempty"`
	ProductID          string `json:"productId,omitempty"`
	Credits            int    `json:"credits"`
	Balance            int    `json:"balance"`
}

// Receiver verifies, classifies and applies provider webhooks.
type Receiver struct {
	cfg     ReceiverConfig
	repo    Repository
	metrics Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

func NewReceiver(cfg ReceiverConfig, repo Repository, metrics Metrics, logger zerolog.Logger) *Receiver {
	if cfg.Products == nil {
		cfg.Products = DefaultProducts()
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultSignatureTolerance
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &Receiver{
		cfg:     cfg,
		repo:    repo,
		metrics: metrics,
		logger:  logger.With().Str("component", "billing").Logger(),
		now:     time.Now,
	}
}

// Handle processes a single delivery. The signature is checked before the
// body is parsed; a failed check returns ErrSignatureInvalid with no side
// effects. Irrelevant event types succeed without touching storage.
func (r *Receiver) Handle(ctx context.Context, d Delivery) (*Result, error) {
	started := r.now()
	eventType := "unknown"
	defer func() {
		r.metrics.RecordWebhookProcessingDuration(eventType, r.now().Sub(started))
	}()

	if err := VerifyWebhookSignature(d.Body, d.ID, d.Timestamp, d.Signature, r.cfg.WebhookSecret, r.cfg.Tolerance, r.now()); err != nil {
		r.metrics.RecordWebhookEvent(eventType, StatusError)
		r.logger.Warn().Err(err).Str("event_id", d.ID).Msg("rejected webhook delivery")
		return nil, err
	}

	ev, err := ParseEvent(d.Body)
	if err != nil {
		r.metrics.RecordWebhookEvent(eventType, StatusError)
		r.logger.Warn().Err(err).Str("event_id", d.ID).Msg("unparsable webhook payload")
		return nil, err
	}
	eventType = ev.Type()

	// the signature covers the id, so it is non-empty here
	eventID := strings.TrimSpace(d.ID)
	res := &Result{EventID: eventID, EventType: eventType}

	switch e := ev.(type) {
	case OrderPaid:
		err = r.handleOrderPaid(ctx, e, d.Body, res)
	default:
		res.Ignored = true
		r.logger.Debug().Str("event_id", eventID).Str("event_type", eventType).Msg("ignoring webhook event")
	}

	switch {
	case err != nil:
		r.metrics.RecordWebhookEvent(eventType, StatusError)
		return nil, err
	case res.Ignored:
		r.metrics.RecordWebhookEvent(eventType, StatusIgnored)
	case res.Duplicate:
		r.metrics.RecordWebhookEvent(eventType, StatusDuplicate)
	default:
		r.metrics.RecordWebhookEvent(eventType, StatusGranted)
	}
	return res, nil
}

func (r *Receiver) handleOrderPaid(ctx context.Context, e OrderPaid, body []byte, res *Result) error {
	log := r.logger.With().
		Str("event_id", res.EventID).
		Str("order_id", e.OrderID).
		Str("external_id", e.ExternalCustomerID).
		Str("product_id", e.ProductID).
		Logger()

	res.ExternalCustomerID = e.ExternalCustomerID
	res.ProductID = e.ProductID

	if e.ExternalCustomerID == "" {
		log.Error().Msg("paid order without external customer id")
		return ErrMissingCustomerReference
	}

	credits, known := r.cfg.Products.CreditsFor(e.ProductID)
	productLabel := "unknown"
	if known {
		if p, ok := r.cfg.Products.Lookup(e.ProductID); ok {
			productLabel = p.Slug
		}
	} else {
		if r.cfg.StrictProducts {
			log.Error().Msg("paid order for unrecognized product")
			return ErrUnrecognizedProduct
		}
		log.Warn().Msg("paid order for unrecognized product, granting 0 credits")
	}
	res.Credits = credits

	err := r.repo.Transaction(ctx, func(tx Repository) error {
		now := r.now()
		created, err := tx.CreateWebhookEventIfNotExists(ctx, &models.BillingWebhookEvent{
			Provider:           models.BillingProviderPolar,
			ProviderEventID:    res.EventID,
			EventType:          res.EventType,
			ExternalCustomerID: e.ExternalCustomerID,
			ProductID:          e.ProductID,
			CreditsGranted:     credits,
			PayloadJSON:        string(body),
			ProcessedAt:        &now,
		})
		if err != nil {
			return err
		}
		if !created {
			res.Duplicate = true
			return nil
		}

		balance, err := NewCreditLedger(tx).Grant(ctx, e.ExternalCustomerID, credits)
		if err != nil {
			return err
		}
		res.Balance = balance
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Error().Msg("no user for paid order")
		} else {
			log.Error().Err(err).Msg("failed to apply credit grant")
		}
		return err
	}

	if res.Duplicate {
		res.Credits = 0
		log.Info().Msg("duplicate webhook delivery, nothing granted")
		return nil
	}

	r.metrics.RecordCreditsGranted(productLabel, credits)
	log.Info().Int("credits", credits).Int("balance", res.Balance).Msg("credits granted")
	return nil
}
