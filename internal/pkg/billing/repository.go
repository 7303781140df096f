package billing

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pixelcraft/studio/app/models"
)

// Repository provides the storage operations used by the webhook path.
type Repository interface {
	// Transaction runs fn against a repository bound to a single database
	// transaction. Returning an error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// CreateWebhookEventIfNotExists inserts the event unless one with the
	// same provider and provider event id exists. It reports whether a row
	// was created.
	CreateWebhookEventIfNotExists(ctx context.Context, event *models.BillingWebhookEvent) (bool, error)

	// IncrementUserCredits atomically adds delta to the balance of the user
	// with the given external id and returns the resulting balance.
	// ErrUserNotFound is returned when no user matches.
	IncrementUserCredits(ctx context.Context, externalID string, delta int) (int, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

// webhookEventConflict skips the insert on a known (provider, event id).
// On MySQL this renders ON DUPLICATE KEY UPDATE id=id, which reports zero
// affected rows for a conflict as long as the connection does not set
// clientFoundRows.
func webhookEventConflict() clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}
}

func (r *gormRepository) CreateWebhookEventIfNotExists(ctx context.Context, event *models.BillingWebhookEvent) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(webhookEventConflict()).Create(event)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) IncrementUserCredits(ctx context.Context, externalID string, delta int) (int, error) {
	db := r.db.WithContext(ctx)

	// MySQL reports changed rows, so a zero delta affects nothing even for
	// an existing user. Existence is decided by the read below.
	res := db.Model(&models.User{}).
		Where("external_id = ?", externalID).
		UpdateColumn("credits", gorm.Expr("credits + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}

	var user models.User
	err := db.Select("id", "credits").Where("external_id = ?", externalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}
	return user.Credits, nil
}
