package repository

import (
	"gorm.io/gorm"

	"github.com/pixelcraft/studio/app/models"
)

type billingEventRepository struct {
	db *gorm.DB
}

func NewBillingEventRepository(db *gorm.DB) BillingEventRepository {
	return &billingEventRepository{db: db}
}

func (r *billingEventRepository) List(offset, limit int) ([]models.BillingWebhookEvent, error) {
	var events []models.BillingWebhookEvent
	err := r.db.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&events).Error
	return events, err
}

func (r *billingEventRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.BillingWebhookEvent{}).Count(&count).Error
	return count, err
}

func (r *billingEventRepository) SumCreditsGranted() (int64, error) {
	var total int64
	err := r.db.Model(&models.BillingWebhookEvent{}).Select("COALESCE(SUM(credits_granted), 0)").Scan(&total).Error
	return total, err
}
