package statistics

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/pixelcraft/studio/app/models"
	"github.com/pixelcraft/studio/internal/pkg/cache"
)

const (
	CacheKeySite    = "statistics:site"
	CacheExpiration = 5 * time.Minute
)

// SiteStatistics are the site wide numbers shown to admins.
type SiteStatistics struct {
	TotalUsers     int64     `json:"totalUsers"`
	TotalProjects  int64     `json:"totalProjects"`
	TodayProjects  int64     `json:"todayProjects"`
	PaidOrders     int64     `json:"paidOrders"`
	CreditsGranted int64     `json:"creditsGranted"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// Service reads statistics through the cache. A nil store or a failing
// cache falls back to the database.
type Service struct {
	db    *gorm.DB
	store cache.Store
	now   func() time.Time
}

func NewService(db *gorm.DB, store cache.Store) *Service {
	return &Service{db: db, store: store, now: time.Now}
}

// Get returns cached statistics, computing and caching them on a miss.
func (s *Service) Get(ctx context.Context) (*SiteStatistics, error) {
	if s.store != nil {
		raw, err := s.store.Get(ctx, CacheKeySite)
		if err == nil {
			var stats SiteStatistics
			if err := json.Unmarshal([]byte(raw), &stats); err == nil {
				return &stats, nil
			}
			log.Warn("[Statistics] discarding unreadable cache entry")
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Warnf("[Statistics] cache read failed: %v", err)
		}
	}

	stats, err := s.Compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		raw, _ := json.Marshal(stats)
		if err := s.store.Set(ctx, CacheKeySite, string(raw), CacheExpiration); err != nil {
			log.Warnf("[Statistics] cache write failed: %v", err)
		}
	}
	return stats, nil
}

// Compute counts straight from the database.
func (s *Service) Compute(ctx context.Context) (*SiteStatistics, error) {
	db := s.db.WithContext(ctx)
	now := s.now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	stats := &SiteStatistics{GeneratedAt: now}
	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).Where("created_at >= ?", todayStart).Count(&stats.TodayProjects).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.BillingWebhookEvent{}).Where("credits_granted > 0").Count(&stats.PaidOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.BillingWebhookEvent{}).Select("COALESCE(SUM(credits_granted), 0)").Scan(&stats.CreditsGranted).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
