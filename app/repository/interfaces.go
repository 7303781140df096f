package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/pixelcraft/studio/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByExternalID(externalID string) (*models.User, error)
	GetCredits(id uint) (int, error)
	UpdateLastLogin(id uint, at time.Time) error
}

// ProjectRepository defines the interface for project-related database operations
type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(id string) (*models.Project, error)
	// ListByUserID returns the user's projects, newest first.
	ListByUserID(userID uint) ([]models.Project, error)
	// DeleteForUser removes a project only if it belongs to the user.
	// It returns gorm.ErrRecordNotFound otherwise.
	DeleteForUser(id string, userID uint) error
	GetStatsByUserID(userID uint, now time.Time) (*models.ProjectStats, error)
}

// BillingEventRepository gives read access to recorded provider webhooks
type BillingEventRepository interface {
	// List returns events newest first.
	List(offset, limit int) ([]models.BillingWebhookEvent, error)
	Count() (int64, error)
	SumCreditsGranted() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Project      ProjectRepository
	BillingEvent BillingEventRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Project:      NewProjectRepository(db),
		BillingEvent: NewBillingEventRepository(db),
	}
}
