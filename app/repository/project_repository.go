package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/pixelcraft/studio/app/models"
)

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepository) GetByID(id string) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) ListByUserID(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) DeleteForUser(id string, userID uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetStatsByUserID counts all projects plus those created in the current
// calendar month and in the last seven days relative to now.
func (r *projectRepository) GetStatsByUserID(userID uint, now time.Time) (*models.ProjectStats, error) {
	stats := &models.ProjectStats{}
	base := func() *gorm.DB {
		return r.db.Model(&models.Project{}).Where("user_id = ?", userID)
	}

	if err := base().Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := base().Where("created_at >= ?", monthStart).Count(&stats.ThisMonth).Error; err != nil {
		return nil, err
	}

	weekStart := now.AddDate(0, 0, -7)
	if err := base().Where("created_at >= ?", weekStart).Count(&stats.ThisWeek).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
