package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is an image editing project. The image itself lives on the
// ImageKit CDN; only its references are stored here.
type Project struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name       *string   `gorm:"type:varchar(200);default:null" json:"name" validate:"omitempty,max=200"`
	ImageURL   string    `gorm:"type:varchar(1024);not null" json:"imageUrl" validate:"required,url,max=1024"`
	ImageKitID string    `gorm:"column:imagekit_id;type:varchar(191);not null" json:"imageKitId" validate:"required,max=191"`
	FilePath   string    `gorm:"type:varchar(1024);not null" json:"filePath" validate:"required,max=1024"`
	UserID     uint      `gorm:"not null;index:idx_projects_user_created,priority:1" json:"userId"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_projects_user_created,priority:2" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Project) Validate() error {
	return validator.New().Struct(p)
}

// DisplayName falls back to a placeholder for unnamed projects.
func (p *Project) DisplayName() string {
	if p.Name == nil || *p.Name == "" {
		return "Untitled Project"
	}
	return *p.Name
}

// ProjectStats are the dashboard counters for a single user.
type ProjectStats struct {
	TotalProjects int64 `json:"totalProjects"`
	ThisMonth     int64 `json:"thisMonth"`
	ThisWeek      int64 `json:"thisWeek"`
}
