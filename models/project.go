package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a portfolio project with its attached media
type Project struct {
	ID          uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string         `json:"title" db:"title" gorm:"type:text;not null"`
	Description string         `json:"description" db:"description" gorm:"type:text;not null"`
	Tech        string         `json:"tech" db:"tech" gorm:"type:text;not null"`
	GithubLink  string         `json:"github_link" db:"github_link" gorm:"type:text;not null"`
	DemoLink    string         `json:"demo_link" db:"demo_link" gorm:"type:text;not null"`
	HasDemo     bool           `json:"has_demo" db:"has_demo" gorm:"not null;default:false"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	Media       []ProjectMedia `json:"media,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
