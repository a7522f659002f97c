package models

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost represents a complete blog post with metadata. Slug is derived
// once from the title at creation time and never recomputed, so a post's
// URL stays stable after the title is edited.
type BlogPost struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title     string    `json:"title" db:"title" gorm:"type:text;not null"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	Slug      string    `json:"slug" db:"slug" gorm:"type:text;not null;unique"`
	ImageURL  string    `json:"image_url" db:"image_url" gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
