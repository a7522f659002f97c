package models

import (
	"time"

	"github.com/google/uuid"
)

// Media kinds as reported by the attachment service.
const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
	MediaKindRaw   = "raw"
)

// ProjectMedia is an uploaded asset owned by a single project. URL is the
// publicly accessible location; RemoteID is the attachment-service
// identifier needed to delete the asset later. A row missing either is
// corrupt and eligible for bulk cleanup.
type ProjectMedia struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index"`
	URL       string    `json:"url" db:"url" gorm:"type:text;not null"`
	RemoteID  string    `json:"remote_id" db:"remote_id" gorm:"type:text;not null"`
	Kind      string    `json:"kind" db:"kind" gorm:"type:text;not null;default:image"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// Corrupt reports whether the row violates the media invariant.
func (m ProjectMedia) Corrupt() bool {
	return m.URL == "" || m.RemoteID == ""
}
