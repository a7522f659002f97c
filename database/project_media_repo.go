package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectMediaRepo struct {
	db *gorm.DB
}

func NewProjectMediaRepo(db *gorm.DB) *ProjectMediaRepo {
	return &ProjectMediaRepo{db}
}

// FindByID returns a media row, or nil when no such row exists.
func (r *ProjectMediaRepo) FindByID(id uuid.UUID) (*models.ProjectMedia, error) {
	var media models.ProjectMedia
	err := r.db.First(&media, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// FindByProject returns all media rows owned by a project, oldest first
// so upload order is preserved.
func (r *ProjectMediaRepo) FindByProject(projectID uuid.UUID) ([]*models.ProjectMedia, error) {
	var media []*models.ProjectMedia
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&media).Error
	return media, err
}

// Add inserts a new media row into the database
func (r *ProjectMediaRepo) Add(media *models.ProjectMedia) error {
	if media.ID == uuid.Nil {
		media.ID = uuid.New()
	}
	return r.db.Create(media).Error
}

// Delete removes a media row by id
func (r *ProjectMediaRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ProjectMedia{}, "id = ?", id).Error
}

// DeleteCorrupt removes every row violating the media invariant (empty
// URL or empty remote identifier) and reports how many were removed.
// Corrupt rows have no usable remote identifier, so no remote calls are
// attempted for them.
func (r *ProjectMediaRepo) DeleteCorrupt() (int64, error) {
	res := r.db.Where("url = ? OR remote_id = ?", "", "").Delete(&models.ProjectMedia{})
	return res.RowsAffected, res.Error
}

// Count returns the number of media rows.
func (r *ProjectMediaRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.ProjectMedia{}).Count(&count).Error
	return count, err
}
