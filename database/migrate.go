package database

import (
	"fmt"
	"time"

	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

// schemaMigration records an applied migration version.
type schemaMigration struct {
	Version   int    `gorm:"primaryKey"`
	Name      string `gorm:"type:text;not null"`
	AppliedAt time.Time
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

type migration struct {
	Version int
	Name    string
	Run     func(tx *gorm.DB) error
}

// The ordered schema history. Later columns that older deployments
// bolted on with startup ALTER TABLE statements are proper versioned
// steps here.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create users, projects and blog posts",
		Run: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.User{}, &models.Project{}, &models.BlogPost{})
		},
	},
	{
		Version: 2,
		Name:    "create project media",
		Run: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.ProjectMedia{})
		},
	},
	{
		Version: 3,
		Name:    "add has_demo to projects",
		Run: func(tx *gorm.DB) error {
			if tx.Migrator().HasColumn(&models.Project{}, "HasDemo") {
				return nil
			}
			return tx.Migrator().AddColumn(&models.Project{}, "HasDemo")
		},
	},
	{
		Version: 4,
		Name:    "add image_url to blog posts",
		Run: func(tx *gorm.DB) error {
			if tx.Migrator().HasColumn(&models.BlogPost{}, "ImageURL") {
				return nil
			}
			return tx.Migrator().AddColumn(&models.BlogPost{}, "ImageURL")
		},
	},
}

// Migrate applies all pending migrations in order, recording each in
// schema_migrations. It is run explicitly before the server starts
// accepting traffic and is safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var applied int64
		if err := db.Model(&schemaMigration{}).Where("version = ?", m.Version).Count(&applied).Error; err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if applied > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Run(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{
				Version:   m.Version,
				Name:      m.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}
