package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-backend/models"
)

// newTestDB opens a fresh in-memory sqlite database with the full
// schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// The schema must apply cleanly on any gorm dialect: ids are assigned
// in Go by the repositories, never by a database-side default.
func TestMigrateCreatesSchemaOnFreshDatabase(t *testing.T) {
	db := newTestDB(t)

	for _, model := range []any{
		&models.User{},
		&models.Project{},
		&models.ProjectMedia{},
		&models.BlogPost{},
	} {
		if !db.Migrator().HasTable(model) {
			t.Errorf("expected table for %T", model)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	// a second run must be a no-op
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	var applied int64
	if err := db.Model(&schemaMigration{}).Count(&applied).Error; err != nil {
		t.Fatalf("count applied migrations: %v", err)
	}
	if applied != int64(len(migrations)) {
		t.Errorf("applied %d migrations, want %d", applied, len(migrations))
	}
}
