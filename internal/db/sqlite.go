package db

import (
	"github.com/allanime/quizhub/internal/db/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the SQLite database and runs migrations.
func InitDB(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the scores and feedback tables. It is safe to
// run repeatedly; the setup endpoint re-invokes it on demand.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Score{}, &models.Feedback{})
}
