package db

import (
	"fmt"
	"time"

	"github.com/allanime/quizhub/internal/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultFeedbackLimit caps feedback listings when the caller does not ask
// for a specific page size.
const DefaultFeedbackLimit = 10

// InsertFeedback persists a feedback submission.
func InsertFeedback(db *gorm.DB, fb *models.Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.New().String()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now()
	}
	if fb.Name == "" {
		fb.Name = "Anonymous"
	}

	if err := db.Create(fb).Error; err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// ListFeedback returns up to limit feedback rows, newest first. A limit of
// zero or less falls back to DefaultFeedbackLimit.
func ListFeedback(db *gorm.DB, limit int) ([]models.Feedback, error) {
	if limit <= 0 {
		limit = DefaultFeedbackLimit
	}

	var rows []models.Feedback
	if err := db.Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return rows, nil
}
