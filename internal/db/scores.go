package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/allanime/quizhub/internal/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sentinel errors for store operations. Handlers map these to HTTP statuses
// with errors.Is.
var (
	// ErrNotFound indicates no row matched the lookup key.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateToken indicates an insert hit the unique constraint on the
	// share token column.
	ErrDuplicateToken = errors.New("duplicate share token")
)

// InsertScore persists a new score row. The caller supplies the share token;
// a collision with an existing token surfaces as ErrDuplicateToken so the
// caller can retry with a fresh one.
func InsertScore(db *gorm.DB, score *models.Score) error {
	if score.ID == "" {
		score.ID = uuid.New().String()
	}
	if score.CreatedAt.IsZero() {
		score.CreatedAt = time.Now()
	}

	if err := db.Create(score).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert score token %q: %w", score.Token, ErrDuplicateToken)
		}
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

// GetScoreByToken looks up a score row by its public share token.
// A missing row returns ErrNotFound.
func GetScoreByToken(db *gorm.DB, token string) (*models.Score, error) {
	var score models.Score
	if err := db.Where("token = ?", token).First(&score).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("score token %q: %w", token, ErrNotFound)
		}
		return nil, fmt.Errorf("lookup score: %w", err)
	}
	return &score, nil
}

// isUniqueViolation reports whether err came from SQLite's unique index
// enforcement.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
