package models

import "time"

// Feedback stores one feedback submission. Rows are write-once and read
// back newest-first.
type Feedback struct {
	ID        string    `gorm:"primaryKey" json:"id"` // UUID
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
