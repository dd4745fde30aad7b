package models

import "time"

// Score stores one quiz result published for sharing.
// Token is the public lookup key; the row has no foreign key to any
// user table — UserName is a free-text snapshot taken at submission time.
type Score struct {
	ID         string `gorm:"primaryKey"` // UUID
	Token      string `gorm:"uniqueIndex;size:16"`
	Genre      string
	Difficulty string
	Score      int
	Total      int
	UserID     string
	UserName   string
	CreatedAt  time.Time
}
