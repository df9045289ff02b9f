package models

import "time"

// Showcase is the public record derived from a validated submission.
// At most one exists per submission.
type Showcase struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID uint      `gorm:"not null;uniqueIndex" json:"submission_id"`
	Title        string    `gorm:"size:512;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Score        float64   `gorm:"not null;default:0" json:"score"`
	Public       bool      `gorm:"not null;default:true" json:"public"`
	ValidatedAt  time.Time `gorm:"not null" json:"validated_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
