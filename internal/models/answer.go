package models

import "time"

// Answer records one student's response to one quiz question.
// IsCorrect stays nil for free-text responses until a teacher grades them.
type Answer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    uint      `gorm:"not null;index" json:"student_id"`
	AssessmentID uint      `gorm:"not null;index" json:"assessment_id"`
	QuestionID   uint      `gorm:"not null;index" json:"question_id"`
	OptionID     *uint     `json:"option_id"`
	Text         string    `gorm:"type:text" json:"text"`
	IsCorrect    *bool     `json:"is_correct"`
	Points       int       `gorm:"not null;default:0" json:"points"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
