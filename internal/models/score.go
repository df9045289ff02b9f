package models

import "time"

// Score ("nilai") is the final 0-100 result of one student on one assessment.
// The composite unique index is the only guard against duplicate submissions.
type Score struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    uint      `gorm:"not null;uniqueIndex:idx_scores_student_assessment" json:"student_id"`
	AssessmentID uint      `gorm:"not null;uniqueIndex:idx_scores_student_assessment" json:"assessment_id"`
	Value        float64   `gorm:"not null;default:0" json:"value"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
