package models

import "time"

// Submission ("pengumpulan") is a project deliverable handed in for a
// task-kind assessment and graded manually by a teacher.
type Submission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssessmentID uint       `gorm:"not null;index" json:"assessment_id"`
	StudentID    uint       `gorm:"not null;index" json:"student_id"`
	GroupID      *uint      `json:"group_id"`
	FileURL      string     `gorm:"size:512" json:"file_url"`
	Notes        string     `gorm:"type:text" json:"notes"`
	Feedback     string     `gorm:"type:text" json:"feedback"`
	Score        *float64   `json:"score"`
	Status       string     `gorm:"size:32;not null" json:"status"`
	ValidatedBy  *uint      `json:"validated_by"`
	ValidatedAt  *time.Time `json:"validated_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Assessment   Assessment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assessment"`
	Student      Student    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

const (
	// SubmissionStatusUngraded indicates the deliverable awaits teacher review.
	SubmissionStatusUngraded = "UNGRADED"
	// SubmissionStatusValidated indicates a teacher accepted the deliverable.
	SubmissionStatusValidated = "VALIDATED"
)

// IsValidated reports whether a teacher has accepted the submission.
func (s Submission) IsValidated() bool {
	return s.Status == SubmissionStatusValidated
}
