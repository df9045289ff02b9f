package models

import "time"

// Assessment is a quiz or a project task belonging to a course.
type Assessment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CourseID  uint       `gorm:"not null;index" json:"course_id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Kind      string     `gorm:"size:16;not null" json:"kind"`
	Deadline  *time.Time `json:"deadline"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Questions []Question `json:"questions,omitempty"`
	Course    Course     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"course"`
}

const (
	// AssessmentKindQuiz marks an auto-graded quiz assessment.
	AssessmentKindQuiz = "quiz"
	// AssessmentKindTask marks a project task graded manually by a teacher.
	AssessmentKindTask = "task"
)

// IsQuiz reports whether the assessment accepts quiz submissions.
func (a Assessment) IsQuiz() bool {
	return a.Kind == AssessmentKindQuiz
}

// IsPastDeadline returns true when the deadline has already passed.
func (a Assessment) IsPastDeadline(reference time.Time) bool {
	return a.Deadline != nil && reference.After(*a.Deadline)
}

// TotalWeight sums the weight of every question in the assessment.
func (a Assessment) TotalWeight() int {
	total := 0
	for _, q := range a.Questions {
		total += q.Weight
	}
	return total
}

// Question belongs to one quiz assessment.
type Question struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	AssessmentID uint             `gorm:"not null;index" json:"assessment_id"`
	Prompt       string           `gorm:"type:text;not null" json:"prompt"`
	Weight       int              `gorm:"not null" json:"weight"`
	Kind         string           `gorm:"size:24;not null" json:"kind"`
	Options      []QuestionOption `json:"options,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

const (
	// QuestionKindMultipleChoice is graded automatically against the correct option.
	QuestionKindMultipleChoice = "multiple_choice"
	// QuestionKindFreeText is deferred to a human grader.
	QuestionKindFreeText = "free_text"
)

// CorrectOption returns the option flagged as correct, or nil for free-text questions.
func (q Question) CorrectOption() *QuestionOption {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// QuestionOption is one selectable choice of a multiple-choice question.
type QuestionOption struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
}
