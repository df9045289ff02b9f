package dto

import (
	"time"

	"github.com/projecta-dev/projecta-api/internal/models"
)

// AssessmentCreateRequest creates a quiz or task assessment. Questions are
// accepted only for quizzes.
type AssessmentCreateRequest struct {
	CourseID  uint                    `json:"course_id" validate:"required,gt=0"`
	Title     string                  `json:"title" validate:"required,min=3"`
	Kind      string                  `json:"kind" validate:"required,oneof=quiz task"`
	Deadline  *time.Time              `json:"deadline"`
	Questions []QuestionCreateRequest `json:"questions" validate:"omitempty,dive"`
}

// QuestionCreateRequest describes one quiz question with its options.
type QuestionCreateRequest struct {
	Prompt  string                `json:"prompt" validate:"required"`
	Weight  int                   `json:"weight" validate:"required,gt=0"`
	Kind    string                `json:"kind" validate:"required,oneof=multiple_choice free_text"`
	Options []OptionCreateRequest `json:"options" validate:"omitempty,dive"`
}

// OptionCreateRequest describes one selectable choice.
type OptionCreateRequest struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// AssessmentUpdateRequest patches assessment metadata.
type AssessmentUpdateRequest struct {
	Title    *string    `json:"title" validate:"omitempty,min=3"`
	Deadline *time.Time `json:"deadline"`
}

// AssessmentFilter describes query string filters for listing assessments.
type AssessmentFilter struct {
	CourseID *uint  `query:"course_id"`
	Kind     string `query:"kind" validate:"omitempty,oneof=quiz task"`
	Search   string `query:"q"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

// AssessmentResponse serializes one assessment.
type AssessmentResponse struct {
	ID         uint               `json:"id"`
	CourseID   uint               `json:"course_id"`
	CourseName string             `json:"course_name,omitempty"`
	Title      string             `json:"title"`
	Kind       string             `json:"kind"`
	Deadline   *time.Time         `json:"deadline"`
	Questions  []QuestionResponse `json:"questions,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// QuestionResponse serializes one question with its options.
type QuestionResponse struct {
	ID      uint             `json:"id"`
	Prompt  string           `json:"prompt"`
	Weight  int              `json:"weight"`
	Kind    string           `json:"kind"`
	Options []OptionResponse `json:"options,omitempty"`
}

// OptionResponse serializes one option. The correct flag is only present on
// teacher-facing payloads.
type OptionResponse struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect *bool  `json:"is_correct,omitempty"`
}

// NewAssessmentResponse converts an Assessment model into a DTO. When
// revealCorrect is false the option correctness flags are withheld.
func NewAssessmentResponse(model models.Assessment, revealCorrect bool) AssessmentResponse {
	response := AssessmentResponse{
		ID:         model.ID,
		CourseID:   model.CourseID,
		CourseName: model.Course.Name,
		Title:      model.Title,
		Kind:       model.Kind,
		Deadline:   model.Deadline,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}

	if len(model.Questions) > 0 {
		questions := make([]QuestionResponse, 0, len(model.Questions))
		for _, q := range model.Questions {
			question := QuestionResponse{
				ID:     q.ID,
				Prompt: q.Prompt,
				Weight: q.Weight,
				Kind:   q.Kind,
			}
			for _, opt := range q.Options {
				option := OptionResponse{ID: opt.ID, Text: opt.Text}
				if revealCorrect {
					correct := opt.IsCorrect
					option.IsCorrect = &correct
				}
				question.Options = append(question.Options, option)
			}
			questions = append(questions, question)
		}
		response.Questions = questions
	}

	return response
}

// NewAssessmentResponseSlice converts assessment models into DTOs.
func NewAssessmentResponseSlice(items []models.Assessment) []AssessmentResponse {
	responses := make([]AssessmentResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewAssessmentResponse(item, false))
	}

	return responses
}
