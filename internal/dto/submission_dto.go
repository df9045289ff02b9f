package dto

import (
	"time"

	"github.com/projecta-dev/projecta-api/internal/models"
)

// SubmissionCreateRequest describes the multipart payload for handing in a
// project deliverable.
type SubmissionCreateRequest struct {
	AssessmentID uint   `form:"assessment_id" validate:"required,gt=0"`
	StudentID    uint   `form:"student_id" validate:"required,gt=0"`
	GroupID      *uint  `form:"group_id"`
	Notes        string `form:"catatan"`
}

// SubmissionUpdateRequest is used by teachers to grade or validate a
// submission. Field names follow the public contract.
type SubmissionUpdateRequest struct {
	Nilai       *float64 `json:"nilai"`
	Catatan     *string  `json:"catatan"`
	Feedback    *string  `json:"feedback"`
	Status      *string  `json:"status" validate:"omitempty,oneof=UNGRADED VALIDATED"`
	ValidatedBy *uint    `json:"validatedBy"`
}

// SubmissionFilter describes query string filters for listing submissions.
type SubmissionFilter struct {
	AssessmentID *uint   `query:"assessment_id"`
	StudentID    *uint   `query:"student_id"`
	GroupID      *uint   `query:"group_id"`
	Status       *string `query:"status" validate:"omitempty,oneof=UNGRADED VALIDATED"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID           uint           `json:"id"`
	AssessmentID uint           `json:"assessment_id"`
	StudentID    uint           `json:"student_id"`
	GroupID      *uint          `json:"group_id"`
	FileURL      string         `json:"file_url"`
	Notes        string         `json:"catatan"`
	Feedback     string         `json:"feedback"`
	Score        *float64       `json:"nilai"`
	Status       string         `json:"status"`
	ValidatedBy  *uint          `json:"validated_by"`
	ValidatedAt  *time.Time     `json:"validated_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Assessment   AssessmentLite `json:"assessment"`
	Student      StudentLite    `json:"student"`
}

// SubmissionEnvelope is the wire shape of a submission update response.
type SubmissionEnvelope struct {
	Pengumpulan SubmissionResponse `json:"pengumpulan"`
}

// AssessmentLite summarizes an assessment in submission responses.
type AssessmentLite struct {
	ID         uint       `json:"id"`
	Title      string     `json:"title"`
	Kind       string     `json:"kind"`
	Deadline   *time.Time `json:"deadline"`
	CourseName string     `json:"course_name"`
}

// StudentLite summarizes a student without exposing full profile data.
type StudentLite struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:           model.ID,
		AssessmentID: model.AssessmentID,
		StudentID:    model.StudentID,
		GroupID:      model.GroupID,
		FileURL:      model.FileURL,
		Notes:        model.Notes,
		Feedback:     model.Feedback,
		Score:        model.Score,
		Status:       model.Status,
		ValidatedBy:  model.ValidatedBy,
		ValidatedAt:  model.ValidatedAt,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}

	if model.Assessment.ID != 0 {
		response.Assessment = AssessmentLite{
			ID:         model.Assessment.ID,
			Title:      model.Assessment.Title,
			Kind:       model.Assessment.Kind,
			Deadline:   model.Assessment.Deadline,
			CourseName: model.Assessment.Course.Name,
		}
	}

	if model.Student.ID != 0 {
		response.Student = StudentLite{
			ID:    model.Student.ID,
			Name:  model.Student.Name,
			Email: model.Student.Email,
		}
	}

	return response
}

// NewSubmissionResponseSlice converts submission models into DTOs.
func NewSubmissionResponseSlice(models []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(models))
	for _, submission := range models {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
