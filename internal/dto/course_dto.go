package dto

import (
	"time"

	"github.com/projecta-dev/projecta-api/internal/models"
)

// CourseCreateRequest creates a course.
type CourseCreateRequest struct {
	Name        string `json:"name" validate:"required,min=3"`
	Description string `json:"description"`
	TeacherName string `json:"teacher_name"`
}

// CourseUpdateRequest patches course metadata.
type CourseUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=3"`
	Description *string `json:"description"`
	TeacherName *string `json:"teacher_name"`
}

// CourseFilter describes search options for course listings.
type CourseFilter struct {
	Search   string `query:"q"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

// CourseResponse serializes one course.
type CourseResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	TeacherName string               `json:"teacher_name"`
	Assessments []AssessmentResponse `json:"assessments,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// NewCourseResponse converts a Course model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	response := CourseResponse{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		TeacherName: model.TeacherName,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}

	if len(model.Assessments) > 0 {
		response.Assessments = NewAssessmentResponseSlice(model.Assessments)
	}

	return response
}

// NewCourseResponseSlice converts course models into DTOs.
func NewCourseResponseSlice(items []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewCourseResponse(item))
	}

	return responses
}
