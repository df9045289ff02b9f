package dto

import (
	"time"

	"github.com/projecta-dev/projecta-api/internal/models"
)

// StudentCreateRequest registers a new learner.
type StudentCreateRequest struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
	Class string `json:"class"`
}

// StudentUpdateRequest patches a student profile.
type StudentUpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2"`
	Email *string `json:"email" validate:"omitempty,email"`
	Class *string `json:"class"`
}

// StudentListFilter describes search options for student listings.
type StudentListFilter struct {
	Search   string `query:"q"`
	Class    string `query:"class"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

// StudentResponse serializes one student.
type StudentResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Class     string    `json:"class"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStudentResponse converts a Student model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Class:     model.Class,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// NewStudentResponseSlice converts student models into DTOs.
func NewStudentResponseSlice(items []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewStudentResponse(item))
	}

	return responses
}
