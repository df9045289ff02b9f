package dto

import (
	"time"

	"github.com/projecta-dev/projecta-api/internal/models"
)

// GroupCreateRequest creates a project group under a course.
type GroupCreateRequest struct {
	CourseID  uint   `json:"course_id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required,min=2"`
	MemberIDs []uint `json:"member_ids" validate:"omitempty,dive,gt=0"`
}

// GroupAssignRequest replaces the member set of a group.
type GroupAssignRequest struct {
	MemberIDs []uint `json:"member_ids" validate:"required,min=1,dive,gt=0"`
}

// GroupResponse serializes one project group.
type GroupResponse struct {
	ID        uint              `json:"id"`
	CourseID  uint              `json:"course_id"`
	Name      string            `json:"name"`
	Members   []StudentResponse `json:"members"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewGroupResponse converts a Group model into a DTO.
func NewGroupResponse(model models.Group) GroupResponse {
	return GroupResponse{
		ID:        model.ID,
		CourseID:  model.CourseID,
		Name:      model.Name,
		Members:   NewStudentResponseSlice(model.Members),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// NewGroupResponseSlice converts group models into DTOs.
func NewGroupResponseSlice(items []models.Group) []GroupResponse {
	responses := make([]GroupResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewGroupResponse(item))
	}

	return responses
}
