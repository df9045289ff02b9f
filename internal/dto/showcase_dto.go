package dto

import (
	"time"

	"github.com/projecta-dev/projecta-api/internal/models"
)

// ShowcaseListRequest describes showcase feed filters.
type ShowcaseListRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// ShowcaseResponse serializes one public showcase record.
type ShowcaseResponse struct {
	ID           uint      `json:"id"`
	SubmissionID uint      `json:"submission_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Score        float64   `json:"score"`
	Public       bool      `json:"public"`
	ValidatedAt  time.Time `json:"validated_at"`
}

// ShowcaseListResponse wraps a paginated showcase feed.
type ShowcaseListResponse struct {
	Items []ShowcaseResponse `json:"items"`
	Total int64              `json:"total"`
}

// NewShowcaseResponse converts a Showcase model into a DTO.
func NewShowcaseResponse(model models.Showcase) ShowcaseResponse {
	return ShowcaseResponse{
		ID:           model.ID,
		SubmissionID: model.SubmissionID,
		Title:        model.Title,
		Description:  model.Description,
		Score:        model.Score,
		Public:       model.Public,
		ValidatedAt:  model.ValidatedAt,
	}
}

// NewShowcaseResponseSlice converts showcase models into DTOs.
func NewShowcaseResponseSlice(items []models.Showcase) []ShowcaseResponse {
	responses := make([]ShowcaseResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewShowcaseResponse(item))
	}

	return responses
}
