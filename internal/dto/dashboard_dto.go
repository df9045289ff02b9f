package dto

import (
	"time"

	"github.com/projecta-dev/projecta-api/internal/models"
)

// UpcomingAssessmentResponse is one schedule entry on the student dashboard.
type UpcomingAssessmentResponse struct {
	AssessmentID uint      `json:"assessment_id"`
	Title        string    `json:"title"`
	Kind         string    `json:"kind"`
	CourseName   string    `json:"course_name"`
	Deadline     time.Time `json:"deadline"`
}

// ScheduleResponse lists a student's upcoming deadlines, soonest first.
type ScheduleResponse struct {
	StudentID uint                         `json:"student_id"`
	Upcoming  []UpcomingAssessmentResponse `json:"upcoming"`
}

// NewScheduleResponse builds the schedule DTO from prefetched assessments.
func NewScheduleResponse(studentID uint, items []models.Assessment) ScheduleResponse {
	upcoming := make([]UpcomingAssessmentResponse, 0, len(items))
	for _, item := range items {
		if item.Deadline == nil {
			continue
		}
		upcoming = append(upcoming, UpcomingAssessmentResponse{
			AssessmentID: item.ID,
			Title:        item.Title,
			Kind:         item.Kind,
			CourseName:   item.Course.Name,
			Deadline:     *item.Deadline,
		})
	}

	return ScheduleResponse{StudentID: studentID, Upcoming: upcoming}
}
