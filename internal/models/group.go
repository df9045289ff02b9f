package models

import "time"

// Group is a project team of students within a course.
type Group struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Members   []Student `gorm:"many2many:group_members" json:"members,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Course    Course    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"course"`
}
