package models

import "time"

// Course groups assessments and project groups under one subject.
type Course struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"size:255;not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	TeacherName string       `gorm:"size:255" json:"teacher_name"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Assessments []Assessment `json:"assessments,omitempty"`
	Groups      []Group      `json:"groups,omitempty"`
}
