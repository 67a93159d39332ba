package models

import "time"

// Programme is a degree plan that owns a set of courses.
type Programme struct {
	ID           int64         `json:"id" db:"id"`
	Name         string        `json:"name" db:"name"`
	YearsToStudy int           `json:"yearsToStudy" db:"years_to_study"`
	Type         ProgrammeType `json:"type" db:"type"`
	Degree       Degree        `json:"degree" db:"degree"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" db:"updated_at"`

	// Populated by list and detail queries
	CourseCount int `json:"courseCount" db:"course_count"`
}
