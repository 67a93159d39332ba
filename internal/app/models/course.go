package models

import (
	"time"

	"github.com/yigit/curricula/internal/app/prerequisites"
)

// Course belongs to exactly one programme and is scheduled in a year and
// semester of it.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	ProgrammeID int64     `json:"programmeId" db:"programme_id"`
	Name        string    `json:"name" db:"name"`
	Credits     int       `json:"credits" db:"credits"`
	Year        int       `json:"year" db:"year"`
	Semester    int       `json:"semester" db:"semester"`
	Description *string   `json:"description,omitempty" db:"description"` // Nullable
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	PrerequisiteIDs []int64 `json:"prerequisiteIds"`
}

// Candidate describes the course as a proposal for the validator.
func (c *Course) Candidate() prerequisites.Candidate {
	return prerequisites.Candidate{
		ID:          c.ID,
		ProgrammeID: c.ProgrammeID,
		Year:        c.Year,
		Semester:    c.Semester,
	}
}
