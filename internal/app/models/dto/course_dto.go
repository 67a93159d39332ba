package dto

import (
	"time"

	"github.com/yigit/curricula/internal/app/models"
	"github.com/yigit/curricula/internal/app/prerequisites"
	"github.com/yigit/curricula/internal/pkg/validation"
)

// CourseRequest is the body of course create, update and dry-run calls.
// Field rules are checked by the service so that they are reported together
// with prerequisite problems.
type CourseRequest struct {
	Name          string  `json:"name" example:"Data Structures"`
	Credits       int     `json:"credits" example:"6"`
	Year          int     `json:"year" example:"2"`
	Semester      int     `json:"semester" example:"1"`
	Description   *string `json:"description,omitempty"`
	Prerequisites []int64 `json:"prerequisites" example:"3,4"`
}

// ToModel builds a course for the given programme. A missing semester means
// the first one.
func (r CourseRequest) ToModel(programmeID int64) *models.Course {
	semester := r.Semester
	if semester == 0 {
		semester = 1
	}
	return &models.Course{
		ProgrammeID: programmeID,
		Name:        r.Name,
		Credits:     r.Credits,
		Year:        r.Year,
		Semester:    semester,
		Description: r.Description,
	}
}

// CourseResponse represents a course with its prerequisite ids
type CourseResponse struct {
	ID            int64     `json:"id" example:"7"`
	ProgrammeID   int64     `json:"programmeId" example:"1"`
	Name          string    `json:"name" example:"Data Structures"`
	Credits       int       `json:"credits" example:"6"`
	Year          int       `json:"year" example:"2"`
	Semester      int       `json:"semester" example:"1"`
	Description   *string   `json:"description,omitempty"`
	Prerequisites []int64   `json:"prerequisites"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewCourseResponse maps a course model.
func NewCourseResponse(c *models.Course) CourseResponse {
	prereqs := c.PrerequisiteIDs
	if prereqs == nil {
		prereqs = []int64{}
	}
	return CourseResponse{
		ID:            c.ID,
		ProgrammeID:   c.ProgrammeID,
		Name:          c.Name,
		Credits:       c.Credits,
		Year:          c.Year,
		Semester:      c.Semester,
		Description:   c.Description,
		Prerequisites: prereqs,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// NewCourseListResponse maps a slice of course models.
func NewCourseListResponse(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}

// ValidationResultResponse is the answer to a dry-run validation. Edges is
// the whole programme graph as it would look after saving the draft.
type ValidationResultResponse struct {
	Valid    bool                   `json:"valid" example:"false"`
	Accepted []prerequisites.Edge   `json:"accepted"`
	Edges    []prerequisites.Edge   `json:"edges"`
	Errors   []validation.Violation `json:"errors"`
}

// CourseDraftRequest is the body of the dry-run endpoint. CourseID names the
// course being edited; leave it out to check a course that does not exist yet.
type CourseDraftRequest struct {
	CourseID int64 `json:"courseId,omitempty" example:"7"`
	CourseRequest
}
