package validation

import (
	"strings"

	"github.com/yigit/curricula/internal/pkg/apperrors"
)

// Violation codes shared by field checks and prerequisite checks.
const (
	CodeRequired     = "REQUIRED"
	CodeOutOfRange   = "OUT_OF_RANGE"
	CodeInvalidValue = "INVALID_VALUE"
)

// Violation is one rejected input, tagged with the field and, when the
// problem concerns another course, that course's id.
type Violation struct {
	Field    string `json:"field"`
	CourseID int64  `json:"courseId,omitempty"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// Collector accumulates violations without short-circuiting.
type Collector struct {
	violations []Violation
}

// Add records a field-level violation.
func (c *Collector) Add(field, code, message string) {
	c.violations = append(c.violations, Violation{Field: field, Code: code, Message: message})
}

// AddCourse records a violation about a specific referenced course.
func (c *Collector) AddCourse(field string, courseID int64, code, message string) {
	c.violations = append(c.violations, Violation{Field: field, CourseID: courseID, Code: code, Message: message})
}

// Violations returns what has been collected so far.
func (c *Collector) Violations() []Violation {
	return c.violations
}

// Err returns nil when nothing was collected.
func (c *Collector) Err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return &Error{Violations: c.violations}
}

// Error carries a batch of violations. It unwraps to
// apperrors.ErrValidationFailed so handlers can map it with errors.Is.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *Error) Unwrap() error {
	return apperrors.ErrValidationFailed
}
