package dto

import (
	"time"

	"github.com/yigit/curricula/internal/app/models"
)

// ProgrammeRequest is the body of programme create and update calls.
type ProgrammeRequest struct {
	Name         string `json:"name" binding:"required,min=3,max=150" example:"Computer Science"`
	YearsToStudy int    `json:"yearsToStudy" binding:"required,min=3,max=6" example:"4"`
	Type         string `json:"type" binding:"required,oneof=full-time part-time distance" example:"full-time"`
	Degree       string `json:"degree" binding:"omitempty,oneof=bachelor master" example:"bachelor"`
}

// ToModel converts the request into a programme. Degree defaults to bachelor.
func (r ProgrammeRequest) ToModel() *models.Programme {
	degree := models.Degree(r.Degree)
	if degree == "" {
		degree = models.DegreeBachelor
	}
	return &models.Programme{
		Name:         r.Name,
		YearsToStudy: r.YearsToStudy,
		Type:         models.ProgrammeType(r.Type),
		Degree:       degree,
	}
}

// ProgrammeResponse represents a programme with its course count
type ProgrammeResponse struct {
	ID           int64     `json:"id" example:"1"`
	Name         string    `json:"name" example:"Computer Science"`
	YearsToStudy int       `json:"yearsToStudy" example:"4"`
	Type         string    `json:"type" example:"full-time"`
	Degree       string    `json:"degree" example:"bachelor"`
	CourseCount  int       `json:"courseCount" example:"24"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewProgrammeResponse maps a programme model.
func NewProgrammeResponse(p *models.Programme) ProgrammeResponse {
	return ProgrammeResponse{
		ID:           p.ID,
		Name:         p.Name,
		YearsToStudy: p.YearsToStudy,
		Type:         string(p.Type),
		Degree:       string(p.Degree),
		CourseCount:  p.CourseCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ProgrammeListResponse represents a page of programmes
type ProgrammeListResponse struct {
	Programmes []ProgrammeResponse `json:"programmes"`
	Pagination PaginationInfo      `json:"pagination"`
}
