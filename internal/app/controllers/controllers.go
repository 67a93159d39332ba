// Package controllers handles HTTP request handling
package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/curricula/internal/app/models"
	"github.com/yigit/curricula/internal/app/models/dto"
	"github.com/yigit/curricula/internal/app/services"
	"github.com/yigit/curricula/internal/pkg/helpers"
)

// AuthService is what the auth controller needs from the service layer
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
}

// ProgrammeService is what the programme controller needs from the service layer
type ProgrammeService interface {
	List(ctx context.Context, page, size int) (*services.ProgrammePage, error)
	Get(ctx context.Context, id int64) (*models.Programme, error)
	Create(ctx context.Context, programme *models.Programme) error
	Update(ctx context.Context, programme *models.Programme) error
	Delete(ctx context.Context, id int64) error
}

// CourseService is what the course and graph controllers need from the service layer
type CourseService interface {
	ListByProgramme(ctx context.Context, programmeID int64) ([]*models.Course, error)
	Get(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course, prereqIDs []int64) error
	Update(ctx context.Context, id int64, course *models.Course, prereqIDs []int64) error
	ValidateDraft(ctx context.Context, programmeID, courseID int64, course *models.Course, prereqIDs []int64) (*services.Draft, error)
	Delete(ctx context.Context, id int64) error
	Graph(ctx context.Context, programmeID int64) (*services.ProgrammeGraph, error)
	RenderGraph(ctx context.Context, programmeID int64) ([]byte, error)
}

// parseID reads the named path parameter and answers 400 when it is not a
// positive integer.
func parseID(ctx *gin.Context, name, label string) (int64, bool) {
	id, ok := helpers.ParseIDParam(ctx, name)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid "+label+" ID").
			WithField(name).
			WithDetails(label + " ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	}
	return id, ok
}
