package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/curricula/internal/app/models/dto"
	"github.com/yigit/curricula/internal/middleware"
	"github.com/yigit/curricula/internal/pkg/helpers"
)

// ProgrammeController handles programme-related operations
type ProgrammeController struct {
	programmeService ProgrammeService
}

// NewProgrammeController creates a new ProgrammeController
func NewProgrammeController(programmeService ProgrammeService) *ProgrammeController {
	return &ProgrammeController{
		programmeService: programmeService,
	}
}

// GetAllProgrammes lists programmes page by page
// @Summary List programmes
// @Description Retrieves programmes ordered by name
// @Tags programmes
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.ProgrammeListResponse} "Programmes retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programmes [get]
func (c *ProgrammeController) GetAllProgrammes(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	result, err := c.programmeService.List(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	programmes := make([]dto.ProgrammeResponse, 0, len(result.Programmes))
	for _, p := range result.Programmes {
		programmes = append(programmes, dto.NewProgrammeResponse(p))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ProgrammeListResponse{
		Programmes: programmes,
		Pagination: helpers.NewPaginationInfo(result.Total, result.Page, result.Size),
	}, ""))
}

// GetProgrammeByID retrieves a programme by ID
// @Summary Get programme by ID
// @Tags programmes
// @Produce json
// @Param id path int true "Programme ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProgrammeResponse} "Programme retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid programme ID"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programmes/{id} [get]
func (c *ProgrammeController) GetProgrammeByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Programme")
	if !ok {
		return
	}

	programme, err := c.programmeService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProgrammeResponse(programme), ""))
}

// CreateProgramme handles programme creation
// @Summary Create a new programme
// @Description Creates a programme. Degree defaults to bachelor.
// @Tags programmes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProgrammeRequest true "Programme information"
// @Success 201 {object} dto.APIResponse{data=dto.ProgrammeResponse} "Programme created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 409 {object} dto.ErrorResponse "Programme already exists"
// @Failure 422 {object} dto.ValidationErrorResponse "Invalid programme fields"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programmes [post]
func (c *ProgrammeController) CreateProgramme(ctx *gin.Context) {
	var req dto.ProgrammeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	programme := req.ToModel()
	if err := c.programmeService.Create(ctx.Request.Context(), programme); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewProgrammeResponse(programme), "Programme created successfully"))
}

// UpdateProgramme updates an existing programme
// @Summary Update a programme
// @Description Overwrites a programme. Years to study cannot drop below a year that holds courses.
// @Tags programmes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Programme ID"
// @Param request body dto.ProgrammeRequest true "Updated programme information"
// @Success 200 {object} dto.APIResponse{data=dto.ProgrammeResponse} "Programme updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Failure 409 {object} dto.ErrorResponse "Programme name already taken"
// @Failure 422 {object} dto.ValidationErrorResponse "Invalid programme fields"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programmes/{id} [put]
func (c *ProgrammeController) UpdateProgramme(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Programme")
	if !ok {
		return
	}

	var req dto.ProgrammeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	programme := req.ToModel()
	programme.ID = id
	if err := c.programmeService.Update(ctx.Request.Context(), programme); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	updated, err := c.programmeService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProgrammeResponse(updated), "Programme updated successfully"))
}

// DeleteProgramme deletes a programme with all of its courses
// @Summary Delete a programme
// @Description Deletes a programme; its courses and prerequisite edges go with it
// @Tags programmes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Programme ID"
// @Success 200 {object} dto.APIResponse "Programme deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid programme ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programmes/{id} [delete]
func (c *ProgrammeController) DeleteProgramme(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Programme")
	if !ok {
		return
	}

	if err := c.programmeService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Programme deleted successfully"))
}
