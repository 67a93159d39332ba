package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/curricula/internal/app/models/dto"
	"github.com/yigit/curricula/internal/app/prerequisites"
	"github.com/yigit/curricula/internal/middleware"
	"github.com/yigit/curricula/internal/pkg/validation"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// GetProgrammeCourses lists the courses of a programme
// @Summary List programme courses
// @Description Retrieves the courses of a programme ordered by year, semester and name
// @Tags courses
// @Produce json
// @Param id path int true "Programme ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid programme ID"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programmes/{id}/courses [get]
func (c *CourseController) GetProgrammeCourses(ctx *gin.Context) {
	programmeID, ok := parseID(ctx, "id", "Programme")
	if !ok {
		return
	}

	courses, err := c.courseService.ListByProgramme(ctx.Request.Context(), programmeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCourseListResponse(courses), ""))
}

// CreateCourse adds a course to a programme
// @Summary Create a course
// @Description Creates a course with its prerequisites. Every field and prerequisite problem is reported in one 422 response.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Programme ID"
// @Param request body dto.CourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Failure 409 {object} dto.ErrorResponse "Course name already used in the programme"
// @Failure 422 {object} dto.ValidationErrorResponse "Invalid fields or prerequisites"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programmes/{id}/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	programmeID, ok := parseID(ctx, "id", "Programme")
	if !ok {
		return
	}

	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course := req.ToModel(programmeID)
	if err := c.courseService.Create(ctx.Request.Context(), course, req.Prerequisites); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewCourseResponse(course), "Course created successfully"))
}

// ValidateCourse checks a course draft without saving it
// @Summary Dry-run course validation
// @Description Runs the same checks as create/update and returns the verdict. Nothing is written.
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Programme ID"
// @Param request body dto.CourseDraftRequest true "Course draft"
// @Success 200 {object} dto.APIResponse{data=dto.ValidationResultResponse} "Validation finished"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Programme or course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programmes/{id}/courses/validate [post]
func (c *CourseController) ValidateCourse(ctx *gin.Context) {
	programmeID, ok := parseID(ctx, "id", "Programme")
	if !ok {
		return
	}

	var req dto.CourseDraftRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	draft, err := c.courseService.ValidateDraft(ctx.Request.Context(), programmeID, req.CourseID,
		req.ToModel(programmeID), req.Prerequisites)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.ValidationResultResponse{
		Valid:    draft.OK(),
		Accepted: draft.Accepted,
		Edges:    draft.Edges,
		Errors:   draft.Violations,
	}
	if resp.Accepted == nil {
		resp.Accepted = []prerequisites.Edge{}
	}
	if resp.Edges == nil {
		resp.Edges = []prerequisites.Edge{}
	}
	if resp.Errors == nil {
		resp.Errors = []validation.Violation{}
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// GetCourseByID retrieves a course by ID
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Course")
	if !ok {
		return
	}

	course, err := c.courseService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCourseResponse(course), ""))
}

// UpdateCourse overwrites a course and its prerequisites
// @Summary Update a course
// @Description Replaces the course fields and its whole prerequisite set. The course stays in its programme.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequest true "Updated course information"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course name already used in the programme"
// @Failure 422 {object} dto.ValidationErrorResponse "Invalid fields or prerequisites"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Course")
	if !ok {
		return
	}

	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course := req.ToModel(0)
	if err := c.courseService.Update(ctx.Request.Context(), id, course, req.Prerequisites); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCourseResponse(course), "Course updated successfully"))
}

// DeleteCourse deletes a course nobody depends on
// @Summary Delete a course
// @Description Deletes a course. Refused with 409 while other courses list it as a prerequisite.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course is a prerequisite of other courses"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Course")
	if !ok {
		return
	}

	if err := c.courseService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Course deleted successfully"))
}
