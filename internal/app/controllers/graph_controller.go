package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/curricula/internal/app/models/dto"
	"github.com/yigit/curricula/internal/middleware"
)

// GraphController serves the prerequisite graph of a programme
type GraphController struct {
	courseService CourseService
}

// NewGraphController creates a new GraphController
func NewGraphController(courseService CourseService) *GraphController {
	return &GraphController{
		courseService: courseService,
	}
}

// GetProgrammeGraph returns the graph as JSON
// @Summary Programme prerequisite graph
// @Description Courses as nodes, prerequisites as edges, plus integrity issues found in stored data
// @Tags graph
// @Produce json
// @Param id path int true "Programme ID"
// @Success 200 {object} dto.APIResponse{data=dto.GraphResponse} "Graph retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid programme ID"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programmes/{id}/graph [get]
func (c *GraphController) GetProgrammeGraph(ctx *gin.Context) {
	programmeID, ok := parseID(ctx, "id", "Programme")
	if !ok {
		return
	}

	graph, err := c.courseService.Graph(ctx.Request.Context(), programmeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	nodes := make([]dto.GraphNode, 0, len(graph.Courses))
	for _, course := range graph.Courses {
		nodes = append(nodes, dto.GraphNode{
			ID:       course.ID,
			Name:     course.Name,
			Year:     course.Year,
			Semester: course.Semester,
			Credits:  course.Credits,
		})
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.GraphResponse{
		ProgrammeID: programmeID,
		Nodes:       nodes,
		Edges:       graph.Edges,
		Issues:      graph.Issues,
	}, ""))
}

// GetProgrammeGraphImage returns the graph as a PNG
// @Summary Programme prerequisite graph image
// @Description Renders one column per year and semester; courses with integrity issues are highlighted
// @Tags graph
// @Produce png
// @Param id path int true "Programme ID"
// @Success 200 {file} binary "PNG image"
// @Failure 400 {object} dto.ErrorResponse "Invalid programme ID"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programmes/{id}/graph.png [get]
func (c *GraphController) GetProgrammeGraphImage(ctx *gin.Context) {
	programmeID, ok := parseID(ctx, "id", "Programme")
	if !ok {
		return
	}

	png, err := c.courseService.RenderGraph(ctx.Request.Context(), programmeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Cache-Control", "no-cache")
	ctx.Data(http.StatusOK, "image/png", png)
}
