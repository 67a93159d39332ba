package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/curricula/internal/app/models"
	"github.com/yigit/curricula/internal/middleware"
)

// EventStream subscribes a connection to the change events of a programme
type EventStream interface {
	Serve(w http.ResponseWriter, r *http.Request, programmeID int64) error
}

// ProgrammeLookup resolves the programme a subscriber asks for
type ProgrammeLookup interface {
	Get(ctx context.Context, id int64) (*models.Programme, error)
}

// EventsController streams live curriculum changes to editors
type EventsController struct {
	programmes ProgrammeLookup
	stream     EventStream
}

// NewEventsController creates a new EventsController
func NewEventsController(programmes ProgrammeLookup, stream EventStream) *EventsController {
	return &EventsController{
		programmes: programmes,
		stream:     stream,
	}
}

// Subscribe upgrades to a WebSocket carrying the programme's change events
// @Summary Live programme changes
// @Description Upgrades to a WebSocket. Each text frame is a JSON event: course.created, course.updated, course.deleted, programme.updated or programme.deleted
// @Tags graph
// @Param id path int true "Programme ID"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} dto.ErrorResponse "Invalid programme ID"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Router /programmes/{id}/events [get]
func (c *EventsController) Subscribe(ctx *gin.Context) {
	programmeID, ok := parseID(ctx, "id", "Programme")
	if !ok {
		return
	}

	if _, err := c.programmes.Get(ctx.Request.Context(), programmeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// The upgrader answers failed handshakes itself.
	_ = c.stream.Serve(ctx.Writer, ctx.Request, programmeID)
}
