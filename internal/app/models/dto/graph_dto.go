package dto

import (
	"github.com/yigit/curricula/internal/app/prerequisites"
	"github.com/yigit/curricula/internal/pkg/validation"
)

// GraphNode is one course in the programme graph.
type GraphNode struct {
	ID       int64  `json:"id" example:"7"`
	Name     string `json:"name" example:"Data Structures"`
	Year     int    `json:"year" example:"2"`
	Semester int    `json:"semester" example:"1"`
	Credits  int    `json:"credits" example:"6"`
}

// GraphResponse is the adjacency view of a programme plus any integrity
// problems found in the stored edges.
type GraphResponse struct {
	ProgrammeID int64                  `json:"programmeId" example:"1"`
	Nodes       []GraphNode            `json:"nodes"`
	Edges       []prerequisites.Edge   `json:"edges"`
	Issues      []validation.Violation `json:"issues"`
}
