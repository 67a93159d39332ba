// Package prerequisites decides whether a course's prerequisite set is legal
// within its programme. Everything here is pure: callers load the programme
// snapshot and persist the accepted edges themselves.
package prerequisites

import (
	"sort"
	"strconv"
)

// Course is the part of a course record the checks need.
type Course struct {
	ID          int64
	ProgrammeID int64
	Name        string
	Year        int
	Semester    int
}

// Graph maps a course id to the ids of its prerequisites.
type Graph map[int64][]int64

// Edge means CourseID requires DependsOnID.
type Edge struct {
	CourseID    int64 `json:"courseId"`
	DependsOnID int64 `json:"dependsOnId"`
}

// Snapshot is a read-only view of one programme. Courses may also hold
// courses from other programmes that a proposal referenced.
type Snapshot struct {
	ProgrammeID int64
	Courses     map[int64]Course
	Edges       Graph
}

// Clone returns a deep copy of the graph.
func (g Graph) Clone() Graph {
	out := make(Graph, len(g))
	for id, deps := range g {
		out[id] = append([]int64(nil), deps...)
	}
	return out
}

// EdgeList flattens the graph into edges ordered by course then prerequisite.
func (g Graph) EdgeList() []Edge {
	ids := sortedKeys(g)
	var edges []Edge
	for _, id := range ids {
		deps := append([]int64(nil), g[id]...)
		sort.Slice(deps, func(i, j int) bool { return deps[i] < deps[j] })
		for _, dep := range deps {
			edges = append(edges, Edge{CourseID: id, DependsOnID: dep})
		}
	}
	return edges
}

// Merge returns a copy of g where courseID's prerequisites are replaced by
// the accepted edges.
func Merge(g Graph, courseID int64, accepted []Edge) Graph {
	out := g.Clone()
	delete(out, courseID)
	for _, e := range accepted {
		if e.CourseID != courseID {
			continue
		}
		out[courseID] = append(out[courseID], e.DependsOnID)
	}
	return out
}

// nodeCount counts distinct ids across courses and both edge endpoints.
func (s Snapshot) nodeCount() int {
	seen := make(map[int64]struct{}, len(s.Courses))
	for id := range s.Courses {
		seen[id] = struct{}{}
	}
	for id, deps := range s.Edges {
		seen[id] = struct{}{}
		for _, d := range deps {
			seen[d] = struct{}{}
		}
	}
	return len(seen)
}

// walker is a depth-first search that refuses to expand `exclude` and stops
// after visiting `budget` nodes, so corrupted graphs cannot keep it running.
type walker struct {
	edges   Graph
	exclude int64
	visited map[int64]struct{}
	budget  int
}

func newWalker(edges Graph, exclude int64, budget int) *walker {
	return &walker{
		edges:   edges,
		exclude: exclude,
		visited: make(map[int64]struct{}),
		budget:  budget,
	}
}

func (w *walker) reaches(from, to int64) bool {
	if from == to {
		return true
	}
	if _, seen := w.visited[from]; seen {
		return false
	}
	if w.budget <= 0 {
		return false
	}
	w.budget--
	w.visited[from] = struct{}{}

	// The excluded course's outgoing edges are about to be replaced.
	if from == w.exclude {
		return false
	}
	for _, next := range w.edges[from] {
		if w.reaches(next, to) {
			return true
		}
	}
	return false
}

const (
	white = iota
	grey
	black
)

// FindCycles returns every cycle closed by a back edge in a colored DFS.
// Each cycle is rotated to start at its smallest id; duplicates are dropped.
// Self-loops come back as single-element cycles.
func FindCycles(g Graph) [][]int64 {
	color := make(map[int64]int, len(g))
	var stack []int64
	var cycles [][]int64
	seen := make(map[string]struct{})

	var visit func(id int64)
	visit = func(id int64) {
		color[id] = grey
		stack = append(stack, id)

		deps := append([]int64(nil), g[id]...)
		sort.Slice(deps, func(i, j int) bool { return deps[i] < deps[j] })
		for _, next := range deps {
			switch color[next] {
			case white:
				visit(next)
			case grey:
				start := len(stack) - 1
				for stack[start] != next {
					start--
				}
				cycle := normalizeCycle(stack[start:])
				key := cycleKey(cycle)
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					cycles = append(cycles, cycle)
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[id] = black
	}

	for _, id := range sortedKeys(g) {
		if color[id] == white {
			visit(id)
		}
	}
	return cycles
}

func normalizeCycle(path []int64) []int64 {
	minIdx := 0
	for i, id := range path {
		if id < path[minIdx] {
			minIdx = i
		}
	}
	out := make([]int64, 0, len(path))
	out = append(out, path[minIdx:]...)
	out = append(out, path[:minIdx]...)
	return out
}

func cycleKey(cycle []int64) string {
	b := make([]byte, 0, len(cycle)*8)
	for _, id := range cycle {
		b = strconv.AppendInt(b, id, 10)
		b = append(b, ',')
	}
	return string(b)
}

func sortedKeys(g Graph) []int64 {
	ids := make([]int64, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
