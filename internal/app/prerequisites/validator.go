package prerequisites

import (
	"sort"

	"github.com/yigit/curricula/internal/pkg/validation"
)

// Violation codes
const (
	CodeNotFound          = "PREREQ_NOT_FOUND"
	CodeSelf              = "PREREQ_SELF"
	CodeOtherProgramme    = "PREREQ_OTHER_PROGRAMME"
	CodeNotEarlier        = "PREREQ_NOT_EARLIER"
	CodeCycle             = "PREREQ_CYCLE"
	CodeDependentNotLater = "DEPENDENT_NOT_LATER"
	CodeDanglingEdge      = "EDGE_DANGLING"
	CodeSelfLoop          = "EDGE_SELF_LOOP"
)

// Fields the violations are attached to.
const (
	FieldPrerequisites = "prerequisites"
	FieldYear          = "year"
)

const (
	msgNotFound          = "prerequisite course not found"
	msgSelf              = "course cannot depend on itself"
	msgOtherProgramme    = "prerequisite must belong to the same programme"
	msgNotEarlier        = "prerequisite must be from an earlier year/semester"
	msgCycle             = "circular dependency detected"
	msgDependentNotLater = "a course that depends on this one must stay in a later year"
)

// Candidate is the course being created (ID == 0) or updated.
type Candidate struct {
	ID          int64
	ProgrammeID int64
	Year        int
	Semester    int
}

// Result is either an accepted edge set or the full list of violations.
type Result struct {
	Accepted   []Edge
	Violations []validation.Violation
}

// OK reports whether the proposal was accepted.
func (r Result) OK() bool {
	return len(r.Violations) == 0
}

// Err returns a *validation.Error for rejected proposals and nil otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &validation.Error{Violations: r.Violations}
}

// Validate checks a proposed prerequisite set for candidate against the
// programme snapshot. Every problem is reported; nothing stops at the first
// failure. Duplicate ids count once.
func Validate(candidate Candidate, proposed []int64, snapshot Snapshot) Result {
	var c validation.Collector
	accepted := make([]Edge, 0, len(proposed))
	budget := snapshot.nodeCount() + 1

	for _, id := range dedupe(proposed) {
		if candidate.ID != 0 && id == candidate.ID {
			c.AddCourse(FieldPrerequisites, id, CodeSelf, msgSelf)
			continue
		}

		pre, ok := snapshot.Courses[id]
		if !ok {
			c.AddCourse(FieldPrerequisites, id, CodeNotFound, msgNotFound)
			continue
		}

		if pre.ProgrammeID != candidate.ProgrammeID {
			c.AddCourse(FieldPrerequisites, id, CodeOtherProgramme, msgOtherProgramme)
			continue
		}

		if pre.Year >= candidate.Year {
			c.AddCourse(FieldPrerequisites, id, CodeNotEarlier, msgNotEarlier)
		}

		// A new course has no dependents yet, so it cannot close a cycle.
		if candidate.ID != 0 {
			w := newWalker(snapshot.Edges, candidate.ID, budget)
			if w.reaches(id, candidate.ID) {
				c.AddCourse(FieldPrerequisites, id, CodeCycle, msgCycle)
			}
		}

		accepted = append(accepted, Edge{CourseID: candidate.ID, DependsOnID: id})
	}

	if candidate.ID != 0 {
		for _, dependentID := range dependentsOf(snapshot.Edges, candidate.ID) {
			dep, ok := snapshot.Courses[dependentID]
			if ok && dep.Year <= candidate.Year {
				c.AddCourse(FieldYear, dependentID, CodeDependentNotLater, msgDependentNotLater)
			}
		}
	}

	if v := c.Violations(); len(v) > 0 {
		return Result{Violations: v}
	}
	return Result{Accepted: accepted}
}

// dependentsOf returns the ids of courses that list courseID as a
// prerequisite, in ascending order.
func dependentsOf(g Graph, courseID int64) []int64 {
	var out []int64
	for id, deps := range g {
		if id == courseID {
			continue
		}
		for _, d := range deps {
			if d == courseID {
				out = append(out, id)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
