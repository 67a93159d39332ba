package prerequisites

import (
	"strconv"
	"strings"

	"github.com/yigit/curricula/internal/pkg/validation"
)

// Audit re-checks every stored edge of a programme and reports whatever
// earlier writes let through: dangling ids, self-loops, cross-programme
// edges, chronology breaks and cycles. Violations carry the dependent course id.
func Audit(snapshot Snapshot) []validation.Violation {
	var c validation.Collector

	for _, id := range sortedKeys(snapshot.Edges) {
		course, known := snapshot.Courses[id]
		for _, dep := range dedupe(snapshot.Edges[id]) {
			if dep == id {
				c.AddCourse(FieldPrerequisites, id, CodeSelfLoop, msgSelf)
				continue
			}
			pre, ok := snapshot.Courses[dep]
			if !known || !ok {
				c.AddCourse(FieldPrerequisites, id, CodeDanglingEdge,
					"edge "+edgeLabel(id, dep)+" references a missing course")
				continue
			}
			if pre.ProgrammeID != course.ProgrammeID {
				c.AddCourse(FieldPrerequisites, id, CodeOtherProgramme,
					msgOtherProgramme+": "+edgeLabel(id, dep))
				continue
			}
			if pre.Year >= course.Year {
				c.AddCourse(FieldPrerequisites, id, CodeNotEarlier,
					msgNotEarlier+": "+edgeLabel(id, dep))
			}
		}
	}

	for _, cycle := range FindCycles(snapshot.Edges) {
		if len(cycle) < 2 {
			continue // reported as a self-loop above
		}
		c.AddCourse(FieldPrerequisites, cycle[0], CodeCycle, msgCycle+": "+cycleLabel(cycle))
	}

	return c.Violations()
}

func edgeLabel(from, to int64) string {
	return strconv.FormatInt(from, 10) + " -> " + strconv.FormatInt(to, 10)
}

func cycleLabel(cycle []int64) string {
	parts := make([]string, 0, len(cycle)+1)
	for _, id := range cycle {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	parts = append(parts, strconv.FormatInt(cycle[0], 10))
	return strings.Join(parts, " -> ")
}
