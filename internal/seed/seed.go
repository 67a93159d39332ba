package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/curricula/internal/app/models"
	"github.com/yigit/curricula/internal/pkg/apperrors"
)

// ProgrammeCreator persists a new programme
type ProgrammeCreator interface {
	Create(ctx context.Context, programme *models.Programme) error
}

// CourseCreator persists a new course together with its prerequisites
type CourseCreator interface {
	Create(ctx context.Context, course *models.Course, prereqIDs []int64) error
}

type sampleCourse struct {
	name     string
	credits  int
	year     int
	semester int
	requires []string
}

// SampleProgramme is the name of the programme CreateDefaultData installs.
const SampleProgramme = "Computer Science"

var sampleCourses = []sampleCourse{
	{name: "Programming I", credits: 6, year: 1, semester: 1},
	{name: "Calculus I", credits: 6, year: 1, semester: 1},
	{name: "Discrete Mathematics", credits: 5, year: 1, semester: 2},
	{name: "Data Structures", credits: 6, year: 2, semester: 1, requires: []string{"Programming I", "Discrete Mathematics"}},
	{name: "Calculus II", credits: 6, year: 2, semester: 1, requires: []string{"Calculus I"}},
	{name: "Computer Architecture", credits: 5, year: 2, semester: 2, requires: []string{"Programming I"}},
	{name: "Algorithms", credits: 6, year: 3, semester: 1, requires: []string{"Data Structures"}},
	{name: "Operating Systems", credits: 6, year: 3, semester: 1, requires: []string{"Data Structures", "Computer Architecture"}},
	{name: "Databases", credits: 5, year: 3, semester: 2, requires: []string{"Data Structures"}},
	{name: "Compilers", credits: 6, year: 4, semester: 1, requires: []string{"Algorithms"}},
	{name: "Distributed Systems", credits: 6, year: 4, semester: 2, requires: []string{"Operating Systems", "Databases"}},
}

// CreateDefaultData installs a sample bachelor programme with a small
// prerequisite tree. Courses go through the regular services, so the seed is
// subject to the same checks as editor input. Running it twice is a no-op.
func CreateDefaultData(ctx context.Context, programmes ProgrammeCreator, courses CourseCreator, lgr zerolog.Logger) error {
	programme := &models.Programme{
		Name:         SampleProgramme,
		YearsToStudy: 4,
		Type:         models.ProgrammeFullTime,
		Degree:       models.DegreeBachelor,
	}
	if err := programmes.Create(ctx, programme); err != nil {
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Info().Str("programme", SampleProgramme).Msg("Sample programme already exists, skipping seed")
			return nil
		}
		return fmt.Errorf("failed to create sample programme: %w", err)
	}

	ids := make(map[string]int64, len(sampleCourses))
	for _, sc := range sampleCourses {
		prereqs := make([]int64, 0, len(sc.requires))
		for _, name := range sc.requires {
			id, ok := ids[name]
			if !ok {
				return fmt.Errorf("sample course %q requires unknown course %q", sc.name, name)
			}
			prereqs = append(prereqs, id)
		}

		course := &models.Course{
			ProgrammeID: programme.ID,
			Name:        sc.name,
			Credits:     sc.credits,
			Year:        sc.year,
			Semester:    sc.semester,
		}
		if err := courses.Create(ctx, course, prereqs); err != nil {
			return fmt.Errorf("failed to create sample course %q: %w", sc.name, err)
		}
		ids[sc.name] = course.ID
	}

	lgr.Info().
		Int64("programmeId", programme.ID).
		Int("courses", len(ids)).
		Msg("Sample programme created")
	return nil
}
