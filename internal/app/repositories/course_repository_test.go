package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/curricula/internal/app/migrations"
	"github.com/yigit/curricula/internal/app/models"
	"github.com/yigit/curricula/internal/app/prerequisites"
	"github.com/yigit/curricula/internal/db"
	"github.com/yigit/curricula/internal/pkg/apperrors"
)

// testDSNEnv names a disposable Postgres database; the tests are skipped
// without it.
const testDSNEnv = "CURRICULA_TEST_DATABASE_URL"

func openTestRepositories(t *testing.T) *Repositories {
	t.Helper()
	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDSNEnv)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := migrations.NewMigrator(pool, "../../../migrations").Up(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepositories(&db.PostgresDB{Pool: pool})
}

func createTestProgramme(t *testing.T, repos *Repositories, name string) *models.Programme {
	t.Helper()
	p := &models.Programme{
		Name:         fmt.Sprintf("%s %d", name, time.Now().UnixNano()),
		YearsToStudy: 4,
		Type:         models.ProgrammeFullTime,
		Degree:       models.DegreeBachelor,
	}
	if err := repos.ProgrammeRepository.Create(context.Background(), p); err != nil {
		t.Fatalf("create programme: %v", err)
	}
	t.Cleanup(func() {
		_ = repos.ProgrammeRepository.Delete(context.Background(), p.ID)
	})
	return p
}

func saveTestCourse(t *testing.T, repos *Repositories, programmeID int64, name string, year int, prereqs ...int64) *models.Course {
	t.Helper()
	c := &models.Course{ProgrammeID: programmeID, Name: name, Credits: 5, Year: year, Semester: 1}
	if err := repos.CourseRepository.Save(context.Background(), c, prereqs, nil); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
	return c
}

func TestCourseRepositorySaveReplacesEdges(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()
	p := createTestProgramme(t, repos, "Edges")

	y1 := saveTestCourse(t, repos, p.ID, "Y1", 1)
	y1b := saveTestCourse(t, repos, p.ID, "Y1b", 1)
	y2 := saveTestCourse(t, repos, p.ID, "Y2", 2, y1.ID)

	if err := repos.CourseRepository.Save(ctx, y2, []int64{y1b.ID}, nil); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repos.CourseRepository.GetByID(ctx, y2.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got.PrerequisiteIDs, []int64{y1b.ID}) {
		t.Fatalf("prerequisites = %v, want [%d]", got.PrerequisiteIDs, y1b.ID)
	}

	if err := repos.CourseRepository.Save(ctx, y2, nil, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	snapshot, err := repos.CourseRepository.LoadSnapshot(ctx, p.ID, nil)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snapshot.Edges.EdgeList()) != 0 {
		t.Fatalf("expected no edges, got %v", snapshot.Edges.EdgeList())
	}
}

func TestCourseRepositorySnapshotIncludesOtherProgrammes(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()
	cs := createTestProgramme(t, repos, "Computing")
	maths := createTestProgramme(t, repos, "Maths")

	algebra := saveTestCourse(t, repos, maths.ID, "Algebra", 1)
	calculus := saveTestCourse(t, repos, maths.ID, "Calculus", 1)
	y1 := saveTestCourse(t, repos, cs.ID, "Y1", 1)
	y2 := saveTestCourse(t, repos, cs.ID, "Y2", 2, y1.ID, algebra.ID)

	snapshot, err := repos.CourseRepository.LoadSnapshot(ctx, cs.ID, []int64{calculus.ID})
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	for _, id := range []int64{y1.ID, y2.ID, algebra.ID, calculus.ID} {
		if _, ok := snapshot.Courses[id]; !ok {
			t.Errorf("course %d missing from snapshot", id)
		}
	}
	if got := snapshot.Courses[algebra.ID].ProgrammeID; got != maths.ID {
		t.Errorf("algebra programme = %d, want %d", got, maths.ID)
	}

	want := []prerequisites.Edge{
		{CourseID: y2.ID, DependsOnID: y1.ID},
		{CourseID: y2.ID, DependsOnID: algebra.ID},
	}
	if y1.ID > algebra.ID {
		want[0], want[1] = want[1], want[0]
	}
	if got := snapshot.Edges.EdgeList(); !reflect.DeepEqual(got, want) {
		t.Fatalf("edges = %v, want %v", got, want)
	}
}

func TestCourseRepositoryDeleteRefusesWhileRequired(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()
	p := createTestProgramme(t, repos, "Delete")

	y1 := saveTestCourse(t, repos, p.ID, "Y1", 1)
	y2 := saveTestCourse(t, repos, p.ID, "Y2", 2, y1.ID)

	err := repos.CourseRepository.Delete(ctx, y1.ID)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	var custom *apperrors.CustomError
	if !errors.As(err, &custom) || !reflect.DeepEqual(custom.Details["dependents"], []int64{y2.ID}) {
		t.Fatalf("expected dependents [%d], got %v", y2.ID, err)
	}

	if err := repos.CourseRepository.Delete(ctx, y2.ID); err != nil {
		t.Fatalf("delete dependent: %v", err)
	}
	if err := repos.CourseRepository.Delete(ctx, y1.ID); err != nil {
		t.Fatalf("delete prerequisite: %v", err)
	}
	if err := repos.CourseRepository.Delete(ctx, y1.ID); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCourseRepositorySaveRecheckAborts(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()
	p := createTestProgramme(t, repos, "Recheck")

	errRejected := errors.New("rejected")
	var seenYears int
	c := &models.Course{ProgrammeID: p.ID, Name: "Y3", Credits: 5, Year: 3, Semester: 1}
	err := repos.CourseRepository.Save(ctx, c, nil, func(yearsToStudy int, _ prerequisites.Snapshot) error {
		seenYears = yearsToStudy
		return errRejected
	})
	if err != errRejected {
		t.Fatalf("expected the recheck error unchanged, got %v", err)
	}
	if seenYears != p.YearsToStudy {
		t.Fatalf("recheck saw %d years, want %d", seenYears, p.YearsToStudy)
	}

	courses, err := repos.CourseRepository.ListByProgramme(ctx, p.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(courses) != 0 {
		t.Fatalf("rejected save left %d courses", len(courses))
	}
}

func TestProgrammeRepositoryUpdateGuardSeesCourses(t *testing.T) {
	repos := openTestRepositories(t)
	ctx := context.Background()
	p := createTestProgramme(t, repos, "Guard")
	saveTestCourse(t, repos, p.ID, "Y4", 4)

	errTooShort := errors.New("too short")
	p.YearsToStudy = 3
	err := repos.ProgrammeRepository.Update(ctx, p, func(maxCourseYear int) error {
		if maxCourseYear > 3 {
			return errTooShort
		}
		return nil
	})
	if err != errTooShort {
		t.Fatalf("expected guard error, got %v", err)
	}

	stored, err := repos.ProgrammeRepository.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.YearsToStudy != 4 {
		t.Fatalf("years = %d, want 4", stored.YearsToStudy)
	}
}
