package services

import (
	"context"

	"github.com/yigit/curricula/internal/app/models"
	"github.com/yigit/curricula/internal/app/prerequisites"
)

// Services defined in this package:
// - AuthService: administrator login
// - ProgrammeService: programme CRUD
// - CourseService: course CRUD with prerequisite validation, graph views
// - AuditService: integrity audit across every programme

// ProgrammeStore is the persistence the programme and audit services need.
type ProgrammeStore interface {
	Create(ctx context.Context, programme *models.Programme) error
	GetByID(ctx context.Context, id int64) (*models.Programme, error)
	List(ctx context.Context, offset uint64, limit int) ([]*models.Programme, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, programme *models.Programme, guard func(maxCourseYear int) error) error
	Delete(ctx context.Context, id int64) error
	ListIDs(ctx context.Context) ([]int64, error)
}

// CourseStore is the persistence the course service needs.
type CourseStore interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	ListByProgramme(ctx context.Context, programmeID int64) ([]*models.Course, error)
	LoadSnapshot(ctx context.Context, programmeID int64, extra []int64) (prerequisites.Snapshot, error)
	Save(ctx context.Context, course *models.Course, prereqIDs []int64, recheck func(yearsToStudy int, snapshot prerequisites.Snapshot) error) error
	Delete(ctx context.Context, id int64) error
}

// GraphCache keeps rendered graph images between requests.
type GraphCache interface {
	Get(ctx context.Context, programmeID int64) ([]byte, bool, error)
	Set(ctx context.Context, programmeID int64, png []byte) error
	Invalidate(ctx context.Context, programmeID int64) error
}

// Change kinds passed to a ChangeNotifier.
const (
	ChangeCourseCreated    = "course.created"
	ChangeCourseUpdated    = "course.updated"
	ChangeCourseDeleted    = "course.deleted"
	ChangeProgrammeUpdated = "programme.updated"
	ChangeProgrammeDeleted = "programme.deleted"
)

// ChangeNotifier is told about every committed curriculum change.
type ChangeNotifier interface {
	Notify(programmeID int64, kind string, courseID int64)
}
