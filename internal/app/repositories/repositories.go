package repositories

import (
	"github.com/yigit/curricula/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	ProgrammeRepository *ProgrammeRepository
	CourseRepository    *CourseRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		ProgrammeRepository: NewProgrammeRepository(database.Pool),
		CourseRepository:    NewCourseRepository(database),
	}
}

// rejection carries an error returned by a caller-supplied check from inside
// a transaction, so it reaches the caller without repository wrapping.
type rejection struct {
	err error
}

func (e *rejection) Error() string { return e.err.Error() }

func (e *rejection) Unwrap() error { return e.err }
