package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/curricula/internal/app/models"
	"github.com/yigit/curricula/internal/app/prerequisites"
	"github.com/yigit/curricula/internal/db"
	"github.com/yigit/curricula/internal/pkg/apperrors"
	"github.com/yigit/curricula/internal/pkg/dberrors"
)

const courseNameConstraint = "courses_programme_name_key"

// Course row plus its prerequisite ids, aggregated in one pass.
const courseSelect = `
	SELECT c.id, c.programme_id, c.name, c.credits, c.year, c.semester, c.description,
	       c.created_at, c.updated_at,
	       COALESCE(array_agg(d.depends_on_id ORDER BY d.depends_on_id)
	                FILTER (WHERE d.depends_on_id IS NOT NULL), '{}') AS prerequisites
	FROM courses c
	LEFT JOIN course_dependencies d ON d.course_id = c.id`

// CourseRepository handles database operations for courses and their
// prerequisite edges
type CourseRepository struct {
	db       *pgxpool.Pool
	database *db.PostgresDB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(database *db.PostgresDB) *CourseRepository {
	return &CourseRepository{
		db:       database.Pool,
		database: database,
	}
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID,
		&c.ProgrammeID,
		&c.Name,
		&c.Credits,
		&c.Year,
		&c.Semester,
		&c.Description,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.PrerequisiteIDs,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID retrieves a course with its prerequisite ids
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := courseSelect + ` WHERE c.id = $1 GROUP BY c.id`

	course, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// ListByProgramme returns the courses of a programme ordered by year,
// semester and name
func (r *CourseRepository) ListByProgramme(ctx context.Context, programmeID int64) ([]*models.Course, error) {
	query := courseSelect + `
		WHERE c.programme_id = $1
		GROUP BY c.id
		ORDER BY c.year, c.semester, c.name`

	rows, err := r.db.Query(ctx, query, programmeID)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

func collectNodes(rows pgx.Rows) ([]prerequisites.Course, error) {
	var out []prerequisites.Course
	for rows.Next() {
		var c prerequisites.Course
		if err := rows.Scan(&c.ID, &c.ProgrammeID, &c.Name, &c.Year, &c.Semester); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// LoadSnapshot reads a programme's courses and edges in one read-only
// transaction. Courses listed in extra and courses on the far end of stored
// edges are included even when they belong to another programme.
func (r *CourseRepository) LoadSnapshot(ctx context.Context, programmeID int64, extra []int64) (prerequisites.Snapshot, error) {
	var snapshot prerequisites.Snapshot
	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		var err error
		snapshot, err = readSnapshot(ctx, tx, programmeID, extra)
		return err
	})
	if err != nil {
		return prerequisites.Snapshot{}, err
	}

	return snapshot, nil
}

func readSnapshot(ctx context.Context, tx pgx.Tx, programmeID int64, extra []int64) (prerequisites.Snapshot, error) {
	snapshot := prerequisites.Snapshot{
		ProgrammeID: programmeID,
		Courses:     make(map[int64]prerequisites.Course),
		Edges:       make(prerequisites.Graph),
	}
	if extra == nil {
		extra = []int64{}
	}

	rows, err := tx.Query(ctx, `
		SELECT id, programme_id, name, year, semester
		FROM courses
		WHERE programme_id = $1
		   OR id = ANY($2)
		   OR id IN (
		       SELECT d.depends_on_id
		       FROM course_dependencies d
		       JOIN courses dc ON dc.id = d.course_id
		       WHERE dc.programme_id = $1
		   )`, programmeID, extra)
	if err != nil {
		return snapshot, fmt.Errorf("error loading snapshot courses: %w", err)
	}
	nodes, err := collectNodes(rows)
	rows.Close()
	if err != nil {
		return snapshot, fmt.Errorf("error scanning snapshot courses: %w", err)
	}
	for _, n := range nodes {
		snapshot.Courses[n.ID] = n
	}

	rows, err = tx.Query(ctx, `
		SELECT d.course_id, d.depends_on_id
		FROM course_dependencies d
		JOIN courses c ON c.id = d.course_id
		WHERE c.programme_id = $1
		ORDER BY d.course_id, d.depends_on_id`, programmeID)
	if err != nil {
		return snapshot, fmt.Errorf("error loading snapshot edges: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var courseID, dependsOnID int64
		if err := rows.Scan(&courseID, &dependsOnID); err != nil {
			return snapshot, fmt.Errorf("error scanning snapshot edge: %w", err)
		}
		snapshot.Edges[courseID] = append(snapshot.Edges[courseID], dependsOnID)
	}
	return snapshot, rows.Err()
}

// lockProgramme takes the row lock that serialises writers of one programme
// and returns its length in years.
func lockProgramme(ctx context.Context, tx pgx.Tx, programmeID int64) (int, error) {
	var yearsToStudy int
	err := tx.QueryRow(ctx,
		`SELECT years_to_study FROM programmes WHERE id = $1 FOR UPDATE`, programmeID,
	).Scan(&yearsToStudy)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return 0, apperrors.ErrProgrammeNotFound
		}
		return 0, fmt.Errorf("error locking programme: %w", err)
	}
	return yearsToStudy, nil
}

func findDependents(ctx context.Context, tx pgx.Tx, courseID int64) ([]int64, error) {
	rows, err := tx.Query(ctx,
		`SELECT course_id FROM course_dependencies WHERE depends_on_id = $1 ORDER BY course_id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("error finding dependents: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Save inserts (ID == 0) or updates the course row and replaces its
// prerequisite edges with prereqIDs, all in one transaction. Writers of the
// same programme are serialised on the programme row, and recheck (when set)
// sees the programme length and snapshot as of that lock; its error aborts
// the save unchanged.
func (r *CourseRepository) Save(ctx context.Context, course *models.Course, prereqIDs []int64, recheck func(yearsToStudy int, snapshot prerequisites.Snapshot) error) error {
	if prereqIDs == nil {
		prereqIDs = []int64{}
	}

	err := r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		yearsToStudy, err := lockProgramme(ctx, tx, course.ProgrammeID)
		if err != nil {
			return err
		}

		if recheck != nil {
			snapshot, err := readSnapshot(ctx, tx, course.ProgrammeID, prereqIDs)
			if err != nil {
				return err
			}
			if err := recheck(yearsToStudy, snapshot); err != nil {
				return &rejection{err: err}
			}
		}

		if course.ID == 0 {
			err = tx.QueryRow(ctx, `
				INSERT INTO courses (programme_id, name, credits, year, semester, description)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id, created_at, updated_at`,
				course.ProgrammeID, course.Name, course.Credits, course.Year, course.Semester, course.Description,
			).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
		} else {
			err = tx.QueryRow(ctx, `
				UPDATE courses
				SET name = $1, credits = $2, year = $3, semester = $4, description = $5, updated_at = NOW()
				WHERE id = $6 AND programme_id = $7
				RETURNING created_at, updated_at`,
				course.Name, course.Credits, course.Year, course.Semester, course.Description,
				course.ID, course.ProgrammeID,
			).Scan(&course.CreatedAt, &course.UpdatedAt)
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM course_dependencies WHERE course_id = $1`, course.ID); err != nil {
			return fmt.Errorf("error clearing prerequisites: %w", err)
		}
		if len(prereqIDs) > 0 {
			_, err := tx.Exec(ctx, `
				INSERT INTO course_dependencies (course_id, depends_on_id)
				SELECT $1, unnest($2::bigint[])
				ON CONFLICT DO NOTHING`, course.ID, prereqIDs)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var rejected *rejection
		switch {
		case errors.As(err, &rejected):
			return rejected.err
		case dberrors.IsCheckViolation(err):
			return apperrors.NewBadRequestError("course values rejected by the database")
		case dberrors.IsNoRows(err):
			return apperrors.ErrCourseNotFound
		case dberrors.IsDuplicateConstraintError(err, courseNameConstraint):
			return apperrors.ErrCourseAlreadyExists
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewConflictError("a referenced course was deleted concurrently")
		case apperrors.Is(err, apperrors.ErrProgrammeNotFound):
			return err
		}
		return fmt.Errorf("error saving course: %w", err)
	}

	course.PrerequisiteIDs = append([]int64(nil), prereqIDs...)
	return nil
}

// Delete removes a course unless another course still requires it. The
// dependents check and the delete share the programme row lock Save takes,
// so no edge to the course can be added in between.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	err := r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var programmeID int64
		if err := tx.QueryRow(ctx, `SELECT programme_id FROM courses WHERE id = $1`, id).Scan(&programmeID); err != nil {
			return err
		}
		if _, err := lockProgramme(ctx, tx, programmeID); err != nil {
			return err
		}

		dependents, err := findDependents(ctx, tx, id)
		if err != nil {
			return err
		}
		if len(dependents) > 0 {
			return apperrors.ErrCourseHasDependents.WithDetails(map[string]interface{}{
				"dependents": dependents,
			})
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrCourseNotFound
		}
		return nil
	})
	if err != nil {
		switch {
		case dberrors.IsNoRows(err):
			return apperrors.ErrCourseNotFound
		case apperrors.Is(err, apperrors.ErrCourseNotFound, apperrors.ErrProgrammeNotFound, apperrors.ErrConflict):
			return err
		}
		return fmt.Errorf("error deleting course: %w", err)
	}

	return nil
}
