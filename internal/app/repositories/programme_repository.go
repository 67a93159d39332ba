package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/curricula/internal/app/models"
	"github.com/yigit/curricula/internal/pkg/apperrors"
	"github.com/yigit/curricula/internal/pkg/dberrors"
)

const programmeNameConstraint = "programmes_name_key"

const programmeColumns = `
	p.id, p.name, p.years_to_study, p.type, p.degree, p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM courses c WHERE c.programme_id = p.id) AS course_count`

// ProgrammeRepository handles database operations for programmes
type ProgrammeRepository struct {
	db *pgxpool.Pool
}

// NewProgrammeRepository creates a new programme repository
func NewProgrammeRepository(db *pgxpool.Pool) *ProgrammeRepository {
	return &ProgrammeRepository{
		db: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgramme(row rowScanner) (*models.Programme, error) {
	var p models.Programme
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.YearsToStudy,
		&p.Type,
		&p.Degree,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.CourseCount,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a programme and fills in its id and timestamps
func (r *ProgrammeRepository) Create(ctx context.Context, programme *models.Programme) error {
	query := `
		INSERT INTO programmes (name, years_to_study, type, degree)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		programme.Name, programme.YearsToStudy, programme.Type, programme.Degree,
	).Scan(&programme.ID, &programme.CreatedAt, &programme.UpdatedAt)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, programmeNameConstraint):
			return apperrors.ErrProgrammeAlreadyExists
		case dberrors.IsCheckViolation(err):
			return apperrors.NewBadRequestError("programme values rejected by the database")
		}
		return fmt.Errorf("error creating programme: %w", err)
	}

	return nil
}

// GetByID retrieves a programme with its course count
func (r *ProgrammeRepository) GetByID(ctx context.Context, id int64) (*models.Programme, error) {
	query := `SELECT ` + programmeColumns + ` FROM programmes p WHERE p.id = $1`

	programme, err := scanProgramme(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrProgrammeNotFound
		}
		return nil, fmt.Errorf("error retrieving programme: %w", err)
	}

	return programme, nil
}

// List returns one page of programmes ordered by name
func (r *ProgrammeRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Programme, error) {
	query := `SELECT ` + programmeColumns + `
		FROM programmes p
		ORDER BY p.name, p.id
		OFFSET $1 LIMIT $2`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing programmes: %w", err)
	}
	defer rows.Close()

	programmes := make([]*models.Programme, 0, limit)
	for rows.Next() {
		programme, err := scanProgramme(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning programme: %w", err)
		}
		programmes = append(programmes, programme)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programmes, nil
}

// Count returns the total number of programmes
func (r *ProgrammeRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM programmes`).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting programmes: %w", err)
	}
	return total, nil
}

// Update overwrites the editable columns of a programme. The row is locked
// first, the same lock course writers take, and guard (when set) sees the
// latest year any of its courses uses; its error aborts the update unchanged.
func (r *ProgrammeRepository) Update(ctx context.Context, programme *models.Programme, guard func(maxCourseYear int) error) error {
	query := `
		UPDATE programmes
		SET name = $1, years_to_study = $2, type = $3, degree = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING created_at, updated_at
	`

	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := lockProgramme(ctx, tx, programme.ID); err != nil {
			return err
		}

		if guard != nil {
			var maxYear int
			err := tx.QueryRow(ctx,
				`SELECT COALESCE(MAX(year), 0) FROM courses WHERE programme_id = $1`, programme.ID,
			).Scan(&maxYear)
			if err != nil {
				return fmt.Errorf("error reading course years: %w", err)
			}
			if err := guard(maxYear); err != nil {
				return &rejection{err: err}
			}
		}

		return tx.QueryRow(ctx, query,
			programme.Name, programme.YearsToStudy, programme.Type, programme.Degree, programme.ID,
		).Scan(&programme.CreatedAt, &programme.UpdatedAt)
	})
	if err != nil {
		var rejected *rejection
		switch {
		case errors.As(err, &rejected):
			return rejected.err
		case apperrors.Is(err, apperrors.ErrProgrammeNotFound):
			return err
		case dberrors.IsCheckViolation(err):
			return apperrors.NewBadRequestError("programme values rejected by the database")
		case dberrors.IsNoRows(err):
			return apperrors.ErrProgrammeNotFound
		case dberrors.IsDuplicateConstraintError(err, programmeNameConstraint):
			return apperrors.ErrProgrammeAlreadyExists
		}
		return fmt.Errorf("error updating programme: %w", err)
	}

	return nil
}

// Delete removes a programme; courses and their edges go with it
func (r *ProgrammeRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM programmes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting programme: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgrammeNotFound
	}

	return nil
}

// ListIDs returns every programme id in ascending order
func (r *ProgrammeRepository) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM programmes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing programme ids: %w", err)
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
