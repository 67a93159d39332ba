package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/curricula/internal/app/models"
	"github.com/yigit/curricula/internal/pkg/apperrors"
	"github.com/yigit/curricula/internal/pkg/helpers"
	"github.com/yigit/curricula/internal/pkg/validation"
)

// ProgrammePage is one page of the programme list
type ProgrammePage struct {
	Programmes []*models.Programme
	Total      int64
	Page       int
	Size       int
}

// ProgrammeService handles programme-related operations
type ProgrammeService struct {
	programmes ProgrammeStore
	graphCache GraphCache
	notifier   ChangeNotifier
	logger     zerolog.Logger
}

// NewProgrammeService creates a new programme service instance. graphCache may be nil.
func NewProgrammeService(programmes ProgrammeStore, graphCache GraphCache, logger zerolog.Logger) *ProgrammeService {
	return &ProgrammeService{
		programmes: programmes,
		graphCache: graphCache,
		logger:     logger,
	}
}

// SetNotifier registers the receiver of programme change events.
func (s *ProgrammeService) SetNotifier(n ChangeNotifier) {
	s.notifier = n
}

// validateProgramme checks the editable fields and normalises the name
func validateProgramme(programme *models.Programme) error {
	var c validation.Collector

	programme.Name = strings.TrimSpace(programme.Name)
	if programme.Name == "" {
		c.Add("name", validation.CodeRequired, "name is required")
	} else if !validation.NewStringValidation(programme.Name).
		WithMinLength(validation.NameMinLength).
		WithMaxLength(validation.NameMaxLength).
		Validate() {
		c.Add("name", validation.CodeOutOfRange,
			fmt.Sprintf("name must be between %d and %d characters", validation.NameMinLength, validation.NameMaxLength))
	}

	if !validation.NewNumericValidation(programme.YearsToStudy).
		WithMin(validation.YearsToStudyMin).
		WithMax(validation.YearsToStudyMax).
		Validate() {
		c.Add("yearsToStudy", validation.CodeOutOfRange,
			fmt.Sprintf("years to study must be between %d and %d", validation.YearsToStudyMin, validation.YearsToStudyMax))
	}

	if !validation.OneOf(string(programme.Type), models.ProgrammeTypes...) {
		c.Add("type", validation.CodeInvalidValue, "type must be one of: "+strings.Join(models.ProgrammeTypes, ", "))
	}

	if programme.Degree == "" {
		programme.Degree = models.DegreeBachelor
	}
	if !validation.OneOf(string(programme.Degree), models.Degrees...) {
		c.Add("degree", validation.CodeInvalidValue, "degree must be one of: "+strings.Join(models.Degrees, ", "))
	}

	return c.Err()
}

// List returns one page of programmes
func (s *ProgrammeService) List(ctx context.Context, page, size int) (*ProgrammePage, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	programmes, err := s.programmes.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.programmes.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &ProgrammePage{Programmes: programmes, Total: total, Page: page, Size: limit}, nil
}

// Get retrieves a programme by ID
func (s *ProgrammeService) Get(ctx context.Context, id int64) (*models.Programme, error) {
	if id <= 0 {
		return nil, apperrors.ErrProgrammeNotFound
	}
	return s.programmes.GetByID(ctx, id)
}

// Create validates and stores a new programme
func (s *ProgrammeService) Create(ctx context.Context, programme *models.Programme) error {
	if err := validateProgramme(programme); err != nil {
		return err
	}

	if err := s.programmes.Create(ctx, programme); err != nil {
		return err
	}

	s.logger.Info().Int64("programmeId", programme.ID).Str("name", programme.Name).Msg("Programme created")
	return nil
}

// Update overwrites a programme. Shrinking years to study below a year that
// already holds courses is rejected.
func (s *ProgrammeService) Update(ctx context.Context, programme *models.Programme) error {
	if err := validateProgramme(programme); err != nil {
		return err
	}

	guard := func(maxCourseYear int) error {
		if maxCourseYear <= programme.YearsToStudy {
			return nil
		}
		var c validation.Collector
		c.Add("yearsToStudy", validation.CodeOutOfRange,
			fmt.Sprintf("programme has courses in year %d; years to study cannot be lower", maxCourseYear))
		return c.Err()
	}

	if err := s.programmes.Update(ctx, programme, guard); err != nil {
		return err
	}

	s.invalidateGraph(ctx, programme.ID)
	s.logger.Info().Int64("programmeId", programme.ID).Msg("Programme updated")
	s.notify(programme.ID, ChangeProgrammeUpdated)
	return nil
}

// Delete removes a programme together with its courses
func (s *ProgrammeService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.ErrProgrammeNotFound
	}

	if err := s.programmes.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateGraph(ctx, id)
	s.logger.Info().Int64("programmeId", id).Msg("Programme deleted")
	s.notify(id, ChangeProgrammeDeleted)
	return nil
}

func (s *ProgrammeService) invalidateGraph(ctx context.Context, programmeID int64) {
	if s.graphCache == nil {
		return
	}
	if err := s.graphCache.Invalidate(ctx, programmeID); err != nil {
		s.logger.Warn().Err(err).Int64("programmeId", programmeID).Msg("Failed to invalidate graph cache")
	}
}

func (s *ProgrammeService) notify(programmeID int64, kind string) {
	if s.notifier != nil {
		s.notifier.Notify(programmeID, kind, 0)
	}
}
