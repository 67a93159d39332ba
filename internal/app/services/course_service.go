package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yigit/curricula/internal/app/models"
	"github.com/yigit/curricula/internal/app/prerequisites"
	"github.com/yigit/curricula/internal/observability"
	"github.com/yigit/curricula/internal/pkg/apperrors"
	"github.com/yigit/curricula/internal/pkg/render"
	"github.com/yigit/curricula/internal/pkg/validation"
)

// ProgrammeGraph is the adjacency view of a programme together with any
// integrity problems found in the stored edges.
type ProgrammeGraph struct {
	Programme *models.Programme
	Courses   []*models.Course
	Edges     []prerequisites.Edge
	Issues    []validation.Violation
}

// Draft is the verdict of a dry run. Edges is the programme's edge set as it
// would be stored after the save and stays empty for a rejected draft. A
// course that does not exist yet shows up as course id 0.
type Draft struct {
	prerequisites.Result
	Edges []prerequisites.Edge
}

// CourseService handles course-related operations
type CourseService struct {
	courses    CourseStore
	programmes ProgrammeStore
	graphCache GraphCache
	renderPNG  func(render.Graph) ([]byte, error)
	maxCredits int
	notifier   ChangeNotifier
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance. graphCache may be nil.
func NewCourseService(courses CourseStore, programmes ProgrammeStore, graphCache GraphCache, maxCredits int, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courses:    courses,
		programmes: programmes,
		graphCache: graphCache,
		renderPNG:  render.PNG,
		maxCredits: maxCredits,
		logger:     logger,
	}
}

// SetNotifier registers the receiver of course change events.
func (s *CourseService) SetNotifier(n ChangeNotifier) {
	s.notifier = n
}

// validateCourse checks the course's own fields against its programme. The
// name is trimmed in place.
func (s *CourseService) validateCourse(course *models.Course, programme *models.Programme) []validation.Violation {
	var c validation.Collector

	course.Name = strings.TrimSpace(course.Name)
	if course.Name == "" {
		c.Add("name", validation.CodeRequired, "name is required")
	} else if !validation.NewStringValidation(course.Name).
		WithMinLength(validation.NameMinLength).
		WithMaxLength(validation.NameMaxLength).
		Validate() {
		c.Add("name", validation.CodeOutOfRange,
			fmt.Sprintf("name must be between %d and %d characters", validation.NameMinLength, validation.NameMaxLength))
	}

	if !validation.NewNumericValidation(course.Credits).WithMin(validation.CreditsMin).WithMax(s.maxCredits).Validate() {
		c.Add("credits", validation.CodeOutOfRange,
			fmt.Sprintf("credits must be between %d and %d", validation.CreditsMin, s.maxCredits))
	}

	if !validation.NewNumericValidation(course.Year).WithMin(1).WithMax(programme.YearsToStudy).Validate() {
		c.Add("year", validation.CodeOutOfRange,
			fmt.Sprintf("year must be between 1 and %d", programme.YearsToStudy))
	}

	if !validation.NewNumericValidation(course.Semester).WithMin(validation.SemesterMin).WithMax(validation.SemesterMax).Validate() {
		c.Add("semester", validation.CodeOutOfRange,
			fmt.Sprintf("semester must be between %d and %d", validation.SemesterMin, validation.SemesterMax))
	}

	if course.Description != nil {
		trimmed := strings.TrimSpace(*course.Description)
		if trimmed == "" {
			course.Description = nil
		} else if !validation.NewStringValidation(trimmed).WithMaxLength(validation.DescriptionMaxLength).Validate() {
			c.Add("description", validation.CodeOutOfRange,
				fmt.Sprintf("description must be at most %d characters", validation.DescriptionMaxLength))
		} else {
			course.Description = &trimmed
		}
	}

	return c.Violations()
}

// check runs the field rules and the prerequisite rules and returns every
// violation found by either, along with the snapshot it checked against.
func (s *CourseService) check(ctx context.Context, programme *models.Programme, course *models.Course, prereqIDs []int64) (prerequisites.Result, prerequisites.Snapshot, error) {
	fieldViolations := s.validateCourse(course, programme)

	snapshot, err := s.courses.LoadSnapshot(ctx, programme.ID, prereqIDs)
	if err != nil {
		return prerequisites.Result{}, prerequisites.Snapshot{}, err
	}

	result := prerequisites.Validate(course.Candidate(), prereqIDs, snapshot)

	codes := make([]string, 0, len(result.Violations))
	for _, v := range result.Violations {
		codes = append(codes, v.Code)
	}
	observability.ObservePrerequisiteCheck(codes)

	if len(fieldViolations) > 0 {
		result = prerequisites.Result{Violations: append(fieldViolations, result.Violations...)}
	}
	return result, snapshot, nil
}

func (s *CourseService) save(ctx context.Context, programme *models.Programme, course *models.Course, prereqIDs []int64) error {
	ctx, span := observability.StartSpan(ctx, "CourseService.save")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("programme.id", programme.ID),
		attribute.Int64("course.id", course.ID),
		attribute.Int("prerequisites.count", len(prereqIDs)),
	)

	result, _, err := s.check(ctx, programme, course, prereqIDs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot failed")
		return err
	}
	if !result.OK() {
		span.SetAttributes(attribute.Int("violations.count", len(result.Violations)))
		return result.Err()
	}

	accepted := make([]int64, 0, len(result.Accepted))
	for _, e := range result.Accepted {
		accepted = append(accepted, e.DependsOnID)
	}

	// Another writer may have changed the programme since the check above.
	candidate := course.Candidate()
	recheck := func(yearsToStudy int, snapshot prerequisites.Snapshot) error {
		if candidate.Year > yearsToStudy {
			var c validation.Collector
			c.Add(prerequisites.FieldYear, validation.CodeOutOfRange,
				fmt.Sprintf("year must be between 1 and %d", yearsToStudy))
			return c.Err()
		}
		return prerequisites.Validate(candidate, accepted, snapshot).Err()
	}

	if err := s.courses.Save(ctx, course, accepted, recheck); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		return err
	}

	s.invalidateGraph(ctx, programme.ID)
	return nil
}

// ListByProgramme returns the courses of an existing programme
func (s *CourseService) ListByProgramme(ctx context.Context, programmeID int64) ([]*models.Course, error) {
	if _, err := s.programmes.GetByID(ctx, programmeID); err != nil {
		return nil, err
	}
	return s.courses.ListByProgramme(ctx, programmeID)
}

// Get retrieves a course with its prerequisite ids
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.ErrCourseNotFound
	}
	return s.courses.GetByID(ctx, id)
}

// Create validates and stores a new course of course.ProgrammeID with the
// given prerequisites
func (s *CourseService) Create(ctx context.Context, course *models.Course, prereqIDs []int64) error {
	programme, err := s.programmes.GetByID(ctx, course.ProgrammeID)
	if err != nil {
		return err
	}

	course.ID = 0
	if err := s.save(ctx, programme, course, prereqIDs); err != nil {
		return err
	}

	s.logger.Info().
		Int64("courseId", course.ID).
		Int64("programmeId", programme.ID).
		Ints64("prerequisites", course.PrerequisiteIDs).
		Msg("Course created")
	s.notify(programme.ID, ChangeCourseCreated, course.ID)
	return nil
}

// Update overwrites course id with the given fields and prerequisites. A
// course stays in the programme it was created in.
func (s *CourseService) Update(ctx context.Context, id int64, course *models.Course, prereqIDs []int64) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	programme, err := s.programmes.GetByID(ctx, existing.ProgrammeID)
	if err != nil {
		return err
	}

	course.ID = existing.ID
	course.ProgrammeID = existing.ProgrammeID
	if err := s.save(ctx, programme, course, prereqIDs); err != nil {
		return err
	}

	s.logger.Info().
		Int64("courseId", course.ID).
		Ints64("prerequisites", course.PrerequisiteIDs).
		Msg("Course updated")
	s.notify(programme.ID, ChangeCourseUpdated, course.ID)
	return nil
}

// ValidateDraft answers whether a create (courseID == 0) or an update would be
// accepted, without writing anything.
func (s *CourseService) ValidateDraft(ctx context.Context, programmeID, courseID int64, course *models.Course, prereqIDs []int64) (*Draft, error) {
	programme, err := s.programmes.GetByID(ctx, programmeID)
	if err != nil {
		return nil, err
	}

	course.ID = 0
	if courseID > 0 {
		existing, err := s.courses.GetByID(ctx, courseID)
		if err != nil {
			return nil, err
		}
		if existing.ProgrammeID != programmeID {
			return nil, apperrors.ErrCourseNotFound
		}
		course.ID = existing.ID
	}
	course.ProgrammeID = programmeID

	result, snapshot, err := s.check(ctx, programme, course, prereqIDs)
	if err != nil {
		return nil, err
	}

	draft := &Draft{Result: result}
	if result.OK() {
		draft.Edges = prerequisites.Merge(snapshot.Edges, course.ID, result.Accepted).EdgeList()
	}
	return draft, nil
}

// Delete removes a course unless another course still requires it. The store
// refuses with ErrCourseHasDependents listing the dependents.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	course, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateGraph(ctx, course.ProgrammeID)
	s.logger.Info().Int64("courseId", id).Int64("programmeId", course.ProgrammeID).Msg("Course deleted")
	s.notify(course.ProgrammeID, ChangeCourseDeleted, id)
	return nil
}

// Graph returns the programme's courses, stored edges and audit findings
func (s *CourseService) Graph(ctx context.Context, programmeID int64) (*ProgrammeGraph, error) {
	programme, err := s.programmes.GetByID(ctx, programmeID)
	if err != nil {
		return nil, err
	}

	courses, err := s.courses.ListByProgramme(ctx, programmeID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.courses.LoadSnapshot(ctx, programmeID, nil)
	if err != nil {
		return nil, err
	}

	edges := snapshot.Edges.EdgeList()
	if edges == nil {
		edges = []prerequisites.Edge{}
	}
	issues := prerequisites.Audit(snapshot)
	if issues == nil {
		issues = []validation.Violation{}
	}

	return &ProgrammeGraph{
		Programme: programme,
		Courses:   courses,
		Edges:     edges,
		Issues:    issues,
	}, nil
}

// RenderGraph returns the programme graph as a PNG, from the cache when it
// holds a current copy
func (s *CourseService) RenderGraph(ctx context.Context, programmeID int64) ([]byte, error) {
	if s.graphCache != nil {
		cached, ok, err := s.graphCache.Get(ctx, programmeID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("programmeId", programmeID).Msg("Graph cache unavailable")
		} else {
			observability.ObserveGraphCache(ok)
			if ok {
				return cached, nil
			}
		}
	}

	graph, err := s.Graph(ctx, programmeID)
	if err != nil {
		return nil, err
	}

	_, span := observability.StartSpan(ctx, "CourseService.renderGraph")
	png, err := s.renderPNG(toRenderGraph(graph))
	span.End()
	if err != nil {
		return nil, fmt.Errorf("error rendering graph: %w", err)
	}

	if s.graphCache != nil {
		if err := s.graphCache.Set(ctx, programmeID, png); err != nil {
			s.logger.Warn().Err(err).Int64("programmeId", programmeID).Msg("Failed to cache graph")
		}
	}
	return png, nil
}

func toRenderGraph(g *ProgrammeGraph) render.Graph {
	nodes := make([]render.Node, 0, len(g.Courses))
	for _, c := range g.Courses {
		nodes = append(nodes, render.Node{ID: c.ID, Label: c.Name, Year: c.Year, Semester: c.Semester})
	}
	flagged := make(map[int64]bool, len(g.Issues))
	for _, v := range g.Issues {
		flagged[v.CourseID] = true
	}
	return render.Graph{
		Title:   fmt.Sprintf("%s (%s, %d years)", g.Programme.Name, g.Programme.Degree, g.Programme.YearsToStudy),
		Nodes:   nodes,
		Edges:   g.Edges,
		Flagged: flagged,
	}
}

func (s *CourseService) invalidateGraph(ctx context.Context, programmeID int64) {
	if s.graphCache == nil {
		return
	}
	if err := s.graphCache.Invalidate(ctx, programmeID); err != nil {
		s.logger.Warn().Err(err).Int64("programmeId", programmeID).Msg("Failed to invalidate graph cache")
	}
}

func (s *CourseService) notify(programmeID int64, kind string, courseID int64) {
	if s.notifier != nil {
		s.notifier.Notify(programmeID, kind, courseID)
	}
}
