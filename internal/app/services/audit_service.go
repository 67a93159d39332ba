package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/curricula/internal/app/prerequisites"
	"github.com/yigit/curricula/internal/observability"
	"github.com/yigit/curricula/internal/pkg/validation"
)

// AuditReport lists the integrity problems of one programme.
type AuditReport struct {
	ProgrammeID   int64                  `json:"programmeId"`
	ProgrammeName string                 `json:"programmeName"`
	Courses       int                    `json:"courses"`
	Edges         int                    `json:"edges"`
	Issues        []validation.Violation `json:"issues"`
}

// AuditService re-checks stored prerequisite graphs
type AuditService struct {
	programmes ProgrammeStore
	courses    CourseStore
	workers    int
	logger     zerolog.Logger
}

// NewAuditService creates an audit service that checks at most workers
// programmes at a time
func NewAuditService(programmes ProgrammeStore, courses CourseStore, workers int, logger zerolog.Logger) *AuditService {
	if workers < 1 {
		workers = 1
	}
	return &AuditService{
		programmes: programmes,
		courses:    courses,
		workers:    workers,
		logger:     logger,
	}
}

// AuditProgramme checks one programme
func (s *AuditService) AuditProgramme(ctx context.Context, programmeID int64) (AuditReport, error) {
	programme, err := s.programmes.GetByID(ctx, programmeID)
	if err != nil {
		return AuditReport{}, err
	}

	snapshot, err := s.courses.LoadSnapshot(ctx, programmeID, nil)
	if err != nil {
		return AuditReport{}, fmt.Errorf("programme %d: %w", programmeID, err)
	}

	issues := prerequisites.Audit(snapshot)
	observability.SetAuditFindings(programmeID, len(issues))

	courses := 0
	for _, c := range snapshot.Courses {
		if c.ProgrammeID == programmeID {
			courses++
		}
	}

	return AuditReport{
		ProgrammeID:   programmeID,
		ProgrammeName: programme.Name,
		Courses:       courses,
		Edges:         len(snapshot.Edges.EdgeList()),
		Issues:        issues,
	}, nil
}

// AuditAll checks every programme concurrently and returns the reports in
// programme id order. The first failure cancels the remaining work.
func (s *AuditService) AuditAll(ctx context.Context) ([]AuditReport, error) {
	ids, err := s.programmes.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]AuditReport, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, id := range ids {
		g.Go(func() error {
			report, err := s.AuditProgramme(gctx, id)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range reports {
		total += len(r.Issues)
	}
	s.logger.Info().Int("programmes", len(reports)).Int("issues", total).Msg("Audit finished")
	return reports, nil
}
