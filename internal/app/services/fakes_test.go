package services

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/curricula/internal/app/models"
	"github.com/yigit/curricula/internal/app/prerequisites"
	"github.com/yigit/curricula/internal/pkg/apperrors"
)

var testLogger = zerolog.Nop()

type fakeProgrammeStore struct {
	mu         sync.Mutex
	programmes map[int64]*models.Programme
	courses    *fakeCourseStore
	nextID     int64
	failIDs    error
	// beforeUpdate runs ahead of the guard, standing in for a concurrent writer.
	beforeUpdate func()
}

func newFakeProgrammeStore(courses *fakeCourseStore) *fakeProgrammeStore {
	f := &fakeProgrammeStore{programmes: make(map[int64]*models.Programme), courses: courses, nextID: 1}
	if courses != nil {
		courses.programmes = f
	}
	return f
}

func (f *fakeProgrammeStore) add(p models.Programme) *models.Programme {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == 0 {
		p.ID = f.nextID
	}
	if p.ID >= f.nextID {
		f.nextID = p.ID + 1
	}
	f.programmes[p.ID] = &p
	return &p
}

func (f *fakeProgrammeStore) Create(_ context.Context, p *models.Programme) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.programmes {
		if existing.Name == p.Name {
			return apperrors.ErrProgrammeAlreadyExists
		}
	}
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.programmes[p.ID] = &cp
	return nil
}

func (f *fakeProgrammeStore) GetByID(_ context.Context, id int64) (*models.Programme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.programmes[id]
	if !ok {
		return nil, apperrors.ErrProgrammeNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProgrammeStore) List(_ context.Context, offset uint64, limit int) ([]*models.Programme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*models.Programme, 0, len(f.programmes))
	for _, p := range f.programmes {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	if int(offset) >= len(all) {
		return []*models.Programme{}, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeProgrammeStore) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.programmes)), nil
}

func (f *fakeProgrammeStore) Update(_ context.Context, p *models.Programme, guard func(maxCourseYear int) error) error {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	if guard != nil {
		if err := guard(f.maxCourseYear(p.ID)); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.programmes[p.ID]; !ok {
		return apperrors.ErrProgrammeNotFound
	}
	cp := *p
	f.programmes[p.ID] = &cp
	return nil
}

func (f *fakeProgrammeStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.programmes[id]; !ok {
		return apperrors.ErrProgrammeNotFound
	}
	delete(f.programmes, id)
	return nil
}

func (f *fakeProgrammeStore) ListIDs(context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs != nil {
		return nil, f.failIDs
	}
	ids := make([]int64, 0, len(f.programmes))
	for id := range f.programmes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeProgrammeStore) maxCourseYear(programmeID int64) int {
	if f.courses == nil {
		return 0
	}
	f.courses.mu.Lock()
	defer f.courses.mu.Unlock()
	year := 0
	for _, c := range f.courses.courses {
		if c.ProgrammeID == programmeID && c.Year > year {
			year = c.Year
		}
	}
	return year
}

type fakeCourseStore struct {
	mu          sync.Mutex
	courses     map[int64]*models.Course
	edges       prerequisites.Graph
	nextID      int64
	saves       int
	snapshotErr error
	// beforeSave and beforeDelete run ahead of the store's own checks,
	// standing in for a concurrent writer.
	beforeSave   func()
	beforeDelete func()
	programmes   *fakeProgrammeStore
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[int64]*models.Course), edges: make(prerequisites.Graph), nextID: 100}
}

// seed stores a course as-is, bypassing validation.
func (f *fakeCourseStore) seed(c models.Course, prereqs ...int64) *models.Course {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.courses[c.ID] = &c
	if len(prereqs) > 0 {
		f.edges[c.ID] = prereqs
	}
	return &c
}

func (f *fakeCourseStore) withPrereqs(c *models.Course) *models.Course {
	cp := *c
	cp.PrerequisiteIDs = append([]int64{}, f.edges[c.ID]...)
	sort.Slice(cp.PrerequisiteIDs, func(i, j int) bool { return cp.PrerequisiteIDs[i] < cp.PrerequisiteIDs[j] })
	return &cp
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return f.withPrereqs(c), nil
}

func (f *fakeCourseStore) ListByProgramme(_ context.Context, programmeID int64) ([]*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Course, 0)
	for _, c := range f.courses {
		if c.ProgrammeID == programmeID {
			out = append(out, f.withPrereqs(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Semester != out[j].Semester {
			return out[i].Semester < out[j].Semester
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeCourseStore) LoadSnapshot(_ context.Context, programmeID int64, extra []int64) (prerequisites.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snapshotErr != nil {
		return prerequisites.Snapshot{}, f.snapshotErr
	}

	s := prerequisites.Snapshot{
		ProgrammeID: programmeID,
		Courses:     make(map[int64]prerequisites.Course),
		Edges:       make(prerequisites.Graph),
	}
	include := func(id int64) {
		if c, ok := f.courses[id]; ok {
			s.Courses[id] = prerequisites.Course{ID: c.ID, ProgrammeID: c.ProgrammeID, Name: c.Name, Year: c.Year, Semester: c.Semester}
		}
	}
	for id, c := range f.courses {
		if c.ProgrammeID == programmeID {
			include(id)
			if deps, ok := f.edges[id]; ok {
				s.Edges[id] = append([]int64(nil), deps...)
				for _, d := range deps {
					include(d)
				}
			}
		}
	}
	for _, id := range extra {
		include(id)
	}
	return s, nil
}

func (f *fakeCourseStore) Save(ctx context.Context, c *models.Course, prereqIDs []int64, recheck func(yearsToStudy int, snapshot prerequisites.Snapshot) error) error {
	if f.beforeSave != nil {
		f.beforeSave()
	}
	if recheck != nil {
		yearsToStudy := c.Year
		if f.programmes != nil {
			p, err := f.programmes.GetByID(ctx, c.ProgrammeID)
			if err != nil {
				return err
			}
			yearsToStudy = p.YearsToStudy
		}
		snapshot, err := f.LoadSnapshot(ctx, c.ProgrammeID, prereqIDs)
		if err != nil {
			return err
		}
		if err := recheck(yearsToStudy, snapshot); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.courses {
		if existing.ProgrammeID == c.ProgrammeID && existing.Name == c.Name && existing.ID != c.ID {
			return apperrors.ErrCourseAlreadyExists
		}
	}
	if c.ID == 0 {
		c.ID = f.nextID
		f.nextID++
	} else if _, ok := f.courses[c.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	f.saves++
	cp := *c
	cp.PrerequisiteIDs = nil
	f.courses[c.ID] = &cp
	delete(f.edges, c.ID)
	if len(prereqIDs) > 0 {
		f.edges[c.ID] = append([]int64(nil), prereqIDs...)
	}
	c.PrerequisiteIDs = append([]int64(nil), prereqIDs...)
	return nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id int64) error {
	if f.beforeDelete != nil {
		f.beforeDelete()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	var dependents []int64
	for _, cid := range sortedCourseIDs(f.edges) {
		for _, d := range f.edges[cid] {
			if d == id {
				dependents = append(dependents, cid)
				break
			}
		}
	}
	if len(dependents) > 0 {
		return apperrors.ErrCourseHasDependents.WithDetails(map[string]interface{}{
			"dependents": dependents,
		})
	}
	delete(f.courses, id)
	delete(f.edges, id)
	for cid, deps := range f.edges {
		kept := deps[:0]
		for _, d := range deps {
			if d != id {
				kept = append(kept, d)
			}
		}
		f.edges[cid] = kept
	}
	return nil
}

type fakeGraphCache struct {
	mu          sync.Mutex
	images      map[int64][]byte
	invalidated []int64
}

func newFakeGraphCache() *fakeGraphCache {
	return &fakeGraphCache{images: make(map[int64][]byte)}
}

func (f *fakeGraphCache) Get(_ context.Context, programmeID int64) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	img, ok := f.images[programmeID]
	return img, ok, nil
}

func (f *fakeGraphCache) Set(_ context.Context, programmeID int64, png []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images[programmeID] = png
	return nil
}

func (f *fakeGraphCache) Invalidate(_ context.Context, programmeID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.images, programmeID)
	f.invalidated = append(f.invalidated, programmeID)
	return nil
}

type change struct {
	programmeID int64
	kind        string
	courseID    int64
}

type fakeNotifier struct {
	mu      sync.Mutex
	changes []change
}

func (f *fakeNotifier) Notify(programmeID int64, kind string, courseID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changes = append(f.changes, change{programmeID: programmeID, kind: kind, courseID: courseID})
}

func sortedCourseIDs(g prerequisites.Graph) []int64 {
	ids := make([]int64, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
