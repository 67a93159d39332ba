package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/curricula/internal/app/models"
	"github.com/yigit/curricula/internal/app/models/dto"
	"github.com/yigit/curricula/internal/app/prerequisites"
	"github.com/yigit/curricula/internal/app/services"
	"github.com/yigit/curricula/internal/pkg/apperrors"
	"github.com/yigit/curricula/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthService struct {
	login func(req *dto.LoginRequest) (*dto.TokenResponse, error)
}

func (s *stubAuthService) Login(_ context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	return s.login(req)
}

type stubProgrammeService struct {
	list   func(page, size int) (*services.ProgrammePage, error)
	get    func(id int64) (*models.Programme, error)
	create func(p *models.Programme) error
	update func(p *models.Programme) error
	delete func(id int64) error
}

func (s *stubProgrammeService) List(_ context.Context, page, size int) (*services.ProgrammePage, error) {
	return s.list(page, size)
}

func (s *stubProgrammeService) Get(_ context.Context, id int64) (*models.Programme, error) {
	return s.get(id)
}

func (s *stubProgrammeService) Create(_ context.Context, p *models.Programme) error {
	return s.create(p)
}

func (s *stubProgrammeService) Update(_ context.Context, p *models.Programme) error {
	return s.update(p)
}

func (s *stubProgrammeService) Delete(_ context.Context, id int64) error {
	return s.delete(id)
}

type stubCourseService struct {
	list     func(programmeID int64) ([]*models.Course, error)
	get      func(id int64) (*models.Course, error)
	create   func(c *models.Course, prereqIDs []int64) error
	update   func(id int64, c *models.Course, prereqIDs []int64) error
	validate func(programmeID, courseID int64, c *models.Course, prereqIDs []int64) (*services.Draft, error)
	delete   func(id int64) error
	graph    func(programmeID int64) (*services.ProgrammeGraph, error)
	render   func(programmeID int64) ([]byte, error)
}

func (s *stubCourseService) ListByProgramme(_ context.Context, programmeID int64) ([]*models.Course, error) {
	return s.list(programmeID)
}

func (s *stubCourseService) Get(_ context.Context, id int64) (*models.Course, error) {
	return s.get(id)
}

func (s *stubCourseService) Create(_ context.Context, c *models.Course, prereqIDs []int64) error {
	return s.create(c, prereqIDs)
}

func (s *stubCourseService) Update(_ context.Context, id int64, c *models.Course, prereqIDs []int64) error {
	return s.update(id, c, prereqIDs)
}

func (s *stubCourseService) ValidateDraft(_ context.Context, programmeID, courseID int64, c *models.Course, prereqIDs []int64) (*services.Draft, error) {
	return s.validate(programmeID, courseID, c, prereqIDs)
}

func (s *stubCourseService) Delete(_ context.Context, id int64) error {
	return s.delete(id)
}

func (s *stubCourseService) Graph(_ context.Context, programmeID int64) (*services.ProgrammeGraph, error) {
	return s.graph(programmeID)
}

func (s *stubCourseService) RenderGraph(_ context.Context, programmeID int64) ([]byte, error) {
	return s.render(programmeID)
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Error   *dto.ErrorDetail       `json:"error"`
	Errors  []validation.Violation `json:"errors"`
}

func perform(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestLogin(t *testing.T) {
	svc := &stubAuthService{login: func(req *dto.LoginRequest) (*dto.TokenResponse, error) {
		if req.Username == "admin" && req.Password == "secret" {
			return &dto.TokenResponse{AccessToken: "tok", TokenType: "Bearer", ExpiresIn: 60}, nil
		}
		return nil, apperrors.ErrInvalidCredentials
	}}
	r := gin.New()
	r.POST("/auth/login", NewAuthController(svc, zerolog.Nop()).Login)

	rec, env := perform(t, r, http.MethodPost, "/auth/login", `{"username":"admin","password":"secret"}`)
	if rec.Code != http.StatusOK || !strings.Contains(string(env.Data), `"accessToken":"tok"`) {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = perform(t, r, http.MethodPost, "/auth/login", `{"username":"admin","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: %d", rec.Code)
	}

	rec, env = perform(t, r, http.MethodPost, "/auth/login", `{"username":"admin"}`)
	if rec.Code != http.StatusUnprocessableEntity || len(env.Errors) != 1 || env.Errors[0].Field != "password" {
		t.Fatalf("missing password: %d %s", rec.Code, rec.Body.String())
	}
}

func programmeRouter(svc ProgrammeService) *gin.Engine {
	c := NewProgrammeController(svc)
	r := gin.New()
	r.GET("/programmes", c.GetAllProgrammes)
	r.POST("/programmes", c.CreateProgramme)
	r.GET("/programmes/:id", c.GetProgrammeByID)
	r.PUT("/programmes/:id", c.UpdateProgramme)
	r.DELETE("/programmes/:id", c.DeleteProgramme)
	return r
}

func TestProgrammeEndpoints(t *testing.T) {
	stored := &models.Programme{ID: 1, Name: "Computer Science", YearsToStudy: 4, Type: models.ProgrammeFullTime, Degree: models.DegreeBachelor, CourseCount: 2}
	svc := &stubProgrammeService{
		list: func(page, size int) (*services.ProgrammePage, error) {
			return &services.ProgrammePage{Programmes: []*models.Programme{stored}, Total: 21, Page: page, Size: size}, nil
		},
		get: func(id int64) (*models.Programme, error) {
			if id != 1 {
				return nil, apperrors.ErrProgrammeNotFound
			}
			return stored, nil
		},
		create: func(p *models.Programme) error {
			p.ID = 2
			return nil
		},
		update: func(p *models.Programme) error {
			if p.ID != 1 {
				return apperrors.ErrProgrammeNotFound
			}
			return nil
		},
		delete: func(id int64) error { return apperrors.ErrProgrammeNotFound },
	}
	r := programmeRouter(svc)

	t.Run("list", func(t *testing.T) {
		rec, env := perform(t, r, http.MethodGet, "/programmes?page=2&size=10", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d", rec.Code)
		}
		var data dto.ProgrammeListResponse
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode: %v", err)
		}
		want := dto.PaginationInfo{CurrentPage: 2, TotalPages: 3, PageSize: 10, TotalItems: 21}
		if data.Pagination != want || len(data.Programmes) != 1 || data.Programmes[0].CourseCount != 2 {
			t.Fatalf("unexpected list: %+v", data)
		}
	})

	t.Run("create defaults degree", func(t *testing.T) {
		rec, env := perform(t, r, http.MethodPost, "/programmes", `{"name":"Physics","yearsToStudy":3,"type":"distance"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
		var data dto.ProgrammeResponse
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if data.ID != 2 || data.Degree != "bachelor" {
			t.Fatalf("unexpected programme: %+v", data)
		}
	})

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"get", http.MethodGet, "/programmes/1", "", http.StatusOK},
		{"get missing", http.MethodGet, "/programmes/9", "", http.StatusNotFound},
		{"bad id", http.MethodGet, "/programmes/abc", "", http.StatusBadRequest},
		{"create invalid", http.MethodPost, "/programmes", `{"name":"X","yearsToStudy":2,"type":"full-time"}`, http.StatusUnprocessableEntity},
		{"create malformed", http.MethodPost, "/programmes", `{"name":`, http.StatusBadRequest},
		{"update", http.MethodPut, "/programmes/1", `{"name":"Computing","yearsToStudy":4,"type":"full-time"}`, http.StatusOK},
		{"update missing", http.MethodPut, "/programmes/5", `{"name":"Computing","yearsToStudy":4,"type":"full-time"}`, http.StatusNotFound},
		{"delete missing", http.MethodDelete, "/programmes/5", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := perform(t, r, tc.method, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
		})
	}
}

func courseRouter(svc CourseService) *gin.Engine {
	c := NewCourseController(svc)
	g := NewGraphController(svc)
	r := gin.New()
	r.GET("/programmes/:id/courses", c.GetProgrammeCourses)
	r.POST("/programmes/:id/courses", c.CreateCourse)
	r.POST("/programmes/:id/courses/validate", c.ValidateCourse)
	r.GET("/programmes/:id/graph", g.GetProgrammeGraph)
	r.GET("/programmes/:id/graph.png", g.GetProgrammeGraphImage)
	r.GET("/courses/:id", c.GetCourseByID)
	r.PUT("/courses/:id", c.UpdateCourse)
	r.DELETE("/courses/:id", c.DeleteCourse)
	return r
}

func TestCreateCourse(t *testing.T) {
	var gotProgramme int64
	var gotPrereqs []int64
	svc := &stubCourseService{create: func(c *models.Course, prereqIDs []int64) error {
		gotProgramme, gotPrereqs = c.ProgrammeID, prereqIDs
		if c.Name == "Bad" {
			return &validation.Error{Violations: []validation.Violation{
				{Field: "credits", Code: validation.CodeOutOfRange, Message: "credits must be between 1 and 15"},
				{Field: prerequisites.FieldPrerequisites, CourseID: 3, Code: prerequisites.CodeCycle, Message: "circular dependency detected"},
			}}
		}
		c.ID = 11
		c.PrerequisiteIDs = prereqIDs
		return nil
	}}
	r := courseRouter(svc)

	rec, env := perform(t, r, http.MethodPost, "/programmes/4/courses",
		`{"name":"Compilers","credits":6,"year":3,"prerequisites":[1,2]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if gotProgramme != 4 || !reflect.DeepEqual(gotPrereqs, []int64{1, 2}) {
		t.Fatalf("service got programme=%d prereqs=%v", gotProgramme, gotPrereqs)
	}
	var course dto.CourseResponse
	if err := json.Unmarshal(env.Data, &course); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if course.ID != 11 || course.Semester != 1 || !reflect.DeepEqual(course.Prerequisites, []int64{1, 2}) {
		t.Fatalf("unexpected course: %+v", course)
	}

	rec, env = perform(t, r, http.MethodPost, "/programmes/4/courses", `{"name":"Bad","credits":99,"year":3,"prerequisites":[3]}`)
	if rec.Code != http.StatusUnprocessableEntity || len(env.Errors) != 2 || env.Errors[1].CourseID != 3 {
		t.Fatalf("expected both violations in one 422: %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = perform(t, r, http.MethodPost, "/programmes/4/courses", `{"name":"Compilers","prerequisites":"1,2"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("wrong JSON type should be 400, got %d", rec.Code)
	}
}

func TestValidateCourse(t *testing.T) {
	svc := &stubCourseService{validate: func(programmeID, courseID int64, c *models.Course, prereqIDs []int64) (*services.Draft, error) {
		if programmeID != 1 {
			return nil, apperrors.ErrProgrammeNotFound
		}
		if courseID == 5 {
			return &services.Draft{Result: prerequisites.Result{Violations: []validation.Violation{
				{Field: prerequisites.FieldPrerequisites, CourseID: 2, Code: prerequisites.CodeNotEarlier, Message: "prerequisite must be from an earlier year/semester"},
			}}}, nil
		}
		return &services.Draft{
			Result: prerequisites.Result{Accepted: []prerequisites.Edge{{CourseID: courseID, DependsOnID: 2}}},
			Edges:  []prerequisites.Edge{{CourseID: courseID, DependsOnID: 2}, {CourseID: 2, DependsOnID: 1}},
		}, nil
	}}
	r := courseRouter(svc)

	cases := []struct {
		name   string
		path   string
		body   string
		status int
		valid  bool
	}{
		{"accepted", "/programmes/1/courses/validate", `{"name":"Logic","credits":3,"year":2,"prerequisites":[2]}`, http.StatusOK, true},
		{"rejected", "/programmes/1/courses/validate", `{"courseId":5,"name":"Logic","credits":3,"year":1,"prerequisites":[2]}`, http.StatusOK, false},
		{"unknown programme", "/programmes/2/courses/validate", `{"name":"Logic"}`, http.StatusNotFound, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := perform(t, r, http.MethodPost, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
			if tc.status != http.StatusOK {
				return
			}
			var res dto.ValidationResultResponse
			if err := json.Unmarshal(env.Data, &res); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if res.Valid != tc.valid || res.Accepted == nil || res.Edges == nil || res.Errors == nil {
				t.Fatalf("unexpected result: %s", rec.Body.String())
			}
			if tc.valid && len(res.Edges) != 2 {
				t.Fatalf("expected the resulting programme edges, got %+v", res.Edges)
			}
			if !tc.valid && res.Errors[0].Code != prerequisites.CodeNotEarlier {
				t.Fatalf("unexpected errors: %+v", res.Errors)
			}
		})
	}
}

func TestCourseEndpoints(t *testing.T) {
	svc := &stubCourseService{
		get: func(id int64) (*models.Course, error) {
			if id != 1 {
				return nil, apperrors.ErrCourseNotFound
			}
			return &models.Course{ID: 1, ProgrammeID: 1, Name: "Programming I", Credits: 6, Year: 1, Semester: 1}, nil
		},
		list: func(programmeID int64) ([]*models.Course, error) {
			return []*models.Course{{ID: 1, ProgrammeID: programmeID, Name: "Programming I", Year: 1, Semester: 1}}, nil
		},
		update: func(id int64, c *models.Course, prereqIDs []int64) error {
			if len(prereqIDs) > 0 && prereqIDs[0] == id {
				return &validation.Error{Violations: []validation.Violation{
					{Field: prerequisites.FieldPrerequisites, CourseID: id, Code: prerequisites.CodeSelf, Message: "course cannot depend on itself"},
				}}
			}
			c.ID = id
			return nil
		},
		delete: func(id int64) error {
			if id == 1 {
				return apperrors.ErrCourseHasDependents.WithDetails(map[string]interface{}{"dependents": []int64{2}})
			}
			return nil
		},
	}
	r := courseRouter(svc)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		want   string
	}{
		{"list", http.MethodGet, "/programmes/1/courses", "", http.StatusOK, `"prerequisites":[]`},
		{"get", http.MethodGet, "/courses/1", "", http.StatusOK, `"name":"Programming I"`},
		{"get missing", http.MethodGet, "/courses/8", "", http.StatusNotFound, "RES_001"},
		{"bad id", http.MethodGet, "/courses/0", "", http.StatusBadRequest, "REQ_001"},
		{"update", http.MethodPut, "/courses/3", `{"name":"OS","credits":5,"year":3,"semester":2,"prerequisites":[]}`, http.StatusOK, `"id":3`},
		{"update self", http.MethodPut, "/courses/3", `{"name":"OS","credits":5,"year":3,"prerequisites":[3]}`, http.StatusUnprocessableEntity, "PREREQ_SELF"},
		{"delete with dependents", http.MethodDelete, "/courses/1", "", http.StatusConflict, `"dependents":[2]`},
		{"delete", http.MethodDelete, "/courses/2", "", http.StatusOK, "Course deleted successfully"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := perform(t, r, tc.method, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Fatalf("body %s does not contain %s", rec.Body.String(), tc.want)
			}
		})
	}
}

func TestGraphEndpoints(t *testing.T) {
	svc := &stubCourseService{
		graph: func(programmeID int64) (*services.ProgrammeGraph, error) {
			return &services.ProgrammeGraph{
				Programme: &models.Programme{ID: programmeID},
				Courses: []*models.Course{
					{ID: 1, Name: "A", Year: 1, Semester: 1, Credits: 5},
					{ID: 2, Name: "B", Year: 2, Semester: 1, Credits: 5},
				},
				Edges:  []prerequisites.Edge{{CourseID: 2, DependsOnID: 1}},
				Issues: []validation.Violation{},
			}, nil
		},
		render: func(programmeID int64) ([]byte, error) {
			if programmeID == 9 {
				return nil, errors.New("font missing")
			}
			return []byte("\x89PNG"), nil
		},
	}
	r := courseRouter(svc)

	rec, env := perform(t, r, http.MethodGet, "/programmes/1/graph", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var graph dto.GraphResponse
	if err := json.Unmarshal(env.Data, &graph); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(graph.Nodes) != 2 || len(graph.Edges) != 1 || graph.Edges[0].DependsOnID != 1 || graph.Issues == nil {
		t.Fatalf("unexpected graph: %+v", graph)
	}

	rec, _ = perform(t, r, http.MethodGet, "/programmes/1/graph.png", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" || rec.Body.String() != "\x89PNG" {
		t.Fatalf("unexpected image response: %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec, _ = perform(t, r, http.MethodGet, "/programmes/9/graph.png", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("render failure should be 500, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	down := errors.New("connection refused")
	cases := []struct {
		name   string
		redis  error
		status int
		state  string
	}{
		{"all up", nil, http.StatusOK, "ok"},
		{"redis down", down, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checks := map[string]Pinger{
				"database": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return tc.redis },
			}
			r := gin.New()
			r.GET("/health", NewHealthController(checks, zerolog.Nop()).Health)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			var resp dto.HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tc.state || resp.Services["database"] != "up" {
				t.Fatalf("unexpected health: %+v", resp)
			}
		})
	}
}

type stubStream struct {
	served []int64
}

func (s *stubStream) Serve(w http.ResponseWriter, _ *http.Request, programmeID int64) error {
	s.served = append(s.served, programmeID)
	w.WriteHeader(http.StatusSwitchingProtocols)
	return nil
}

func TestSubscribeEvents(t *testing.T) {
	programmes := &stubProgrammeService{get: func(id int64) (*models.Programme, error) {
		if id == 1 {
			return &models.Programme{ID: 1}, nil
		}
		return nil, apperrors.ErrProgrammeNotFound
	}}
	stream := &stubStream{}
	r := gin.New()
	r.GET("/programmes/:id/events", NewEventsController(programmes, stream).Subscribe)

	rec, _ := perform(t, r, http.MethodGet, "/programmes/abc/events", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", rec.Code)
	}

	rec, _ = perform(t, r, http.MethodGet, "/programmes/9/events", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown programme: %d", rec.Code)
	}

	rec, _ = perform(t, r, http.MethodGet, "/programmes/1/events", "")
	if rec.Code != http.StatusSwitchingProtocols {
		t.Fatalf("subscribe: %d", rec.Code)
	}
	if !reflect.DeepEqual(stream.served, []int64{1}) {
		t.Fatalf("served: %v", stream.served)
	}
}
