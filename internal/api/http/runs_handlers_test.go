package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"

	"github.com/bu-spark/projectmatch/internal/assign"
	"github.com/bu-spark/projectmatch/internal/report"
	"github.com/bu-spark/projectmatch/internal/run"
)

/* ---------------- fakes ---------------- */

// fakeSolver reports INFEASIBLE so handler tests exercise the full
// fail-open path without a solver backend.
type fakeSolver struct{}

func (fakeSolver) Solve(_ context.Context, m *cmpb.CpModelProto) (*cmpb.CpSolverResponse, error) {
	return &cmpb.CpSolverResponse{Status: cmpb.CpSolverStatus_INFEASIBLE}, nil
}

type memStore struct {
	runs map[string]run.Run
}

func newMemStore() *memStore { return &memStore{runs: map[string]run.Run{}} }

func (s *memStore) PutRun(_ context.Context, r run.Run) error {
	s.runs[r.ID] = r
	return nil
}

func (s *memStore) GetRun(_ context.Context, id string) (run.Run, error) {
	r, ok := s.runs[id]
	if !ok {
		return run.Run{}, run.ErrNotFound
	}
	return r, nil
}

func (s *memStore) ListRuns(_ context.Context, opts run.ListOpts) ([]run.Summary, error) {
	out := []run.Summary{}
	for _, r := range s.runs {
		if opts.Course != "" && r.Course != opts.Course {
			continue
		}
		out = append(out, run.Summary{ID: r.ID, Course: r.Course, Semester: r.Semester, Status: r.Status, CreatedAt: r.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func newRouter(store run.Store) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/runs", CreateRunHandler(store, fakeSolver{}))
	r.Get("/runs", ListRunsHandler(store))
	r.Get("/runs/{runID}", GetRunHandler(store))
	r.Get("/runs/{runID}/report", RunReportHandler(store))
	return r
}

const validDoc = `{
	"students": [
		{"prefId":"s1","buid":"s1","studentName":"One",
		 "choices":[{"projectId":"p1","projectName":"P1","rank":1}],
		 "sectionId":null,"sectionIds":[]}
	],
	"capacities": {"p1": 1},
	"options": {"minTeamSize": 0}
}`

/* ---------------- tests ---------------- */

func TestCreateRunPersistsAndReturnsRun(t *testing.T) {
	store := newMemStore()
	router := newRouter(store)

	req := httptest.NewRequest("POST", "/runs?course=DS519&semester=Fall+2025", strings.NewReader(validDoc))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created run.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Course != "DS519" || created.Status != "INFEASIBLE" {
		t.Fatalf("unexpected run: %+v", created)
	}
	if len(created.Result.Unassigned) != 1 || created.Result.TotalCost != nil {
		t.Fatalf("fail-open result expected, got %+v", created.Result)
	}
	if _, ok := store.runs[created.ID]; !ok {
		t.Fatal("run was not persisted")
	}
}

func TestCreateRunRejectsMalformedDocument(t *testing.T) {
	router := newRouter(newMemStore())

	req := httptest.NewRequest("POST", "/runs", strings.NewReader(`{"students": []}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}

func TestGetRunNotFound(t *testing.T) {
	router := newRouter(newMemStore())

	req := httptest.NewRequest("GET", "/runs/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
}

func TestRunReport(t *testing.T) {
	store := newMemStore()
	cost := 3.0
	store.runs["r1"] = run.Run{
		ID: "r1",
		Result: assign.Output{
			Assigned: []assign.Assignment{
				{PrefID: "s1", Rank: 1},
				{PrefID: "s2", Rank: 2},
			},
			Unassigned: []assign.Unassigned{{PrefID: "s3"}},
			TotalCost:  &cost,
		},
	}
	router := newRouter(store)

	req := httptest.NewRequest("GET", "/runs/r1/report", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	var s report.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if s.Assigned != 2 || s.GotFirst != 1 || s.GotTopThree != 2 || s.Unassigned != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestListRunsFiltersByCourse(t *testing.T) {
	store := newMemStore()
	store.runs["a"] = run.Run{ID: "a", Course: "DS519"}
	store.runs["b"] = run.Run{ID: "b", Course: "CS506"}
	router := newRouter(store)

	req := httptest.NewRequest("GET", "/runs?course=DS519", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var list []run.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "a" {
		t.Fatalf("unexpected list: %+v", list)
	}
}
