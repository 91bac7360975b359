package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bu-spark/projectmatch/internal/assign"
	"github.com/bu-spark/projectmatch/internal/report"
	"github.com/bu-spark/projectmatch/internal/run"
)

// CreateRunHandler accepts an input document, solves it once, persists
// the run, and returns it. Optional ?course= and ?semester= query params
// tag the run for listing.
func CreateRunHandler(store run.Store, solver assign.Solver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := assign.ParseInput(r.Body)
		if err != nil {
			if errors.Is(err, assign.ErrMalformedInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		out, status := assign.Assign(r.Context(), in, solver)
		rec := run.Run{
			ID:        run.NewID(),
			Course:    r.URL.Query().Get("course"),
			Semester:  r.URL.Query().Get("semester"),
			Status:    string(status),
			Input:     in,
			Result:    out,
			CreatedAt: time.Now().Unix(),
		}
		if err := store.PutRun(r.Context(), rec); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(rec)
	}
}

func GetRunHandler(store run.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "runID")
		rec, err := store.GetRun(r.Context(), id)
		if err != nil {
			if errors.Is(err, run.ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rec)
	}
}

func ListRunsHandler(store run.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit, _ := strconv.Atoi(q.Get("limit"))
		offset, _ := strconv.Atoi(q.Get("offset"))
		list, err := store.ListRuns(r.Context(), run.ListOpts{
			Course:   q.Get("course"),
			Semester: q.Get("semester"),
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}

// RunReportHandler computes first-choice / top-3 satisfaction for a
// stored run.
func RunReportHandler(store run.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "runID")
		rec, err := store.GetRun(r.Context(), id)
		if err != nil {
			if errors.Is(err, run.ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(report.Summarize(rec.Result))
	}
}
