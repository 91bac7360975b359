package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/bu-spark/projectmatch/internal/assign"
	"github.com/bu-spark/projectmatch/internal/roster"
	"github.com/bu-spark/projectmatch/internal/run"
	"github.com/bu-spark/projectmatch/internal/storage"
)

const maxRosterBytes = 8 << 20

type importedRun struct {
	Course     string `json:"course"`
	Semester   string `json:"semester"`
	RunID      string `json:"runId"`
	Status     string `json:"status"`
	Assigned   int    `json:"assigned"`
	Unassigned int    `json:"unassigned"`
}

// ImportRosterHandler takes a raw roster CSV, archives it, builds one
// input document per (course, semester), solves and persists each, and
// returns the created run summaries.
func ImportRosterHandler(store run.Store, solver assign.Solver, blobs storage.BlobStore, opts roster.ConvertOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxRosterBytes))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		if len(body) == 0 {
			http.Error(w, "empty roster", http.StatusBadRequest)
			return
		}

		key := "rosters/" + time.Now().UTC().Format("20060102T150405Z") + ".csv"
		if _, err := blobs.Put(key, bytes.NewReader(body)); err != nil {
			// Archiving is best effort; the import itself still proceeds.
			log.Printf("roster archive failed: %v", err)
		}

		groups, err := roster.Parse(bytes.NewReader(body), opts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		created := []importedRun{}
		for _, g := range groups {
			out, status := assign.Assign(r.Context(), g.Input, solver)
			rec := run.Run{
				ID:        run.NewID(),
				Course:    g.Course,
				Semester:  g.Semester,
				Status:    string(status),
				Input:     g.Input,
				Result:    out,
				CreatedAt: time.Now().Unix(),
			}
			if err := store.PutRun(r.Context(), rec); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			created = append(created, importedRun{
				Course:     g.Course,
				Semester:   g.Semester,
				RunID:      rec.ID,
				Status:     rec.Status,
				Assigned:   len(out.Assigned),
				Unassigned: len(out.Unassigned),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	}
}
