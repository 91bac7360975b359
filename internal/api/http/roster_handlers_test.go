package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bu-spark/projectmatch/internal/roster"
)

type memBlobs struct {
	blobs map[string][]byte
}

func newMemBlobs() *memBlobs { return &memBlobs{blobs: map[string][]byte{}} }

func (b *memBlobs) Put(key string, r io.Reader) (string, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	b.blobs[key] = buf
	return key, nil
}

func (b *memBlobs) Get(key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.blobs[key])), nil
}

const miniRoster = `Course,Semester,BUID,Full Name,Discussion Section,Additional Discussion Section Availability,1st Choice Project,2nd Choice Project,3rd Choice Project,4th Choice Project,5th Choice Project
DS519,Fall 2025,U100,Ada Lovelace,A1,,Alpha,,,,
CS506,Fall 2025,U101,Alan Turing,B1,,Beta,,,,
`

func TestImportRosterCreatesRunPerGroup(t *testing.T) {
	store := newMemStore()
	blobs := newMemBlobs()
	h := ImportRosterHandler(store, fakeSolver{}, blobs, roster.ConvertOptions{DefaultProjectCapacity: 24})

	req := httptest.NewRequest("POST", "/roster/import", strings.NewReader(miniRoster))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created []struct {
		Course string `json:"course"`
		RunID  string `json:"runId"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("want a run per course group, got %+v", created)
	}
	for _, c := range created {
		if _, ok := store.runs[c.RunID]; !ok {
			t.Fatalf("run %s for %s not persisted", c.RunID, c.Course)
		}
	}
	if len(blobs.blobs) != 1 {
		t.Fatalf("roster should be archived once, got %d blobs", len(blobs.blobs))
	}
}

func TestImportRosterRejectsEmptyBody(t *testing.T) {
	h := ImportRosterHandler(newMemStore(), fakeSolver{}, newMemBlobs(), roster.ConvertOptions{})

	req := httptest.NewRequest("POST", "/roster/import", strings.NewReader(""))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
}
