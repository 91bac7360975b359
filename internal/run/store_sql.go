package run

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("run not found")

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// NewID builds a sortable run identifier: solve timestamp plus a short
// random suffix so runs created in the same second stay distinct.
func NewID() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return time.Now().UTC().Format("20060102150405") + "-" + hex.EncodeToString(buf)
}

func (s *SQLStore) PutRun(ctx context.Context, r Run) error {
	ij, err := json.Marshal(r.Input)
	if err != nil {
		return fmt.Errorf("marshal input: %w", err)
	}
	rj, err := json.Marshal(r.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	createdAt := r.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO runs (id,course,semester,status,input_json,result_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET status=EXCLUDED.status, input_json=EXCLUDED.input_json, result_json=EXCLUDED.result_json`,
		r.ID, r.Course, r.Semester, r.Status, string(ij), string(rj), createdAt)
	return err
}

func (s *SQLStore) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,course,semester,status,input_json,result_json,created_at FROM runs WHERE id=$1`, id)
	var r Run
	var ijson, rjson string
	if err := row.Scan(&r.ID, &r.Course, &r.Semester, &r.Status, &ijson, &rjson, &r.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNotFound
		}
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(ijson), &r.Input); err != nil {
		return Run{}, fmt.Errorf("unmarshal input: %w", err)
	}
	if err := json.Unmarshal([]byte(rjson), &r.Result); err != nil {
		return Run{}, fmt.Errorf("unmarshal result: %w", err)
	}
	return r, nil
}

func (s *SQLStore) ListRuns(ctx context.Context, opts ListOpts) ([]Summary, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := `SELECT id,course,semester,status,created_at FROM runs WHERE 1=1`
	args := []any{}
	n := 0
	if opts.Course != "" {
		n++
		q += fmt.Sprintf(" AND course=$%d", n)
		args = append(args, opts.Course)
	}
	if opts.Semester != "" {
		n++
		q += fmt.Sprintf(" AND semester=$%d", n)
		args = append(args, opts.Semester)
	}
	q += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Course, &sm.Semester, &sm.Status, &sm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}
