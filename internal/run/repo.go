package run

import "context"

type ListOpts struct {
	Course   string // filter by course
	Semester string // filter by semester
	Limit    int
	Offset   int
}

type Store interface {
	PutRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, opts ListOpts) ([]Summary, error)
}
