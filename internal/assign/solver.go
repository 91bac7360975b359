package assign

import (
	"context"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"google.golang.org/protobuf/proto"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
)

// Solver runs a single optimization over a built model. It is the one
// seam between the model and the solving engine, so a different MILP/CP
// backend (or a canned fake in tests) can be swapped in behind it.
type Solver interface {
	Solve(ctx context.Context, model *cmpb.CpModelProto) (*cmpb.CpSolverResponse, error)
}

// CPSATSolver solves with OR-Tools CP-SAT. The solve call blocks and has
// no cancellation hook; TimeLimit is the only budget. A single search
// worker keeps repeated solves of the same input deterministic.
type CPSATSolver struct {
	TimeLimit time.Duration // zero means unlimited
}

func (s CPSATSolver) Solve(_ context.Context, model *cmpb.CpModelProto) (*cmpb.CpSolverResponse, error) {
	params := &sppb.SatParameters{
		NumSearchWorkers: proto.Int32(1),
	}
	if s.TimeLimit > 0 {
		params.MaxTimeInSeconds = proto.Float64(s.TimeLimit.Seconds())
	}
	return cpmodel.SolveCpModelWithParameters(model, params)
}
