package assign

import (
	"context"
	"fmt"
	"log"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
)

const (
	// ReasonNoCapacity is reported for a student the optimizer left out
	// because none of their ranked projects could take them.
	ReasonNoCapacity = "No available capacity for ranked choices"

	// reasonInconsistent flags a student neither assigned nor marked
	// unassigned. The exactly-one constraint makes this impossible in a
	// correct solve; seeing it means a modeling bug.
	reasonInconsistent = "Inconsistent assignment. Not assigned to a project but not explicitly marked unassigned."
)

// Status is the classified terminal state of one solve, suitable for
// persisting alongside the output document.
type Status string

const (
	StatusModelBuildFailed Status = "MODEL_BUILD_FAILED"
	StatusSolverError      Status = "SOLVER_ERROR"
)

// Assign builds the constraint model for one input document, solves it
// once, and extracts the result. The returned output document is always
// well-formed: if the solver terminates without a usable solution, every
// student is reported unassigned with the terminal status in the reason
// and TotalCost stays null.
func Assign(ctx context.Context, in Input, solver Solver) (Output, Status) {
	mi := buildModelInput(in)
	m := newModel(mi)
	base := m.core()

	base.builder.Maximize(base.objective())

	proto, err := base.builder.Model()
	if err != nil {
		return allUnassigned(mi, fmt.Sprintf("model build failed: %v", err)), StatusModelBuildFailed
	}

	resp, err := solver.Solve(ctx, proto)
	if err != nil {
		return allUnassigned(mi, fmt.Sprintf("solver error: %v", err)), StatusSolverError
	}

	status := resp.GetStatus()
	if status != cmpb.CpSolverStatus_OPTIMAL && status != cmpb.CpSolverStatus_FEASIBLE {
		return allUnassigned(mi, fmt.Sprintf("no solution found (status %s)", status)), Status(status.String())
	}

	return extract(mi, base, resp), Status(status.String())
}

// extract reads the solved variables back into the output document. Each
// student's ranked pairs are scanned in rank order; the exactly-one
// constraint guarantees at most one of them is set.
func extract(mi *modelInput, m *baseModel, resp *cmpb.CpSolverResponse) Output {
	out := Output{
		Assigned:   []Assignment{},
		Unassigned: []Unassigned{},
	}
	cost := resp.GetObjectiveValue()
	out.TotalCost = &cost

	for _, s := range mi.students {
		var placed *Choice
		for _, c := range mi.choices[s.PrefID] {
			if cpmodel.SolutionBooleanValue(resp, m.assigned[pairKey{s.PrefID, c.ProjectID}]) {
				placed = &c
				break
			}
		}
		switch {
		case placed != nil:
			out.Assigned = append(out.Assigned, Assignment{
				PrefID:      s.PrefID,
				BUID:        s.BUID,
				StudentName: s.StudentName,
				ProjectID:   placed.ProjectID,
				ProjectName: placed.ProjectName,
				Rank:        placed.Rank,
			})
		case cpmodel.SolutionBooleanValue(resp, m.unassigned[s.PrefID]):
			out.Unassigned = append(out.Unassigned, Unassigned{
				PrefID:      s.PrefID,
				BUID:        s.BUID,
				StudentName: s.StudentName,
				Reason:      ReasonNoCapacity,
			})
		default:
			log.Printf("assign: inconsistent solution for student %s: not assigned and not marked unassigned", s.PrefID)
			out.Unassigned = append(out.Unassigned, Unassigned{
				PrefID:      s.PrefID,
				BUID:        s.BUID,
				StudentName: s.StudentName,
				Reason:      reasonInconsistent,
			})
		}
	}
	return out
}

func allUnassigned(mi *modelInput, reason string) Output {
	out := Output{
		Assigned:   []Assignment{},
		Unassigned: make([]Unassigned, 0, len(mi.students)),
	}
	for _, s := range mi.students {
		out.Unassigned = append(out.Unassigned, Unassigned{
			PrefID:      s.PrefID,
			BUID:        s.BUID,
			StudentName: s.StudentName,
			Reason:      reason,
		})
	}
	return out
}
