// Package report computes preference-satisfaction statistics over a
// solved assignment document.
package report

import "github.com/bu-spark/projectmatch/internal/assign"

type Summary struct {
	Assigned    int `json:"assigned"`
	Unassigned  int `json:"unassigned"`
	GotFirst    int `json:"gotFirst"`
	GotTopThree int `json:"gotTopThree"`

	// Fractions over assigned students; zero when nothing was assigned.
	FirstRate    float64 `json:"firstRate"`
	TopThreeRate float64 `json:"topThreeRate"`
}

func Summarize(out assign.Output) Summary {
	s := Summary{
		Assigned:   len(out.Assigned),
		Unassigned: len(out.Unassigned),
	}
	for _, a := range out.Assigned {
		if a.Rank == 1 {
			s.GotFirst++
		}
		if a.Rank <= 3 {
			s.GotTopThree++
		}
	}
	if s.Assigned > 0 {
		s.FirstRate = float64(s.GotFirst) / float64(s.Assigned)
		s.TopThreeRate = float64(s.GotTopThree) / float64(s.Assigned)
	}
	return s
}
