package report

import (
	"testing"

	"github.com/bu-spark/projectmatch/internal/assign"
)

func TestSummarize(t *testing.T) {
	out := assign.Output{
		Assigned: []assign.Assignment{
			{PrefID: "s1", Rank: 1},
			{PrefID: "s2", Rank: 3},
			{PrefID: "s3", Rank: 4},
			{PrefID: "s4", Rank: 1},
		},
		Unassigned: []assign.Unassigned{
			{PrefID: "s5", Reason: "No available capacity for ranked choices"},
		},
	}

	s := Summarize(out)
	if s.Assigned != 4 || s.Unassigned != 1 {
		t.Fatalf("counts wrong: %+v", s)
	}
	if s.GotFirst != 2 || s.GotTopThree != 3 {
		t.Fatalf("rank buckets wrong: %+v", s)
	}
	if s.FirstRate != 0.5 || s.TopThreeRate != 0.75 {
		t.Fatalf("rates wrong: %+v", s)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(assign.Output{})
	if s.Assigned != 0 || s.FirstRate != 0 || s.TopThreeRate != 0 {
		t.Fatalf("empty output should produce zero summary, got %+v", s)
	}
}
