package assign

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrMalformedInput marks an input document missing one of the three
// required top-level fields. It is the only error surfaced to callers;
// everything downstream of a well-formed input degrades to an
// all-unassigned output instead of failing.
var ErrMalformedInput = errors.New("input data doesn't have all information needed")

// ParseInput decodes and validates an input document. The students,
// capacities and options fields must all be present (empty is fine,
// absent is not).
func ParseInput(r io.Reader) (Input, error) {
	var doc struct {
		Students   *[]Student      `json:"students"`
		Capacities *map[string]int `json:"capacities"`
		Options    *Options        `json:"options"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Input{}, fmt.Errorf("decode input: %w", err)
	}
	if doc.Students == nil || doc.Capacities == nil || doc.Options == nil {
		return Input{}, ErrMalformedInput
	}
	return Input{Students: *doc.Students, Capacities: *doc.Capacities, Options: *doc.Options}, nil
}

// modelInput is the normalized form the constraint model is built from.
// All slices are in a deterministic order: students and choices keep
// input order, projects and the section universe are sorted.
type modelInput struct {
	students []Student

	// choices by prefId, deduplicated per (student, project): the first
	// occurrence of a project on a student's list wins, later repeats
	// are dropped so they cannot double-count in the objective.
	choices map[string][]Choice

	// sections by prefId: primary section first (when present), then the
	// additional sections, order preserved, duplicates dropped.
	sections map[string][]string

	capacities      map[string]int
	projects        []string // sorted key set of capacities
	sectionUniverse []string // sorted union of all students' sections

	// students that ranked a given project, in roster order.
	ranked map[string][]string

	minTeamSize        int
	maxSectionsPerTeam int
}

func buildModelInput(in Input) *modelInput {
	mi := &modelInput{
		students:           in.Students,
		choices:            make(map[string][]Choice, len(in.Students)),
		sections:           make(map[string][]string, len(in.Students)),
		capacities:         in.Capacities,
		ranked:             make(map[string][]string, len(in.Capacities)),
		minTeamSize:        in.Options.MinTeamSize,
		maxSectionsPerTeam: in.Options.MaxSectionsPerTeam,
	}
	if mi.maxSectionsPerTeam <= 0 {
		mi.maxSectionsPerTeam = 1
	}

	for p := range in.Capacities {
		mi.projects = append(mi.projects, p)
	}
	sort.Strings(mi.projects)

	sectionSet := map[string]struct{}{}
	for _, s := range in.Students {
		seen := map[string]struct{}{}
		choices := make([]Choice, 0, len(s.Choices))
		for _, c := range s.Choices {
			if _, dup := seen[c.ProjectID]; dup {
				continue
			}
			seen[c.ProjectID] = struct{}{}
			choices = append(choices, c)
			mi.ranked[c.ProjectID] = append(mi.ranked[c.ProjectID], s.PrefID)
		}
		mi.choices[s.PrefID] = choices

		var secs []string
		seenSec := map[string]struct{}{}
		appendSec := func(id string) {
			if id == "" {
				return
			}
			if _, dup := seenSec[id]; dup {
				return
			}
			seenSec[id] = struct{}{}
			secs = append(secs, id)
			sectionSet[id] = struct{}{}
		}
		if s.SectionID != nil {
			appendSec(*s.SectionID)
		}
		for _, id := range s.SectionIDs {
			appendSec(id)
		}
		mi.sections[s.PrefID] = secs
	}

	for sec := range sectionSet {
		mi.sectionUniverse = append(mi.sectionUniverse, sec)
	}
	sort.Strings(mi.sectionUniverse)

	return mi
}

// effectiveMin is the per-project minimum occupancy. A floor the project
// could never meet (minTeamSize >= capacity) is disabled instead of
// making the whole model infeasible.
func (mi *modelInput) effectiveMin(project string) int {
	if mi.minTeamSize >= mi.capacities[project] {
		return 0
	}
	return mi.minTeamSize
}

// maxChoiceCount is the longest preference list on the roster; it sets
// the scale of the unassigned penalty.
func (mi *modelInput) maxChoiceCount() int {
	max := 0
	for _, s := range mi.students {
		if n := len(mi.choices[s.PrefID]); n > max {
			max = n
		}
	}
	return max
}
