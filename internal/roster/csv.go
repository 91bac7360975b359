// Package roster turns the flat preferences spreadsheet export into
// per-(course, semester) assignment input documents.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bu-spark/projectmatch/internal/assign"
)

// choiceColumns are the ranked preference columns of the export, in rank
// order. Blank cells are skipped, so a student's list can be shorter.
var choiceColumns = []string{
	"1st Choice Project",
	"2nd Choice Project",
	"3rd Choice Project",
	"4th Choice Project",
	"5th Choice Project",
}

const (
	colCourse             = "Course"
	colSemester           = "Semester"
	colBUID               = "BUID"
	colFullName           = "Full Name"
	colSection            = "Discussion Section"
	colAdditionalSections = "Additional Discussion Section Availability"
)

// ConvertOptions carries the knobs applied uniformly to every course
// group built from one roster file.
type ConvertOptions struct {
	DefaultProjectCapacity int
	MinTeamSize            int
	MaxSectionsPerTeam     int
	TeamSizeTarget         int
	SwapPasses             int
}

// Group is one course/semester slice of the roster together with its
// ready-to-solve input document.
type Group struct {
	Course   string       `json:"course"`
	Semester string       `json:"semester"`
	Input    assign.Input `json:"input"`
}

// Parse reads a roster CSV and groups rows by (course, semester). Every
// project seen in a group's choices gets the same default capacity, the
// way the upstream spreadsheet pipeline works. Groups come back sorted by
// course then semester.
func Parse(r io.Reader, opts ConvertOptions) ([]Group, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colCourse, colSemester, colBUID, colFullName} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("roster is missing required column %q", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	type groupKey struct{ course, semester string }
	students := map[groupKey][]assign.Student{}
	projects := map[groupKey]map[string]struct{}{}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read roster line %d: %w", line, err)
		}

		course := field(rec, colCourse)
		semester := field(rec, colSemester)
		if course == "" || semester == "" {
			continue
		}
		key := groupKey{course, semester}

		buid := field(rec, colBUID)
		student := assign.Student{
			PrefID:      buid, // BUID is unique per student
			BUID:        buid,
			StudentName: field(rec, colFullName),
			SectionIDs:  []string{},
			Choices:     []assign.Choice{},
		}
		if sec := field(rec, colSection); sec != "" {
			student.SectionID = &sec
		}
		for _, part := range strings.Split(field(rec, colAdditionalSections), ",") {
			if s := strings.TrimSpace(part); s != "" {
				student.SectionIDs = append(student.SectionIDs, s)
			}
		}

		for rank, name := range choiceColumns {
			proj := field(rec, name)
			if proj == "" {
				continue
			}
			student.Choices = append(student.Choices, assign.Choice{
				ProjectID:   proj,
				ProjectName: proj,
				Rank:        rank + 1,
			})
			if projects[key] == nil {
				projects[key] = map[string]struct{}{}
			}
			projects[key][proj] = struct{}{}
		}

		students[key] = append(students[key], student)
	}

	keys := make([]groupKey, 0, len(students))
	for k := range students {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].course != keys[j].course {
			return keys[i].course < keys[j].course
		}
		return keys[i].semester < keys[j].semester
	})

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		capacities := map[string]int{}
		for p := range projects[k] {
			capacities[p] = opts.DefaultProjectCapacity
		}
		groups = append(groups, Group{
			Course:   k.course,
			Semester: k.semester,
			Input: assign.Input{
				Students:   students[k],
				Capacities: capacities,
				Options: assign.Options{
					MinTeamSize:        opts.MinTeamSize,
					MaxSectionsPerTeam: opts.MaxSectionsPerTeam,
					TeamSizeTarget:     opts.TeamSizeTarget,
					SwapPasses:         opts.SwapPasses,
				},
			},
		})
	}
	return groups, nil
}

// FileName is the canonical per-group output name used by the converter
// CLI, safe for the filesystem.
func FileName(g Group) string {
	course := strings.ReplaceAll(g.Course, "/", "_")
	semester := strings.ReplaceAll(g.Semester, " ", "_")
	return course + "__" + semester + ".json"
}
