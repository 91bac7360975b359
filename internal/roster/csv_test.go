package roster

import (
	"strings"
	"testing"
)

const sampleRoster = `Course,Semester,BUID,Full Name,Discussion Section,Additional Discussion Section Availability,1st Choice Project,2nd Choice Project,3rd Choice Project,4th Choice Project,5th Choice Project
DS519,Fall 2025,U100,Ada Lovelace,A1,"A2, A3",Alpha,Beta,,Gamma,
DS519,Fall 2025,U101,Alan Turing,,,Beta,,,,
DS519,Spring 2026,U102,Grace Hopper,B1,,Alpha,,,,
CS506,Fall 2025,U103,Edsger Dijkstra,C1,C2,Delta,Alpha,,,
`

func defaultOpts() ConvertOptions {
	return ConvertOptions{
		DefaultProjectCapacity: 24,
		MinTeamSize:            4,
		MaxSectionsPerTeam:     2,
		TeamSizeTarget:         8,
		SwapPasses:             2,
	}
}

func TestParseGroupsByCourseAndSemester(t *testing.T) {
	groups, err := Parse(strings.NewReader(sampleRoster), defaultOpts())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("want 3 groups, got %d", len(groups))
	}
	// Sorted by course then semester.
	if groups[0].Course != "CS506" || groups[1].Semester != "Fall 2025" || groups[2].Semester != "Spring 2026" {
		t.Fatalf("unexpected group order: %+v", groups)
	}
}

func TestParseBuildsChoicesSkippingBlanks(t *testing.T) {
	groups, err := Parse(strings.NewReader(sampleRoster), defaultOpts())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	ds519 := groups[1] // DS519 / Fall 2025
	if len(ds519.Input.Students) != 2 {
		t.Fatalf("want 2 students, got %d", len(ds519.Input.Students))
	}

	s := ds519.Input.Students[0]
	if s.PrefID != "U100" || s.BUID != "U100" {
		t.Fatalf("prefId should be the BUID, got %+v", s)
	}
	// Blank 3rd and 5th columns are skipped; ranks keep column positions.
	wantRanks := []int{1, 2, 4}
	if len(s.Choices) != len(wantRanks) {
		t.Fatalf("want %d choices, got %+v", len(wantRanks), s.Choices)
	}
	for i, r := range wantRanks {
		if s.Choices[i].Rank != r {
			t.Fatalf("choice %d: want rank %d, got %d", i, r, s.Choices[i].Rank)
		}
	}
	if s.SectionID == nil || *s.SectionID != "A1" {
		t.Fatalf("want primary section A1, got %+v", s.SectionID)
	}
	if len(s.SectionIDs) != 2 || s.SectionIDs[0] != "A2" || s.SectionIDs[1] != "A3" {
		t.Fatalf("want additional sections [A2 A3], got %v", s.SectionIDs)
	}

	turing := ds519.Input.Students[1]
	if turing.SectionID != nil || len(turing.SectionIDs) != 0 {
		t.Fatalf("blank sections should stay empty, got %+v", turing)
	}
}

func TestParseAppliesUniformCapacity(t *testing.T) {
	groups, err := Parse(strings.NewReader(sampleRoster), defaultOpts())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	ds519 := groups[1]
	caps := ds519.Input.Capacities
	if len(caps) != 3 { // Alpha, Beta, Gamma
		t.Fatalf("want 3 projects, got %v", caps)
	}
	for p, c := range caps {
		if c != 24 {
			t.Fatalf("project %s: want default capacity 24, got %d", p, c)
		}
	}
	if ds519.Input.Options.MinTeamSize != 4 || ds519.Input.Options.MaxSectionsPerTeam != 2 {
		t.Fatalf("options not carried over: %+v", ds519.Input.Options)
	}
}

func TestParseRejectsMissingColumns(t *testing.T) {
	_, err := Parse(strings.NewReader("BUID,Full Name\nU1,Someone\n"), defaultOpts())
	if err == nil {
		t.Fatal("want error for missing Course column")
	}
}

func TestFileName(t *testing.T) {
	g := Group{Course: "DS519/A", Semester: "Fall 2025"}
	if got := FileName(g); got != "DS519_A__Fall_2025.json" {
		t.Fatalf("got %q", got)
	}
}
