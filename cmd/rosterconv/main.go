// Command rosterconv converts a preferences roster CSV into one
// assignment input document per (course, semester).
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/bu-spark/projectmatch/internal/roster"
)

func main() {
	inPath := flag.String("in", "", "roster CSV path (required)")
	outDir := flag.String("out", "class_json", "output directory")
	capacity := flag.Int("capacity", 24, "default capacity for every project")
	minTeam := flag.Int("min-team-size", 4, "minimum team size")
	maxSections := flag.Int("max-sections", 2, "max distinct sections per team")
	target := flag.Int("team-size-target", 8, "target team size (advisory)")
	swapPasses := flag.Int("swap-passes", 2, "swap passes (advisory)")
	flag.Parse()

	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*inPath)
	if err != nil {
		log.Fatalf("open roster: %v", err)
	}
	defer f.Close()

	groups, err := roster.Parse(f, roster.ConvertOptions{
		DefaultProjectCapacity: *capacity,
		MinTeamSize:            *minTeam,
		MaxSectionsPerTeam:     *maxSections,
		TeamSizeTarget:         *target,
		SwapPasses:             *swapPasses,
	})
	if err != nil {
		log.Fatalf("parse roster: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	for _, g := range groups {
		path := filepath.Join(*outDir, roster.FileName(g))
		buf, err := json.MarshalIndent(g.Input, "", "  ")
		if err != nil {
			log.Fatalf("marshal %s %s: %v", g.Course, g.Semester, err)
		}
		if err := os.WriteFile(path, buf, 0o644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		log.Printf("wrote input document for course %q, semester %q to %s", g.Course, g.Semester, path)
	}
	log.Println("done")
}
