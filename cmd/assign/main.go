// Command assign solves one assignment input document: JSON on stdin,
// JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/bu-spark/projectmatch/internal/assign"
)

func main() {
	timeLimit := flag.Duration("time-limit", 0, "solver wall-clock budget (0 = unlimited)")
	pretty := flag.Bool("pretty", false, "indent the output document")
	flag.Parse()

	in, err := assign.ParseInput(os.Stdin)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	solver := assign.CPSATSolver{TimeLimit: *timeLimit}
	out, status := assign.Assign(context.Background(), in, solver)
	log.Printf("solve finished: status=%s assigned=%d unassigned=%d", status, len(out.Assigned), len(out.Unassigned))

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		log.Fatalf("write output: %v", err)
	}
}
