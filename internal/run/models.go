package run

import "github.com/bu-spark/projectmatch/internal/assign"

// Run is one persisted solve: the input document it was given, the
// output document it produced, and the terminal solver status.
type Run struct {
	ID       string        `json:"id"`
	Course   string        `json:"course,omitempty"`
	Semester string        `json:"semester,omitempty"`
	Status   string        `json:"status"`
	Input    assign.Input  `json:"input"`
	Result   assign.Output `json:"result"`

	CreatedAt int64 `json:"created_at"`
}

// Summary is the listing view: everything but the two document payloads.
type Summary struct {
	ID        string `json:"id"`
	Course    string `json:"course,omitempty"`
	Semester  string `json:"semester,omitempty"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}
