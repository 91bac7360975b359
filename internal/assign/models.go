package assign

// Choice is one ranked project on a student's preference list. Rank is
// 1-based; rank 1 is the most preferred.
type Choice struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Rank        int    `json:"rank"`
}

type Student struct {
	PrefID      string   `json:"prefId"`
	BUID        string   `json:"buid"`
	StudentName string   `json:"studentName"`
	Choices     []Choice `json:"choices"`
	SectionID   *string  `json:"sectionId"`
	SectionIDs  []string `json:"sectionIds"`
}

// Options tunes the model. MaxSectionsPerTeam defaults to 1 when absent.
// TeamSizeTarget and SwapPasses are emitted by the roster converter and
// accepted here so input documents round-trip; the solver ignores them.
type Options struct {
	MinTeamSize        int `json:"minTeamSize"`
	MaxSectionsPerTeam int `json:"maxSectionsPerTeam,omitempty"`
	TeamSizeTarget     int `json:"teamSizeTarget,omitempty"`
	SwapPasses         int `json:"swapPasses,omitempty"`
}

// Input is one solve's worth of data: the roster, the per-project
// capacities (whose key set defines the project universe), and options.
type Input struct {
	Students   []Student      `json:"students"`
	Capacities map[string]int `json:"capacities"`
	Options    Options        `json:"options"`
}

type Assignment struct {
	PrefID      string `json:"prefId"`
	BUID        string `json:"buid"`
	StudentName string `json:"studentName"`
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Rank        int    `json:"rank"`
}

type Unassigned struct {
	PrefID      string `json:"prefId"`
	BUID        string `json:"buid"`
	StudentName string `json:"studentName"`
	Reason      string `json:"reason"`
}

// Output partitions the roster into assigned and unassigned students.
// TotalCost is the solved objective value, or null when the solver
// produced no usable solution.
type Output struct {
	Assigned   []Assignment `json:"assigned"`
	Unassigned []Unassigned `json:"unassigned"`
	TotalCost  *float64     `json:"totalCost"`
}
