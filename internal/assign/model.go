package assign

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// Composite keys for the decision-variable maps. Keeping the variables in
// keyed maps (rather than positional slices) mirrors how the model is
// specified: a variable exists only for combinations the data mentions.
type pairKey struct {
	student string
	project string
}

type sectionKey struct {
	project string
	section string
}

type viaKey struct {
	student string
	project string
	section string
}

// baseModel owns the decision variables shared by both model variants:
//
//	assigned[s,p]  - student s placed on project p (only for ranked pairs)
//	unassigned[s]  - student s left without a project
//	used[p]        - project p has at least one student
type baseModel struct {
	builder *cpmodel.Builder
	in      *modelInput

	assigned   map[pairKey]cpmodel.BoolVar
	unassigned map[string]cpmodel.BoolVar
	used       map[string]cpmodel.BoolVar
}

// sectionedModel extends baseModel with the discussion-section dimension:
//
//	via[s,p,sec]         - s placed on p through section sec
//	sectionUsed[p,sec]   - project p draws at least one student from sec
type sectionedModel struct {
	baseModel

	via         map[viaKey]cpmodel.BoolVar
	sectionUsed map[sectionKey]cpmodel.BoolVar
}

// assignmentModel is the tagged variant shared by objective assembly and
// result extraction, which only ever touch the base variables.
type assignmentModel interface {
	core() *baseModel
}

func (m *baseModel) core() *baseModel      { return m }
func (m *sectionedModel) core() *baseModel { return m }

// newModel builds the full constraint model for one solve. The section
// extension is attached only when at least one student declared an
// eligible section.
func newModel(in *modelInput) assignmentModel {
	base := newBaseModel(in)
	if len(in.sectionUniverse) == 0 {
		return base
	}
	return newSectionedModel(base)
}

func newBaseModel(in *modelInput) *baseModel {
	m := &baseModel{
		builder:    cpmodel.NewCpModelBuilder(),
		in:         in,
		assigned:   make(map[pairKey]cpmodel.BoolVar),
		unassigned: make(map[string]cpmodel.BoolVar, len(in.students)),
		used:       make(map[string]cpmodel.BoolVar, len(in.projects)),
	}

	for _, s := range in.students {
		for _, c := range in.choices[s.PrefID] {
			m.assigned[pairKey{s.PrefID, c.ProjectID}] = m.builder.NewBoolVar()
		}
		m.unassigned[s.PrefID] = m.builder.NewBoolVar()
	}
	for _, p := range in.projects {
		m.used[p] = m.builder.NewBoolVar()
	}

	// Exactly-one: every student is placed on one ranked project or is
	// explicitly unassigned.
	for _, s := range in.students {
		sum := cpmodel.NewLinearExpr()
		for _, c := range in.choices[s.PrefID] {
			sum.Add(m.assigned[pairKey{s.PrefID, c.ProjectID}])
		}
		sum.Add(m.unassigned[s.PrefID])
		m.builder.AddEquality(sum, cpmodel.NewConstant(1))
	}

	// Capacity ceiling and minimum occupancy, both gated on used[p] so an
	// unused project holds exactly zero students.
	for _, p := range in.projects {
		occ := m.occupancy(p)
		m.builder.AddLessOrEqual(occ,
			cpmodel.NewLinearExpr().AddTerm(m.used[p], int64(in.capacities[p])))
		m.builder.AddGreaterOrEqual(m.occupancy(p),
			cpmodel.NewLinearExpr().AddTerm(m.used[p], int64(in.effectiveMin(p))))
	}

	return m
}

// occupancy is the number of students placed on project p.
func (m *baseModel) occupancy(p string) *cpmodel.LinearExpr {
	occ := cpmodel.NewLinearExpr()
	for _, sid := range m.in.ranked[p] {
		occ.Add(m.assigned[pairKey{sid, p}])
	}
	return occ
}

func newSectionedModel(base *baseModel) *sectionedModel {
	in := base.in
	m := &sectionedModel{
		baseModel:   *base,
		via:         make(map[viaKey]cpmodel.BoolVar),
		sectionUsed: make(map[sectionKey]cpmodel.BoolVar),
	}

	for _, s := range in.students {
		for _, c := range in.choices[s.PrefID] {
			for _, sec := range in.sections[s.PrefID] {
				m.via[viaKey{s.PrefID, c.ProjectID, sec}] = m.builder.NewBoolVar()
			}
		}
	}
	for _, p := range in.projects {
		for _, sec := range in.sectionUniverse {
			m.sectionUsed[sectionKey{p, sec}] = m.builder.NewBoolVar()
		}
	}

	// Decomposition link: a realized assignment picks exactly one of the
	// student's eligible sections. A student with no eligible sections has
	// an empty sum here, which forces assigned[s,p] to zero: when sections
	// are in play a sectionless student cannot be placed.
	for _, s := range in.students {
		for _, c := range in.choices[s.PrefID] {
			sum := cpmodel.NewLinearExpr()
			for _, sec := range in.sections[s.PrefID] {
				sum.Add(m.via[viaKey{s.PrefID, c.ProjectID, sec}])
			}
			m.builder.AddEquality(sum, m.assigned[pairKey{s.PrefID, c.ProjectID}])
		}
	}

	// Section-usage link per (project, section): placements through a
	// section require it marked used, and a section cannot be used on a
	// project that is itself unused. Pairs no student is eligible for are
	// pinned to zero.
	for _, p := range in.projects {
		for _, sec := range in.sectionUniverse {
			z := m.sectionUsed[sectionKey{p, sec}]
			sum := cpmodel.NewLinearExpr()
			n := 0
			for _, sid := range in.ranked[p] {
				if v, ok := m.via[viaKey{sid, p, sec}]; ok {
					sum.Add(v)
					n++
				}
			}
			if n == 0 {
				m.builder.AddEquality(z, cpmodel.NewConstant(0))
				continue
			}
			m.builder.AddLessOrEqual(sum,
				cpmodel.NewLinearExpr().AddTerm(z, int64(in.capacities[p])))
			m.builder.AddLessOrEqual(z, m.used[p])
		}
	}

	// Section count cap: a used project may draw from at most
	// maxSectionsPerTeam distinct sections.
	for _, p := range in.projects {
		sum := cpmodel.NewLinearExpr()
		for _, sec := range in.sectionUniverse {
			sum.Add(m.sectionUsed[sectionKey{p, sec}])
		}
		m.builder.AddLessOrEqual(sum,
			cpmodel.NewLinearExpr().AddTerm(m.used[p], int64(in.maxSectionsPerTeam)))
	}

	return m
}

// objective wires the maximization target: rank-linear preference reward
// minus a penalty per unassigned student large enough that no combination
// of preference rewards can ever buy an extra unassignment.
func (m *baseModel) objective() *cpmodel.LinearExpr {
	obj := cpmodel.NewLinearExpr()
	for _, s := range m.in.students {
		choices := m.in.choices[s.PrefID]
		for _, c := range choices {
			weight := int64(len(choices) - c.Rank + 1)
			obj.AddTerm(m.assigned[pairKey{s.PrefID, c.ProjectID}], weight)
		}
	}
	penalty := int64(len(m.in.students))*int64(m.in.maxChoiceCount()) + 1
	for _, s := range m.in.students {
		obj.AddTerm(m.unassigned[s.PrefID], -penalty)
	}
	return obj
}
