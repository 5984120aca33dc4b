// Package hedmtest builds HEDM scans inside an in-memory store for tests.
package hedmtest

import (
	"fmt"

	"github.com/robert-malhotra/go-hedm/hedm"
	"github.com/robert-malhotra/go-hedm/store/memstore"
)

// PhaseSpec describes one phase group.
type PhaseSpec struct {
	Name             string // group name below Phases
	Index            int32
	LatticeConstants [6]float32
	BasisAtoms       string
	Symmetry         string
}

// Scan describes a scan to lay out below Group.
type Scan struct {
	Group          string
	XRes, YRes     float32
	XDim, YDim     int32
	OriginalHeader string
	Phases         []PhaseSpec
	// Columns lists the data columns to write. Nil writes all known
	// columns; an empty non-nil slice writes an empty Data group.
	Columns []string
	// NoData skips the Data group entirely.
	NoData bool
}

// Default returns a 4x3 scan with two phases and every column present.
func Default() Scan {
	return Scan{
		Group:          "Slice_0",
		XRes:           1.5,
		YRes:           2.5,
		XDim:           4,
		YDim:           3,
		OriginalHeader: "# HEDM mic file\n# 4 x 3 grid",
		Phases: []PhaseSpec{
			{
				Name:             "1",
				Index:            1,
				LatticeConstants: [6]float32{4.05, 4.05, 4.05, 90, 90, 90},
				BasisAtoms:       "Al",
				Symmetry:         "432",
			},
			{
				Name:             "2",
				Index:            2,
				LatticeConstants: [6]float32{2.95, 2.95, 4.68, 90, 90, 120},
				BasisAtoms:       "Ti",
				Symmetry:         "622",
			},
		},
	}
}

// Add lays out s in file path of st and returns the node of the internal
// group.
func Add(st *memstore.Store, path string, s Scan) *memstore.Node {
	return s.Build(st.AddFile(path))
}

// Build lays out s below root and returns the node of the internal group.
func (s Scan) Build(root *memstore.Node) *memstore.Node {
	g := root.Group(s.Group)

	h := g.Group(hedm.GroupHeader)
	h.Set(hedm.KeyXRes, s.XRes).
		Set(hedm.KeyYRes, s.YRes).
		Set(hedm.KeyXDim, s.XDim).
		Set(hedm.KeyYDim, s.YDim).
		Set(hedm.KeyOriginalHeader, s.OriginalHeader)

	phases := h.Group(hedm.GroupPhases)
	for i, p := range s.Phases {
		name := p.Name
		if name == "" {
			name = fmt.Sprint(i + 1)
		}
		phases.Group(name).
			Set(hedm.KeyPhase, p.Index).
			Set(hedm.KeyLatticeConstants, p.LatticeConstants[:]).
			Set(hedm.KeyBasisAtoms, p.BasisAtoms).
			Set(hedm.KeySymmetry, p.Symmetry)
	}

	if s.NoData {
		return g
	}
	data := g.Group(hedm.GroupData)
	rows := int(s.XDim * s.YDim)
	names := s.Columns
	if names == nil {
		for _, c := range hedm.KnownColumns() {
			names = append(names, c.Name)
		}
	}
	for _, name := range names {
		data.Set(name, ColumnValues(name, rows))
	}
	return g
}

// ColumnValues returns the deterministic contents Build writes for a column:
// []int32 for Phase, []float32 otherwise.
func ColumnValues(name string, rows int) any {
	spec, ok := hedm.LookupColumn(name)
	if ok && spec.Kind == hedm.Int32 {
		v := make([]int32, rows)
		for i := range v {
			v[i] = int32(i%2 + 1)
		}
		return v
	}
	offset := float32(0)
	for i, c := range hedm.KnownColumns() {
		if c.Name == name {
			offset = float32(i) * 100
		}
	}
	v := make([]float32, rows)
	for i := range v {
		v[i] = offset + float32(i)
	}
	return v
}
