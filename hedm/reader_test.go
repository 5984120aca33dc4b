package hedm_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-hedm/hedm"
	"github.com/robert-malhotra/go-hedm/hedm/hedmtest"
	"github.com/robert-malhotra/go-hedm/store"
	"github.com/robert-malhotra/go-hedm/store/memstore"
)

const scanFile = "scan.h5"

func newStore(t *testing.T, s hedmtest.Scan) (*memstore.Store, *memstore.Node) {
	t.Helper()
	st := memstore.New()
	g := hedmtest.Add(st, scanFile, s)
	return st, g
}

func newReader(st store.Store, opts ...hedm.Option) *hedm.Reader {
	opts = append([]hedm.Option{
		hedm.WithStore(st),
		hedm.WithGroupPath("Slice_0"),
	}, opts...)
	return hedm.NewReader(scanFile, opts...)
}

// countingAlloc tracks live column buffers.
type countingAlloc struct {
	allocs   int
	releases int
}

func (a *countingAlloc) Float32s(n int) []float32 { a.allocs++; return make([]float32, n) }
func (a *countingAlloc) Int32s(n int) []int32 { a.allocs++; return make([]int32, n) }
func (a *countingAlloc) Release(any) { a.releases++ }
func (a *countingAlloc) live() int { return a.allocs - a.releases }

func TestReadHeader_PhasesInStoreOrder(t *testing.T) {
	s := hedmtest.Default()
	s.Phases = []hedmtest.PhaseSpec{
		{Name: "b", Index: 3, Symmetry: "432"},
		{Name: "a", Index: 1, Symmetry: "622"},
		{Name: "c", Index: 2, Symmetry: "6"},
	}
	st, _ := newStore(t, s)

	r := newReader(st)
	require.NoError(t, r.ReadHeaderOnly())

	phases := r.Phases()
	require.Len(t, phases, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{phases[0].Index, phases[1].Index, phases[2].Index})
	assert.Equal(t, "432", phases[0].Symmetry)
}

func TestReadHeader_PhaseOrderIndex(t *testing.T) {
	s := hedmtest.Default()
	s.Phases = []hedmtest.PhaseSpec{
		{Name: "b", Index: 3},
		{Name: "a", Index: 1, Symmetry: "first"},
		{Name: "c", Index: 1, Symmetry: "second"},
	}
	st, _ := newStore(t, s)

	r := newReader(st, hedm.WithPhaseOrder(hedm.PhaseOrderIndex))
	require.NoError(t, r.ReadHeaderOnly())

	phases := r.Phases()
	require.Len(t, phases, 3)
	assert.Equal(t, 1, phases[0].Index)
	assert.Equal(t, "first", phases[0].Symmetry)
	assert.Equal(t, "second", phases[1].Symmetry)
	assert.Equal(t, 3, phases[2].Index)
}

func TestReadHeader_Values(t *testing.T) {
	st, _ := newStore(t, hedmtest.Default())

	r := newReader(st)
	require.NoError(t, r.ReadHeaderOnly())

	assert.Equal(t, float32(1.5), r.XResolution())
	assert.Equal(t, float32(2.5), r.YResolution())
	assert.Equal(t, 4, r.XDimension())
	assert.Equal(t, 3, r.YDimension())
	assert.Equal(t, "# HEDM mic file\n# 4 x 3 grid", r.OriginalHeader())

	phases := r.Phases()
	require.Len(t, phases, 2)
	assert.Equal(t, hedm.Phase{
		Index:            1,
		LatticeConstants: [6]float32{4.05, 4.05, 4.05, 90, 90, 90},
		BasisAtoms:       "Al",
		Symmetry:         "432",
	}, phases[0])
	assert.Empty(t, r.Warnings())
}

func TestReadFile_AllColumns(t *testing.T) {
	st, _ := newStore(t, hedmtest.Default())

	r := newReader(st, hedm.WithReadAll(true))
	require.NoError(t, r.ReadFile())

	cols := r.Columns()
	assert.Equal(t, 7, cols.Count())
	assert.Equal(t, 12, cols.Len())
	assert.Equal(t, 12, r.NumberOfElements())
	for _, spec := range hedm.KnownColumns() {
		switch spec.Kind {
		case hedm.Float32:
			v, ok := r.Float32Column(spec.Name)
			require.True(t, ok, spec.Name)
			assert.Len(t, v, 12, spec.Name)
			assert.Equal(t, hedmtest.ColumnValues(spec.Name, 12), v)
		case hedm.Int32:
			v, ok := r.Int32Column(spec.Name)
			require.True(t, ok, spec.Name)
			assert.Len(t, v, 12, spec.Name)
		}
	}
	assert.Equal(t, 0, st.Live())
}

func TestReadFile_AllowList(t *testing.T) {
	st, _ := newStore(t, hedmtest.Default())

	r := newReader(st, hedm.WithArrays(hedm.ColumnConfidence, hedm.ColumnPhase))
	require.NoError(t, r.ReadFile())

	cols := r.Columns()
	assert.Equal(t, []string{hedm.ColumnConfidence, hedm.ColumnPhase}, cols.Names())
	for _, name := range []string{hedm.ColumnEuler1, hedm.ColumnEuler2, hedm.ColumnEuler3, hedm.ColumnX, hedm.ColumnY} {
		assert.False(t, cols.Has(name), name)
	}
	phase, ok := r.Int32Column(hedm.ColumnPhase)
	require.True(t, ok)
	assert.Equal(t, []int32{1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 2}, phase)
}

func TestReadFile_SetArraysToRead(t *testing.T) {
	st, _ := newStore(t, hedmtest.Default())

	r := newReader(st, hedm.WithReadAll(true))
	r.ReadAllArrays(false)
	r.SetArraysToRead(hedm.ColumnX)
	require.NoError(t, r.ReadFile())

	assert.Equal(t, []string{hedm.ColumnX}, r.Columns().Names())
}

func TestReadHeader_MissingPhasesGroup(t *testing.T) {
	st, g := newStore(t, hedmtest.Default())
	g.Group(hedm.GroupHeader).Remove(hedm.GroupPhases)

	r := newReader(st)
	err := r.ReadFile()
	require.Error(t, err)
	assert.True(t, errors.Is(err, hedm.ErrMissingPhasesGroup))
	assert.Equal(t, hedm.CodeMissingPhasesGroup, hedm.CodeOf(err))
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, r.Phases())
	assert.Equal(t, 0, r.Columns().Count())

	stats := st.Stats()
	assert.Equal(t, 1, stats.FileOpens)
	assert.Equal(t, 1, stats.FileCloses)
	assert.Equal(t, stats.GroupOpens, stats.GroupCloses)
	assert.Equal(t, 0, st.Live())
}

func TestReadFile_FailedRereadDropsColumns(t *testing.T) {
	st, g := newStore(t, hedmtest.Default())
	alloc := &countingAlloc{}

	r := newReader(st, hedm.WithReadAll(true), hedm.WithAllocator(alloc))
	require.NoError(t, r.ReadFile())
	require.Equal(t, 7, r.Columns().Count())
	require.Equal(t, 12, r.NumberOfElements())

	g.Group(hedm.GroupHeader).Remove(hedm.GroupPhases)
	err := r.ReadFile()
	require.ErrorIs(t, err, hedm.ErrMissingPhasesGroup)

	assert.Zero(t, r.Columns().Count())
	assert.False(t, r.Columns().Has(hedm.ColumnEuler1))
	assert.Zero(t, r.NumberOfElements())
	assert.Zero(t, r.XDimension())
	assert.Zero(t, alloc.live())
	assert.Equal(t, 0, st.Live())
}

func TestReadHeaderOnly_DropsColumnsOfPreviousHeader(t *testing.T) {
	st, _ := newStore(t, hedmtest.Default())

	r := newReader(st, hedm.WithReadAll(true))
	require.NoError(t, r.ReadFile())
	require.Equal(t, 7, r.Columns().Count())

	require.NoError(t, r.ReadHeaderOnly())
	assert.Zero(t, r.Columns().Count())
	assert.Zero(t, r.NumberOfElements())
	assert.Equal(t, 4, r.XDimension())
}

func TestReadHeader_UnopenablePhaseKeepsRecord(t *testing.T) {
	st, _ := newStore(t, hedmtest.Default())
	broken := errors.New("bad object header")
	st.FailGroup("/Slice_0/Header/Phases/1", broken)

	r := newReader(st)
	require.NoError(t, r.ReadHeaderOnly())

	phases := r.Phases()
	require.Len(t, phases, 2)
	assert.Equal(t, hedm.Phase{}, phases[0])
	assert.Equal(t, "Ti", phases[1].BasisAtoms)

	warnings := r.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "1", warnings[0].Field)
	assert.Equal(t, "/Slice_0/Header/Phases", warnings[0].Path)
	assert.ErrorIs(t, warnings[0].Err, broken)
	assert.Equal(t, 0, st.Live())
}

func TestReadHeader_NoPhases(t *testing.T) {
	s := hedmtest.Default()
	s.Phases = nil
	st, _ := newStore(t, s)

	r := newReader(st)
	err := r.ReadHeaderOnly()
	assert.Equal(t, hedm.CodeNoPhasesFound, hedm.CodeOf(err))
	assert.Equal(t, 0, st.Live())
}

func TestReadHeader_SecondReadReplacesPhases(t *testing.T) {
	st, g := newStore(t, hedmtest.Default())

	r := newReader(st)
	require.NoError(t, r.ReadHeaderOnly())
	require.Len(t, r.Phases(), 2)

	g.Group(hedm.GroupHeader).Group(hedm.GroupPhases).Remove("2")
	require.NoError(t, r.ReadHeaderOnly())
	assert.Len(t, r.Phases(), 1)
}

func TestReadHeader_SoftMissingScalar(t *testing.T) {
	st, g := newStore(t, hedmtest.Default())
	g.Group(hedm.GroupHeader).Remove(hedm.KeyXRes)

	var buf bytes.Buffer
	r := newReader(st, hedm.WithLogger(hedm.NewTextLogger(&buf, slog.LevelWarn)))
	require.NoError(t, r.ReadHeaderOnly())

	assert.Zero(t, r.XResolution())
	assert.Equal(t, float32(2.5), r.YResolution())

	warnings := r.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, hedm.KeyXRes, warnings[0].Field)
	assert.Equal(t, "/Slice_0/Header", warnings[0].Path)
	assert.ErrorIs(t, warnings[0].Err, store.ErrNotFound)
	assert.Contains(t, buf.String(), "field=XRes")
}

func TestReadHeader_SoftMissingPhaseField(t *testing.T) {
	st, g := newStore(t, hedmtest.Default())
	g.Group("Header/Phases/1").Remove(hedm.KeySymmetry).Set(hedm.KeyLatticeConstants, []float32{1, 2, 3})

	r := newReader(st)
	require.NoError(t, r.ReadHeaderOnly())

	phases := r.Phases()
	require.Len(t, phases, 2)
	assert.Empty(t, phases[0].Symmetry)
	assert.Equal(t, [6]float32{1, 2, 3, 0, 0, 0}, phases[0].LatticeConstants)
	assert.Equal(t, "Al", phases[0].BasisAtoms)
	assert.Len(t, r.Warnings(), 2)
}

func TestReadHeader_MissingHeaderGroup(t *testing.T) {
	st, g := newStore(t, hedmtest.Default())
	g.Remove(hedm.GroupHeader)

	r := newReader(st)
	err := r.ReadFile()
	assert.ErrorIs(t, err, hedm.ErrMissingHeaderGroup)
	assert.Equal(t, 0, st.Live())
	assert.Zero(t, st.Opened("/Slice_0/Data"))
}

func TestReadData_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name       string
		xDim, yDim int32
	}{
		{"zero y", 4, 0},
		{"zero x", 0, 3},
		{"negative y", 4, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := hedmtest.Default()
			s.XDim, s.YDim = tt.xDim, tt.yDim
			s.Columns = []string{}
			st, _ := newStore(t, s)
			alloc := &countingAlloc{}

			r := newReader(st, hedm.WithReadAll(true), hedm.WithAllocator(alloc))
			err := r.ReadFile()
			assert.ErrorIs(t, err, hedm.ErrInvalidDimensions)
			assert.Zero(t, alloc.allocs)
			assert.Zero(t, r.Columns().Count())
			assert.Zero(t, st.Opened("/Slice_0/Data"))
			assert.Equal(t, 0, st.Live())
		})
	}
}

func TestReadData_WithoutHeader(t *testing.T) {
	st, _ := newStore(t, hedmtest.Default())
	f, err := st.Open(scanFile)
	require.NoError(t, err)
	defer f.Close()
	g, err := f.OpenGroup("Slice_0")
	require.NoError(t, err)
	defer g.Close()

	r := newReader(st, hedm.WithReadAll(true))
	assert.Equal(t, hedm.CodeInvalidDimensions, hedm.CodeOf(r.ReadData(g)))
}

func TestReadFile_RepeatedReadsReleaseArrays(t *testing.T) {
	st, _ := newStore(t, hedmtest.Default())
	alloc := &countingAlloc{}

	r := newReader(st, hedm.WithReadAll(true), hedm.WithAllocator(alloc))
	require.NoError(t, r.ReadFile())
	assert.Equal(t, 7, alloc.live())

	require.NoError(t, r.ReadFile())
	assert.Equal(t, 14, alloc.allocs)
	assert.Equal(t, 7, alloc.releases)
	assert.Equal(t, 7, alloc.live())

	r.Reset()
	assert.Equal(t, 0, alloc.live())
	assert.Zero(t, r.Columns().Count())
	assert.Zero(t, r.NumberOfElements())
	assert.Empty(t, r.Phases())
	assert.Zero(t, r.Header())
}

func TestReadHeaderOnly_NeverOpensData(t *testing.T) {
	st, _ := newStore(t, hedmtest.Default())

	r := newReader(st, hedm.WithReadAll(true))
	require.NoError(t, r.ReadHeaderOnly())

	assert.Zero(t, st.Opened("/Slice_0/Data"))
	assert.Equal(t, 1, st.Opened("/Slice_0"))
	assert.Equal(t, 1, st.Opened("/Slice_0/Header"))
	assert.Zero(t, r.Columns().Count())
	assert.Equal(t, 0, st.Live())
}

func TestReadFile_EmptyGroupPath(t *testing.T) {
	st, _ := newStore(t, hedmtest.Default())

	r := hedm.NewReader(scanFile, hedm.WithStore(st))
	err := r.ReadFile()
	assert.Equal(t, hedm.CodeEmptyConfiguredPath, hedm.CodeOf(err))
	assert.Zero(t, st.Stats().FileOpens)

	err = r.ReadHeaderOnly()
	assert.ErrorIs(t, err, hedm.ErrEmptyConfiguredPath)
	assert.Zero(t, st.Stats().FileOpens)
}

func TestReadFile_OpenFailures(t *testing.T) {
	t.Run("cannot open file", func(t *testing.T) {
		st := memstore.New()
		st.FailOpen(scanFile, errors.New("permission denied"))

		err := newReader(st).ReadFile()
		assert.ErrorIs(t, err, hedm.ErrCannotOpenFile)
		assert.Contains(t, err.Error(), "permission denied")
	})

	t.Run("missing internal path", func(t *testing.T) {
		st, _ := newStore(t, hedmtest.Default())

		r := hedm.NewReader(scanFile, hedm.WithStore(st), hedm.WithGroupPath("Slice_9"))
		err := r.ReadFile()
		assert.ErrorIs(t, err, hedm.ErrMissingInternalPath)
		assert.Equal(t, 1, st.Stats().FileCloses)
		assert.Equal(t, 0, st.Live())
	})
}

func TestReadFile_MissingDataGroup(t *testing.T) {
	s := hedmtest.Default()
	s.NoData = true
	st, _ := newStore(t, s)

	r := newReader(st, hedm.WithReadAll(true))
	err := r.ReadFile()
	assert.ErrorIs(t, err, hedm.ErrMissingDataGroup)
	assert.Equal(t, 2, len(r.Phases()))
	assert.Equal(t, 0, st.Live())
}

func TestReadData_MissingColumnIsZeroFilled(t *testing.T) {
	s := hedmtest.Default()
	s.Columns = []string{hedm.ColumnEuler1}
	st, _ := newStore(t, s)

	r := newReader(st, hedm.WithArrays(hedm.ColumnEuler1, hedm.ColumnConfidence))
	require.NoError(t, r.ReadFile())

	conf, ok := r.Float32Column(hedm.ColumnConfidence)
	require.True(t, ok)
	assert.Equal(t, make([]float32, 12), conf)

	warnings := r.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, hedm.ColumnConfidence, warnings[0].Field)
	assert.Equal(t, "/Slice_0/Data", warnings[0].Path)
}

func TestReadData_ShortColumn(t *testing.T) {
	st, g := newStore(t, hedmtest.Default())
	g.Group(hedm.GroupData).Set(hedm.ColumnX, []float64{7, 8})

	r := newReader(st, hedm.WithArrays(hedm.ColumnX))
	require.NoError(t, r.ReadFile())

	x, ok := r.Float32Column(hedm.ColumnX)
	require.True(t, ok)
	require.Len(t, x, 12)
	assert.Equal(t, []float32{7, 8, 0}, x[:3])
	require.Len(t, r.Warnings(), 1)
	assert.ErrorIs(t, r.Warnings()[0].Err, store.ErrShortRead)
}

func TestError_Format(t *testing.T) {
	err := &hedm.Error{Code: hedm.CodeMissingDataGroup, Path: "/Slice_0/Data", Err: store.ErrNotFound}
	assert.Equal(t, "hedm: missing Data group /Slice_0/Data: object not found", err.Error())
	assert.Equal(t, hedm.Code(0), hedm.CodeOf(errors.New("other")))
	assert.Equal(t, hedm.Code(0), hedm.CodeOf(nil))
	assert.False(t, errors.Is(err, hedm.ErrMissingPhasesGroup))
}

func TestParsePhaseOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    hedm.PhaseOrder
		wantErr bool
	}{
		{"", hedm.PhaseOrderStore, false},
		{"store", hedm.PhaseOrderStore, false},
		{"index", hedm.PhaseOrderIndex, false},
		{"sorted", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := hedm.ParsePhaseOrder(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
