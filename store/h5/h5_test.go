package h5_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/robert-malhotra/go-hedm/hedm/hedmtest"
	"github.com/robert-malhotra/go-hedm/store"
	"github.com/robert-malhotra/go-hedm/store/h5"
	"github.com/robert-malhotra/go-hedm/store/h5/h5test"
	"github.com/robert-malhotra/go-hedm/store/memstore"
)

// writeScan writes the default scan plus a tenth phase to a temporary HDF5
// file.
func writeScan(t *testing.T) string {
	t.Helper()
	return h5test.Write(t, func(root *memstore.Node) {
		s := hedmtest.Default()
		s.Phases = append(s.Phases, hedmtest.PhaseSpec{
			Name:             "10",
			Index:            10,
			LatticeConstants: [6]float32{3.2, 3.2, 5.2, 90, 90, 120},
			BasisAtoms:       "Mg",
			Symmetry:         "622",
		})
		s.Build(root)
	})
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    int64
		wantErr error
	}{
		{"at zero", append(append([]byte{}, h5.Signature...), make([]byte, 100)...), 0, nil},
		{"at 512", append(make([]byte, 512), h5.Signature...), 512, nil},
		{"at 2048", append(make([]byte, 2048), h5.Signature...), 2048, nil},
		{"at 100", append(make([]byte, 100), h5.Signature...), 0, store.ErrNotHDF5},
		{"short", []byte("HDF"), 0, store.ErrNotHDF5},
		{"text", bytes.Repeat([]byte("not hdf5 "), 400), 0, store.ErrNotHDF5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h5.Sniff(bytes.NewReader(tt.data))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Sniff() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Sniff() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Sniff() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSniffWrittenFile(t *testing.T) {
	path := writeScan(t)
	if err := h5.SniffFile(path); err != nil {
		t.Fatalf("SniffFile() error = %v", err)
	}
}

func TestOpenNotHDF5(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "not-hdf5-*.h5")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString("This is not an HDF5 file"); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	tmpFile.Close()

	_, err = h5.Store{}.Open(tmpFile.Name())
	if !errors.Is(err, store.ErrNotHDF5) {
		t.Errorf("Open() error = %v, want ErrNotHDF5", err)
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := h5.Open(filepath.Join(t.TempDir(), "missing.h5"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open() error = %v, want ErrNotExist", err)
	}
}

func TestSortNatural(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"10", "2", "1"}, []string{"1", "2", "10"}},
		{[]string{"Phase_10", "Phase_9", "Phase_1"}, []string{"Phase_1", "Phase_9", "Phase_10"}},
		{[]string{"b", "a2", "a10", "a"}, []string{"a", "a2", "a10", "b"}},
		{[]string{"007", "7", "08"}, []string{"007", "7", "08"}},
	}
	for _, tt := range tests {
		got := append([]string(nil), tt.in...)
		h5.SortNatural(got)
		if !slices.Equal(got, tt.want) {
			t.Errorf("SortNatural(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOpenScan(t *testing.T) {
	path := writeScan(t)

	f, err := h5.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	if f.Path() != path {
		t.Errorf("Path() = %q, want %q", f.Path(), path)
	}

	g, err := f.OpenGroup("Slice_0/Header")
	if err != nil {
		t.Fatalf("OpenGroup failed: %v", err)
	}
	defer g.Close()

	if g.Path() != "/Slice_0/Header" {
		t.Errorf("Path() = %q", g.Path())
	}
	xdim, err := store.ReadScalar[int](g, "XDim")
	if err != nil {
		t.Fatalf("ReadScalar(XDim) failed: %v", err)
	}
	if xdim != 4 {
		t.Errorf("XDim = %d, want 4", xdim)
	}
	xres, err := store.ReadScalar[float32](g, "XRes")
	if err != nil {
		t.Fatalf("ReadScalar(XRes) failed: %v", err)
	}
	if xres != 1.5 {
		t.Errorf("XRes = %v, want 1.5", xres)
	}
	header, err := store.ReadString(g, "OriginalHeader")
	if err != nil {
		t.Fatalf("ReadString(OriginalHeader) failed: %v", err)
	}
	if header != hedmtest.Default().OriginalHeader {
		t.Errorf("OriginalHeader = %q", header)
	}

	if _, err := g.OpenGroup("NoSuchGroup"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("OpenGroup(NoSuchGroup) error = %v, want ErrNotFound", err)
	}
	if _, err := g.Read("NoSuchDataset"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Read(NoSuchDataset) error = %v, want ErrNotFound", err)
	}
}

func TestGroupsNaturalOrder(t *testing.T) {
	path := writeScan(t)

	f, err := h5.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	phases, err := f.OpenGroup("/Slice_0/Header/Phases")
	if err != nil {
		t.Fatalf("OpenGroup(Phases) failed: %v", err)
	}
	defer phases.Close()

	for i := 0; i < 5; i++ {
		names, err := phases.Groups()
		if err != nil {
			t.Fatalf("Groups failed: %v", err)
		}
		if want := []string{"1", "2", "10"}; !slices.Equal(names, want) {
			t.Fatalf("Groups() = %v, want %v", names, want)
		}
	}

	ti, err := phases.OpenGroup("2")
	if err != nil {
		t.Fatalf("OpenGroup(2) failed: %v", err)
	}
	defer ti.Close()
	atoms, err := store.ReadString(ti, "BasisAtoms")
	if err != nil {
		t.Fatalf("ReadString(BasisAtoms) failed: %v", err)
	}
	if atoms != "Ti" {
		t.Errorf("BasisAtoms = %q, want Ti", atoms)
	}
	lattice, err := store.ReadSlice[float32](ti, "LatticeConstants")
	if err != nil {
		t.Fatalf("ReadSlice(LatticeConstants) failed: %v", err)
	}
	if want := []float32{2.95, 2.95, 4.68, 90, 90, 120}; !slices.Equal(lattice, want) {
		t.Errorf("LatticeConstants = %v, want %v", lattice, want)
	}
}

func TestReadColumns(t *testing.T) {
	path := writeScan(t)

	f, err := h5.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	data, err := f.OpenGroup("Slice_0/Data")
	if err != nil {
		t.Fatalf("OpenGroup(Data) failed: %v", err)
	}
	defer data.Close()

	names, err := data.Datasets()
	if err != nil {
		t.Fatalf("Datasets failed: %v", err)
	}
	for _, want := range []string{"Euler1", "Euler2", "Euler3", "Confidence", "Phase", "X", "Y"} {
		if !slices.Contains(names, want) {
			t.Errorf("Datasets() = %v, missing %s", names, want)
		}
	}

	v, err := data.Read("Confidence")
	if err != nil {
		t.Fatalf("Read(Confidence) failed: %v", err)
	}
	conf, ok := v.([]float32)
	if !ok {
		t.Fatalf("Read(Confidence) = %T, want []float32", v)
	}
	if want := hedmtest.ColumnValues("Confidence", 12).([]float32); !slices.Equal(conf, want) {
		t.Errorf("Confidence = %v, want %v", conf, want)
	}

	phase := make([]int32, 12)
	n, err := store.ReadInto(data, "Phase", phase)
	if err != nil {
		t.Fatalf("ReadInto(Phase) failed: %v", err)
	}
	if n != 12 || phase[0] != 1 || phase[1] != 2 {
		t.Errorf("ReadInto(Phase) = %d %v", n, phase)
	}
}

func TestCloseIdempotent(t *testing.T) {
	path := writeScan(t)

	f, err := h5.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	g, err := f.OpenGroup("Slice_0")
	if err != nil {
		t.Fatalf("OpenGroup failed: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("group Close failed: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Errorf("second group Close returned %v", err)
	}
	if _, err := g.Groups(); !errors.Is(err, store.ErrClosed) {
		t.Errorf("Groups after Close error = %v, want ErrClosed", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}
	if _, err := f.OpenGroup("/"); !errors.Is(err, store.ErrClosed) {
		t.Errorf("OpenGroup after Close error = %v, want ErrClosed", err)
	}
}
