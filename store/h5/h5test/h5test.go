// Package h5test writes in-memory trees to real HDF5 files, so that tests
// can run the same fixtures against the memstore and h5 backends.
package h5test

import (
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/hdf5"

	"github.com/robert-malhotra/go-hedm/store"
	"github.com/robert-malhotra/go-hedm/store/memstore"
)

// WriteFile writes the groups and datasets below root to a new HDF5 file at
// path. Slice datasets get one dimension named after their length, so
// datasets of equal length share it.
func WriteFile(path string, root *memstore.Node) (err error) {
	w, err := hdf5.OpenWriter(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("writing %s: %w", path, cerr)
		}
	}()
	return writeGroup(w, root)
}

// Write builds a file with build and writes it below t.TempDir. It returns
// the path of the HDF5 file.
func Write(t testing.TB, build func(root *memstore.Node)) string {
	t.Helper()
	st := memstore.New()
	root := st.AddFile("fixture")
	build(root)

	path := filepath.Join(t.TempDir(), "fixture.h5")
	if err := WriteFile(path, root); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func writeGroup(w api.Writer, n *memstore.Node) error {
	for _, name := range n.DatasetNames() {
		v, _ := n.Value(name)
		if err := w.AddVar(name, api.Variable{Values: v, Dimensions: dimensions(v)}); err != nil {
			return fmt.Errorf("writing dataset %s: %w", store.JoinPath(n.Path(), name), err)
		}
	}
	for _, name := range n.GroupNames() {
		child, _ := n.Child(name)
		gw, err := w.CreateGroup(name)
		if err != nil {
			return fmt.Errorf("creating group %s: %w", child.Path(), err)
		}
		if err := writeGroup(gw, child); err != nil {
			return err
		}
		if err := gw.Close(); err != nil {
			return err
		}
	}
	return nil
}

func dimensions(v any) []string {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	return []string{fmt.Sprintf("n%d", rv.Len())}
}
