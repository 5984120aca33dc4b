// Package h5 implements store.Store on top of HDF5 files.
//
// Files are checked for the HDF5 signature before they are handed to the
// native decoder, so that arbitrary input fails with store.ErrNotHDF5 instead
// of a decoder error.
package h5

import (
	"errors"
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/hdf5"
	"github.com/batchatco/go-thrower"

	"github.com/robert-malhotra/go-hedm/store"
)

// Store opens HDF5 files from the local filesystem.
type Store struct{}

var _ store.Store = Store{}

// Open implements store.Store.
func (Store) Open(path string) (store.File, error) {
	return Open(path)
}

// File is an open HDF5 file.
type File struct {
	path   string
	root   api.Group
	closed bool
}

// Open opens an HDF5 file for reading.
func Open(path string) (*File, error) {
	if err := SniffFile(path); err != nil {
		return nil, err
	}
	root, err := hdf5.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &File{path: path, root: root}, nil
}

// Path returns the path the file was opened with.
func (f *File) Path() string {
	return f.path
}

// OpenGroup opens a group by path, resolved from the root group.
func (f *File) OpenGroup(path string) (store.Group, error) {
	if f.closed {
		return nil, store.ErrClosed
	}
	return openGroup(f.root, store.CleanPath(path))
}

// Close closes the file. Groups opened from it keep their own reference to
// the underlying file until they are closed.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.root.Close()
	return nil
}

// Group is an open HDF5 group.
type Group struct {
	path   string
	g      api.Group
	closed bool
}

func openGroup(from api.Group, abs string) (*Group, error) {
	g, err := from.GetGroup(abs)
	if err != nil {
		return nil, fmt.Errorf("opening group %q: %w", abs, mapErr(err))
	}
	return &Group{path: abs, g: g}, nil
}

// Path returns the absolute path of the group.
func (g *Group) Path() string {
	return g.path
}

// OpenGroup opens a child group by relative path.
func (g *Group) OpenGroup(name string) (store.Group, error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	return openGroup(g.g, store.JoinPath(g.path, name))
}

// Groups returns the child group names in natural order.
func (g *Group) Groups() (names []string, err error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	defer thrower.RecoverError(&err)
	names = g.g.ListSubgroups()
	SortNatural(names)
	return names, nil
}

// Datasets returns the dataset names of the group.
func (g *Group) Datasets() (names []string, err error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	defer thrower.RecoverError(&err)
	return g.g.ListVariables(), nil
}

// Read decodes a dataset.
func (g *Group) Read(name string) (any, error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	v, err := g.g.GetVariable(name)
	if err != nil {
		return nil, mapErr(err)
	}
	if v.Values == nil {
		return nil, store.ErrEmpty
	}
	return v.Values, nil
}

// Close releases the group.
func (g *Group) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	g.g.Close()
	return nil
}

func mapErr(err error) error {
	if errors.Is(err, hdf5.ErrNotFound) {
		return store.ErrNotFound
	}
	return err
}
