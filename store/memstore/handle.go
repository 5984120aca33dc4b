package memstore

import (
	"fmt"

	"github.com/robert-malhotra/go-hedm/store"
)

type file struct {
	store  *Store
	path   string
	root   *Node
	closed bool
}

func (f *file) Path() string {
	return f.path
}

func (f *file) OpenGroup(path string) (store.Group, error) {
	if f.closed {
		return nil, store.ErrClosed
	}
	return openGroup(f.store, f.root, path)
}

func (f *file) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.store.released(true)
	return nil
}

type group struct {
	store  *Store
	node   *Node
	closed bool
}

func openGroup(s *Store, from *Node, rel string) (store.Group, error) {
	node, err := from.lookup(rel)
	if err != nil {
		return nil, fmt.Errorf("opening group %q: %w", store.JoinPath(from.path, rel), err)
	}
	if err := s.groupOpened(node.path); err != nil {
		return nil, fmt.Errorf("opening group %q: %w", node.path, err)
	}
	return &group{store: s, node: node}, nil
}

func (g *group) Path() string {
	return g.node.path
}

func (g *group) OpenGroup(name string) (store.Group, error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	return openGroup(g.store, g.node, name)
}

func (g *group) Groups() ([]string, error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	return append([]string(nil), g.node.order...), nil
}

func (g *group) Datasets() ([]string, error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	return append([]string(nil), g.node.datasets...), nil
}

func (g *group) Read(name string) (any, error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	if v, ok := g.node.values[name]; ok {
		return v, nil
	}
	if _, ok := g.node.groups[name]; ok {
		return nil, store.ErrNotDataset
	}
	return nil, store.ErrNotFound
}

func (g *group) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	g.store.released(false)
	return nil
}
