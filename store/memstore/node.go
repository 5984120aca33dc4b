package memstore

import (
	"github.com/robert-malhotra/go-hedm/store"
)

// Node is a group in an in-memory file. Child groups and datasets keep
// their insertion order.
type Node struct {
	path     string
	groups   map[string]*Node
	order    []string
	values   map[string]any
	datasets []string
}

func newNode(path string) *Node {
	return &Node{
		path:   store.CleanPath(path),
		groups: make(map[string]*Node),
		values: make(map[string]any),
	}
}

// Path returns the absolute path of the node.
func (n *Node) Path() string {
	return n.path
}

// GroupNames returns the child group names in insertion order.
func (n *Node) GroupNames() []string {
	return append([]string(nil), n.order...)
}

// DatasetNames returns the dataset names in insertion order.
func (n *Node) DatasetNames() []string {
	return append([]string(nil), n.datasets...)
}

// Child returns an existing child group.
func (n *Node) Child(name string) (*Node, bool) {
	child, ok := n.groups[name]
	return child, ok
}

// Value returns the value of a dataset.
func (n *Node) Value(name string) (any, bool) {
	v, ok := n.values[name]
	return v, ok
}

// Group returns the child group at the relative path, creating missing
// groups along the way.
func (n *Node) Group(rel string) *Node {
	cur := n
	for _, name := range store.SplitPath(rel) {
		child, ok := cur.groups[name]
		if !ok {
			delete(cur.values, name)
			cur.datasets = without(cur.datasets, name)
			child = newNode(store.JoinPath(cur.path, name))
			cur.groups[name] = child
			cur.order = append(cur.order, name)
		}
		cur = child
	}
	return cur
}

// Set stores a dataset value. Replacing a value keeps its position.
func (n *Node) Set(name string, value any) *Node {
	if _, ok := n.values[name]; !ok {
		n.datasets = append(n.datasets, name)
	}
	n.values[name] = value
	return n
}

// Remove deletes a child group or dataset.
func (n *Node) Remove(name string) *Node {
	if _, ok := n.groups[name]; ok {
		delete(n.groups, name)
		n.order = without(n.order, name)
	}
	if _, ok := n.values[name]; ok {
		delete(n.values, name)
		n.datasets = without(n.datasets, name)
	}
	return n
}

func (n *Node) lookup(rel string) (*Node, error) {
	cur := n
	for _, name := range store.SplitPath(rel) {
		child, ok := cur.groups[name]
		if !ok {
			if _, isDataset := cur.values[name]; isDataset {
				return nil, store.ErrNotGroup
			}
			return nil, store.ErrNotFound
		}
		cur = child
	}
	return cur, nil
}

func without(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
