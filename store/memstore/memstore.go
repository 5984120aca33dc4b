// Package memstore provides an in-memory store.Store.
//
// Files are built with a small node API and every handle opened from them is
// counted, which makes the store suitable as a test double for code that
// must release everything it opens:
//
//	s := memstore.New()
//	root := s.AddFile("scan.h5")
//	root.Group("Slice/Header").Set("XDim", int32(4))
//
//	// ... run code against s ...
//	if s.Live() != 0 { t.Fatal("handle leak") }
package memstore

import (
	"fmt"
	"io/fs"
	"sync"

	"github.com/robert-malhotra/go-hedm/store"
)

// Stats counts handle traffic.
type Stats struct {
	FileOpens   int
	FileCloses  int
	GroupOpens  int
	GroupCloses int
}

// Store is an in-memory store.Store. It is safe for concurrent use as long
// as the node tree is not modified while files are open.
type Store struct {
	mu       sync.Mutex
	files    map[string]*Node
	failures map[string]error
	groupErr map[string]error
	stats    Stats
	opened   map[string]int
	live     int
}

var _ store.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		files:    make(map[string]*Node),
		failures: make(map[string]error),
		groupErr: make(map[string]error),
		opened:   make(map[string]int),
	}
}

// AddFile registers a file and returns its root group node.
// Adding an existing path returns the existing root.
func (s *Store) AddFile(path string) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	if root, ok := s.files[path]; ok {
		return root
	}
	root := newNode("/")
	s.files[path] = root
	return root
}

// FailOpen makes Open fail for path with err.
func (s *Store) FailOpen(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = err
}

// FailGroup makes opening the group at the absolute path fail with err,
// in every file of the store.
func (s *Store) FailGroup(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupErr[store.CleanPath(path)] = err
}

// Open opens a registered file.
func (s *Store) Open(path string) (store.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failures[path]; ok {
		return nil, fmt.Errorf("opening file %q: %w", path, err)
	}
	root, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("opening file %q: %w", path, fs.ErrNotExist)
	}
	s.stats.FileOpens++
	s.live++
	return &file{store: s, path: path, root: root}, nil
}

// Stats returns a snapshot of the handle counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Opened returns how many times the group at the absolute path was opened.
func (s *Store) Opened(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened[store.CleanPath(path)]
}

// Live returns the number of file and group handles not yet closed.
func (s *Store) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// ResetStats zeroes all counters. Handles that are still open keep counting
// against Live.
func (s *Store) ResetStats() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = Stats{}
	s.opened = make(map[string]int)
}

// groupOpened records an open of the group at path, or returns the error
// registered with FailGroup.
func (s *Store) groupOpened(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.groupErr[path]; ok {
		return err
	}
	s.stats.GroupOpens++
	s.opened[path]++
	s.live++
	return nil
}

func (s *Store) released(isFile bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if isFile {
		s.stats.FileCloses++
	} else {
		s.stats.GroupCloses++
	}
	s.live--
}
