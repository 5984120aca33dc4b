package hedm

import (
	"fmt"

	"github.com/robert-malhotra/go-hedm/store"
	"github.com/robert-malhotra/go-hedm/store/h5"
)

// PhaseOrder selects how phases are ordered after a header read.
type PhaseOrder int

const (
	// PhaseOrderStore keeps the order in which the store enumerates the
	// phase groups.
	PhaseOrderStore PhaseOrder = iota
	// PhaseOrderIndex sorts phases by their Phase index, keeping store
	// order among equal indexes.
	PhaseOrderIndex
)

func (o PhaseOrder) String() string {
	switch o {
	case PhaseOrderStore:
		return "store"
	case PhaseOrderIndex:
		return "index"
	default:
		return fmt.Sprintf("PhaseOrder(%d)", int(o))
	}
}

// ParsePhaseOrder parses "store" or "index". The empty string is "store".
func ParsePhaseOrder(s string) (PhaseOrder, error) {
	switch s {
	case "", "store":
		return PhaseOrderStore, nil
	case "index":
		return PhaseOrderIndex, nil
	default:
		return 0, fmt.Errorf("invalid phase order %q (use store or index)", s)
	}
}

// Option configures a Reader.
type Option func(*options)

type options struct {
	groupPath  string
	arrays     map[string]struct{}
	readAll    bool
	store      store.Store
	log        *Logger
	alloc      Allocator
	phaseOrder PhaseOrder
}

func defaultOptions() *options {
	return &options{
		arrays: make(map[string]struct{}),
		store:  h5.Store{},
		log:    NoopLogger(),
		alloc:  HeapAllocator{},
	}
}

// WithGroupPath sets the internal group holding Header and Data.
func WithGroupPath(path string) Option {
	return func(o *options) {
		o.groupPath = path
	}
}

// WithArrays adds column names to the allow-list.
func WithArrays(names ...string) Option {
	return func(o *options) {
		for _, n := range names {
			o.arrays[n] = struct{}{}
		}
	}
}

// WithReadAll loads every known column regardless of the allow-list.
func WithReadAll(all bool) Option {
	return func(o *options) {
		o.readAll = all
	}
}

// WithStore sets the store files are opened from. The default is the HDF5
// backend.
func WithStore(s store.Store) Option {
	return func(o *options) {
		if s != nil {
			o.store = s
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithAllocator sets the allocator for column buffers.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithPhaseOrder sets the phase ordering.
func WithPhaseOrder(order PhaseOrder) Option {
	return func(o *options) {
		o.phaseOrder = order
	}
}
