package store

// Store opens hierarchical container files.
type Store interface {
	Open(path string) (File, error)
}

// File is an open container. Closing it does not close groups opened from it;
// callers release those first.
type File interface {
	// Path returns the path the file was opened with.
	Path() string

	// OpenGroup opens a group by path. Leading slashes are optional, all
	// paths are resolved from the root group.
	OpenGroup(path string) (Group, error)

	Close() error
}

// Group is an open group handle.
type Group interface {
	// Path returns the absolute path of the group.
	Path() string

	// OpenGroup opens a child group by relative path.
	OpenGroup(name string) (Group, error)

	// Groups returns the names of the immediate child groups in the
	// store's enumeration order.
	Groups() ([]string, error)

	// Datasets returns the names of the datasets directly in this group.
	Datasets() ([]string, error)

	// Read returns the decoded value of the named dataset. Depending on the
	// dataset this is a scalar, a slice or a string.
	Read(name string) (any, error)

	Close() error
}

// Kind identifies the type of object visited by Walk.
type Kind int

const (
	KindGroup Kind = iota
	KindDataset
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindDataset:
		return "dataset"
	default:
		return "unknown"
	}
}
