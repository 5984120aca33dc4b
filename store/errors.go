package store

import "errors"

// Common errors
var (
	ErrNotHDF5      = errors.New("not an HDF5 file")
	ErrNotFound     = errors.New("object not found")
	ErrNotDataset   = errors.New("object is not a dataset")
	ErrNotGroup     = errors.New("object is not a group")
	ErrInvalidPath  = errors.New("invalid path")
	ErrClosed       = errors.New("handle is closed")
	ErrTypeMismatch = errors.New("dataset type mismatch")
	ErrShortRead    = errors.New("dataset shorter than buffer")
	ErrEmpty        = errors.New("dataset has no values")
)

// ErrSkipGroup can be returned from a WalkFunc to skip the group's children.
var ErrSkipGroup = errors.New("skip this group")
