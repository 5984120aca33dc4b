// Package store defines the hierarchical container contract the HEDM reader
// navigates: a Store opens Files, Files and Groups open child Groups, and
// Groups expose named datasets.
//
// Every handle returned by Open or OpenGroup must be closed exactly once.
// Close is idempotent, so a deferred Close after an explicit one is safe.
//
// Two implementations ship with the module: [github.com/robert-malhotra/go-hedm/store/h5]
// reads real HDF5 files, and [github.com/robert-malhotra/go-hedm/store/memstore]
// keeps a hierarchy in memory and counts handle traffic for tests.
//
// # Typed reads
//
// Group.Read returns whatever the backend decoded (a scalar, a slice or a
// string). The generic helpers [ReadScalar], [ReadInto], [ReadSlice] and
// [ReadString] convert those values into the element type the caller asks
// for:
//
//	xdim, err := store.ReadScalar[int](g, "XDim")
//	buf := make([]float32, rows)
//	n, err := store.ReadInto(g, "Euler1", buf)
package store
