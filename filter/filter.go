// Package filter holds the numeric kernels that run next to the HEDM reader:
// per-tuple p-norms, surface roughness of a boundary and averaging of
// edge or face values onto shared vertices.
//
// Kernels are generic over the closed Number set, so the element type is
// fixed at the call site instead of being inspected at run time.
package filter

import "errors"

// Number is the set of element types the kernels accept.
type Number interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 |
		~int64 | ~uint64 | ~float32 | ~float64
}

var (
	ErrNegativeP       = errors.New("p must not be negative")
	ErrComponents      = errors.New("data length is not a multiple of the component count")
	ErrNoBoundaryCells = errors.New("no boundary cells")
	ErrGeometry        = errors.New("array does not match geometry")
	ErrDegenerate      = errors.New("boundary cells share one x coordinate")
	ErrTopology        = errors.New("invalid cell connectivity")
)
