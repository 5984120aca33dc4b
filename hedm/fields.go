package hedm

import "github.com/robert-malhotra/go-hedm/store"

// field describes one soft-missing dataset read into a record of type R.
type field[R any] struct {
	key  string
	read func(g store.Group, key string, rec *R) error
}

func scalarField[R any, T store.Numeric](key string, target func(*R) *T) field[R] {
	return field[R]{key: key, read: func(g store.Group, key string, rec *R) error {
		v, err := store.ReadScalar[T](g, key)
		if err != nil {
			return err
		}
		*target(rec) = v
		return nil
	}}
}

func arrayField[R any, T store.Numeric](key string, target func(*R) []T) field[R] {
	return field[R]{key: key, read: func(g store.Group, key string, rec *R) error {
		_, err := store.ReadInto(g, key, target(rec))
		return err
	}}
}

func stringField[R any](key string, target func(*R) *string) field[R] {
	return field[R]{key: key, read: func(g store.Group, key string, rec *R) error {
		v, err := store.ReadString(g, key)
		if err != nil {
			return err
		}
		*target(rec) = v
		return nil
	}}
}

var headerFields = []field[Header]{
	scalarField(KeyXRes, func(h *Header) *float32 { return &h.XResolution }),
	scalarField(KeyYRes, func(h *Header) *float32 { return &h.YResolution }),
	scalarField(KeyXDim, func(h *Header) *int { return &h.XDimension }),
	scalarField(KeyYDim, func(h *Header) *int { return &h.YDimension }),
}

// Read after the phases.
var trailerFields = []field[Header]{
	stringField(KeyOriginalHeader, func(h *Header) *string { return &h.OriginalHeader }),
}

var phaseFields = []field[Phase]{
	scalarField(KeyPhase, func(p *Phase) *int { return &p.Index }),
	arrayField(KeyLatticeConstants, func(p *Phase) []float32 { return p.LatticeConstants[:] }),
	stringField(KeyBasisAtoms, func(p *Phase) *string { return &p.BasisAtoms }),
	stringField(KeySymmetry, func(p *Phase) *string { return &p.Symmetry }),
}

// readFields runs every field of the table against g. Failures are recorded
// as warnings and never stop the loop.
func readFields[R any](r *Reader, g store.Group, fields []field[R], rec *R) {
	for _, f := range fields {
		if err := f.read(g, f.key, rec); err != nil {
			r.warn(g.Path(), f.key, err)
		}
	}
}
