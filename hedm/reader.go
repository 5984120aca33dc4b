package hedm

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/robert-malhotra/go-hedm/store"
)

// Reader loads the header, phases and data columns of one HEDM scan.
// A Reader owns the column buffers it allocates until the next read or
// Reset. It is not safe for concurrent use.
type Reader struct {
	fileName string
	opts     *options

	header   Header
	phases   []Phase
	columns  Columns
	rows     int
	warnings []Warning
}

// NewReader creates a Reader for fileName.
func NewReader(fileName string, opts ...Option) *Reader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Reader{
		fileName: fileName,
		opts:     o,
	}
}

// FileName returns the file the Reader opens.
func (r *Reader) FileName() string { return r.fileName }

// GroupPath returns the configured internal group path.
func (r *Reader) GroupPath() string { return r.opts.groupPath }

// Header returns the last header read.
func (r *Reader) Header() Header { return r.header }

// XResolution returns the step size along X.
func (r *Reader) XResolution() float32 { return r.header.XResolution }

// YResolution returns the step size along Y.
func (r *Reader) YResolution() float32 { return r.header.YResolution }

// XDimension returns the number of grid points along X.
func (r *Reader) XDimension() int { return r.header.XDimension }

// YDimension returns the number of grid points along Y.
func (r *Reader) YDimension() int { return r.header.YDimension }

// OriginalHeader returns the free-text header stored with the scan.
func (r *Reader) OriginalHeader() string { return r.header.OriginalHeader }

// Phases returns a copy of the phase list.
func (r *Reader) Phases() []Phase {
	return slices.Clone(r.phases)
}

// Columns returns the loaded columns. The buffers stay valid until the next
// ReadData, ReadFile or Reset.
func (r *Reader) Columns() Columns { return r.columns }

// Float32Column returns a loaded float32 column.
func (r *Reader) Float32Column(name string) ([]float32, bool) {
	return r.columns.Float32(name)
}

// Int32Column returns a loaded int32 column.
func (r *Reader) Int32Column(name string) ([]int32, bool) {
	return r.columns.Int32(name)
}

// NumberOfElements returns the row count of the last successful ReadData.
func (r *Reader) NumberOfElements() int { return r.rows }

// Warnings returns the soft failures recorded since the last ReadFile,
// ReadHeaderOnly or Reset.
func (r *Reader) Warnings() []Warning {
	return slices.Clone(r.warnings)
}

// SetArraysToRead replaces the column allow-list.
func (r *Reader) SetArraysToRead(names ...string) {
	r.opts.arrays = make(map[string]struct{}, len(names))
	for _, n := range names {
		r.opts.arrays[n] = struct{}{}
	}
}

// ReadAllArrays sets whether every known column is loaded.
func (r *Reader) ReadAllArrays(all bool) {
	r.opts.readAll = all
}

// Reset releases all columns and clears header, phases and warnings.
func (r *Reader) Reset() {
	r.releaseColumns()
	r.header = Header{}
	r.phases = nil
	r.warnings = nil
}

// ReadFile opens the file, descends to the internal group and reads the
// header followed by the data columns. The first hard failure stops the
// read; every handle opened up to that point is closed before returning.
func (r *Reader) ReadFile() (err error) {
	r.warnings = nil
	defer func() {
		r.opts.log.LogRead("read", r.opts.groupPath, len(r.phases), r.columns.Count(), err)
	}()

	sc := newScope(r.opts.log)
	defer sc.release()

	g, err := r.openInternal(sc)
	if err != nil {
		return err
	}
	if err := r.ReadHeader(g); err != nil {
		return err
	}
	return r.ReadData(g)
}

// ReadHeaderOnly is ReadFile without the data stage. The Data group is
// never opened.
func (r *Reader) ReadHeaderOnly() (err error) {
	r.warnings = nil
	defer func() {
		r.opts.log.LogRead("header read", r.opts.groupPath, len(r.phases), 0, err)
	}()

	sc := newScope(r.opts.log)
	defer sc.release()

	g, err := r.openInternal(sc)
	if err != nil {
		return err
	}
	return r.ReadHeader(g)
}

func (r *Reader) openInternal(sc *scope) (store.Group, error) {
	if r.opts.groupPath == "" {
		return nil, &Error{Code: CodeEmptyConfiguredPath, Path: r.fileName}
	}
	f, err := r.opts.store.Open(r.fileName)
	if err != nil {
		return nil, &Error{Code: CodeCannotOpenFile, Path: r.fileName, Err: err}
	}
	sc.add(r.fileName, f)

	g, err := f.OpenGroup(r.opts.groupPath)
	if err != nil {
		return nil, &Error{Code: CodeMissingInternalPath, Path: store.CleanPath(r.opts.groupPath), Err: err}
	}
	sc.add(g.Path(), g)
	return g, nil
}

// ReadHeader reads the Header group below g, replacing any previous header
// and phase list. Columns loaded for the previous header are released.
// Missing scalars and phase fields are soft; a missing Phases group or one
// without child groups is a hard failure. Nothing is installed when the
// read fails.
func (r *Reader) ReadHeader(g store.Group) error {
	r.releaseColumns()
	r.header = Header{}
	r.phases = nil

	sc := newScope(r.opts.log)
	defer sc.release()

	hg, err := g.OpenGroup(GroupHeader)
	if err != nil {
		return &Error{Code: CodeMissingHeaderGroup, Path: store.JoinPath(g.Path(), GroupHeader), Err: err}
	}
	sc.add(hg.Path(), hg)

	var h Header
	readFields(r, hg, headerFields, &h)

	pg, err := hg.OpenGroup(GroupPhases)
	if err != nil {
		return &Error{Code: CodeMissingPhasesGroup, Path: store.JoinPath(hg.Path(), GroupPhases), Err: err}
	}
	sc.add(pg.Path(), pg)

	names, err := pg.Groups()
	if err != nil || len(names) == 0 {
		return &Error{Code: CodeNoPhasesFound, Path: pg.Path(), Err: err}
	}

	phases := make([]Phase, 0, len(names))
	for _, name := range names {
		phases = append(phases, r.readPhase(pg, name))
	}

	readFields(r, hg, trailerFields, &h)

	if r.opts.phaseOrder == PhaseOrderIndex {
		slices.SortStableFunc(phases, func(a, b Phase) int {
			return cmp.Compare(a.Index, b.Index)
		})
	}

	r.header = h
	r.phases = phases
	return nil
}

// readPhase reads one phase group. A group that cannot be opened still
// yields a zero Phase, so every listed group has a record.
func (r *Reader) readPhase(parent store.Group, name string) Phase {
	var p Phase
	pg, err := parent.OpenGroup(name)
	if err != nil {
		r.warn(parent.Path(), name, err)
		return p
	}
	sc := newScope(r.opts.log)
	defer sc.release()
	sc.add(pg.Path(), pg)

	readFields(r, pg, phaseFields, &p)
	return p
}

// ReadData loads the requested columns from the Data group below g, using
// the dimensions of the last header read. Previously loaded columns are
// released first. A column whose dataset cannot be read keeps its
// zero-filled buffer and records a warning.
func (r *Reader) ReadData(g store.Group) error {
	r.releaseColumns()

	h := r.header
	if h.YDimension < 1 || h.XDimension < 1 {
		return &Error{
			Code: CodeInvalidDimensions,
			Path: g.Path(),
			Err:  fmt.Errorf("XDim=%d YDim=%d", h.XDimension, h.YDimension),
		}
	}
	rows := h.Rows()

	sc := newScope(r.opts.log)
	defer sc.release()

	dg, err := g.OpenGroup(GroupData)
	if err != nil {
		return &Error{Code: CodeMissingDataGroup, Path: store.JoinPath(g.Path(), GroupData), Err: err}
	}
	sc.add(dg.Path(), dg)

	cols := newColumns(rows)
	for _, spec := range knownColumns {
		if !r.wants(spec.Name) {
			continue
		}
		var err error
		switch spec.Kind {
		case Float32:
			buf := r.opts.alloc.Float32s(rows)
			cols.f32[spec.Name] = buf
			_, err = store.ReadInto(dg, spec.Name, buf)
		case Int32:
			buf := r.opts.alloc.Int32s(rows)
			cols.i32[spec.Name] = buf
			_, err = store.ReadInto(dg, spec.Name, buf)
		}
		if err != nil {
			r.warn(dg.Path(), spec.Name, err)
		}
	}

	r.columns = cols
	r.rows = rows
	return nil
}

func (r *Reader) wants(name string) bool {
	if r.opts.readAll {
		return true
	}
	_, ok := r.opts.arrays[name]
	return ok
}

func (r *Reader) releaseColumns() {
	for _, buf := range r.columns.f32 {
		r.opts.alloc.Release(buf)
	}
	for _, buf := range r.columns.i32 {
		r.opts.alloc.Release(buf)
	}
	r.columns = Columns{}
	r.rows = 0
}

func (r *Reader) warn(path, field string, err error) {
	r.opts.log.LogSoftMissing(path, field, err)
	r.warnings = append(r.warnings, Warning{Field: field, Path: path, Err: err})
}
