package hedm

// ElemKind is the element type of a data column.
type ElemKind int

const (
	Float32 ElemKind = iota
	Int32
)

func (k ElemKind) String() string {
	switch k {
	case Float32:
		return "float32"
	case Int32:
		return "int32"
	default:
		return "unknown"
	}
}

// ColumnSpec names a known data column and its element type.
type ColumnSpec struct {
	Name string
	Kind ElemKind
}

var knownColumns = []ColumnSpec{
	{ColumnEuler1, Float32},
	{ColumnEuler2, Float32},
	{ColumnEuler3, Float32},
	{ColumnConfidence, Float32},
	{ColumnPhase, Int32},
	{ColumnX, Float32},
	{ColumnY, Float32},
}

// KnownColumns returns the data columns a Reader can load, in read order.
func KnownColumns() []ColumnSpec {
	return append([]ColumnSpec(nil), knownColumns...)
}

// LookupColumn returns the ColumnSpec of a known column.
func LookupColumn(name string) (ColumnSpec, bool) {
	for _, c := range knownColumns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// Columns is the set of data columns loaded by ReadData. A column that was
// not requested is absent; a requested column whose dataset could not be
// read is present and zero-filled.
type Columns struct {
	rows int
	f32  map[string][]float32
	i32  map[string][]int32
}

func newColumns(rows int) Columns {
	return Columns{
		rows: rows,
		f32:  make(map[string][]float32),
		i32:  make(map[string][]int32),
	}
}

// Float32 returns a float32 column.
func (c Columns) Float32(name string) ([]float32, bool) {
	v, ok := c.f32[name]
	return v, ok
}

// Int32 returns an int32 column.
func (c Columns) Int32(name string) ([]int32, bool) {
	v, ok := c.i32[name]
	return v, ok
}

// Has reports whether the column is present.
func (c Columns) Has(name string) bool {
	if _, ok := c.f32[name]; ok {
		return true
	}
	_, ok := c.i32[name]
	return ok
}

// Names returns the present columns in read order.
func (c Columns) Names() []string {
	var names []string
	for _, spec := range knownColumns {
		if c.Has(spec.Name) {
			names = append(names, spec.Name)
		}
	}
	return names
}

// Len returns the number of rows of every present column.
func (c Columns) Len() int {
	return c.rows
}

// Count returns the number of present columns.
func (c Columns) Count() int {
	return len(c.f32) + len(c.i32)
}

// Value returns row i of a present column as float64.
func (c Columns) Value(name string, i int) (float64, bool) {
	if v, ok := c.f32[name]; ok && i >= 0 && i < len(v) {
		return float64(v[i]), true
	}
	if v, ok := c.i32[name]; ok && i >= 0 && i < len(v) {
		return float64(v[i]), true
	}
	return 0, false
}

// Allocator provides the column buffers of a Reader. Buffers returned by
// Float32s and Int32s must be zeroed and exactly n long; every buffer is
// handed back through Release once the Reader drops it.
type Allocator interface {
	Float32s(n int) []float32
	Int32s(n int) []int32
	Release(buf any)
}

// HeapAllocator allocates column buffers with make and lets the garbage
// collector reclaim them.
type HeapAllocator struct{}

func (HeapAllocator) Float32s(n int) []float32 { return make([]float32, n) }
func (HeapAllocator) Int32s(n int) []int32 { return make([]int32, n) }
func (HeapAllocator) Release(any) {}
