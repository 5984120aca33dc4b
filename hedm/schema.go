package hedm

// Group names below the configured internal path.
const (
	GroupHeader = "Header"
	GroupPhases = "Phases"
	GroupData   = "Data"
)

// Header dataset keys.
const (
	KeyXRes           = "XRes"
	KeyYRes           = "YRes"
	KeyXDim           = "XDim"
	KeyYDim           = "YDim"
	KeyOriginalHeader = "OriginalHeader"
)

// Phase dataset keys, read from every child group of Phases.
const (
	KeyPhase            = "Phase"
	KeyLatticeConstants = "LatticeConstants"
	KeyBasisAtoms       = "BasisAtoms"
	KeySymmetry         = "Symmetry"
)

// Data column names.
const (
	ColumnEuler1     = "Euler1"
	ColumnEuler2     = "Euler2"
	ColumnEuler3     = "Euler3"
	ColumnConfidence = "Confidence"
	ColumnPhase      = "Phase"
	ColumnX          = "X"
	ColumnY          = "Y"
)

// Header holds the scalar metadata of a scan.
type Header struct {
	XResolution    float32
	YResolution    float32
	XDimension     int
	YDimension     int
	OriginalHeader string
}

// Rows returns XDimension * YDimension.
func (h Header) Rows() int {
	return h.XDimension * h.YDimension
}

// Phase is one crystallographic phase record.
type Phase struct {
	Index            int
	LatticeConstants [6]float32
	BasisAtoms       string
	Symmetry         string
}
