// Package hedm reads HEDM .mic scans stored in a hierarchical container.
//
// A scan lives below an internal group path and has the layout
//
//	<group>/Header/XRes, YRes, XDim, YDim, OriginalHeader
//	<group>/Header/Phases/<n>/Phase, LatticeConstants, BasisAtoms, Symmetry
//	<group>/Data/Euler1, Euler2, Euler3, Confidence, Phase, X, Y
//
// Reading happens in two stages. The header stage fills Header and the phase
// list; the data stage then allocates XDim*YDim elements for every requested
// column. Structural problems (a missing group, no phases, bad dimensions)
// are hard failures returned as *Error with a Code. Individual fields and
// columns are soft: a failure leaves the default value, is logged and shows
// up in Reader.Warnings.
//
//	r := hedm.NewReader("scan.h5",
//	    hedm.WithGroupPath("Slice_0"),
//	    hedm.WithArrays(hedm.ColumnConfidence, hedm.ColumnPhase),
//	)
//	if err := r.ReadFile(); err != nil {
//	    log.Fatalf("read failed (%d): %v", hedm.CodeOf(err), err)
//	}
//	conf, _ := r.Float32Column(hedm.ColumnConfidence)
package hedm
