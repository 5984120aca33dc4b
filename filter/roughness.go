package filter

import (
	"fmt"
	"math"
)

// ImageGeometry is a regular grid of cells, x varying fastest.
type ImageGeometry struct {
	Dims    [3]int
	Spacing [3]float64
	Origin  [3]float64
}

// NewImageGeometry returns a grid with unit spacing at the origin.
func NewImageGeometry(x, y, z int) ImageGeometry {
	return ImageGeometry{
		Dims:    [3]int{x, y, z},
		Spacing: [3]float64{1, 1, 1},
	}
}

// Cells returns the number of cells in the grid.
func (g ImageGeometry) Cells() int {
	return g.Dims[0] * g.Dims[1] * g.Dims[2]
}

// Center returns the coordinates of the center of cell (x, y, z).
func (g ImageGeometry) Center(x, y, z int) [3]float64 {
	return [3]float64{
		g.Origin[0] + (float64(x)+0.5)*g.Spacing[0],
		g.Origin[1] + (float64(y)+0.5)*g.Spacing[1],
		g.Origin[2] + (float64(z)+0.5)*g.Spacing[2],
	}
}

// Roughness is the result of SurfaceRoughness. The fitted line is
// y = Intercept + Slope*x.
type Roughness struct {
	Roughness float64
	Intercept float64
	Slope     float64
}

// SurfaceRoughness fits a least-squares line through the centers of the
// cells marked in boundary (value > 0) in the xy plane and returns the mean
// perpendicular distance of those centers from the line.
func SurfaceRoughness(boundary []int8, g ImageGeometry) (Roughness, error) {
	if len(boundary) != g.Cells() {
		return Roughness{}, fmt.Errorf("%d boundary values for %d cells: %w", len(boundary), g.Cells(), ErrGeometry)
	}

	var xs, ys []float64
	for z := range g.Dims[2] {
		for y := range g.Dims[1] {
			for x := range g.Dims[0] {
				idx := (z*g.Dims[1]+y)*g.Dims[0] + x
				if boundary[idx] > 0 {
					c := g.Center(x, y, z)
					xs = append(xs, c[0])
					ys = append(ys, c[1])
				}
			}
		}
	}
	if len(xs) == 0 {
		return Roughness{}, ErrNoBoundaryCells
	}

	n := float64(len(xs))
	var sx, sy, sxx, sxy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
		sxx += xs[i] * xs[i]
		sxy += xs[i] * ys[i]
	}
	xmean, ymean := sx/n, sy/n
	ssxx := sxx - n*xmean*xmean
	ssxy := sxy - n*xmean*ymean
	if ssxx == 0 {
		return Roughness{}, ErrDegenerate
	}

	b := ssxy / ssxx
	a := ymean - b*xmean
	denom := math.Sqrt(1 + b*b)

	var dist float64
	for i := range xs {
		dist += math.Abs(ys[i]-(a+b*xs[i])) / denom
	}
	return Roughness{
		Roughness: dist / n,
		Intercept: a,
		Slope:     b,
	}, nil
}
