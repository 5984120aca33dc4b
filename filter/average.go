package filter

import "fmt"

// AverageToVertices averages per-cell values onto vertices. cells holds
// verticesPerCell vertex indexes per cell (edges have 2, triangles 3) and
// values holds components values per cell. Every vertex receives the mean
// of the values of all cells that reference it; unreferenced vertices stay
// zero. The result has numVertices*components elements.
func AverageToVertices[T Number](values []T, components int, cells []int64, verticesPerCell, numVertices int) ([]float32, error) {
	if components < 1 || len(values)%components != 0 {
		return nil, fmt.Errorf("%d values with %d components: %w", len(values), components, ErrComponents)
	}
	if verticesPerCell < 1 || len(cells)%verticesPerCell != 0 {
		return nil, fmt.Errorf("%d connectivity entries for %d vertices per cell: %w", len(cells), verticesPerCell, ErrTopology)
	}
	numCells := len(cells) / verticesPerCell
	if numCells != len(values)/components {
		return nil, fmt.Errorf("%d cells but %d value tuples: %w", numCells, len(values)/components, ErrTopology)
	}

	sums := make([]float32, numVertices*components)
	counts := make([]int, numVertices)
	for c := range numCells {
		tuple := values[c*components : (c+1)*components]
		for _, v := range cells[c*verticesPerCell : (c+1)*verticesPerCell] {
			if v < 0 || v >= int64(numVertices) {
				return nil, fmt.Errorf("cell %d references vertex %d of %d: %w", c, v, numVertices, ErrTopology)
			}
			counts[v]++
			for k, x := range tuple {
				sums[int(v)*components+k] += float32(x)
			}
		}
	}

	for v, n := range counts {
		if n == 0 {
			continue
		}
		for k := range components {
			sums[v*components+k] /= float32(n)
		}
	}
	return sums, nil
}
