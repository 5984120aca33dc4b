package filter

import (
	"fmt"
	"math"
)

// Norm computes the p-norm (sum of x^p)^(1/p) of every tuple of data, where
// a tuple is components consecutive values. The result has one element per
// tuple.
func Norm[T Number](data []T, components int, p float32) ([]float32, error) {
	if p < 0 {
		return nil, fmt.Errorf("norm with p=%g: %w", p, ErrNegativeP)
	}
	if components < 1 || len(data)%components != 0 {
		return nil, fmt.Errorf("norm of %d values with %d components: %w", len(data), components, ErrComponents)
	}

	tuples := len(data) / components
	out := make([]float32, tuples)
	inv := float64(1 / p)
	for i := range tuples {
		var sum float32
		for _, v := range data[i*components : (i+1)*components] {
			sum += float32(math.Pow(float64(float32(v)), float64(p)))
		}
		out[i] = float32(math.Pow(float64(sum), inv))
	}
	return out, nil
}

// MeanNorm returns the mean of Norm over all tuples, or 0 for empty data.
func MeanNorm[T Number](data []T, components int, p float32) (float64, error) {
	norms, err := Norm(data, components, p)
	if err != nil || len(norms) == 0 {
		return 0, err
	}
	var sum float64
	for _, n := range norms {
		sum += float64(n)
	}
	return sum / float64(len(norms)), nil
}
