package store

import (
	"bytes"
	"fmt"
	"reflect"
)

// Numeric is the set of element types the typed readers convert into.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ReadScalar reads a scalar (or single-element) dataset as T.
func ReadScalar[T Numeric](g Group, name string) (T, error) {
	var zero T
	vals, err := ReadSlice[T](g, name)
	if err != nil {
		return zero, err
	}
	if len(vals) == 0 {
		return zero, fmt.Errorf("reading %q: %w", name, ErrEmpty)
	}
	return vals[0], nil
}

// ReadSlice reads a dataset and converts every element to T.
// Multi-dimensional datasets are flattened in row-major order.
func ReadSlice[T Numeric](g Group, name string) ([]T, error) {
	raw, err := g.Read(name)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", name, err)
	}
	vals, err := convertSlice[T](raw)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", name, err)
	}
	return vals, nil
}

// ReadInto reads a dataset into buf and returns the number of elements
// copied. A dataset with fewer elements than buf fills what it has and
// returns ErrShortRead; extra elements are ignored.
func ReadInto[T Numeric](g Group, name string, buf []T) (int, error) {
	vals, err := ReadSlice[T](g, name)
	if err != nil {
		return 0, err
	}
	n := copy(buf, vals)
	if n < len(buf) {
		return n, fmt.Errorf("reading %q: %d of %d elements: %w", name, n, len(buf), ErrShortRead)
	}
	return n, nil
}

// ReadString reads a string dataset. String slices yield their first element,
// byte slices are cut at the first NUL.
func ReadString(g Group, name string) (string, error) {
	raw, err := g.Read(name)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", name, err)
	}
	switch v := raw.(type) {
	case string:
		return v, nil
	case []string:
		if len(v) == 0 {
			return "", fmt.Errorf("reading %q: %w", name, ErrEmpty)
		}
		return v[0], nil
	case []byte:
		return cString(v), nil
	case []int8:
		b := make([]byte, len(v))
		for i, c := range v {
			b[i] = byte(c)
		}
		return cString(b), nil
	default:
		return "", fmt.Errorf("reading %q: %T is not a string: %w", name, raw, ErrTypeMismatch)
	}
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// convertSlice converts a decoded dataset value to []T. The common flat
// slice and scalar types take a direct path; nested slices fall back to
// reflection.
func convertSlice[T Numeric](v any) ([]T, error) {
	switch s := v.(type) {
	case []float32:
		return castSlice[T](s), nil
	case []float64:
		return castSlice[T](s), nil
	case []int8:
		return castSlice[T](s), nil
	case []int16:
		return castSlice[T](s), nil
	case []int32:
		return castSlice[T](s), nil
	case []int64:
		return castSlice[T](s), nil
	case []uint8:
		return castSlice[T](s), nil
	case []uint16:
		return castSlice[T](s), nil
	case []uint32:
		return castSlice[T](s), nil
	case []uint64:
		return castSlice[T](s), nil
	case []int:
		return castSlice[T](s), nil
	case float32:
		return []T{T(s)}, nil
	case float64:
		return []T{T(s)}, nil
	case int8:
		return []T{T(s)}, nil
	case int16:
		return []T{T(s)}, nil
	case int32:
		return []T{T(s)}, nil
	case int64:
		return []T{T(s)}, nil
	case uint8:
		return []T{T(s)}, nil
	case uint16:
		return []T{T(s)}, nil
	case uint32:
		return []T{T(s)}, nil
	case uint64:
		return []T{T(s)}, nil
	case int:
		return []T{T(s)}, nil
	case nil:
		return nil, ErrEmpty
	}

	var out []T
	if err := flatten(reflect.ValueOf(v), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func castSlice[T, S Numeric](s []S) []T {
	out := make([]T, len(s))
	for i, v := range s {
		out[i] = T(v)
	}
	return out
}

func flatten[T Numeric](v reflect.Value, out *[]T) error {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := flatten(v.Index(i), out); err != nil {
				return err
			}
		}
		return nil
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return ErrEmpty
		}
		return flatten(v.Elem(), out)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		*out = append(*out, T(v.Int()))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		*out = append(*out, T(v.Uint()))
		return nil
	case reflect.Float32, reflect.Float64:
		*out = append(*out, T(v.Float()))
		return nil
	default:
		return fmt.Errorf("%s is not numeric: %w", v.Type(), ErrTypeMismatch)
	}
}
