// ABOUTME: Filter and converter interfaces for pipeline stages
// ABOUTME: In-place format-preserving filters and buffer-reusing format converters
package filter

import "slices"

// Filter transforms a buffer of samples in place without changing its format
type Filter[S any] interface {
	Filter(data []S)
}

// FilterFunc adapts a function to the Filter interface
type FilterFunc[S any] func(data []S)

// Filter calls f(data)
func (f FilterFunc[S]) Filter(data []S) {
	f(data)
}

// Converter maps a buffer of samples of one format into a buffer of another.
//
// Convert resets dst to length zero, grows its capacity only when src needs
// more room, appends one output sample per input sample and returns the
// buffer. Callers keep the returned slice and pass it back on the next call
// so steady-state conversion does not allocate.
type Converter[A, B any] interface {
	Convert(dst []B, src []A) []B
}

// Mapper maps a single sample
type Mapper[A, B any] interface {
	Map(s A) B
}

// MapFunc adapts a function to the Mapper interface
type MapFunc[A, B any] func(s A) B

// Map calls f(s)
func (f MapFunc[A, B]) Map(s A) B {
	return f(s)
}

// MapFilter returns a Filter that replaces every sample with m.Map(sample)
func MapFilter[S any](m Mapper[S, S]) Filter[S] {
	return mapFilter[S]{m}
}

type mapFilter[S any] struct {
	m Mapper[S, S]
}

func (f mapFilter[S]) Filter(data []S) {
	for i, s := range data {
		data[i] = f.m.Map(s)
	}
}

// MapConverter returns a Converter applying m to every sample
func MapConverter[A, B any](m Mapper[A, B]) Converter[A, B] {
	return mapConverter[A, B]{m}
}

type mapConverter[A, B any] struct {
	m Mapper[A, B]
}

func (c mapConverter[A, B]) Convert(dst []B, src []A) []B {
	dst = slices.Grow(dst[:0], len(src))
	for _, s := range src {
		dst = append(dst, c.m.Map(s))
	}
	return dst
}
