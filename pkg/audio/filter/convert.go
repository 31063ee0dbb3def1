// ABOUTME: Format converters and the requantizer extension point
// ABOUTME: Quantizes normalized floats into a target format and passes samples through
package filter

import (
	"slices"

	"github.com/sinky-audio/sinky/pkg/audio"
)

// Quantizer converts normalized float samples into a target format
type Quantizer[S audio.Sample] struct {
	format audio.Format[S]
}

// NewQuantizer creates a quantizing converter for format
func NewQuantizer[S audio.Sample](format audio.Format[S]) Quantizer[S] {
	return Quantizer[S]{format: format}
}

// Format returns the target format
func (q Quantizer[S]) Format() audio.Format[S] {
	return q.format
}

// Convert quantizes src into dst
func (q Quantizer[S]) Convert(dst []S, src []float32) []S {
	dst = slices.Grow(dst[:0], len(src))
	for _, x := range src {
		dst = append(dst, q.format.Quantize(x))
	}
	return dst
}

// Identity is a same-format converter that copies samples unchanged. It
// lets a chain take a private copy of the producer's buffer before
// in-place filters run.
type Identity[S any] struct{}

// Convert copies src into dst
func (Identity[S]) Convert(dst []S, src []S) []S {
	dst = append(dst[:0], src...)
	return dst
}

// Requantizer is the extension point for requantization and resampling
// stages. Without a Hook it forwards samples unchanged; no algorithm is
// built in.
type Requantizer[S any] struct {
	Hook Filter[S]
}

// Filter runs the hook, if any
func (r Requantizer[S]) Filter(data []S) {
	if r.Hook != nil {
		r.Hook.Filter(data)
	}
}
