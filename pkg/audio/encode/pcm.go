// ABOUTME: PCM audio encoder
// ABOUTME: Serializes samples through their format descriptor into a reused buffer
package encode

import (
	"slices"

	"github.com/sinky-audio/sinky/pkg/audio"
)

// PCMEncoder encodes raw PCM
type PCMEncoder[S audio.Sample] struct {
	format audio.Format[S]
	buf    []byte
}

// NewPCM creates a new PCM encoder
func NewPCM[S audio.Sample](format audio.Format[S]) *PCMEncoder[S] {
	return &PCMEncoder[S]{format: format}
}

// Format returns the sample format
func (e *PCMEncoder[S]) Format() audio.Format[S] {
	return e.format
}

// Encode converts samples to PCM bytes
func (e *PCMEncoder[S]) Encode(samples []S) ([]byte, error) {
	e.buf = slices.Grow(e.buf[:0], len(samples)*e.format.Size())
	e.buf = e.format.Serialize(e.buf, samples)
	return e.buf, nil
}

// Close releases resources
func (e *PCMEncoder[S]) Close() error {
	return nil
}
