// ABOUTME: PCM audio decoder
// ABOUTME: Parses little-endian PCM bytes into samples of a given format
package decode

import (
	"errors"
	"fmt"

	"github.com/sinky-audio/sinky/pkg/audio"
)

// ErrMisaligned is returned when the input ends in a partial sample
var ErrMisaligned = errors.New("pcm data is not a whole number of samples")

// PCMDecoder decodes PCM audio
type PCMDecoder[S audio.Sample] struct {
	format audio.Format[S]
}

// NewPCM creates a new PCM decoder
func NewPCM[S audio.Sample](format audio.Format[S]) *PCMDecoder[S] {
	return &PCMDecoder[S]{format: format}
}

// Decode converts PCM bytes to samples
func (d *PCMDecoder[S]) Decode(data []byte) ([]S, error) {
	if len(data)%d.format.Size() != 0 {
		return nil, fmt.Errorf("%w: %d bytes of %s", ErrMisaligned, len(data), d.format)
	}
	samples := make([]S, 0, len(data)/d.format.Size())
	return d.format.Deserialize(samples, data), nil
}

// Close releases resources
func (d *PCMDecoder[S]) Close() error {
	return nil
}
