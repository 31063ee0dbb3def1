// ABOUTME: Opus audio decoder
// ABOUTME: Decodes Opus packets to float32 or int16 samples
package decode

import (
	"fmt"

	"github.com/sinky-audio/sinky/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

// maxFrameSize is the largest Opus frame (120ms at 48kHz) per channel
const maxFrameSize = 5760

// OpusDecoder decodes Opus audio
type OpusDecoder[S float32 | int16] struct {
	decoder  *opus.Decoder
	channels int
	pcm      []S
}

// NewOpus creates a new Opus decoder
func NewOpus[S float32 | int16](params audio.Params) (*OpusDecoder[S], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	dec, err := opus.NewDecoder(params.SampleRate, params.Channels)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus decoder: %w", err)
	}

	return &OpusDecoder[S]{
		decoder:  dec,
		channels: params.Channels,
		pcm:      make([]S, maxFrameSize*params.Channels),
	}, nil
}

// Decode converts one Opus packet to interleaved samples. The result is
// only valid until the next call.
func (d *OpusDecoder[S]) Decode(data []byte) ([]S, error) {
	var n int
	var err error
	switch pcm := any(d.pcm).(type) {
	case []int16:
		n, err = d.decoder.Decode(data, pcm)
	case []float32:
		n, err = d.decoder.DecodeFloat32(data, pcm)
	}
	if err != nil {
		return nil, fmt.Errorf("opus decode failed: %w", err)
	}

	return d.pcm[:n*d.channels], nil
}

// Close releases decoder resources
func (d *OpusDecoder[S]) Close() error {
	return nil
}
