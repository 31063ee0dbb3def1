// ABOUTME: Opus audio encoder
// ABOUTME: Encodes one 20ms frame of float32 or int16 samples into an Opus packet
package encode

import (
	"errors"
	"fmt"

	"github.com/sinky-audio/sinky/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

// MaxOpusPacket is the largest packet the encoder produces
const MaxOpusPacket = 4000

// ErrFrameSize is returned when Encode is not given exactly one frame
var ErrFrameSize = errors.New("opus: input is not exactly one frame")

// OpusSample is the set of sample types Opus encodes natively
type OpusSample interface {
	float32 | int16
}

// OpusEncoder encodes Opus audio
type OpusEncoder[S OpusSample] struct {
	encoder   *opus.Encoder
	channels  int
	frameSize int
	buf       []byte
}

// NewOpus creates a new Opus encoder
func NewOpus[S OpusSample](params audio.Params) (*OpusEncoder[S], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	encoder, err := opus.NewEncoder(params.SampleRate, params.Channels, opus.AppAudio)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus encoder: %w", err)
	}

	return &OpusEncoder[S]{
		encoder:   encoder,
		channels:  params.Channels,
		frameSize: params.SampleRate / 50, // 20ms frame
		buf:       make([]byte, MaxOpusPacket),
	}, nil
}

// FrameSize returns the number of interleaved samples in one frame
func (e *OpusEncoder[S]) FrameSize() int {
	return e.frameSize * e.channels
}

// Encode converts one frame of samples to an Opus packet
func (e *OpusEncoder[S]) Encode(samples []S) ([]byte, error) {
	if len(samples) != e.FrameSize() {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrFrameSize, len(samples), e.FrameSize())
	}

	var n int
	var err error
	switch pcm := any(samples).(type) {
	case []int16:
		n, err = e.encoder.Encode(pcm, e.buf)
	case []float32:
		n, err = e.encoder.EncodeFloat32(pcm, e.buf)
	}
	if err != nil {
		return nil, fmt.Errorf("opus encode error: %w", err)
	}

	return e.buf[:n], nil
}

// Close releases resources
func (e *OpusEncoder[S]) Close() error {
	return nil
}
