//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"errors"

	"github.com/sinky-audio/sinky/pkg/audio"
)

// ErrPortAudioDisabled is returned when the binary was built without PortAudio
var ErrPortAudioDisabled = errors.New("PortAudio support not enabled (build with -tags portaudio)")

// PortAudio output implementation (stub)
type PortAudio[S float32 | int16] struct{}

// NewPortAudio always fails without the portaudio build tag
func NewPortAudio[S float32 | int16](audio.Params, string) (*PortAudio[S], error) {
	return nil, ErrPortAudioDisabled
}

// Start always fails without the portaudio build tag
func (p *PortAudio[S]) Start() error { return ErrPortAudioDisabled }

// Write always fails without the portaudio build tag
func (p *PortAudio[S]) Write([]S) error { return ErrPortAudioDisabled }

// Stop always fails without the portaudio build tag
func (p *PortAudio[S]) Stop() error { return ErrPortAudioDisabled }
