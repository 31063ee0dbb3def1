// ABOUTME: Backend configuration
// ABOUTME: Format selector, device name, output choice and stream parameters
package backend

import (
	"errors"

	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/audio/output"
)

var (
	// ErrUnsupportedFormat is returned when a sink cannot carry the configured format
	ErrUnsupportedFormat = output.ErrUnsupportedFormat

	// ErrUnknownOutput is returned for an unrecognized Config.Output
	ErrUnknownOutput = errors.New("unknown output")
)

// Output names accepted in Config.Output
const (
	OutputOto       = "oto"
	OutputMalgo     = "malgo"
	OutputPortAudio = "portaudio"
)

// Config selects the format and device of a terminal sink
type Config struct {
	// Format is the sample representation delivered to the sink
	Format audio.Kind

	// DeviceName selects a playback device; only device sinks read it
	DeviceName string

	// Output picks the playback library; empty chooses one from Format and DeviceName
	Output string

	Params audio.Params
}

// Normalize fills zero stream parameters with defaults
func (c Config) Normalize() Config {
	def := audio.DefaultParams()
	if c.Params.SampleRate == 0 {
		c.Params.SampleRate = def.SampleRate
	}
	if c.Params.Channels == 0 {
		c.Params.Channels = def.Channels
	}
	return c
}
