// ABOUTME: Tests for device backend selection
// ABOUTME: Exercises configuration errors that are reported before any device is opened
package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/audio/output"
)

func TestSelectOutput(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"default s16", Config{}, OutputOto},
		{"f32", Config{Format: audio.KindF32}, OutputOto},
		{"hi-res", Config{Format: audio.KindS24Packed}, OutputMalgo},
		{"s24_4", Config{Format: audio.KindS24}, OutputMalgo},
		{"named device", Config{DeviceName: "USB DAC"}, OutputMalgo},
		{"explicit", Config{Output: OutputPortAudio, Format: audio.KindS32}, OutputPortAudio},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveOutput(tt.cfg))
		})
	}
}

func TestOpenDeviceConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"unknown output", Config{Output: "alsa"}, ErrUnknownOutput},
		{"oto s32", Config{Output: OutputOto, Format: audio.KindS32}, ErrUnsupportedFormat},
		{"oto named device", Config{Output: OutputOto, DeviceName: "USB DAC"}, output.ErrDeviceSelection},
		{"oto s24_4", Config{Output: OutputOto, Format: audio.KindS24}, ErrUnsupportedFormat},
		{"portaudio s24_3", Config{Output: OutputPortAudio, Format: audio.KindS24Packed}, ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := OpenDevice(tt.cfg, nil)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
