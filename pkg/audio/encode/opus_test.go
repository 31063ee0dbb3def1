// ABOUTME: Unit tests for Opus encoder
// ABOUTME: Tests Opus encoding functionality
package encode

import (
	"errors"
	"math"
	"testing"

	"github.com/sinky-audio/sinky/pkg/audio"
)

func TestNewOpus(t *testing.T) {
	tests := []struct {
		name    string
		params  audio.Params
		wantErr bool
	}{
		{"valid 48kHz stereo", audio.Params{SampleRate: 48000, Channels: 2}, false},
		{"valid 48kHz mono", audio.Params{SampleRate: 48000, Channels: 1}, false},
		{"unsupported rate", audio.Params{SampleRate: 44100, Channels: 2}, true},
		{"invalid params", audio.Params{SampleRate: 0, Channels: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoder, err := NewOpus[int16](tt.params)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewOpus() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewOpus() unexpected error = %v", err)
			}
			if encoder.FrameSize() != tt.params.SampleRate/50*tt.params.Channels {
				t.Errorf("FrameSize() = %d", encoder.FrameSize())
			}
			encoder.Close()
		})
	}
}

func TestOpusEncoder_EncodeInt16(t *testing.T) {
	encoder, err := NewOpus[int16](audio.Params{SampleRate: 48000, Channels: 2})
	if err != nil {
		t.Fatalf("NewOpus() failed: %v", err)
	}
	defer encoder.Close()

	samples := make([]int16, encoder.FrameSize())
	for i := range samples {
		samples[i] = int16((i % 1000) * 30)
	}

	output, err := encoder.Encode(samples)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if len(output) == 0 || len(output) > MaxOpusPacket {
		t.Errorf("Encode() output size %d out of range", len(output))
	}
}

func TestOpusEncoder_EncodeFloat32(t *testing.T) {
	encoder, err := NewOpus[float32](audio.Params{SampleRate: 48000, Channels: 1})
	if err != nil {
		t.Fatalf("NewOpus() failed: %v", err)
	}
	defer encoder.Close()

	samples := make([]float32, encoder.FrameSize())
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/48000))
	}

	output, err := encoder.Encode(samples)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if len(output) == 0 {
		t.Errorf("Encode() returned empty output")
	}
}

func TestOpusEncoder_WrongFrameSize(t *testing.T) {
	encoder, err := NewOpus[int16](audio.Params{SampleRate: 48000, Channels: 2})
	if err != nil {
		t.Fatalf("NewOpus() failed: %v", err)
	}

	_, err = encoder.Encode(make([]int16, 10))
	if !errors.Is(err, ErrFrameSize) {
		t.Errorf("Encode() error = %v, want ErrFrameSize", err)
	}
}
