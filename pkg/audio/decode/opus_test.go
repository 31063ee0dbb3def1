// ABOUTME: Tests for Opus decoder
// ABOUTME: Decodes packets produced by the Opus encoder
package decode

import (
	"math"
	"testing"

	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/audio/encode"
)

func TestOpusRoundTrip(t *testing.T) {
	params := audio.Params{SampleRate: 48000, Channels: 2}

	encoder, err := encode.NewOpus[float32](params)
	if err != nil {
		t.Fatalf("failed to create encoder: %v", err)
	}
	decoder, err := NewOpus[float32](params)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}
	defer decoder.Close()

	frame := make([]float32, encoder.FrameSize())
	for i := range frame {
		frame[i] = float32(0.3 * math.Sin(2*math.Pi*440*float64(i/2)/48000))
	}

	packet, err := encoder.Encode(frame)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	samples, err := decoder.Decode(packet)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(samples) != len(frame) {
		t.Errorf("expected %d samples, got %d", len(frame), len(samples))
	}
}

func TestNewOpus_InvalidParams(t *testing.T) {
	if _, err := NewOpus[int16](audio.Params{SampleRate: 48000}); err == nil {
		t.Error("expected error for zero channels")
	}
	if _, err := NewOpus[int16](audio.Params{SampleRate: 1234, Channels: 2}); err == nil {
		t.Error("expected error for unsupported sample rate")
	}
}
