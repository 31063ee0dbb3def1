// ABOUTME: Test tone generator
// ABOUTME: Generates an endless sine wave at half amplitude
package source

import "math"

// DefaultFrequency is A4
const DefaultFrequency = 440.0

// Tone generates a sine wave duplicated to every channel
type Tone struct {
	sampleIndex uint64
	frequency   float64
	sampleRate  int
	channels    int
}

// NewTone creates a tone generator. Zero rate or channels use the defaults.
func NewTone(sampleRate, channels int, frequency float64) *Tone {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	if channels <= 0 {
		channels = 2
	}
	return &Tone{
		frequency:  frequency,
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// Read fills whole frames of samples; it never returns io.EOF
func (s *Tone) Read(samples []float32) (int, error) {
	numFrames := len(samples) / s.channels

	for i := 0; i < numFrames; i++ {
		t := float64(s.sampleIndex+uint64(i)) / float64(s.sampleRate)
		v := float32(0.5 * math.Sin(2*math.Pi*s.frequency*t))

		for ch := 0; ch < s.channels; ch++ {
			samples[i*s.channels+ch] = v
		}
	}
	s.sampleIndex += uint64(numFrames)

	return numFrames * s.channels, nil
}

func (s *Tone) SampleRate() int { return s.sampleRate }
func (s *Tone) Channels() int   { return s.channels }
func (s *Tone) Metadata() (string, string, string) {
	return "Test Tone", "Sinky", "Test Signal"
}
func (s *Tone) Close() error { return nil }
