// ABOUTME: FLAC source
// ABOUTME: Decodes FLAC frames with mewkiz/flac at the stream's native bit depth
package source

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/sinky-audio/sinky/internal/log"
	"github.com/sinky-audio/sinky/pkg/audio"
)

// FLAC reads from a FLAC stream
type FLAC struct {
	r          io.Reader
	stream     *flac.Stream
	sampleRate int
	channels   int
	bitDepth   int
	pending    []float32 // decoded samples not yet returned
	title      string
	artist     string
	album      string
}

// NewFLAC creates a new FLAC source. r is closed on Close if it is an io.Closer.
func NewFLAC(r io.Reader, title string) (*FLAC, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	info := stream.Info
	s := &FLAC{
		r:          r,
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
		title:      title,
		artist:     "Unknown Artist",
		album:      "Unknown Album",
	}

	log.WithComponent("source").Infof("Loaded FLAC: %s (sample rate: %d Hz, channels: %d, bit depth: %d)",
		title, s.sampleRate, s.channels, s.bitDepth)

	return s, nil
}

func (s *FLAC) Read(samples []float32) (int, error) {
	read := 0
	for read < len(samples) {
		if len(s.pending) == 0 {
			if err := s.decodeFrame(); err != nil {
				if err == io.EOF && read > 0 {
					return read, nil
				}
				return read, err
			}
		}
		n := copy(samples[read:], s.pending)
		s.pending = s.pending[n:]
		read += n
	}
	return read, nil
}

// decodeFrame parses the next frame into pending, interleaving channels
func (s *FLAC) decodeFrame() error {
	frame, err := s.stream.ParseNext()
	if err != nil {
		return err
	}

	n := int(frame.BlockSize) * s.channels
	if cap(s.pending) < n {
		s.pending = make([]float32, n)
	}
	s.pending = s.pending[:n]

	for i := 0; i < int(frame.BlockSize); i++ {
		for ch := 0; ch < s.channels; ch++ {
			s.pending[i*s.channels+ch] = audio.Normalize(frame.Subframes[ch].Samples[i], s.bitDepth)
		}
	}
	return nil
}

func (s *FLAC) SampleRate() int { return s.sampleRate }
func (s *FLAC) Channels() int   { return s.channels }
func (s *FLAC) Metadata() (string, string, string) {
	return s.title, s.artist, s.album
}
func (s *FLAC) Close() error { return closeReader(s.r) }
