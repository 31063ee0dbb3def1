// ABOUTME: MP3 source
// ABOUTME: Decodes MP3 with go-mp3, which always yields 16-bit stereo
package source

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/hajimehoshi/go-mp3"

	"github.com/sinky-audio/sinky/internal/log"
	"github.com/sinky-audio/sinky/pkg/audio"
)

// MP3 reads from an MP3 stream
type MP3 struct {
	r          io.Reader
	decoder    *mp3.Decoder
	sampleRate int
	buf        []byte
	title      string
	artist     string
	album      string
}

// NewMP3 creates a new MP3 source. r is closed on Close if it is an io.Closer.
func NewMP3(r io.Reader, title string) (*MP3, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}

	log.WithComponent("source").Infof("Loaded MP3: %s (sample rate: %d Hz)", title, decoder.SampleRate())

	return &MP3{
		r:          r,
		decoder:    decoder,
		sampleRate: decoder.SampleRate(),
		title:      title,
		artist:     "Unknown Artist",
		album:      "Unknown Album",
	}, nil
}

func (s *MP3) Read(samples []float32) (int, error) {
	// MP3 decoder outputs int16 = 2 bytes per sample
	s.buf = slices.Grow(s.buf[:0], len(samples)*2)[:len(samples)*2]

	n, err := io.ReadFull(s.decoder, s.buf)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}

	numSamples := n / 2
	for i := 0; i < numSamples; i++ {
		samples[i] = audio.S16{}.Dequantize(int16(binary.LittleEndian.Uint16(s.buf[i*2:])))
	}

	if numSamples > 0 && err == io.EOF {
		return numSamples, nil
	}
	return numSamples, err
}

func (s *MP3) SampleRate() int { return s.sampleRate }
func (s *MP3) Channels() int   { return 2 }
func (s *MP3) Metadata() (string, string, string) {
	return s.title, s.artist, s.album
}
func (s *MP3) Close() error { return closeReader(s.r) }
