// ABOUTME: Raw float sample source
// ABOUTME: Reads little-endian f32 samples, e.g. from stdin
package source

import (
	"errors"
	"io"
	"slices"

	"github.com/sinky-audio/sinky/pkg/audio"
)

// Raw reads serialized f32 samples from a reader
type Raw struct {
	r      io.Reader
	params audio.Params
	buf    []byte
}

// NewRaw creates a raw source. r is closed on Close if it is an io.Closer.
func NewRaw(r io.Reader, params audio.Params) (*Raw, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Raw{r: r, params: params}, nil
}

// Read fills samples; a trailing partial sample at end of stream is dropped
func (s *Raw) Read(samples []float32) (int, error) {
	size := audio.F32{}.Size()
	s.buf = slices.Grow(s.buf[:0], len(samples)*size)[:len(samples)*size]

	n, err := io.ReadFull(s.r, s.buf)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}

	out := audio.F32{}.Deserialize(samples[:0], s.buf[:n])
	if len(out) > 0 && err == io.EOF {
		return len(out), nil
	}
	return len(out), err
}

func (s *Raw) SampleRate() int { return s.params.SampleRate }
func (s *Raw) Channels() int   { return s.params.Channels }
func (s *Raw) Metadata() (string, string, string) {
	return "Raw Stream", "", ""
}
func (s *Raw) Close() error { return closeReader(s.r) }
