// ABOUTME: WAV file terminal sink
// ABOUTME: Encodes integer samples through go-audio/wav and finalizes the header on Stop
package backend

import (
	"fmt"
	"io"
	"os"
	"slices"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/sink"
)

// wavPCM is the WAVE_FORMAT_PCM audio format tag
const wavPCM = 1

// WAVSink writes integer samples to a WAV container
type WAVSink[S audio.Sample] struct {
	sink.Base
	ws    io.WriteSeeker
	enc   *wav.Encoder
	buf   goaudio.IntBuffer
	toInt func(S) int
}

// intMapper returns the widening conversion for integer sample types
func intMapper[S audio.Sample]() func(S) int {
	var f any
	var zero S
	switch any(zero).(type) {
	case int16:
		f = func(s int16) int { return int(s) }
	case int32:
		f = func(s int32) int { return int(s) }
	case audio.Int24:
		f = func(s audio.Int24) int { return int(s) }
	case audio.Int24Packed:
		f = func(s audio.Int24Packed) int { return int(s.Int32()) }
	default:
		return nil
	}
	return f.(func(S) int)
}

// NewWAVSink creates a WAV sink on ws. If ws is an io.Closer it is closed on Stop.
func NewWAVSink[S audio.Sample](ws io.WriteSeeker, params audio.Params, format audio.Format[S]) (*WAVSink[S], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	toInt := intMapper[S]()
	if toInt == nil {
		return nil, unsupported("wav", format.Kind())
	}

	return &WAVSink[S]{
		ws:  ws,
		enc: wav.NewEncoder(ws, params.SampleRate, format.BitDepth(), params.Channels, wavPCM),
		buf: goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: params.Channels,
				SampleRate:  params.SampleRate,
			},
			SourceBitDepth: format.BitDepth(),
		},
		toInt: toInt,
	}, nil
}

// Write encodes samples into the WAV data chunk
func (s *WAVSink[S]) Write(data []S) error {
	s.buf.Data = slices.Grow(s.buf.Data[:0], len(data))
	for _, v := range data {
		s.buf.Data = append(s.buf.Data, s.toInt(v))
	}
	if err := s.enc.Write(&s.buf); err != nil {
		return sink.Wrap("write", "wav", err)
	}
	return nil
}

// Stop writes the final chunk sizes
func (s *WAVSink[S]) Stop() error {
	err := s.enc.Close()
	if c, ok := s.ws.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return sink.Wrap("stop", "wav", err)
}

// OpenWAV creates path and assembles a chain writing cfg.Format samples to it
func OpenWAV(cfg Config, path string, maker Maker) (*sink.Chain[float32], error) {
	cfg = cfg.Normalize()
	if cfg.Format == audio.KindF32 {
		return nil, unsupported("wav", cfg.Format)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create wav file: %w", err)
	}

	var c *sink.Chain[float32]
	switch cfg.Format {
	case audio.KindS16:
		c, err = wavChain[int16](f, cfg, audio.S16{}, maker)
	case audio.KindS32:
		c, err = wavChain[int32](f, cfg, audio.S32{}, maker)
	case audio.KindS24:
		c, err = wavChain[audio.Int24](f, cfg, audio.S24{}, maker)
	case audio.KindS24Packed:
		c, err = wavChain[audio.Int24Packed](f, cfg, audio.S24Packed{}, maker)
	default:
		err = unsupported("wav", cfg.Format)
	}
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}

	logOpened("wav", cfg, c)
	return c, nil
}

func wavChain[S audio.Sample](f *os.File, cfg Config, format audio.Format[S], maker Maker) (*sink.Chain[float32], error) {
	s, err := NewWAVSink[S](f, cfg.Params, format)
	if err != nil {
		return nil, err
	}
	return assemble[S](s, format, maker), nil
}
