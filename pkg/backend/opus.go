// ABOUTME: Opus packet terminal sink
// ABOUTME: Frames samples into 20ms packets written with a 2-byte little-endian length prefix
package backend

import (
	"encoding/binary"
	"io"

	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/audio/encode"
	"github.com/sinky-audio/sinky/pkg/sink"
)

// OpusSink encodes samples to length-prefixed Opus packets
type OpusSink[S encode.OpusSample] struct {
	sink.Base
	w       io.Writer
	enc     *encode.OpusEncoder[S]
	frame   []S
	pending int
	hdr     [2]byte
}

// NewOpusSink creates an Opus sink. params.SampleRate must be one Opus
// supports (8000, 12000, 16000, 24000 or 48000).
func NewOpusSink[S encode.OpusSample](w io.Writer, params audio.Params) (*OpusSink[S], error) {
	enc, err := encode.NewOpus[S](params)
	if err != nil {
		return nil, err
	}
	return &OpusSink[S]{
		w:     w,
		enc:   enc,
		frame: make([]S, enc.FrameSize()),
	}, nil
}

// Write buffers samples and emits a packet for every complete frame
func (s *OpusSink[S]) Write(data []S) error {
	for len(data) > 0 {
		n := copy(s.frame[s.pending:], data)
		s.pending += n
		data = data[n:]

		if s.pending == len(s.frame) {
			if err := s.flush(); err != nil {
				return sink.Wrap("write", "opus", err)
			}
		}
	}
	return nil
}

// Stop encodes the remaining samples as a zero-padded final frame
func (s *OpusSink[S]) Stop() error {
	var err error
	if s.pending > 0 {
		clear(s.frame[s.pending:])
		err = s.flush()
	}
	if err == nil {
		if f, ok := s.w.(flusher); ok {
			err = f.Flush()
		}
	}
	if cerr := s.enc.Close(); err == nil {
		err = cerr
	}
	return sink.Wrap("stop", "opus", err)
}

func (s *OpusSink[S]) flush() error {
	s.pending = 0

	packet, err := s.enc.Encode(s.frame)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(s.hdr[:], uint16(len(packet)))
	if _, err := s.w.Write(s.hdr[:]); err != nil {
		return err
	}
	_, err = s.w.Write(packet)
	return err
}

// OpenOpus assembles a chain writing Opus packets to w. Only f32 and s16 are accepted.
func OpenOpus(cfg Config, w io.Writer, maker Maker) (*sink.Chain[float32], error) {
	cfg = cfg.Normalize()

	var c *sink.Chain[float32]
	switch cfg.Format {
	case audio.KindF32:
		s, err := NewOpusSink[float32](w, cfg.Params)
		if err != nil {
			return nil, err
		}
		c = assemble[float32](s, audio.F32{}, maker)
	case audio.KindS16:
		s, err := NewOpusSink[int16](w, cfg.Params)
		if err != nil {
			return nil, err
		}
		c = assemble[int16](s, audio.S16{}, maker)
	default:
		return nil, unsupported("opus", cfg.Format)
	}

	logOpened("opus", cfg, c)
	return c, nil
}
