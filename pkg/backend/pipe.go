// ABOUTME: Byte-stream terminal sink
// ABOUTME: Serializes samples and forwards the bytes to an io.Writer
package backend

import (
	"io"

	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/audio/encode"
	"github.com/sinky-audio/sinky/pkg/sink"
)

type flusher interface {
	Flush() error
}

// WriterSink writes serialized samples to an io.Writer
type WriterSink[S audio.Sample] struct {
	sink.Base
	w   io.Writer
	enc *encode.PCMEncoder[S]
}

// NewWriterSink creates a sink writing format-serialized samples to w
func NewWriterSink[S audio.Sample](w io.Writer, format audio.Format[S]) *WriterSink[S] {
	return &WriterSink[S]{w: w, enc: encode.NewPCM(format)}
}

// Write serializes data and writes it in one call
func (s *WriterSink[S]) Write(data []S) error {
	b, err := s.enc.Encode(data)
	if err != nil {
		return sink.Wrap("write", "pipe", err)
	}
	if _, err := s.w.Write(b); err != nil {
		return sink.Wrap("write", "pipe", err)
	}
	return nil
}

// Stop flushes buffered writers
func (s *WriterSink[S]) Stop() error {
	if f, ok := s.w.(flusher); ok {
		return sink.Wrap("stop", "pipe", f.Flush())
	}
	return nil
}

// OpenPipe assembles a chain writing cfg.Format bytes to w
func OpenPipe(cfg Config, w io.Writer, maker Maker) (*sink.Chain[float32], error) {
	cfg = cfg.Normalize()

	var c *sink.Chain[float32]
	switch cfg.Format {
	case audio.KindF32:
		c = assemble[float32](NewWriterSink[float32](w, audio.F32{}), audio.F32{}, maker)
	case audio.KindS16:
		c = assemble[int16](NewWriterSink[int16](w, audio.S16{}), audio.S16{}, maker)
	case audio.KindS32:
		c = assemble[int32](NewWriterSink[int32](w, audio.S32{}), audio.S32{}, maker)
	case audio.KindS24:
		c = assemble[audio.Int24](NewWriterSink[audio.Int24](w, audio.S24{}), audio.S24{}, maker)
	case audio.KindS24Packed:
		c = assemble[audio.Int24Packed](NewWriterSink[audio.Int24Packed](w, audio.S24Packed{}), audio.S24Packed{}, maker)
	default:
		return nil, unsupported("pipe", cfg.Format)
	}

	logOpened("pipe", cfg, c)
	return c, nil
}
