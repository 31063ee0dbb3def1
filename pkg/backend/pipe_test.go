// ABOUTME: Tests for the byte-stream backend
// ABOUTME: Covers serialization per format, maker stages, flushing and transport errors
package backend

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/audio/filter"
	"github.com/sinky-audio/sinky/pkg/sink"
)

func TestOpenPipeS16Scenario(t *testing.T) {
	var buf bytes.Buffer
	c, err := OpenPipe(Config{Format: audio.KindS16}, &buf, nil)
	require.NoError(t, err)

	require.NoError(t, c.Start())
	require.NoError(t, c.Write([]float32{0.0, 1.0, -1.0, 0.5}))
	require.NoError(t, c.Stop())

	assert.Equal(t, []byte{0x00, 0x00, 0xff, 0x7f, 0x00, 0x80, 0xff, 0x3f}, buf.Bytes())
}

func TestOpenPipeEveryFormat(t *testing.T) {
	input := []float32{0.25, -0.5, 1, -1, 0}

	for _, kind := range audio.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			var buf bytes.Buffer
			c, err := OpenPipe(Config{Format: kind}, &buf, nil)
			require.NoError(t, err)

			require.NoError(t, c.Start())
			require.NoError(t, c.Write(input))
			require.NoError(t, c.Stop())

			assert.Len(t, buf.Bytes(), len(input)*kind.Size())
		})
	}
}

func TestOpenPipeF32IsIdentity(t *testing.T) {
	var buf bytes.Buffer
	c, err := OpenPipe(Config{Format: audio.KindF32}, &buf, nil)
	require.NoError(t, err)

	input := []float32{0.1, -0.7, 0.33}
	require.NoError(t, c.Start())
	require.NoError(t, c.Write(input))

	assert.Equal(t, audio.F32{}.Serialize(nil, input), buf.Bytes())
}

func TestOpenPipeAppliesMaker(t *testing.T) {
	var plain, scaled bytes.Buffer

	c, err := OpenPipe(Config{Format: audio.KindS32}, &plain, nil)
	require.NoError(t, err)
	require.NoError(t, c.Start())
	require.NoError(t, c.Write([]float32{0.25, -0.125}))

	c, err = OpenPipe(Config{Format: audio.KindS32}, &scaled, Filters(filter.Volume(0.5), filter.Volume(2), filter.Volume(0.5)))
	require.NoError(t, err)
	require.NoError(t, c.Start())
	require.NoError(t, c.Write([]float32{0.5, -0.25}))

	assert.Equal(t, plain.Bytes(), scaled.Bytes())
}

func TestOpenPipeUnknownFormat(t *testing.T) {
	_, err := OpenPipe(Config{Format: audio.Kind(42)}, &bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriterSinkFlushesOnStop(t *testing.T) {
	var out bytes.Buffer
	w := bufio.NewWriter(&out)

	c, err := OpenPipe(Config{Format: audio.KindS16}, w, nil)
	require.NoError(t, err)
	require.NoError(t, c.Start())
	require.NoError(t, c.Write([]float32{0.5}))
	assert.Zero(t, out.Len())

	require.NoError(t, c.Stop())
	assert.Equal(t, 2, out.Len())
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWriterSinkReportsTransportErrors(t *testing.T) {
	cause := errors.New("broken pipe")
	c, err := OpenPipe(Config{Format: audio.KindS24Packed}, failingWriter{cause}, nil)
	require.NoError(t, err)
	require.NoError(t, c.Start())

	err = c.Write([]float32{0.5})
	assert.ErrorIs(t, err, cause)

	var se *sink.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "write", se.Op)
	assert.Equal(t, "pipe", se.Sink)
}

func TestWriterSinkReusesBuffer(t *testing.T) {
	s := NewWriterSink[int16](&bytes.Buffer{}, audio.S16{})
	data := make([]int16, 256)
	require.NoError(t, s.Write(data))

	var discard nopWriter
	s.w = discard
	allocs := testing.AllocsPerRun(50, func() {
		_ = s.Write(data)
	})
	assert.Zero(t, allocs)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
