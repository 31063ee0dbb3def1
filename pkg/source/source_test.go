// ABOUTME: Tests for audio sources
// ABOUTME: Covers the tone generator, raw streams, dispatch and decoder errors
package source

import (
	"bytes"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinky-audio/sinky/pkg/audio"
)

func TestToneDuplicatesChannels(t *testing.T) {
	tone := NewTone(48000, 2, DefaultFrequency)
	buf := make([]float32, 481) // odd length: last partial frame is left alone

	n, err := tone.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 480, n)

	for i := 0; i < n; i += 2 {
		assert.Equal(t, buf[i], buf[i+1])
		assert.LessOrEqual(t, math.Abs(float64(buf[i])), 0.5)
	}
	assert.Zero(t, buf[0])
}

func TestToneIsContinuous(t *testing.T) {
	a := NewTone(8000, 1, 1000)
	b := NewTone(8000, 1, 1000)

	whole := make([]float32, 100)
	_, _ = a.Read(whole)

	parts := make([]float32, 100)
	_, _ = b.Read(parts[:37])
	_, _ = b.Read(parts[37:])

	assert.Equal(t, whole, parts)
}

func TestToneDefaults(t *testing.T) {
	tone := NewTone(0, 0, DefaultFrequency)
	assert.Equal(t, 44100, tone.SampleRate())
	assert.Equal(t, 2, tone.Channels())
	title, _, _ := tone.Metadata()
	assert.Equal(t, "Test Tone", title)
	assert.NoError(t, tone.Close())
}

func TestRawRoundTrip(t *testing.T) {
	input := []float32{0.5, -0.25, 1, -1, 0.125}
	data := audio.F32{}.Serialize(nil, input)
	data = append(data, 0xAA) // trailing partial sample

	src, err := NewRaw(bytes.NewReader(data), audio.Params{SampleRate: 48000, Channels: 1})
	require.NoError(t, err)

	buf := make([]float32, 3)
	n, err := src.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, input[:3], buf[:n])

	n, err = src.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, input[3:], buf[:n])

	n, err = src.Read(buf)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestRawRejectsInvalidParams(t *testing.T) {
	_, err := NewRaw(bytes.NewReader(nil), audio.Params{})
	assert.ErrorIs(t, err, audio.ErrInvalidParams)
}

func TestNewDispatch(t *testing.T) {
	params := audio.Params{SampleRate: 22050, Channels: 1}

	src, err := New("", params)
	require.NoError(t, err)
	assert.IsType(t, &Tone{}, src)
	assert.Equal(t, 22050, src.SampleRate())

	_, err = New("song.ogg", params)
	assert.ErrorIs(t, err, ErrUnsupportedSource)

	_, err = New(filepath.Join(t.TempDir(), "missing.mp3"), params)
	assert.Error(t, err)
}

func TestNewRawFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.f32")
	require.NoError(t, os.WriteFile(path, audio.F32{}.Serialize(nil, []float32{0.1, 0.2}), 0o644))

	src, err := New(path, audio.Params{SampleRate: 48000, Channels: 2})
	require.NoError(t, err)
	defer src.Close()

	buf := make([]float32, 8)
	n, err := src.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, buf[:n])
	assert.Equal(t, 2, src.Channels())
}

func TestNewCompressedRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"bad.mp3", "bad.flac"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("definitely not audio"), 0o644))

		_, err := New(path, audio.DefaultParams())
		assert.Error(t, err, name)
	}
}

func TestNewFLACRejectsGarbage(t *testing.T) {
	_, err := NewFLAC(strings.NewReader("fLaX"), "bad")
	assert.Error(t, err)
}

func TestNewHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := New(srv.URL+"/stream.mp3", audio.DefaultParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestTitleFromPath(t *testing.T) {
	assert.Equal(t, "Blue in Green", titleFromPath("/music/Blue in Green.flac"))
}
