// ABOUTME: Audio source abstraction for playing from files, streams or test tones
// ABOUTME: Dispatches a path or URL to the matching decoder
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sinky-audio/sinky/pkg/audio"
)

// ErrUnsupportedSource is returned for paths New cannot decode
var ErrUnsupportedSource = errors.New("unsupported audio source")

// Source provides normalized interleaved samples
type Source interface {
	// Read fills samples and returns the number written. It returns io.EOF
	// once the source is exhausted.
	Read(samples []float32) (int, error)

	// SampleRate returns the sample rate of the audio
	SampleRate() int

	// Channels returns the number of channels
	Channels() int

	// Metadata returns title, artist, album
	Metadata() (title, artist, album string)

	// Close closes the audio source
	Close() error
}

// New creates a source from a path or HTTP URL.
//
// An empty string yields a 440Hz test tone and "-" reads raw f32 samples
// from stdin; both use params. Raw files (.f32, .raw) use params too;
// compressed sources report their own parameters.
func New(pathOrURL string, params audio.Params) (Source, error) {
	switch {
	case pathOrURL == "":
		return NewTone(params.SampleRate, params.Channels, DefaultFrequency), nil
	case pathOrURL == "-":
		return asSource(NewRaw(io.NopCloser(os.Stdin), params))
	case strings.HasPrefix(pathOrURL, "http://"), strings.HasPrefix(pathOrURL, "https://"):
		return asSource(NewHTTP(pathOrURL))
	}

	ext := strings.ToLower(filepath.Ext(pathOrURL))
	switch ext {
	case ".mp3", ".flac", ".f32", ".raw":
	default:
		return nil, fmt.Errorf("%w: %q (supported: .mp3, .flac, .f32, .raw, http(s) URL)", ErrUnsupportedSource, pathOrURL)
	}

	f, err := os.Open(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("audio file not found: %w", err)
	}

	var src Source
	switch ext {
	case ".mp3":
		src, err = asSource(NewMP3(f, titleFromPath(pathOrURL)))
	case ".flac":
		src, err = asSource(NewFLAC(f, titleFromPath(pathOrURL)))
	default:
		src, err = asSource(NewRaw(f, params))
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return src, nil
}

// asSource keeps a failed constructor from yielding a non-nil Source
func asSource[T Source](src T, err error) (Source, error) {
	if err != nil {
		return nil, err
	}
	return src, nil
}

// titleFromPath uses the file name without extension as the title
func titleFromPath(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func closeReader(r io.Reader) error {
	if c, ok := r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
