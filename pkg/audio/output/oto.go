// ABOUTME: Oto-based audio output implementation
// ABOUTME: Plays float32 or int16 samples on the default device through a persistent player
package output

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"

	"github.com/sinky-audio/sinky/internal/log"
	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/sink"
)

// ErrOtoReinit is returned when the process-wide oto context already exists
// with different parameters
var ErrOtoReinit = errors.New("oto context already initialized with a different format")

// oto allows one context per process
var shared struct {
	mu     sync.Mutex
	ctx    *oto.Context
	params audio.Params
	format oto.Format
}

func otoFormat(kind audio.Kind) (oto.Format, error) {
	switch kind {
	case audio.KindF32:
		return oto.FormatFloat32LE, nil
	case audio.KindS16:
		return oto.FormatSignedInt16LE, nil
	}
	return 0, fmt.Errorf("%w: oto plays f32 or s16, got %s", ErrUnsupportedFormat, kind)
}

func otoContext(params audio.Params, format oto.Format) (*oto.Context, error) {
	shared.mu.Lock()
	defer shared.mu.Unlock()

	if shared.ctx != nil {
		if shared.params != params || shared.format != format {
			return nil, fmt.Errorf("%w (%dHz %dch)", ErrOtoReinit, shared.params.SampleRate, shared.params.Channels)
		}
		return shared.ctx, nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   params.SampleRate,
		ChannelCount: params.Channels,
		Format:       format,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create oto context: %v", ErrNoDevice, err)
	}
	<-ready

	shared.ctx = ctx
	shared.params = params
	shared.format = format
	return ctx, nil
}

// Oto plays samples on the default device
type Oto[S float32 | int16] struct {
	format audio.Format[S]
	otoCtx *oto.Context
	player *oto.Player
	reader *io.PipeReader
	writer *io.PipeWriter
	buf    []byte
	log    *logrus.Entry
}

// NewOto creates the oto context for params. oto cannot select devices, so
// deviceName must be empty.
func NewOto[S float32 | int16](params audio.Params, format audio.Format[S], deviceName string) (*Oto[S], error) {
	if deviceName != "" {
		return nil, fmt.Errorf("%w: oto uses the default device, got %q", ErrDeviceSelection, deviceName)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	of, err := otoFormat(format.Kind())
	if err != nil {
		return nil, err
	}

	ctx, err := otoContext(params, of)
	if err != nil {
		return nil, err
	}

	l := log.WithComponent("output").WithFields(logrus.Fields{
		"backend": "oto",
		"format":  format.String(),
	})
	l.Infof("Audio output initialized: %dHz, %d channels", params.SampleRate, params.Channels)

	return &Oto[S]{format: format, otoCtx: ctx, log: l}, nil
}

// Start creates a persistent player fed by a pipe
func (o *Oto[S]) Start() error {
	if err := o.otoCtx.Resume(); err != nil {
		return sink.Wrap("start", "oto", err)
	}
	o.reader, o.writer = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.reader)
	o.player.Play()
	return nil
}

// Write serializes samples and blocks until the player accepts them
func (o *Oto[S]) Write(data []S) error {
	o.buf = slices.Grow(o.buf[:0], len(data)*o.format.Size())
	o.buf = o.format.Serialize(o.buf, data)
	if _, err := o.writer.Write(o.buf); err != nil {
		return sink.Wrap("write", "oto", err)
	}
	return nil
}

// playback is the part of *oto.Player Stop waits on
type playback interface {
	IsPlaying() bool
	BufferedSize() int
}

// waitPlayedOut polls p until it has played everything it buffered or
// timeout passes. It reports whether playback finished.
func waitPlayedOut(p playback, timeout, poll time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for p.IsPlaying() && p.BufferedSize() > 0 {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(poll)
	}
	return true
}

// Stop lets the player finish what it buffered, then closes it and
// suspends the context
func (o *Oto[S]) Stop() error {
	if o.writer != nil {
		o.writer.Close()
	}
	var err error
	if o.player != nil {
		if !waitPlayedOut(o.player, drainTimeout, 10*time.Millisecond) {
			o.log.Warnf("Dropped %d buffered bytes after %v", o.player.BufferedSize(), drainTimeout)
		}
		err = o.player.Close()
		o.player = nil
	}
	if o.reader != nil {
		o.reader.Close()
	}
	if serr := o.otoCtx.Suspend(); err == nil {
		err = serr
	}
	o.log.Debug("Audio output stopped")
	return sink.Wrap("stop", "oto", err)
}
