// ABOUTME: Playback orchestration shared by the sinky binaries
// ABOUTME: Reads a source and pumps its samples through a volume-controlled chain
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/sinky-audio/sinky/internal/log"
	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/audio/filter"
	"github.com/sinky-audio/sinky/pkg/backend"
	"github.com/sinky-audio/sinky/pkg/sink"
	"github.com/sinky-audio/sinky/pkg/source"
)

// DefaultFrames is the number of frames read and written per iteration
const DefaultFrames = 1024

// OpenFunc opens the terminal side of the chain, e.g. backend.OpenDevice
type OpenFunc func(cfg backend.Config, maker backend.Maker) (*sink.Chain[float32], error)

// Config holds player configuration
type Config struct {
	// Source is a path, URL, "-" for stdin or "" for a test tone
	Source string

	// Backend selects the output format and device. Params are only used by
	// sources without their own (tone, raw); the chain always matches the source.
	Backend backend.Config

	// Volume is the initial volume (0-100)
	Volume int

	// Frames per write; zero uses DefaultFrames
	Frames int

	Open OpenFunc
}

// Player pumps one source through one chain
type Player struct {
	config  Config
	src     source.Source
	gain    *filter.Gain
	chain   *sink.Chain[float32]
	written atomic.Int64
	log     *logrus.Entry
}

// New opens the source, then the chain for the source's stream parameters
func New(config Config) (*Player, error) {
	if config.Open == nil {
		return nil, errors.New("app: Config.Open is required")
	}
	if config.Frames <= 0 {
		config.Frames = DefaultFrames
	}
	config.Backend = config.Backend.Normalize()

	src, err := source.New(config.Source, config.Backend.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	config.Backend.Params = audio.Params{SampleRate: src.SampleRate(), Channels: src.Channels()}

	gain := filter.NewGain(config.Volume)
	chain, err := config.Open(config.Backend, backend.Filters(gain))
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("failed to open output: %w", err)
	}

	return &Player{
		config: config,
		src:    src,
		gain:   gain,
		chain:  chain,
		log: log.WithComponent("player").WithFields(logrus.Fields{
			"chain":  chain.ID(),
			"format": config.Backend.Format.String(),
		}),
	}, nil
}

// Config returns the effective configuration
func (p *Player) Config() Config {
	return p.config
}

// Metadata returns title, artist, album of the source
func (p *Player) Metadata() (string, string, string) {
	return p.src.Metadata()
}

// SetVolume sets the volume (0-100); safe from any goroutine
func (p *Player) SetVolume(volume int) {
	p.gain.SetVolume(volume)
}

// Mute sets mute state; safe from any goroutine
func (p *Player) Mute(muted bool) {
	p.gain.SetMuted(muted)
}

// Written returns the number of samples written so far
func (p *Player) Written() int64 {
	return p.written.Load()
}

// Run starts the chain and pumps samples until the source ends or ctx is
// done, then stops the chain. A write error ends playback and is returned.
func (p *Player) Run(ctx context.Context) error {
	if err := p.chain.Start(); err != nil {
		return fmt.Errorf("failed to start output: %w", err)
	}
	p.log.Infof("Playback started: %dHz, %d channels",
		p.config.Backend.Params.SampleRate, p.config.Backend.Params.Channels)

	err := p.pump(ctx)
	if serr := p.chain.Stop(); err == nil {
		err = serr
	}

	p.log.WithField("written", p.Written()).Info("Playback stopped")
	return err
}

func (p *Player) pump(ctx context.Context) error {
	buf := make([]float32, p.config.Frames*p.src.Channels())

	for ctx.Err() == nil {
		n, err := p.src.Read(buf)
		if n > 0 {
			if werr := p.chain.Write(buf[:n]); werr != nil {
				return werr
			}
			p.written.Add(int64(n))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("source read failed: %w", err)
		}
	}
	return nil
}

// Close releases the source
func (p *Player) Close() error {
	return p.src.Close()
}
