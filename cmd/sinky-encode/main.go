// ABOUTME: Entry point for the sinky encoder
// ABOUTME: Renders a source to stdout, a raw/WAV/Opus file or a WebSocket endpoint
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sinky-audio/sinky/internal/app"
	"github.com/sinky-audio/sinky/internal/log"
	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/backend"
	"github.com/sinky-audio/sinky/pkg/sink"
)

var (
	sourcePath = flag.String("source", "", "Audio source: file (MP3, FLAC, raw f32), URL or - for stdin. Empty plays a test tone")
	outPath    = flag.String("out", "-", "Output: - for stdout, *.wav, *.opus, ws:// URL or a raw PCM file")
	volume     = flag.Int("volume", 100, "Volume (0-100)")
	frames     = flag.Int("frames", app.DefaultFrames, "Frames per write")
	rate       = flag.Int("rate", 0, "Sample rate for sources without one (default 44100)")
	channels   = flag.Int("channels", 0, "Channel count for sources without one (default 2)")
	debug      = flag.Bool("debug", false, "Enable debug logging")
	format     audio.Kind
)

func main() {
	flag.Var(&format, "format", "Sample format: f32, s16, s32, s24_3, s24_4")
	flag.Parse()

	// stdout may carry samples, so logs go to stderr
	log.SetOutput(os.Stderr)
	log.SetDebug(*debug)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sinky-encode: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := log.WithComponent("encode")

	open, closeOut, err := outputOpener(*outPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeOut(); err != nil {
			logger.WithError(err).Warn("Failed to close output")
		}
	}()

	player, err := app.New(app.Config{
		Source: *sourcePath,
		Backend: backend.Config{
			Format: format,
			Params: audio.Params{SampleRate: *rate, Channels: *channels},
		},
		Volume: *volume,
		Frames: *frames,
		Open:   open,
	})
	if err != nil {
		return err
	}
	defer player.Close()

	cfg := player.Config().Backend
	logger.Infof("Encoding %s to %s (%s, %d Hz, %d ch)",
		sourceLabel(*sourcePath), *outPath, cfg.Format, cfg.Params.SampleRate, cfg.Params.Channels)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := player.Run(ctx); err != nil {
		return err
	}

	logger.Infof("Wrote %d samples", player.Written())
	return nil
}

// outputOpener picks the terminal sink for out. The returned close func
// releases whatever the opener could not hand to its sink.
func outputOpener(out string) (app.OpenFunc, func() error, error) {
	noop := func() error { return nil }

	switch {
	case out == "-":
		w := bufio.NewWriter(os.Stdout)
		return func(cfg backend.Config, maker backend.Maker) (*sink.Chain[float32], error) {
			return backend.OpenPipe(cfg, w, maker)
		}, noop, nil

	case strings.HasPrefix(out, "ws://"), strings.HasPrefix(out, "wss://"):
		return func(cfg backend.Config, maker backend.Maker) (*sink.Chain[float32], error) {
			return backend.OpenWebSocket(cfg, out, maker)
		}, noop, nil
	}

	switch strings.ToLower(filepath.Ext(out)) {
	case ".wav":
		return func(cfg backend.Config, maker backend.Maker) (*sink.Chain[float32], error) {
			return backend.OpenWAV(cfg, out, maker)
		}, noop, nil

	case ".opus":
		return fileOpener(out, backend.OpenOpus)
	}

	return fileOpener(out, backend.OpenPipe)
}

type writerOpener func(cfg backend.Config, w io.Writer, maker backend.Maker) (*sink.Chain[float32], error)

func fileOpener(path string, open writerOpener) (app.OpenFunc, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	return func(cfg backend.Config, maker backend.Maker) (*sink.Chain[float32], error) {
		return open(cfg, w, maker)
	}, f.Close, nil
}

func sourceLabel(path string) string {
	switch path {
	case "":
		return "test tone"
	case "-":
		return "stdin"
	}
	return path
}
