// ABOUTME: Entry point for the sinky player
// ABOUTME: Parses CLI flags, opens a device chain and plays a source with an optional TUI
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sinky-audio/sinky/internal/app"
	"github.com/sinky-audio/sinky/internal/log"
	"github.com/sinky-audio/sinky/internal/ui"
	"github.com/sinky-audio/sinky/internal/version"
	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/backend"
)

var (
	sourcePath = flag.String("source", "", "Audio file, http(s) URL, or - for raw f32 on stdin (default: test tone)")
	device     = flag.String("device", "", "Playback device name (default: system default)")
	output     = flag.String("output", "", "Playback library: oto, malgo or portaudio (default: by format and device)")
	volume     = flag.Int("volume", 100, "Initial volume (0-100)")
	frames     = flag.Int("frames", app.DefaultFrames, "Frames per write")
	rate       = flag.Int("rate", 44100, "Sample rate for tone and raw sources")
	channels   = flag.Int("channels", 2, "Channel count for tone and raw sources")
	logFile    = flag.String("log-file", "sinky.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	format     = audio.KindS16
)

func main() {
	flag.Var(&format, "format", "Sample format: f32, s16, s32, s24_3, s24_4")
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sinky: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	useTUI := !*noTUI
	logger := log.WithComponent("main")

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	logger.Infof("Starting %s %s", version.Product, version.Version)

	cfg := backend.Config{
		Format:     format,
		DeviceName: *device,
		Output:     *output,
		Params:     audio.Params{SampleRate: *rate, Channels: *channels},
	}
	cfg.Output = backend.ResolveOutput(cfg)

	player, err := app.New(app.Config{
		Source:  *sourcePath,
		Backend: cfg,
		Volume:  *volume,
		Frames:  *frames,
		Open:    backend.OpenDevice,
	})
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	defer player.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if useTUI {
		volumeCtrl := ui.NewVolumeControl()
		tuiProg := ui.Run(volumeCtrl, *volume)
		go func() {
			if _, err := tuiProg.Run(); err != nil {
				logger.WithError(err).Error("TUI failed")
			}
			cancel()
		}()
		defer tuiProg.Quit()

		cfg := player.Config().Backend
		title, artist, album := player.Metadata()
		tuiProg.Send(ui.StatusMsg{
			Output:     cfg.Output,
			Device:     cfg.DeviceName,
			State:      "playing",
			Format:     cfg.Format.String(),
			SampleRate: cfg.Params.SampleRate,
			Channels:   cfg.Params.Channels,
			BitDepth:   cfg.Format.BitDepth(),
			Title:      title,
			Artist:     artist,
			Album:      album,
		})

		go handleVolumeControl(ctx, player, volumeCtrl)
		go statsUpdateLoop(ctx, player, tuiProg.Send)
	}

	if err := player.Run(ctx); err != nil {
		logger.WithError(err).Error("Playback failed")
		return err
	}

	logger.Info("Player stopped")
	return nil
}

// handleVolumeControl processes volume changes from TUI
func handleVolumeControl(ctx context.Context, player *app.Player, volumeCtrl *ui.VolumeControl) {
	for {
		select {
		case vol := <-volumeCtrl.Changes:
			log.WithComponent("main").Debugf("Volume change: %d%%, muted=%v", vol.Volume, vol.Muted)
			player.SetVolume(vol.Volume)
			player.Mute(vol.Muted)
		case <-ctx.Done():
			return
		}
	}
}

// statsUpdateLoop periodically updates TUI with playback statistics
func statsUpdateLoop(ctx context.Context, player *app.Player, send func(tea.Msg)) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	// Use a slower ticker for expensive runtime stats to avoid GC pauses
	runtimeStatsTicker := time.NewTicker(2 * time.Second)
	defer runtimeStatsTicker.Stop()

	var lastGoroutines int
	var lastMemAlloc, lastMemSys uint64

	for {
		select {
		case <-runtimeStatsTicker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			lastGoroutines = runtime.NumGoroutine()
			lastMemAlloc = m.Alloc
			lastMemSys = m.Sys

		case <-ticker.C:
			send(ui.StatusMsg{
				Written:    player.Written(),
				Goroutines: lastGoroutines,
				MemAlloc:   lastMemAlloc,
				MemSys:     lastMemSys,
			})

		case <-ctx.Done():
			return
		}
	}
}
