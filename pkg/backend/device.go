// ABOUTME: Device-playback backend
// ABOUTME: Picks oto, malgo or PortAudio for the configured format and device
package backend

import (
	"fmt"

	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/audio/output"
	"github.com/sinky-audio/sinky/pkg/sink"
)

// ResolveOutput returns the playback library OpenDevice will use. oto only plays f32 and s16
// on the default device; anything else needs malgo.
func ResolveOutput(cfg Config) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	if cfg.DeviceName != "" {
		return OutputMalgo
	}
	switch cfg.Format {
	case audio.KindF32, audio.KindS16:
		return OutputOto
	}
	return OutputMalgo
}

// OpenDevice opens a playback device and assembles a chain feeding it.
// Missing devices and unsupported formats are reported here, not on Write.
func OpenDevice(cfg Config, maker Maker) (*sink.Chain[float32], error) {
	cfg = cfg.Normalize()
	cfg.Output = ResolveOutput(cfg)

	var c *sink.Chain[float32]
	var err error
	switch cfg.Output {
	case OutputOto:
		c, err = openOto(cfg, maker)
	case OutputMalgo:
		c, err = openMalgo(cfg, maker)
	case OutputPortAudio:
		c, err = openPortAudio(cfg, maker)
	default:
		err = fmt.Errorf("%w: %q (supported: oto, malgo, portaudio)", ErrUnknownOutput, cfg.Output)
	}
	if err != nil {
		return nil, err
	}

	logOpened(cfg.Output, cfg, c)
	return c, nil
}

func openOto(cfg Config, maker Maker) (*sink.Chain[float32], error) {
	switch cfg.Format {
	case audio.KindF32:
		o, err := output.NewOto[float32](cfg.Params, audio.F32{}, cfg.DeviceName)
		if err != nil {
			return nil, err
		}
		return assemble[float32](o, audio.F32{}, maker), nil
	case audio.KindS16:
		o, err := output.NewOto[int16](cfg.Params, audio.S16{}, cfg.DeviceName)
		if err != nil {
			return nil, err
		}
		return assemble[int16](o, audio.S16{}, maker), nil
	}
	return nil, unsupported(OutputOto, cfg.Format)
}

func openMalgo(cfg Config, maker Maker) (*sink.Chain[float32], error) {
	switch cfg.Format {
	case audio.KindF32:
		return malgoChain[float32](cfg, audio.F32{}, maker)
	case audio.KindS16:
		return malgoChain[int16](cfg, audio.S16{}, maker)
	case audio.KindS32:
		return malgoChain[int32](cfg, audio.S32{}, maker)
	case audio.KindS24Packed:
		return malgoChain[audio.Int24Packed](cfg, audio.S24Packed{}, maker)
	case audio.KindS24:
		return malgoChain[audio.Int24](cfg, audio.S24{}, maker)
	}
	return nil, unsupported(OutputMalgo, cfg.Format)
}

func malgoChain[S audio.Sample](cfg Config, format audio.Format[S], maker Maker) (*sink.Chain[float32], error) {
	m, err := output.NewMalgo[S](cfg.Params, format, cfg.DeviceName)
	if err != nil {
		return nil, err
	}
	return assemble[S](m, format, maker), nil
}

func openPortAudio(cfg Config, maker Maker) (*sink.Chain[float32], error) {
	switch cfg.Format {
	case audio.KindF32:
		p, err := output.NewPortAudio[float32](cfg.Params, cfg.DeviceName)
		if err != nil {
			return nil, err
		}
		return assemble[float32](p, audio.F32{}, maker), nil
	case audio.KindS16:
		p, err := output.NewPortAudio[int16](cfg.Params, cfg.DeviceName)
		if err != nil {
			return nil, err
		}
		return assemble[int16](p, audio.S16{}, maker), nil
	}
	return nil, unsupported(OutputPortAudio, cfg.Format)
}
