// ABOUTME: Hooks for inserting caller stages into an assembled chain
// ABOUTME: Backends hand the float side of the chain to a Maker before wrapping it
package backend

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sinky-audio/sinky/internal/log"
	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/audio/filter"
	"github.com/sinky-audio/sinky/pkg/sink"
)

// Maker builds the head of a chain in front of the float sink a backend opened
type Maker interface {
	Make(next sink.Sink[float32]) sink.Sink[float32]
}

// MakerFunc adapts a function to Maker
type MakerFunc func(next sink.Sink[float32]) sink.Sink[float32]

// Make calls f(next)
func (f MakerFunc) Make(next sink.Sink[float32]) sink.Sink[float32] {
	return f(next)
}

// Filters returns a Maker that applies fs in order
func Filters(fs ...filter.Filter[float32]) Maker {
	return MakerFunc(func(next sink.Sink[float32]) sink.Sink[float32] {
		stages := make([]sink.Stage[float32], len(fs))
		for i, f := range fs {
			stages[i] = sink.FilterStage(f)
		}
		return sink.Compose(next, stages...)
	})
}

// assemble quantizes into tail unless it already takes floats, lets maker
// extend the float side and wraps the result in a chain
func assemble[S audio.Sample](tail sink.Sink[S], format audio.Format[S], maker Maker) *sink.Chain[float32] {
	head, ok := any(tail).(sink.Sink[float32])
	if !ok {
		head = sink.WithConverter[float32, S](tail, filter.NewQuantizer(format))
	}
	if maker != nil {
		head = maker.Make(head)
	}
	return sink.NewChain(head)
}

func unsupported(backend string, kind audio.Kind) error {
	return fmt.Errorf("%w: %s does not accept %s", ErrUnsupportedFormat, backend, kind)
}

func logOpened(backend string, cfg Config, c *sink.Chain[float32]) {
	log.WithComponent("backend").WithFields(logrus.Fields{
		"backend": backend,
		"format":  cfg.Format.String(),
		"chain":   c.ID(),
	}).Debugf("Opened sink: %dHz, %d channels", cfg.Params.SampleRate, cfg.Params.Channels)
}
