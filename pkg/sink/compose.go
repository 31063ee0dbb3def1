// ABOUTME: Composition of filters and converters with downstream sinks
// ABOUTME: FilterSink, ConverterSink and the stage builder
package sink

import "github.com/sinky-audio/sinky/pkg/audio/filter"

// FilterSink runs a filter over each buffer in place and forwards the same
// buffer downstream.
type FilterSink[S any] struct {
	filter filter.Filter[S]
	next   Sink[S]
}

// WithFilter places f in front of next
func WithFilter[S any](next Sink[S], f filter.Filter[S]) *FilterSink[S] {
	return &FilterSink[S]{filter: f, next: next}
}

func (s *FilterSink[S]) Start() error { return s.next.Start() }
func (s *FilterSink[S]) Stop() error  { return s.next.Stop() }

func (s *FilterSink[S]) Write(data []S) error {
	s.filter.Filter(data)
	return s.next.Write(data)
}

// ConverterSink converts each buffer into a scratch buffer it owns and
// forwards the scratch buffer downstream. The scratch capacity never shrinks.
type ConverterSink[A, B any] struct {
	conv filter.Converter[A, B]
	next Sink[B]
	buf  []B
}

// WithConverter places c in front of next. The converter output type must
// match the sample type next accepts.
func WithConverter[A, B any](next Sink[B], c filter.Converter[A, B]) *ConverterSink[A, B] {
	return &ConverterSink[A, B]{conv: c, next: next}
}

func (s *ConverterSink[A, B]) Start() error { return s.next.Start() }
func (s *ConverterSink[A, B]) Stop() error  { return s.next.Stop() }

func (s *ConverterSink[A, B]) Write(data []A) error {
	s.buf = s.conv.Convert(s.buf, data)
	return s.next.Write(s.buf)
}

// Cap returns the capacity of the scratch buffer
func (s *ConverterSink[A, B]) Cap() int {
	return cap(s.buf)
}

// Stage wraps a downstream sink of one format into a new sink of the same
// format.
type Stage[S any] func(next Sink[S]) Sink[S]

// FilterStage returns a stage running f
func FilterStage[S any](f filter.Filter[S]) Stage[S] {
	return func(next Sink[S]) Sink[S] {
		return WithFilter(next, f)
	}
}

// ConverterStage returns a stage running a same-format converter, e.g.
// filter.Identity to copy the producer's buffer before in-place filters.
func ConverterStage[S any](c filter.Converter[S, S]) Stage[S] {
	return func(next Sink[S]) Sink[S] {
		return WithConverter(next, c)
	}
}

// Compose attaches stages to tail. Stages are listed in data-flow order: the
// first stage sees the data written to the returned sink first.
func Compose[S any](tail Sink[S], stages ...Stage[S]) Sink[S] {
	head := tail
	for i := len(stages) - 1; i >= 0; i-- {
		head = stages[i](head)
	}
	return head
}

// Build composes stages onto tail and wraps the result in a Chain
func Build[S any](tail Sink[S], stages ...Stage[S]) *Chain[S] {
	return NewChain(Compose(tail, stages...))
}
