// ABOUTME: Sink composition package
// ABOUTME: Builds typed chains of filters and converters ending in a terminal sink
// Package sink provides the Sink interface and the composition engine.
//
// Stages wrap the sink they feed. Sample types are checked at compile time:
// a converter from A to B can only be placed in front of a Sink[B], and the
// result is a Sink[A].
//
// Example:
//
//	var out sink.Sink[int16] = backend.NewWriterSink(os.Stdout, audio.S16{})
//	conv := sink.WithConverter(out, filter.NewQuantizer[int16](audio.S16{}))
//	chain := sink.Build[float32](conv, sink.FilterStage[float32](filter.Volume(0.8)))
//
//	err := chain.Start()
//	err = chain.Write(samples)
//	err = chain.Stop()
package sink
