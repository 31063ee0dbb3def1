// ABOUTME: Backend package assembling complete output chains
// ABOUTME: Maps a runtime format selector onto typed terminal sinks and quantizers
// Package backend opens terminal sinks for a runtime configuration and
// assembles the chain that feeds them.
//
// Every Open function returns a *sink.Chain[float32]: callers write
// normalized float samples and the chain quantizes them to the configured
// format. A Maker inserts caller-defined stages on the float side.
//
// Example:
//
//	cfg := backend.Config{Format: audio.KindS16}
//	chain, err := backend.OpenPipe(cfg, os.Stdout, backend.Filters(filter.Volume(0.5)))
//	err = chain.Start()
//	err = chain.Write(samples)
//	err = chain.Stop()
package backend
