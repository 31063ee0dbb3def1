// ABOUTME: Audio source package
// ABOUTME: Producers of normalized float samples from tones, raw streams and compressed files
// Package source provides producers that feed a float32 chain.
//
// Every Source yields interleaved samples in [-1, 1] and reports its stream
// parameters so the caller can configure the terminal sink to match.
//
// Example:
//
//	src, err := source.New("song.flac", audio.DefaultParams())
//	defer src.Close()
//
//	buf := make([]float32, 4096)
//	n, err := src.Read(buf)
//	err = chain.Write(buf[:n])
package source
