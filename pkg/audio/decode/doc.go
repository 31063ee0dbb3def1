// ABOUTME: Audio decoder package for parsing wire bytes back into samples
// ABOUTME: Provides the Decoder interface and PCM and Opus implementations
// Package decode parses the byte streams produced by the encode package.
//
// Supports: raw PCM in every sample format, Opus (float32 and int16)
//
// Example:
//
//	dec := decode.NewPCM[int16](audio.S16{})
//	samples, err := dec.Decode(data)
package decode
