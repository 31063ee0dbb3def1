// ABOUTME: Audio encoder package for turning typed samples into wire bytes
// ABOUTME: Provides the Encoder interface and PCM and Opus implementations
// Package encode provides encoders used by terminal sinks.
//
// Supports: raw PCM in every sample format, Opus (float32 and int16)
//
// Encoders own their output buffer; the returned bytes stay valid until the
// next call to Encode.
//
// Example:
//
//	enc := encode.NewPCM[int16](audio.S16{})
//	data, err := enc.Encode(samples)
package encode
