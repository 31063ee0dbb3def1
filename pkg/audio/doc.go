// ABOUTME: Audio fundamentals package providing sample formats and utilities
// ABOUTME: Defines Format descriptors, the Kind selector and 24-bit helpers
// Package audio provides the sample representations used by the sinky pipeline.
//
// Every supported representation has its own Go sample type and a zero-size
// format descriptor implementing Format:
//   - F32: float32, IEEE-754
//   - S16: int16
//   - S32: int32
//   - S24Packed: Int24Packed, 24-bit value packed into 3 bytes
//   - S24: Int24, 24-bit value in the low bits of a 4-byte word
//
// All formats serialize little-endian regardless of the host.
//
// Example:
//
//	var f audio.S16
//	s := f.Quantize(0.5)              // 16383
//	b := f.Serialize(nil, []int16{s}) // []byte{0xff, 0x3f}
package audio
