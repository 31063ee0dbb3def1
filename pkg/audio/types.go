// ABOUTME: Audio type definitions
// ABOUTME: Defines sample types, stream parameters and 24-bit packing helpers
package audio

import (
	"errors"
	"fmt"
)

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Int24 is a signed 24-bit sample stored in the low 24 bits of a 4-byte word
type Int24 int32

// Int24Packed is a signed 24-bit sample packed into 3 little-endian bytes
type Int24Packed [3]byte

// Sample is the set of in-memory sample types a Format can describe
type Sample interface {
	float32 | int16 | int32 | Int24 | Int24Packed
}

// ErrInvalidParams is returned for non-positive sample rates or channel counts
var ErrInvalidParams = errors.New("invalid stream parameters")

// Params describes the stream a terminal sink plays or records
type Params struct {
	SampleRate int
	Channels   int
}

// DefaultParams returns 44.1kHz stereo
func DefaultParams() Params {
	return Params{SampleRate: 44100, Channels: 2}
}

// Validate checks that the parameters are usable
func (p Params) Validate() error {
	if p.SampleRate <= 0 || p.Channels <= 0 {
		return fmt.Errorf("%w: %dHz, %d channels", ErrInvalidParams, p.SampleRate, p.Channels)
	}
	return nil
}

// SampleTo24Bit converts int32 to 24-bit packed bytes (little-endian)
func SampleTo24Bit(sample int32) [3]byte {
	// Take lower 24 bits, pack little-endian
	return [3]byte{
		byte(sample),
		byte(sample >> 8),
		byte(sample >> 16),
	}
}

// SampleFrom24Bit converts 24-bit packed bytes to int32 (little-endian)
func SampleFrom24Bit(b [3]byte) int32 {
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign extend from 24-bit to 32-bit
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return val
}

// Int32 returns the sign-extended value of a packed sample
func (s Int24Packed) Int32() int32 {
	return SampleFrom24Bit(s)
}
