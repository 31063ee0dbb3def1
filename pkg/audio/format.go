// ABOUTME: Sample format descriptors
// ABOUTME: Quantization from normalized floats and little-endian serialization per format
package audio

import (
	"encoding/binary"
	"math"
)

// order is the wire byte order shared by every format. Mixing byte orders
// across formats in one build is not supported.
var order = binary.LittleEndian

// Format describes one sample representation. Implementations are stateless
// and safe to copy.
type Format[S Sample] interface {
	// Kind returns the runtime selector for this format
	Kind() Kind

	// String returns the config name of the format
	String() string

	// BitDepth returns the number of significant bits per sample
	BitDepth() int

	// Size returns the number of serialized bytes per sample
	Size() int

	// Quantize maps a normalized float in [-1.0, 1.0] to a sample.
	// Out-of-range input saturates; NaN maps to zero.
	Quantize(x float32) S

	// Dequantize maps a sample back to a normalized float
	Dequantize(s S) float32

	// Serialize appends the wire bytes of samples to dst
	Serialize(dst []byte, samples []S) []byte

	// Deserialize appends the samples encoded in src to dst.
	// A trailing partial sample is ignored.
	Deserialize(dst []S, src []byte) []S
}

// quantize applies the bias-corrected rounding x*(max+0.5)-0.5 and saturates
// to the signed range of the target.
func quantize(x float32, max float64) float64 {
	v := math.RoundToEven(float64(x)*(max+0.5) - 0.5)
	switch {
	case v != v:
		return 0
	case v > max:
		return max
	case v < -max-1:
		return -max - 1
	}
	return v
}

func dequantize(s int64, max float64) float32 {
	return float32((float64(s) + 0.5) / (max + 0.5))
}

// Normalize maps a signed sample of the given bit depth (2..32) to a float,
// inverting the integer formats' Quantize
func Normalize(s int32, bitDepth int) float32 {
	return dequantize(int64(s), float64(int64(1)<<(bitDepth-1)-1))
}

// F32 is 32-bit IEEE-754 float
type F32 struct{}

func (F32) Kind() Kind                 { return KindF32 }
func (F32) String() string             { return KindF32.String() }
func (F32) BitDepth() int              { return 32 }
func (F32) Size() int                  { return 4 }
func (F32) Quantize(x float32) float32 { return x }
func (F32) Dequantize(s float32) float32 {
	return s
}

func (F32) Serialize(dst []byte, samples []float32) []byte {
	for _, s := range samples {
		dst = order.AppendUint32(dst, math.Float32bits(s))
	}
	return dst
}

func (F32) Deserialize(dst []float32, src []byte) []float32 {
	for i := 0; i+4 <= len(src); i += 4 {
		dst = append(dst, math.Float32frombits(order.Uint32(src[i:])))
	}
	return dst
}

// S16 is signed 16-bit integer
type S16 struct{}

func (S16) Kind() Kind     { return KindS16 }
func (S16) String() string { return KindS16.String() }
func (S16) BitDepth() int  { return 16 }
func (S16) Size() int      { return 2 }

func (S16) Quantize(x float32) int16 {
	return int16(quantize(x, math.MaxInt16))
}

func (S16) Dequantize(s int16) float32 {
	return dequantize(int64(s), math.MaxInt16)
}

func (S16) Serialize(dst []byte, samples []int16) []byte {
	for _, s := range samples {
		dst = order.AppendUint16(dst, uint16(s))
	}
	return dst
}

func (S16) Deserialize(dst []int16, src []byte) []int16 {
	for i := 0; i+2 <= len(src); i += 2 {
		dst = append(dst, int16(order.Uint16(src[i:])))
	}
	return dst
}

// S32 is signed 32-bit integer
type S32 struct{}

func (S32) Kind() Kind     { return KindS32 }
func (S32) String() string { return KindS32.String() }
func (S32) BitDepth() int  { return 32 }
func (S32) Size() int      { return 4 }

func (S32) Quantize(x float32) int32 {
	return int32(quantize(x, math.MaxInt32))
}

func (S32) Dequantize(s int32) float32 {
	return dequantize(int64(s), math.MaxInt32)
}

func (S32) Serialize(dst []byte, samples []int32) []byte {
	for _, s := range samples {
		dst = order.AppendUint32(dst, uint32(s))
	}
	return dst
}

func (S32) Deserialize(dst []int32, src []byte) []int32 {
	for i := 0; i+4 <= len(src); i += 4 {
		dst = append(dst, int32(order.Uint32(src[i:])))
	}
	return dst
}

// S24 is a signed 24-bit value carried in a 4-byte word
type S24 struct{}

func (S24) Kind() Kind     { return KindS24 }
func (S24) String() string { return KindS24.String() }
func (S24) BitDepth() int  { return 24 }
func (S24) Size() int      { return 4 }

// Quantize computes the 32-bit value and drops its low byte
func (S24) Quantize(x float32) Int24 {
	return Int24(S32{}.Quantize(x) >> 8)
}

func (S24) Dequantize(s Int24) float32 {
	return dequantize(int64(s), Max24Bit)
}

func (S24) Serialize(dst []byte, samples []Int24) []byte {
	for _, s := range samples {
		dst = order.AppendUint32(dst, uint32(s))
	}
	return dst
}

func (S24) Deserialize(dst []Int24, src []byte) []Int24 {
	for i := 0; i+4 <= len(src); i += 4 {
		// Sign extend from the low 24 bits
		v := int32(order.Uint32(src[i:])<<8) >> 8
		dst = append(dst, Int24(v))
	}
	return dst
}

// S24Packed is a signed 24-bit value packed into 3 bytes
type S24Packed struct{}

func (S24Packed) Kind() Kind     { return KindS24Packed }
func (S24Packed) String() string { return KindS24Packed.String() }
func (S24Packed) BitDepth() int  { return 24 }
func (S24Packed) Size() int      { return 3 }

// Quantize computes the 32-bit value, drops its low byte and packs the rest
// in wire order, so Serialize copies the bytes verbatim.
func (S24Packed) Quantize(x float32) Int24Packed {
	return SampleTo24Bit(S32{}.Quantize(x) >> 8)
}

func (S24Packed) Dequantize(s Int24Packed) float32 {
	return dequantize(int64(s.Int32()), Max24Bit)
}

func (S24Packed) Serialize(dst []byte, samples []Int24Packed) []byte {
	for _, s := range samples {
		dst = append(dst, s[0], s[1], s[2])
	}
	return dst
}

func (S24Packed) Deserialize(dst []Int24Packed, src []byte) []Int24Packed {
	for i := 0; i+3 <= len(src); i += 3 {
		dst = append(dst, Int24Packed{src[i], src[i+1], src[i+2]})
	}
	return dst
}
