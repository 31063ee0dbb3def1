// ABOUTME: Pipeline stage package for filters and converters
// ABOUTME: Provides Filter, Converter, volume control and quantization stages
// Package filter provides the transforms that sit between a producer and a
// terminal sink.
//
// A Filter mutates a buffer in place and keeps its format. A Converter maps a
// buffer of one sample type into a reusable buffer of another. Stages are
// attached to sinks with the sink package.
//
// Example:
//
//	vol := filter.Volume(0.8)
//	q := filter.NewQuantizer[int16](audio.S16{})
//	buf = q.Convert(buf, samples)
package filter
