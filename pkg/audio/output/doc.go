// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides device-playback terminal sinks over oto, malgo and PortAudio
// Package output provides terminal sinks that play samples on a host audio
// device.
//
// Each sink accepts one sample format and is constructed for fixed stream
// parameters. Construction fails when no compatible device exists or a
// named device is unavailable; Write blocks while the device queue is full.
//
// Example:
//
//	out, err := output.NewMalgo(audio.Params{SampleRate: 48000, Channels: 2}, audio.S16{}, "")
//	err = out.Start()
//	err = out.Write(samples)
//	err = out.Stop()
package output
