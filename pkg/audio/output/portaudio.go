//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Cross-platform blocking-write output using PortAudio
package output

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/sink"
)

// framesPerBuffer is the PortAudio blocking write size
const framesPerBuffer = 1024

// PortAudio plays samples on the default device
type PortAudio[S float32 | int16] struct {
	params  audio.Params
	stream  *portaudio.Stream
	buffer  []S
	pending int
}

// NewPortAudio creates a new PortAudio output
func NewPortAudio[S float32 | int16](params audio.Params, deviceName string) (*PortAudio[S], error) {
	if deviceName != "" {
		return nil, fmt.Errorf("%w: portaudio uses the default device, got %q", ErrDeviceSelection, deviceName)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &PortAudio[S]{
		params: params,
		buffer: make([]S, framesPerBuffer*params.Channels),
	}, nil
}

// Start initializes PortAudio and opens a blocking stream
func (p *PortAudio[S]) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, p.params.Channels, float64(p.params.SampleRate), framesPerBuffer, &p.buffer)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("%w: failed to open stream: %v", ErrNoDevice, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("failed to start stream: %w", err)
	}

	p.stream = stream
	return nil
}

// Write fills the stream buffer and writes every completed buffer
func (p *PortAudio[S]) Write(data []S) error {
	for len(data) > 0 {
		n := copy(p.buffer[p.pending:], data)
		p.pending += n
		data = data[n:]

		if p.pending == len(p.buffer) {
			if err := p.stream.Write(); err != nil {
				return sink.Wrap("write", "portaudio", err)
			}
			p.pending = 0
		}
	}
	return nil
}

// Stop flushes a zero-padded final buffer and releases resources
func (p *PortAudio[S]) Stop() error {
	var err error
	if p.pending > 0 {
		clear(p.buffer[p.pending:])
		err = p.stream.Write()
		p.pending = 0
	}
	if serr := p.stream.Stop(); err == nil {
		err = serr
	}
	if cerr := p.stream.Close(); err == nil {
		err = cerr
	}
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return sink.Wrap("stop", "portaudio", err)
}
