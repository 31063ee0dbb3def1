// ABOUTME: Malgo-based audio output implementation with 24-bit support
// ABOUTME: Uses miniaudio via malgo; a data callback drains a byte ring buffer
package output

import (
	"encoding/binary"
	"fmt"
	"slices"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/sirupsen/logrus"

	"github.com/sinky-audio/sinky/internal/log"
	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/sink"
)

// bufferMillis is the amount of audio queued ahead of the device
const bufferMillis = 500

// drainTimeout bounds how long Stop waits for queued audio to play out
const drainTimeout = 2 * bufferMillis * time.Millisecond

// Malgo plays samples through miniaudio on the default or a named device
type Malgo[S audio.Sample] struct {
	format     audio.Format[S]
	params     audio.Params
	malgoCtx   *malgo.AllocatedContext
	deviceID   *malgo.DeviceID
	deviceName string
	device     *malgo.Device
	ring       *RingBuffer
	buf        []byte
	serialize  func(dst []byte, data []S) []byte
	log        *logrus.Entry
}

func malgoFormat(kind audio.Kind) (malgo.FormatType, error) {
	switch kind {
	case audio.KindF32:
		return malgo.FormatF32, nil
	case audio.KindS16:
		return malgo.FormatS16, nil
	case audio.KindS32:
		return malgo.FormatS32, nil
	case audio.KindS24Packed:
		return malgo.FormatS24, nil
	case audio.KindS24:
		return malgo.FormatS32, nil
	}
	return malgo.FormatUnknown, fmt.Errorf("%w: malgo does not play %s", ErrUnsupportedFormat, kind)
}

// deviceSerializer lays samples out the way the device expects. s24_4 keeps
// 24 bits in the low bytes of each word; miniaudio's s32 wants them
// left-justified.
func deviceSerializer[S audio.Sample](format audio.Format[S]) func(dst []byte, data []S) []byte {
	if format.Kind() != audio.KindS24 {
		return format.Serialize
	}
	return func(dst []byte, data []S) []byte {
		for _, s := range any(data).([]audio.Int24) {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(int32(s)<<8))
		}
		return dst
	}
}

// findDevice picks the named playback device, or the default one when name is empty
func findDevice(devices []malgo.DeviceInfo, name string) (*malgo.DeviceInfo, error) {
	if len(devices) == 0 {
		return nil, ErrNoDevice
	}
	if name == "" {
		for i := range devices {
			if devices[i].IsDefault != 0 {
				return &devices[i], nil
			}
		}
		return &devices[0], nil
	}
	for i := range devices {
		if devices[i].Name() == name {
			return &devices[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrDeviceNotFound, name)
}

// NewMalgo initializes a malgo context and resolves the playback device
func NewMalgo[S audio.Sample](params audio.Params, format audio.Format[S], deviceName string) (*Malgo[S], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if _, err := malgoFormat(format.Kind()); err != nil {
		return nil, err
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	devices, err := ctx.Devices(malgo.Playback)
	if err != nil {
		freeContext(ctx)
		return nil, fmt.Errorf("failed to enumerate playback devices: %w", err)
	}
	info, err := findDevice(devices, deviceName)
	if err != nil {
		freeContext(ctx)
		return nil, err
	}

	id := info.ID
	return &Malgo[S]{
		format:     format,
		params:     params,
		malgoCtx:   ctx,
		deviceID:   &id,
		deviceName: info.Name(),
		serialize:  deviceSerializer(format),
		log: log.WithComponent("output").WithFields(logrus.Fields{
			"backend": "malgo",
			"format":  format.String(),
			"device":  info.Name(),
		}),
	}, nil
}

// DeviceName returns the name of the resolved playback device
func (m *Malgo[S]) DeviceName() string {
	return m.deviceName
}

// Start opens and starts the playback device. On failure the malgo context
// is released; a later Start initializes a new one.
func (m *Malgo[S]) Start() (err error) {
	defer func() {
		if err != nil && m.malgoCtx != nil {
			freeContext(m.malgoCtx)
			m.malgoCtx = nil
		}
	}()

	mf, err := malgoFormat(m.format.Kind())
	if err != nil {
		return err
	}
	if m.malgoCtx == nil {
		if m.malgoCtx, err = malgo.InitContext(nil, malgo.ContextConfig{}, nil); err != nil {
			return fmt.Errorf("failed to initialize malgo context: %w", err)
		}
	}

	frameSize := m.format.Size() * m.params.Channels
	m.ring = NewRingBuffer(m.params.SampleRate*bufferMillis/1000*frameSize, frameSize)

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = mf
	deviceConfig.Playback.Channels = uint32(m.params.Channels)
	deviceConfig.Playback.DeviceID = m.deviceID.Pointer()
	deviceConfig.SampleRate = uint32(m.params.SampleRate)
	deviceConfig.Alsa.NoMMap = 1

	ring := m.ring
	callbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, _ []byte, _ uint32) {
			ring.Read(pOutput)
		},
	}

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, callbacks)
	if err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("failed to start device: %w", err)
	}
	m.device = device

	m.log.Infof("Audio output initialized: %dHz, %d channels", m.params.SampleRate, m.params.Channels)
	return nil
}

// Write queues samples, blocking while the ring buffer is full
func (m *Malgo[S]) Write(data []S) error {
	m.buf = slices.Grow(m.buf[:0], len(data)*m.format.Size())
	m.buf = m.serialize(m.buf, data)
	if _, err := m.ring.Write(m.buf); err != nil {
		return sink.Wrap("write", "malgo", err)
	}
	return nil
}

// Stop lets queued audio play out, then stops the device and releases the
// context
func (m *Malgo[S]) Stop() error {
	var err error
	if m.ring != nil {
		if m.device != nil && !m.ring.Drain(drainTimeout) {
			m.log.Warnf("Dropped %d queued bytes after %v", m.ring.Buffered(), drainTimeout)
		}
		m.ring.Close()
	}
	if m.device != nil {
		err = m.device.Stop()
		m.device.Uninit()
		m.device = nil
	}
	if m.malgoCtx != nil {
		freeContext(m.malgoCtx)
		m.malgoCtx = nil
	}
	m.log.Debug("Audio output stopped")
	return sink.Wrap("stop", "malgo", err)
}

func freeContext(ctx *malgo.AllocatedContext) {
	if err := ctx.Uninit(); err != nil {
		log.WithComponent("output").WithError(err).Warn("malgo context uninit error")
	}
	ctx.Free()
}
