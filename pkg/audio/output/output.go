// ABOUTME: Shared definitions for device outputs
// ABOUTME: Sentinel configuration errors and the sink name used in transport errors
package output

import "errors"

var (
	// ErrUnsupportedFormat is returned when a device cannot play the requested format
	ErrUnsupportedFormat = errors.New("unsupported sample format")

	// ErrNoDevice is returned when the host has no playback device
	ErrNoDevice = errors.New("no playback device available")

	// ErrDeviceNotFound is returned when a named device does not exist
	ErrDeviceNotFound = errors.New("playback device not found")

	// ErrDeviceSelection is returned by outputs that can only use the default device
	ErrDeviceSelection = errors.New("output cannot select a device by name")
)
