// ABOUTME: Sink interface implemented by pipeline stages and terminal consumers
// ABOUTME: Defines lifecycle hooks, the sink error type and default hooks
package sink

import (
	"errors"
	"fmt"
)

// Sink accepts buffers of samples of a single format. Start is called once
// before the first Write and Stop once after the last.
//
// Write may mutate data. The buffer is only borrowed for the duration of the
// call and must not be retained.
type Sink[S any] interface {
	Start() error
	Stop() error
	Write(data []S) error
}

// Base provides no-op Start and Stop hooks for embedding
type Base struct{}

// Start does nothing
func (Base) Start() error { return nil }

// Stop does nothing
func (Base) Stop() error { return nil }

// Error reports a failure of the transport or device behind a terminal sink
type Error struct {
	Op   string // "start", "write", "stop"
	Sink string // terminal sink name, e.g. "pipe", "oto"
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sink %s: %s: %v", e.Sink, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns err wrapped as an *Error. It returns nil for a nil err and
// leaves errors that already carry an *Error untouched.
func Wrap(op, sink string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Sink: sink, Err: err}
}
