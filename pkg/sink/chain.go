// ABOUTME: Owning handle for an assembled sink chain
// ABOUTME: Tracks the Unstarted -> Running -> Stopped lifecycle and guards writes
package sink

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sinky-audio/sinky/internal/log"
)

// State is the lifecycle state of a Chain
type State int32

const (
	Unstarted State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

var (
	// ErrNotRunning is returned by Write and Stop outside the Running state
	ErrNotRunning = errors.New("chain is not running")

	// ErrAlreadyStarted is returned by Start once the chain left Unstarted
	ErrAlreadyStarted = errors.New("chain already started")
)

// Chain owns the head of an assembled pipeline and hides its concrete type.
// Chains that accept the same sample type are interchangeable.
//
// A Chain is driven by a single goroutine; it does no locking.
type Chain[S any] struct {
	id    string
	head  Sink[S]
	state State
	log   *logrus.Entry
}

// NewChain wraps head in an unstarted chain
func NewChain[S any](head Sink[S]) *Chain[S] {
	id := uuid.NewString()
	return &Chain[S]{
		id:   id,
		head: head,
		log:  log.WithComponent("chain").WithField("chain", id),
	}
}

// ID returns a unique identifier used in log fields
func (c *Chain[S]) ID() string {
	return c.id
}

// State returns the current lifecycle state
func (c *Chain[S]) State() State {
	return c.state
}

// Start starts every stage down to the terminal sink. On failure the chain
// stays Unstarted.
func (c *Chain[S]) Start() error {
	if c.state != Unstarted {
		return fmt.Errorf("%w (state: %s)", ErrAlreadyStarted, c.state)
	}
	if err := c.head.Start(); err != nil {
		c.log.WithError(err).Warn("Chain start failed")
		return err
	}
	c.state = Running
	c.log.Debug("Chain started")
	return nil
}

// Write pushes data through the chain. data may be modified.
func (c *Chain[S]) Write(data []S) error {
	if c.state != Running {
		return fmt.Errorf("%w (state: %s)", ErrNotRunning, c.state)
	}
	return c.head.Write(data)
}

// Stop stops the chain. The chain is Stopped afterwards even if a stage
// reports an error.
func (c *Chain[S]) Stop() error {
	if c.state != Running {
		return fmt.Errorf("%w (state: %s)", ErrNotRunning, c.state)
	}
	c.state = Stopped
	err := c.head.Stop()
	if err != nil {
		c.log.WithError(err).Warn("Chain stop failed")
	} else {
		c.log.Debug("Chain stopped")
	}
	return err
}
