// ABOUTME: Volume filters for float samples
// ABOUTME: Fixed gain and a runtime-adjustable gain with mute
package filter

import (
	"sync/atomic"
)

// Volume scales every float sample by a fixed factor
type Volume float32

// Map returns s scaled by the volume
func (v Volume) Map(s float32) float32 {
	return s * float32(v)
}

// Filter scales data in place
func (v Volume) Filter(data []float32) {
	g := float32(v)
	for i := range data {
		data[i] *= g
	}
}

// Gain is a volume filter whose level can be changed while a chain is
// running. Setters may be called from any goroutine; Filter reads the
// current factor once per buffer.
//
// Volume and mute share one atomic word so a factor is never computed from
// a volume and a mute flag that were set by different updates.
type Gain struct {
	state atomic.Uint32
}

const mutedBit = 1 << 8

// NewGain creates a gain at the given volume (0-100)
func NewGain(volume int) *Gain {
	g := &Gain{}
	g.SetVolume(volume)
	return g
}

// SetVolume sets the volume (0-100)
func (g *Gain) SetVolume(volume int) {
	volume = max(0, min(100, volume))
	g.modify(func(s uint32) uint32 { return s&mutedBit | uint32(volume) })
}

// SetMuted sets mute state
func (g *Gain) SetMuted(muted bool) {
	g.modify(func(s uint32) uint32 {
		if muted {
			return s | mutedBit
		}
		return s &^ mutedBit
	})
}

func (g *Gain) modify(f func(uint32) uint32) {
	for {
		old := g.state.Load()
		if g.state.CompareAndSwap(old, f(old)) {
			return
		}
	}
}

// Volume returns current volume
func (g *Gain) Volume() int {
	return int(g.state.Load() &^ mutedBit)
}

// Muted returns mute state
func (g *Gain) Muted() bool {
	return g.state.Load()&mutedBit != 0
}

// Factor returns the multiplier currently applied
func (g *Gain) Factor() float32 {
	s := g.state.Load()
	return volumeMultiplier(int(s&^mutedBit), s&mutedBit != 0)
}

// Filter scales data in place by the current factor
func (g *Gain) Filter(data []float32) {
	Volume(g.Factor()).Filter(data)
}

// volumeMultiplier calculates volume multiplier
func volumeMultiplier(volume int, muted bool) float32 {
	if muted {
		return 0
	}
	return float32(volume) / 100
}
