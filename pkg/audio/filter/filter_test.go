// ABOUTME: Tests for filters and converters
// ABOUTME: Covers volume linearity, gain control, quantization and buffer reuse
package filter

import (
	"sync"
	"testing"

	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeIsLinear(t *testing.T) {
	inputs := [][]float32{
		{},
		{0},
		{1, -1, 0.5, -0.25, 0.125},
		{0.3, 0.6, 0.9, -0.1, 1e-7, -1e-7},
	}
	gains := []float32{0, 0.8, 1, 1.5, -2, 1e-3}

	for _, g := range gains {
		for _, in := range inputs {
			want := make([]float32, len(in))
			for i, x := range in {
				want[i] = g * x
			}

			data := make([]float32, len(in))
			copy(data, in)
			Volume(g).Filter(data)
			assert.Equal(t, want, data, "gain %v", g)

			mapped := make([]float32, len(in))
			copy(mapped, in)
			MapFilter[float32](Volume(g)).Filter(mapped)
			assert.Equal(t, want, mapped, "mapped gain %v", g)
		}
	}
}

func TestVolumeMultiplier(t *testing.T) {
	tests := []struct {
		volume   int
		muted    bool
		expected float32
	}{
		{100, false, 1.0},
		{50, false, 0.5},
		{0, false, 0.0},
		{80, true, 0.0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, volumeMultiplier(tt.volume, tt.muted),
			"volume=%d, muted=%v", tt.volume, tt.muted)
	}
}

func TestGain(t *testing.T) {
	g := NewGain(50)
	assert.Equal(t, 50, g.Volume())
	assert.Equal(t, float32(0.5), g.Factor())

	data := []float32{1, -0.5}
	g.Filter(data)
	assert.Equal(t, []float32{0.5, -0.25}, data)

	g.SetVolume(150)
	assert.Equal(t, 100, g.Volume())
	g.SetVolume(-3)
	assert.Equal(t, 0, g.Volume())

	g.SetVolume(80)
	g.SetMuted(true)
	assert.True(t, g.Muted())
	assert.Zero(t, g.Factor())

	data = []float32{0.7}
	g.Filter(data)
	assert.Equal(t, []float32{0}, data)

	g.SetMuted(false)
	assert.Equal(t, float32(0.8), g.Factor())
}

func TestGainConcurrentMuteWins(t *testing.T) {
	for range 50 {
		g := NewGain(50)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for v := range 100 {
				g.SetVolume(v + 1)
			}
		}()
		go func() {
			defer wg.Done()
			g.SetMuted(true)
		}()
		wg.Wait()

		require.True(t, g.Muted())
		assert.Zero(t, g.Factor())
		assert.Equal(t, 100, g.Volume())
	}
}

func TestQuantizer(t *testing.T) {
	q := NewQuantizer[int16](audio.S16{})
	assert.Equal(t, audio.KindS16, q.Format().Kind())

	out := q.Convert(nil, []float32{0.0, 1.0, -1.0, 0.5})
	assert.Equal(t, []int16{0, 32767, -32768, 16383}, out)

	out = q.Convert(out, []float32{1})
	assert.Equal(t, []int16{32767}, out)
}

func TestConverterReusesBuffer(t *testing.T) {
	q := NewQuantizer[audio.Int24Packed](audio.S24Packed{})
	src := make([]float32, 256)
	for i := range src {
		src[i] = float32(i)/256 - 0.5
	}

	buf := q.Convert(nil, src)
	require.Len(t, buf, len(src))
	capacity := cap(buf)

	allocs := testing.AllocsPerRun(100, func() {
		buf = q.Convert(buf, src)
		buf = q.Convert(buf, src[:10])
	})
	assert.Zero(t, allocs)
	assert.Equal(t, capacity, cap(buf))
	assert.Len(t, buf, 10)
}

func TestMapConverter(t *testing.T) {
	c := MapConverter[float32, int32](MapFunc[float32, int32](func(x float32) int32 {
		return int32(x * 10)
	}))

	out := c.Convert(make([]int32, 5, 8), []float32{0.1, 0.2})
	assert.Equal(t, []int32{1, 2}, out)
	assert.Equal(t, 8, cap(out))
}

func TestIdentity(t *testing.T) {
	src := []float32{0.25, -0.5}
	out := Identity[float32]{}.Convert(nil, src)
	assert.Equal(t, src, out)

	out[0] = 1
	assert.Equal(t, float32(0.25), src[0], "identity must copy")
}

func TestRequantizer(t *testing.T) {
	data := []int16{1, 2, 3}
	Requantizer[int16]{}.Filter(data)
	assert.Equal(t, []int16{1, 2, 3}, data)

	double := FilterFunc[int16](func(d []int16) {
		for i := range d {
			d[i] *= 2
		}
	})
	Requantizer[int16]{Hook: double}.Filter(data)
	assert.Equal(t, []int16{2, 4, 6}, data)
}
