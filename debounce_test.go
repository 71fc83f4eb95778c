package mm5740

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func newTestDebouncer(m Matrix, samples int) (*SampleDebouncer, *[]time.Duration) {
	var waits []time.Duration
	d := &SampleDebouncer{
		Matrix:   m,
		Samples:  samples,
		Interval: SampleInterval,
		Wait:     func(d time.Duration) { waits = append(waits, d) },
	}
	return d, &waits
}

func TestSampleDebouncer(t *testing.T) {
	sc := NewScancode(2, 4)

	t.Run("held for the full window", func(t *testing.T) {
		m := NewMemMatrix()
		m.Press(sc)
		m.EnableColumn(2)
		d, waits := newTestDebouncer(m, DebounceSamples)

		assert.True(t, d.Confirm(2, 4))
		assert.Equal(t, DebounceSamples, len(*waits))
		assert.Equal(t, SampleInterval, (*waits)[0])
	})

	t.Run("released after 3 of 200 samples", func(t *testing.T) {
		m := NewMemMatrix()
		m.Bounce(sc, 3)
		m.EnableColumn(2)
		d, waits := newTestDebouncer(m, DebounceSamples)

		assert.False(t, d.Confirm(2, 4))
		assert.Equal(t, 4, len(*waits))
	})

	t.Run("released one sample short", func(t *testing.T) {
		m := NewMemMatrix()
		m.Bounce(sc, 9)
		m.EnableColumn(2)
		d, _ := newTestDebouncer(m, 10)

		assert.False(t, d.Confirm(2, 4))
	})

	t.Run("released on the last sample boundary", func(t *testing.T) {
		m := NewMemMatrix()
		m.Bounce(sc, 10)
		m.EnableColumn(2)
		d, _ := newTestDebouncer(m, 10)

		assert.True(t, d.Confirm(2, 4))
	})

	t.Run("other rows do not count", func(t *testing.T) {
		m := NewMemMatrix()
		m.Press(NewScancode(2, 5))
		m.EnableColumn(2)
		d, waits := newTestDebouncer(m, DebounceSamples)

		assert.False(t, d.Confirm(2, 4))
		assert.Equal(t, 1, len(*waits))
	})

	t.Run("empty window confirms", func(t *testing.T) {
		d, waits := newTestDebouncer(NewMemMatrix(), 0)

		assert.True(t, d.Confirm(0, 0))
		assert.Equal(t, 0, len(*waits))
	})
}

func TestNewSampleDebouncer(t *testing.T) {
	d := NewSampleDebouncer(NewMemMatrix(), DefaultTiming(), NoDelay)
	assert.Equal(t, DebounceSamples, d.Samples)
	assert.Equal(t, SampleInterval, d.Interval)
}
