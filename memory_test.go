package mm5740

import (
	"context"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemMatrixReadRows(t *testing.T) {
	m := NewMemMatrix()
	m.Press(NewScancode(3, 0))
	m.Press(NewScancode(3, 9))
	m.Press(NewScancode(4, 5))

	assert.Equal(t, RowMask(0), m.ReadRows())

	m.EnableColumn(3)
	assert.Equal(t, RowMask(0).With(0).With(9), m.ReadRows())
	m.DisableColumn(3)

	m.EnableColumn(4)
	assert.Equal(t, RowMask(0).With(5), m.ReadRows())
	m.DisableColumn(4)

	assert.Equal(t, -1, m.EnabledColumn())
	assert.Equal(t, 2, m.Enables())
	assert.False(t, m.Violation())
}

func TestMemMatrixViolation(t *testing.T) {
	m := NewMemMatrix()
	m.EnableColumn(1)
	m.EnableColumn(1)
	assert.False(t, m.Violation())

	m.DisableColumn(2)
	assert.Equal(t, 1, m.EnabledColumn())
	m.EnableColumn(2)
	assert.True(t, m.Violation())
}

func TestMemMatrixBounce(t *testing.T) {
	m := NewMemMatrix()
	sc := NewScancode(6, 6)
	m.Bounce(sc, 2)
	m.EnableColumn(6)

	assert.True(t, m.ReadRows().Pressed(6))
	assert.True(t, m.ReadRows().Pressed(6))
	assert.False(t, m.ReadRows().Pressed(6))
	assert.False(t, m.IsPressed(sc))

	m.Bounce(sc, 0)
	assert.False(t, m.IsPressed(sc))

	m.Bounce(sc, 1)
	m.Press(sc)
	for i := 0; i < 5; i++ {
		assert.True(t, m.ReadRows().Pressed(6))
	}
}

func TestMemMatrixReleaseAll(t *testing.T) {
	m := NewMemMatrix()
	for sc := Scancode(0); sc < KeyCount; sc += 7 {
		m.Press(sc)
	}
	m.ReleaseAll()
	for sc := Scancode(0); sc < KeyCount; sc++ {
		assert.False(t, m.IsPressed(sc))
	}
}

func TestMemBus(t *testing.T) {
	var seen []byte
	b := &MemBus{OnPulse: func(v byte) { seen = append(seen, v) }}
	assert.Equal(t, 0, len(b.Pulses()))

	b.SetData('A')
	b.SetStrobe(true)
	b.SetStrobe(true)
	b.SetStrobe(false)
	b.SetData('B')
	b.SetStrobe(false)
	b.SetStrobe(true)
	b.SetStrobe(false)

	assert.Equal(t, []byte{'A', 'B'}, b.Pulses())
	assert.Equal(t, []byte{'A', 'B'}, seen)
	assert.Equal(t, byte('B'), b.Data())
	assert.False(t, b.Strobe())
	assert.False(t, b.Violation())

	b.ClearPulses()
	assert.Equal(t, 0, len(b.Pulses()))
}

func TestMemBusViolation(t *testing.T) {
	b := &MemBus{}
	b.SetStrobe(true)
	b.SetData(1)
	assert.True(t, b.Violation())
}

func TestMemLines(t *testing.T) {
	l := &MemLines{}
	l.SetShift(true)
	l.SetRepeat(true)
	assert.True(t, l.Shift())
	assert.False(t, l.Control())
	assert.True(t, l.Repeat())

	l.SetShift(false)
	l.SetControl(true)
	assert.False(t, l.Shift())
	assert.True(t, l.Control())
}

func TestMemLinesClock(t *testing.T) {
	l := &MemLines{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Clock(ctx, 2*time.Millisecond)
		close(done)
	}()

	waitFor(t, l.Repeat)
	waitFor(t, func() bool { return !l.Repeat() })
	cancel()
	<-done
	assert.False(t, l.Repeat())
}
