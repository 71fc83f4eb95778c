package mm5740

import (
	"context"
	"sync"
	"time"
)

// MemMatrix is an in-memory key matrix. Keys can be pressed and released from
// any goroutine while an encoder scans it.
type MemMatrix struct {
	mu        sync.Mutex
	pressed   [KeyCount]bool
	bounce    [KeyCount]int
	enabled   int
	enables   int
	violation bool
}

func NewMemMatrix() *MemMatrix {
	return &MemMatrix{enabled: -1}
}

func (m *MemMatrix) Press(sc Scancode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pressed[sc] = true
	m.bounce[sc] = 0
}

func (m *MemMatrix) Release(sc Scancode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pressed[sc] = false
	m.bounce[sc] = 0
}

func (m *MemMatrix) ReleaseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.pressed {
		m.pressed[i] = false
		m.bounce[i] = 0
	}
}

// Bounce makes sc read as pressed for the next reads row reads of its column,
// after which it reads as released.
func (m *MemMatrix) Bounce(sc Scancode, reads int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pressed[sc] = reads > 0
	m.bounce[sc] = reads
}

func (m *MemMatrix) IsPressed(sc Scancode) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pressed[sc]
}

func (m *MemMatrix) EnableColumn(col int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enabled >= 0 && m.enabled != col {
		m.violation = true
	}
	m.enabled = col
	m.enables++
}

func (m *MemMatrix) DisableColumn(col int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enabled == col {
		m.enabled = -1
	}
}

func (m *MemMatrix) ReadRows() RowMask {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows RowMask
	if m.enabled < 0 {
		return rows
	}
	for row := 0; row < Rows; row++ {
		sc := NewScancode(m.enabled, row)
		if !m.pressed[sc] {
			continue
		}
		rows = rows.With(row)
		if m.bounce[sc] > 0 {
			m.bounce[sc]--
			if m.bounce[sc] == 0 {
				m.pressed[sc] = false
			}
		}
	}
	return rows
}

// EnabledColumn returns the driven column, or -1 when none is.
func (m *MemMatrix) EnabledColumn() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Enables counts EnableColumn calls.
func (m *MemMatrix) Enables() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enables
}

// Violation reports whether a column was ever enabled while another one was
// still driven.
func (m *MemMatrix) Violation() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.violation
}

// MemLines holds the shift, control and repeat clock levels.
type MemLines struct {
	mu      sync.Mutex
	shift   bool
	control bool
	repeat  bool
}

func (l *MemLines) SetShift(v bool) {
	l.mu.Lock()
	l.shift = v
	l.mu.Unlock()
}

func (l *MemLines) SetControl(v bool) {
	l.mu.Lock()
	l.control = v
	l.mu.Unlock()
}

func (l *MemLines) SetRepeat(v bool) {
	l.mu.Lock()
	l.repeat = v
	l.mu.Unlock()
}

func (l *MemLines) Shift() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.shift
}

func (l *MemLines) Control() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.control
}

func (l *MemLines) Repeat() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.repeat
}

// Clock drives the repeat line as a square wave of the given period until ctx
// is done, standing in for the external repeat oscillator.
func (l *MemLines) Clock(ctx context.Context, period time.Duration) {
	t := time.NewTicker(period / 2)
	defer t.Stop()
	level := false
	for {
		select {
		case <-ctx.Done():
			l.SetRepeat(false)
			return
		case <-t.C:
			level = !level
			l.SetRepeat(level)
		}
	}
}

// MemBus records the byte present on the bus at every rising strobe edge.
type MemBus struct {
	mu        sync.Mutex
	data      byte
	strobe    bool
	pulses    []byte
	violation bool

	// OnPulse, if set, is called with the latched byte on every rising edge.
	OnPulse func(byte)
}

func (b *MemBus) SetData(v byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.strobe {
		b.violation = true
	}
	b.data = v
}

func (b *MemBus) SetStrobe(high bool) {
	b.mu.Lock()
	rising := high && !b.strobe
	b.strobe = high
	v := b.data
	if rising {
		b.pulses = append(b.pulses, v)
	}
	cb := b.OnPulse
	b.mu.Unlock()

	if rising && cb != nil {
		cb(v)
	}
}

func (b *MemBus) Data() byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

func (b *MemBus) Strobe() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.strobe
}

// Pulses returns the bytes strobed so far, oldest first.
func (b *MemBus) Pulses() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.pulses...)
}

func (b *MemBus) ClearPulses() {
	b.mu.Lock()
	b.pulses = nil
	b.mu.Unlock()
}

// Violation reports whether the data changed while the strobe was high.
func (b *MemBus) Violation() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.violation
}
