package mm5740

import (
	"context"
	"fmt"
)

// Phase is the step of the scan cycle the encoder is in.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseScanning
	PhaseSettling
	PhaseRowEvaluation
	PhaseDebounce
	PhaseEmit
	PhaseCycleComplete
)

var phaseNames = [...]string{
	PhaseIdle:          "idle",
	PhaseScanning:      "scanning",
	PhaseSettling:      "settling",
	PhaseRowEvaluation: "row evaluation",
	PhaseDebounce:      "debounce",
	PhaseEmit:          "emit",
	PhaseCycleComplete: "cycle complete",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

type EventKind int

const (
	EventEmit    EventKind = iota // new key press strobed out
	EventRepeat                   // repeat clock re-strobe
	EventBounce                   // press rejected by the debouncer
	EventRelease                  // reported key released
)

func (k EventKind) String() string {
	switch k {
	case EventEmit:
		return "emit"
	case EventRepeat:
		return "repeat"
	case EventBounce:
		return "bounce"
	case EventRelease:
		return "release"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event describes something the encoder did during a cycle. Scancode and
// Modifier are not meaningful for EventRepeat.
type Event struct {
	Kind     EventKind
	Scancode Scancode
	Modifier Modifier
	Data     byte
}

type Tracer func(Event)

// Encoder is the scan cycle controller. It owns the key state and the repeat
// history and is not safe for concurrent use.
type Encoder struct {
	matrix    Matrix
	inputs    Inputs
	bus       Bus
	debouncer Debouncer
	timing    Timing
	wait      Delay
	trace     Tracer

	keys   KeyState
	repeat RepeatDetector
	data   byte
	phase  Phase
}

type Option func(*Encoder)

func WithTiming(t Timing) Option {
	return func(e *Encoder) { e.timing = t }
}

// WithDelay replaces the busy wait used for every fixed delay.
func WithDelay(d Delay) Option {
	return func(e *Encoder) { e.wait = d }
}

// WithDebouncer replaces the sampling debouncer built from the timing.
func WithDebouncer(d Debouncer) Option {
	return func(e *Encoder) { e.debouncer = d }
}

func WithTracer(t Tracer) Option {
	return func(e *Encoder) { e.trace = t }
}

func New(m Matrix, in Inputs, bus Bus, opts ...Option) *Encoder {
	e := &Encoder{
		matrix: m,
		inputs: in,
		bus:    bus,
		timing: DefaultTiming(),
		wait:   BusyWait,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.debouncer == nil {
		e.debouncer = NewSampleDebouncer(m, e.timing, e.wait)
	}
	return e
}

// Reset puts the outputs in their power-on state: no column driven, strobe
// low and 0x00 on the bus. Key state and repeat history are forgotten.
func (e *Encoder) Reset() {
	for col := 0; col < Columns; col++ {
		e.matrix.DisableColumn(col)
	}
	e.bus.SetStrobe(false)
	e.bus.SetData(0)
	e.data = 0
	e.keys.Reset()
	e.repeat.Reset()
	e.phase = PhaseIdle
}

func (e *Encoder) Data() byte     { return e.data }
func (e *Encoder) Keys() KeyState { return e.keys }
func (e *Encoder) Phase() Phase   { return e.phase }

// RepeatLevel is the repeat line level seen by the last repeat check.
func (e *Encoder) RepeatLevel() bool { return e.repeat.Level() }

// Scan sweeps the matrix once, columns 0 to 8 and rows 0 to 9 within each,
// and returns whether any key is held afterwards.
func (e *Encoder) Scan() bool {
	keydown := false
	for col := 0; col < Columns; col++ {
		e.phase = PhaseScanning
		e.matrix.EnableColumn(col)
		e.phase = PhaseSettling
		e.wait(e.timing.Settle)
		rows := e.matrix.ReadRows()

		for row := 0; row < Rows; row++ {
			e.phase = PhaseRowEvaluation
			sc := NewScancode(col, row)
			if rows.Pressed(row) {
				if !e.keys.IsReported(sc) {
					e.phase = PhaseDebounce
					if e.debouncer.Confirm(col, row) {
						e.emit(sc)
					} else {
						e.traceEvent(Event{Kind: EventBounce, Scancode: sc})
					}
				}
			} else {
				// Releases are trusted without debouncing.
				if e.keys.IsReported(sc) {
					e.traceEvent(Event{Kind: EventRelease, Scancode: sc})
				}
				e.keys.Clear(sc)
			}
			if e.keys.IsReported(sc) {
				keydown = true
			}
		}
		e.matrix.DisableColumn(col)
	}
	e.phase = PhaseCycleComplete
	return keydown
}

// Cycle runs one scan and, if a key is held and the repeat clock just fell,
// strobes the byte already on the bus again. It reports whether that repeat
// strobe happened. The repeat line is only sampled while a key is held.
func (e *Encoder) Cycle() bool {
	if !e.Scan() {
		return false
	}
	if !e.repeat.DetectEdge(e.inputs.Repeat()) {
		return false
	}
	e.strobe()
	e.traceEvent(Event{Kind: EventRepeat, Data: e.data})
	return true
}

// Run cycles until ctx is done.
func (e *Encoder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		e.Cycle()
	}
}

func (e *Encoder) emit(sc Scancode) {
	e.phase = PhaseEmit
	// Modifiers are read now, not when the press was first seen.
	mod := ModifierFrom(e.inputs.Shift(), e.inputs.Control())
	e.data = Lookup(sc, mod)
	e.bus.SetData(e.data)
	e.strobe()
	e.keys.MarkReported(sc)
	e.traceEvent(Event{Kind: EventEmit, Scancode: sc, Modifier: mod, Data: e.data})
}

func (e *Encoder) strobe() {
	e.bus.SetStrobe(true)
	e.wait(e.timing.Strobe)
	e.bus.SetStrobe(false)
}

func (e *Encoder) traceEvent(ev Event) {
	if e.trace != nil {
		e.trace(ev)
	}
}
