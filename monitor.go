package mm5740

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var yellow = color.New(color.FgYellow).SprintFunc()
var red = color.New(color.FgRed).SprintFunc()
var blue = color.New(color.FgBlue).SprintFunc()
var green = color.New(color.FgGreen).SprintFunc()
var cyan = color.New(color.FgCyan).SprintFunc()
var white = color.New(color.FgWhite, color.Bold).SprintFunc()

var PROMPT = red(">>> ")

// parseKey accepts a scancode number (decimal or 0x hex) or a hardware
// position such as X3Y10.
func parseKey(s string) (Scancode, error) {
	u := strings.ToUpper(s)
	if strings.HasPrefix(u, "X") {
		var x, y int
		if n, err := fmt.Sscanf(u, "X%dY%d", &x, &y); err != nil || n != 2 {
			return 0, fmt.Errorf("couldn't parse key position from %s", s)
		}
		if x < 1 || x > Columns || y < 1 || y > Rows {
			return 0, fmt.Errorf("key position %s out of range", s)
		}
		return NewScancode(x-1, y-1), nil
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("couldn't parse scancode from %s", s)
	}
	if sc := Scancode(v); sc.Valid() {
		return sc, nil
	}
	return 0, fmt.Errorf("scancode out of range")
}

// Monitor drives an encoder wired to in-memory hardware from typed commands.
// Cycles run only when asked for, with every delay skipped.
type Monitor struct {
	enc    *Encoder
	matrix *MemMatrix
	lines  *MemLines
	bus    *MemBus
	out    io.Writer

	events []Event
	quit   bool
}

func NewMonitor(out io.Writer) *Monitor {
	m := &Monitor{
		matrix: NewMemMatrix(),
		lines:  &MemLines{},
		bus:    &MemBus{},
		out:    out,
	}
	m.enc = New(m.matrix, m.lines, m.bus,
		WithDelay(NoDelay),
		WithTracer(func(ev Event) { m.events = append(m.events, ev) }),
	)
	m.enc.Reset()
	return m
}

func (m *Monitor) Printf(format string, a ...interface{}) {
	fmt.Fprintf(m.out, format, a...)
}

func (m *Monitor) Print(a ...interface{}) {
	fmt.Fprint(m.out, a...)
}

func (m *Monitor) Println(a ...interface{}) {
	fmt.Fprintln(m.out, a...)
}

// Start reads commands from in until EOF or q.
func (m *Monitor) Start(in io.Reader) {
	reader := bufio.NewReader(in)

	var last string
	m.PrintState()
	for !m.quit {
		m.Print(PROMPT)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				m.Print("\n")
				return
			}
			m.Println(err)
			return
		}
		line = strings.TrimSpace(line)

		// A blank line means repeat the last
		if line == "" {
			line = last
		}
		last = line
		if err := m.Handle(line); err != nil {
			m.Println(err)
		}
	}
}

func (m *Monitor) PrintState() {
	m.Println(green("-- ") + yellow("Encoder") + green(" --"))
	m.Printf("Phase: "+white("%s")+" Bus: "+white("0x%02X")+" (%s) Pulses: "+white("%d\n"),
		m.enc.Phase(), m.bus.Data(), ByteName(m.bus.Data()), len(m.bus.Pulses()))
	m.Printf("Shift: "+white("%v")+" Control: "+white("%v")+" Repeat: "+white("%v")+" (last seen "+white("%v")+")\n",
		m.lines.Shift(), m.lines.Control(), m.lines.Repeat(), m.enc.RepeatLevel())

	keys := m.enc.Keys()
	m.Print("Held:")
	for _, sc := range keys.Held() {
		m.Printf(" "+cyan("%s"), sc)
	}
	m.Print("\n")

	m.Println(green("-- ") + yellow("Matrix") + green(" --"))
	m.Print("    ")
	for row := 0; row < Rows; row++ {
		m.Printf("Y%-2d", row+1)
	}
	m.Print("\n")
	for col := 0; col < Columns; col++ {
		m.Printf("X%d  ", col+1)
		for row := 0; row < Rows; row++ {
			sc := NewScancode(col, row)
			switch {
			case keys.IsReported(sc):
				m.Print(cyan("#") + "  ")
			case m.matrix.IsPressed(sc):
				m.Print(blue("+") + "  ")
			default:
				m.Print(".  ")
			}
		}
		m.Print("\n")
	}
}

func (m *Monitor) printEvents() {
	for _, ev := range m.events {
		switch ev.Kind {
		case EventEmit:
			m.Printf(green("emit   ")+white("0x%02X")+" %-4s key %s %s\n",
				ev.Data, ByteName(ev.Data), ev.Scancode, ev.Modifier)
		case EventRepeat:
			m.Printf(cyan("repeat ")+white("0x%02X")+" %s\n", ev.Data, ByteName(ev.Data))
		case EventBounce:
			m.Printf(yellow("bounce ")+"key %s\n", ev.Scancode)
		case EventRelease:
			m.Printf(blue("up     ")+"key %s\n", ev.Scancode)
		}
	}
	m.events = m.events[:0]
}

var commands = map[string]func(*Monitor, []string){
	"press":   press,
	"p":       press,
	"release": release,
	"r":       release,
	"bounce":  bounce,
	"shift":   shift,
	"ctrl":    ctrl,
	"repeat":  repeat,
	"scan":    scan,
	"cycle":   cycle,
	"c":       cycle,
	"type":    typeText,
	"t":       typeText,
	"rom":     rom,
	"find":    find,
	"state":   state,
	"ctx":     state,
	"reset":   reset,
	"q":       quit,
}

func (m *Monitor) Handle(line string) error {
	ops := strings.Fields(line)
	if len(ops) == 0 {
		return nil
	}
	cmd := ops[0]
	ops = ops[1:]
	if f, ok := commands[cmd]; ok {
		f(m, ops)
	} else {
		return fmt.Errorf("illegal command: '%s'", cmd)
	}
	return nil
}
