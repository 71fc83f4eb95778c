package mm5740

import (
	"strconv"
	"strings"
)

func parseCount(ops []string) (int, error) {
	if len(ops) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(ops[0])
	if err != nil || n < 1 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}

func parseLevel(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "on", "hi", "high", "1":
		return true, true
	case "off", "lo", "low", "0":
		return false, true
	}
	return false, false
}

func press(m *Monitor, ops []string) {
	if len(ops) == 0 {
		m.Println("Usage: press <key> [key...]")
		return
	}
	for _, op := range ops {
		sc, err := parseKey(op)
		if err != nil {
			m.Println(err)
			return
		}
		m.matrix.Press(sc)
		m.Printf("Pressed %s\n", sc)
	}
}

func release(m *Monitor, ops []string) {
	if len(ops) == 0 {
		m.Println("Usage: release <key>|all")
		return
	}
	if ops[0] == "all" {
		m.matrix.ReleaseAll()
		m.Println("Released all keys")
		return
	}
	for _, op := range ops {
		sc, err := parseKey(op)
		if err != nil {
			m.Println(err)
			return
		}
		m.matrix.Release(sc)
		m.Printf("Released %s\n", sc)
	}
}

func bounce(m *Monitor, ops []string) {
	if len(ops) != 2 {
		m.Println("Usage: bounce <key> <reads>")
		return
	}
	sc, err := parseKey(ops[0])
	if err != nil {
		m.Println(err)
		return
	}
	reads, err := strconv.Atoi(ops[1])
	if err != nil || reads < 0 {
		m.Println("couldn't parse read count from", ops[1])
		return
	}
	m.matrix.Bounce(sc, reads)
	m.Printf("Key %s bounces after %d reads\n", sc, reads)
}

func shift(m *Monitor, ops []string) {
	if len(ops) != 1 {
		m.Println("Usage: shift on|off")
		return
	}
	v, ok := parseLevel(ops[0])
	if !ok {
		m.Println("Usage: shift on|off")
		return
	}
	m.lines.SetShift(v)
}

func ctrl(m *Monitor, ops []string) {
	if len(ops) != 1 {
		m.Println("Usage: ctrl on|off")
		return
	}
	v, ok := parseLevel(ops[0])
	if !ok {
		m.Println("Usage: ctrl on|off")
		return
	}
	m.lines.SetControl(v)
}

// repeat sets the repeat clock level. "tick" drives a full period, running a
// cycle on the high and on the low half.
func repeat(m *Monitor, ops []string) {
	if len(ops) != 1 {
		m.Println("Usage: repeat hi|lo|tick")
		return
	}
	if ops[0] == "tick" {
		m.lines.SetRepeat(true)
		m.enc.Cycle()
		m.lines.SetRepeat(false)
		m.enc.Cycle()
		m.printEvents()
		return
	}
	v, ok := parseLevel(ops[0])
	if !ok {
		m.Println("Usage: repeat hi|lo|tick")
		return
	}
	m.lines.SetRepeat(v)
}

func scan(m *Monitor, ops []string) {
	n, err := parseCount(ops)
	if err != nil {
		m.Println("Usage: scan [COUNT]")
		return
	}
	var held bool
	for i := 0; i < n; i++ {
		held = m.enc.Scan()
	}
	m.printEvents()
	m.Printf("Key held: "+white("%v\n"), held)
}

func cycle(m *Monitor, ops []string) {
	n, err := parseCount(ops)
	if err != nil {
		m.Println("Usage: cycle [COUNT]")
		return
	}
	for i := 0; i < n; i++ {
		m.enc.Cycle()
	}
	m.printEvents()
}

// typeText presses and releases the key for each character in turn, holding
// the modifier lines it needs and restoring them afterwards.
func typeText(m *Monitor, ops []string) {
	if len(ops) == 0 {
		m.Println("Usage: type TEXT")
		return
	}
	text := strings.Join(ops, " ")
	for i := 0; i < len(text); i++ {
		sc, mod, ok := KeyFor(text[i])
		if !ok {
			m.Printf("No key produces %s\n", ByteName(text[i]))
			continue
		}
		wasShift, wasControl := m.lines.Shift(), m.lines.Control()
		m.lines.SetShift(mod.Shift())
		m.lines.SetControl(mod.Control())
		m.matrix.Press(sc)
		m.enc.Cycle()
		m.matrix.Release(sc)
		m.enc.Cycle()
		m.lines.SetShift(wasShift)
		m.lines.SetControl(wasControl)
	}
	m.printEvents()
}

func rom(m *Monitor, ops []string) {
	if len(ops) != 1 {
		m.Println("Usage: rom <key>")
		return
	}
	sc, err := parseKey(ops[0])
	if err != nil {
		m.Println(err)
		return
	}
	m.Printf(white("%s\n"), sc)
	for mod := ModNone; mod <= ModShiftControl; mod++ {
		b := Lookup(sc, mod)
		m.Printf("  %-14s"+green("0x%02X")+" %s\n", mod, b, ByteName(b))
	}
}

func find(m *Monitor, ops []string) {
	if len(ops) != 1 || len(ops[0]) != 1 {
		m.Println("Usage: find <char>")
		return
	}
	sc, mod, ok := KeyFor(ops[0][0])
	if !ok {
		m.Printf("No key produces %s\n", ByteName(ops[0][0]))
		return
	}
	m.Printf("%s: key %s %s\n", ByteName(ops[0][0]), sc, mod)
}

func state(m *Monitor, ops []string) {
	m.PrintState()
}

func reset(m *Monitor, ops []string) {
	m.Println("Resetting encoder")
	m.matrix.ReleaseAll()
	m.lines.SetShift(false)
	m.lines.SetControl(false)
	m.lines.SetRepeat(false)
	m.enc.Reset()
	m.bus.ClearPulses()
	m.events = m.events[:0]
}

func quit(m *Monitor, ops []string) {
	m.Println("goodbye.")
	m.quit = true
}
