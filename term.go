package mm5740

import (
	"github.com/nsf/termbox-go"
)

// QuitKey ends an interactive session. No key on the encoder produces it.
const QuitKey = '`'

// Renderer shows the bytes strobed out by the encoder.
type Renderer interface {
	Render(b byte)
}

// Terminal renders strobed bytes on a raw termbox screen, the way a teletype
// fed from the encoder would print them.
type Terminal struct {
	fg, bg termbox.Attribute
	x, y   int
}

func NewTerminal() (*Terminal, error) {
	return &Terminal{fg: termbox.ColorWhite, bg: termbox.ColorBlack}, initTerm()
}

func (d *Terminal) Render(b byte) {
	w, h := termbox.Size()
	switch b {
	case '\r', '\n':
		d.newline(h)
	case 0x08:
		if d.x > 0 {
			d.x--
			termbox.SetCell(d.x, d.y, ' ', d.fg, d.bg)
		}
	case 0x0c:
		termbox.Clear(d.fg, d.bg)
		d.x, d.y = 0, 0
	default:
		for _, r := range printable(b) {
			if d.x >= w {
				d.newline(h)
			}
			termbox.SetCell(d.x, d.y, r, d.fg, d.bg)
			d.x++
		}
	}
	termbox.SetCursor(d.x, d.y)
	termbox.Flush()
}

func (d *Terminal) newline(h int) {
	d.x = 0
	if d.y < h-1 {
		d.y++
		return
	}
	termbox.Clear(d.fg, d.bg)
	d.y = 0
}

// printable spells control codes out so they stay visible on screen.
func printable(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return string(rune(b))
	}
	return "<" + ByteName(b) + ">"
}

func (d *Terminal) Close() {
	termbox.Close()
}

func initTerm() error {
	if err := termbox.Init(); err != nil {
		return err
	}
	if err := termbox.Clear(0, 0); err != nil {
		return err
	}

	return termbox.Flush()
}

// TermKeyboard types termbox key events into a virtual keyboard.
type TermKeyboard struct {
	*VirtualKeyboard
}

func NewTermKeyboard(event chan<- termbox.Event) *TermKeyboard {
	k := &TermKeyboard{NewVirtualKeyboard()}
	go k.receiveEvents(event)
	return k
}

func (k *TermKeyboard) receiveEvents(event chan<- termbox.Event) {
	for {
		e := termbox.PollEvent()
		if e.Type == termbox.EventInterrupt {
			event <- e
			return
		} else if e.Type != termbox.EventKey {
			continue
		}
		switch {
		case e.Ch == QuitKey:
			event <- e
			return
		case e.Ch != 0 && e.Ch < 0x80:
			k.Type(byte(e.Ch))
		case e.Ch == 0 && e.Key <= 0x7f:
			// Control keys arrive as their ASCII code.
			k.Type(byte(e.Key))
		}
	}
}
