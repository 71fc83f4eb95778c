package mm5740

import (
	"fmt"

	"github.com/jroimartin/gocui"
)

type gocuiKeyboard struct {
	*VirtualKeyboard
}

// NewGocuiKeyboard binds every key the encoder can produce on view to a
// virtual keyboard. Ctrl-Q is left for quitting.
func NewGocuiKeyboard(g *gocui.Gui, view *gocui.View) (*gocuiKeyboard, error) {
	k := &gocuiKeyboard{NewVirtualKeyboard()}

	typeByte := func(b byte) func(*gocui.Gui, *gocui.View) error {
		return func(g *gocui.Gui, v *gocui.View) error {
			k.Type(b)
			return nil
		}
	}

	for c := 0; c < 0x80; c++ {
		var key interface{}
		switch {
		case c == int(gocui.KeyCtrlQ) || c == QuitKey:
			continue
		case c <= 0x20 || c == 0x7f:
			// Control keys, space and rubout come in as keys, not runes.
			key = gocui.Key(c)
		default:
			key = rune(c)
		}
		if err := g.SetKeybinding(view.Name(), key, gocui.ModNone, typeByte(byte(c))); err != nil {
			return nil, fmt.Errorf("binding key %s: %w", ByteName(byte(c)), err)
		}
	}
	return k, nil
}

type gocuiRenderer struct {
	g    *gocui.Gui
	view *gocui.View
}

func NewGocuiRenderer(g *gocui.Gui, view *gocui.View) *gocuiRenderer {
	return &gocuiRenderer{g: g, view: view}
}

// Render may be called from the scanning goroutine; the write is handed to
// the gocui main loop.
func (d *gocuiRenderer) Render(b byte) {
	d.g.Update(func(g *gocui.Gui) error {
		if b == '\r' {
			_, err := fmt.Fprintln(d.view)
			return err
		}
		_, err := fmt.Fprint(d.view, printable(b))
		return err
	})
}
