// Package main runs the MM5740 encoder in a window, scanning the host
// keyboard as if it were the key matrix.
package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"github.com/Grazfather/mm5740"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const (
	screenWidth  = 640
	screenHeight = 400
	lineHeight   = 14
	columns      = screenWidth / 7

	repeatPeriod = 66 * time.Millisecond
)

// hostKeys maps host keys to the character printed on the key cap. Each one
// must exist in the unshifted region of the key ROM.
var hostKeys = map[ebiten.Key]byte{
	ebiten.Key0: '0', ebiten.Key1: '1', ebiten.Key2: '2', ebiten.Key3: '3', ebiten.Key4: '4',
	ebiten.Key5: '5', ebiten.Key6: '6', ebiten.Key7: '7', ebiten.Key8: '8', ebiten.Key9: '9',
	ebiten.KeyA: 'A', ebiten.KeyB: 'B', ebiten.KeyC: 'C', ebiten.KeyD: 'D', ebiten.KeyE: 'E',
	ebiten.KeyF: 'F', ebiten.KeyG: 'G', ebiten.KeyH: 'H', ebiten.KeyI: 'I', ebiten.KeyJ: 'J',
	ebiten.KeyK: 'K', ebiten.KeyL: 'L', ebiten.KeyM: 'M', ebiten.KeyN: 'N', ebiten.KeyO: 'O',
	ebiten.KeyP: 'P', ebiten.KeyQ: 'Q', ebiten.KeyR: 'R', ebiten.KeyS: 'S', ebiten.KeyT: 'T',
	ebiten.KeyU: 'U', ebiten.KeyV: 'V', ebiten.KeyW: 'W', ebiten.KeyX: 'X', ebiten.KeyY: 'Y',
	ebiten.KeyZ:         'Z',
	ebiten.KeyMinus:     '-',
	ebiten.KeySemicolon: ';',
	ebiten.KeyQuote:     ':',
	ebiten.KeyComma:     ',',
	ebiten.KeyPeriod:    '.',
	ebiten.KeySlash:     '/',
	ebiten.KeySpace:     ' ',
	ebiten.KeyEnter:     0x0d,
	ebiten.KeyBackspace: 0x08,
	ebiten.KeyTab:       0x09,
	ebiten.KeyEscape:    0x1b,
	ebiten.KeyDelete:    0x7f,
}

type game struct {
	kb     *mm5740.VirtualKeyboard
	matrix *mm5740.MemMatrix
	lines  *mm5740.MemLines
	enc    *mm5740.Encoder
	keys   map[ebiten.Key]mm5740.Scancode

	// stopRepeat is set while the repeat clock runs.
	stopRepeat context.CancelFunc

	clipboardOK   bool
	clipboardInit bool

	output []string
	last   byte
}

func newGame() *game {
	kb := mm5740.NewVirtualKeyboard()
	g := &game{
		kb:     kb,
		matrix: kb.Matrix,
		lines:  kb.Lines,
		keys:   make(map[ebiten.Key]mm5740.Scancode),
		output: []string{""},
	}
	for key, c := range hostKeys {
		sc, mod, ok := mm5740.Find(c)
		if ok && mod == mm5740.ModNone {
			g.keys[key] = sc
		}
	}
	bus := &mm5740.MemBus{OnPulse: g.print}
	g.enc = mm5740.New(g.matrix, g.lines, bus)
	g.enc.Reset()
	return g
}

func (g *game) print(b byte) {
	g.last = b
	n := len(g.output) - 1
	switch b {
	case '\r':
		g.output = append(g.output, "")
	case 0x08:
		if l := g.output[n]; l != "" {
			g.output[n] = l[:len(l)-1]
		}
	default:
		s := string(rune(b))
		if b < 0x20 || b >= 0x7f {
			s = "<" + mm5740.ByteName(b) + ">"
		}
		if len(g.output[n])+len(s) > columns {
			g.output = append(g.output, "")
			n++
		}
		g.output[n] += s
	}
	if keep := screenHeight/lineHeight - 2; len(g.output) > keep {
		g.output = g.output[len(g.output)-keep:]
	}
}

func (g *game) readClipboard() {
	if !g.clipboardInit {
		g.clipboardInit = true
		g.clipboardOK = clipboard.Init() == nil
	}
	if !g.clipboardOK {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	data = []byte(strings.ReplaceAll(string(data), "\r\n", "\r"))
	data = []byte(strings.ReplaceAll(string(data), "\n", "\r"))
	for _, b := range data {
		if !g.kb.Type(b) && g.kb.Pending() >= mm5740.QueueSize {
			return
		}
	}
}

func (g *game) toggleRepeat() {
	if g.stopRepeat != nil {
		g.stopRepeat()
		g.stopRepeat = nil
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.stopRepeat = cancel
	go g.lines.Clock(ctx, repeatPeriod)
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.toggleRepeat()
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.readClipboard()
	}

	// Pasted keys are down for a single scan, so they skip the repeat check.
	if g.kb.Next() {
		g.enc.Scan()
		return nil
	}

	g.lines.SetShift(shift)
	g.lines.SetControl(ctrl)
	var down [mm5740.KeyCount]bool
	for key, sc := range g.keys {
		if ebiten.IsKeyPressed(key) {
			down[sc] = true
		}
	}
	for sc, d := range down {
		if d {
			g.matrix.Press(mm5740.Scancode(sc))
		} else {
			g.matrix.Release(mm5740.Scancode(sc))
		}
	}
	g.enc.Cycle()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	face := basicfont.Face7x13
	green := color.RGBA{0x33, 0xff, 0x33, 0xff}
	for i, line := range g.output {
		text.Draw(screen, line, face, 0, (i+1)*lineHeight, green)
	}

	repeat := "off"
	if g.stopRepeat != nil {
		repeat = "on"
	}
	keys := g.enc.Keys()
	status := fmt.Sprintf("bus 0x%02X %-4s  held %-5v shift %-5v ctrl %-5v  repeat %s (F9)  quit F10",
		g.last, mm5740.ByteName(g.last), keys.Any(), g.lines.Shift(), g.lines.Control(), repeat)
	text.Draw(screen, status, face, 0, screenHeight-4, color.White)
}

func (g *game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("MM5740")
	if err := ebiten.RunGame(newGame()); err != nil && err != ebiten.Termination {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
