// Package main runs the MM5740 encoder against a terminal or real hardware.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/Grazfather/mm5740"
	"github.com/jroimartin/gocui"
	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrogolib/buildinfo"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Scan period for the emulated front ends. Terminals send their own key
// repeats as characters, so these front ends leave the repeat line low.
const scanPeriod = 2 * time.Millisecond

type optionFlags struct {
	ui    string
	data  string
	quiet bool
}

func main() {
	options := readArguments()

	if !options.quiet {
		printBanner()
	}

	var err error
	switch options.ui {
	case "gocui":
		err = runGocui()
	case "term":
		err = runTerm()
	case "gpio":
		err = runGPIO(options)
	default:
		err = fmt.Errorf("unsupported ui '%s'", options.ui)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("running encoder: %w", err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.StringVar(&options.ui, "ui", "gocui", "front end: gocui, term or gpio")
	flags.StringVar(&options.data, "data", "", "comma separated pin names for data bits B1..B8 (gpio only)")
	flags.BoolVar(&options.quiet, "q", false, "do not print the banner")

	if err := flags.Parse(os.Args[1:]); err != nil || flags.NArg() != 0 {
		printBanner()
		fmt.Printf("usage: mm5740 [options]\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	return options
}

func printBanner() {
	fmt.Println("[------------------------------------]")
	fmt.Println("[ mm5740 - keyboard encoder emulator ]")
	fmt.Printf("[------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func requireTerminal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal, use mm5740-monitor instead")
	}
	return nil
}

// scanLoop plays typed keys into the encoder, one step per tick, until ctx
// is done.
func scanLoop(ctx context.Context, enc *mm5740.Encoder, k *mm5740.VirtualKeyboard) {
	tick := time.NewTicker(scanPeriod)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			k.Step(enc)
		}
	}
}

func layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	v, err := g.SetView("output", 0, 0, maxX-1, maxY-1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	if err == gocui.ErrUnknownView {
		v.Title = "MM5740 output (^Q to quit)"
		v.Wrap = true
		v.Autoscroll = true
	}
	return nil
}

func runGocui() error {
	if err := requireTerminal(); err != nil {
		return err
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}
	defer g.Close()

	g.SetManagerFunc(layout)
	// HACK: Need to call layout once to create the views
	if err := layout(g); err != nil {
		return err
	}
	v, err := g.View("output")
	if err != nil {
		log.Panicln(err)
	}
	if _, err := g.SetCurrentView(v.Name()); err != nil {
		return err
	}

	k, err := mm5740.NewGocuiKeyboard(g, v)
	if err != nil {
		return err
	}
	r := mm5740.NewGocuiRenderer(g, v)
	bus := &mm5740.MemBus{OnPulse: r.Render}
	enc := mm5740.New(k.Matrix, k.Lines, bus)
	enc.Reset()

	if err := g.SetKeybinding("", gocui.KeyCtrlQ, gocui.ModNone,
		func(g *gocui.Gui, v *gocui.View) error { return gocui.ErrQuit }); err != nil {
		log.Panicln(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scanLoop(ctx, enc, k.VirtualKeyboard)

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func runTerm() error {
	if err := requireTerminal(); err != nil {
		return err
	}

	t, err := mm5740.NewTerminal()
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer t.Close()

	events := make(chan termbox.Event, 1)
	k := mm5740.NewTermKeyboard(events)
	bus := &mm5740.MemBus{OnPulse: t.Render}
	enc := mm5740.New(k.Matrix, k.Lines, bus)
	enc.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scanLoop(ctx, enc, k.VirtualKeyboard)

	<-events
	return nil
}

func runGPIO(options optionFlags) error {
	pins := mm5740.DefaultPins()
	if options.data != "" {
		names := strings.Split(options.data, ",")
		if len(names) != len(pins.Data) {
			return fmt.Errorf("need %d data pins, got %d", len(pins.Data), len(names))
		}
		for i, name := range names {
			pins.Data[i] = strings.TrimSpace(name)
		}
	}

	board, err := mm5740.OpenGPIO(pins)
	if err != nil {
		return fmt.Errorf("opening gpio: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	enc := mm5740.New(board, board, board)
	enc.Reset()
	err = enc.Run(ctx)
	scanErr := board.Err()
	if closeErr := board.Close(); closeErr != nil {
		return fmt.Errorf("releasing pins: %w", closeErr)
	}
	if scanErr != nil {
		return fmt.Errorf("driving pins: %w", scanErr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
