package mm5740

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// GPIOPins names the pins, as known to gpioreg, wired to each encoder line.
type GPIOPins struct {
	Columns [Columns]string // X1..X9
	Rows    [Rows]string    // Y1..Y10
	Data    [8]string       // B1..B8, least significant bit first
	Strobe  string
	Shift   string
	Control string
	Repeat  string
}

// DefaultPins wires the matrix and control lines to a Raspberry Pi header.
// The header has no room left for the data bus, so Data must be filled in
// with pins from an expander or a larger board.
func DefaultPins() GPIOPins {
	return GPIOPins{
		Columns: [Columns]string{"GPIO4", "GPIO5", "GPIO6", "GPIO7", "GPIO8", "GPIO9", "GPIO10", "GPIO11", "GPIO12"},
		Rows:    [Rows]string{"GPIO13", "GPIO14", "GPIO15", "GPIO16", "GPIO17", "GPIO18", "GPIO19", "GPIO20", "GPIO21", "GPIO22"},
		Strobe:  "GPIO23",
		Shift:   "GPIO24",
		Control: "GPIO25",
		Repeat:  "GPIO26",
	}
}

// GPIOBoard drives a real key matrix and output port through periph.io.
type GPIOBoard struct {
	columns [Columns]gpio.PinIO
	rows    [Rows]gpio.PinIO
	data    [8]gpio.PinIO
	strobe  gpio.PinIO
	shift   gpio.PinIO
	control gpio.PinIO
	repeat  gpio.PinIO

	err error
}

// OpenGPIO initializes the host drivers and sets every line to its rest
// state: columns floating, rows and repeat pulled up, outputs low.
func OpenGPIO(pins GPIOPins) (*GPIOBoard, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initializing host drivers: %w", err)
	}

	b := &GPIOBoard{}
	var err error
	for i, name := range pins.Columns {
		if b.columns[i], err = lookupPin(fmt.Sprintf("column X%d", i+1), name); err != nil {
			return nil, err
		}
		if err = b.columns[i].In(gpio.Float, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("setting up column X%d: %w", i+1, err)
		}
	}
	for i, name := range pins.Rows {
		if b.rows[i], err = lookupPin(fmt.Sprintf("row Y%d", i+1), name); err != nil {
			return nil, err
		}
		if err = b.rows[i].In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("setting up row Y%d: %w", i+1, err)
		}
	}
	for i, name := range pins.Data {
		if b.data[i], err = lookupPin(fmt.Sprintf("data B%d", i+1), name); err != nil {
			return nil, err
		}
		if err = b.data[i].Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("setting up data B%d: %w", i+1, err)
		}
	}

	if b.strobe, err = lookupPin("strobe", pins.Strobe); err != nil {
		return nil, err
	}
	if err = b.strobe.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("setting up strobe: %w", err)
	}
	if b.shift, err = lookupPin("shift", pins.Shift); err != nil {
		return nil, err
	}
	if err = b.shift.In(gpio.Float, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("setting up shift: %w", err)
	}
	if b.control, err = lookupPin("control", pins.Control); err != nil {
		return nil, err
	}
	if err = b.control.In(gpio.Float, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("setting up control: %w", err)
	}
	if b.repeat, err = lookupPin("repeat", pins.Repeat); err != nil {
		return nil, err
	}
	if err = b.repeat.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("setting up repeat: %w", err)
	}
	return b, nil
}

func lookupPin(line, name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, fmt.Errorf("no pin assigned to %s", line)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("unknown pin %q for %s", name, line)
	}
	return p, nil
}

// Err returns the first pin error seen while scanning. The scan itself never
// stops on one.
func (b *GPIOBoard) Err() error {
	return b.err
}

func (b *GPIOBoard) keep(err error) {
	if err != nil && b.err == nil {
		b.err = err
	}
}

// EnableColumn pulls the column low.
func (b *GPIOBoard) EnableColumn(col int) {
	b.keep(b.columns[col].Out(gpio.Low))
}

func (b *GPIOBoard) DisableColumn(col int) {
	b.keep(b.columns[col].In(gpio.Float, gpio.NoEdge))
}

// ReadRows inverts the pulled up row inputs, so a closed switch reads as 1.
func (b *GPIOBoard) ReadRows() RowMask {
	var rows RowMask
	for i, p := range b.rows {
		if p.Read() == gpio.Low {
			rows = rows.With(i)
		}
	}
	return rows
}

func (b *GPIOBoard) SetData(v byte) {
	for i, p := range b.data {
		b.keep(p.Out(gpio.Level(v&(1<<uint(i)) != 0)))
	}
}

func (b *GPIOBoard) SetStrobe(high bool) {
	b.keep(b.strobe.Out(gpio.Level(high)))
}

func (b *GPIOBoard) Shift() bool   { return b.shift.Read() == gpio.High }
func (b *GPIOBoard) Control() bool { return b.control.Read() == gpio.High }
func (b *GPIOBoard) Repeat() bool  { return b.repeat.Read() == gpio.High }

// Close floats every column and drops the outputs. Errors seen while
// scanning stay in Err.
func (b *GPIOBoard) Close() error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}
	for _, p := range b.columns {
		keep(p.In(gpio.Float, gpio.NoEdge))
	}
	keep(b.strobe.Out(gpio.Low))
	for _, p := range b.data {
		keep(p.Out(gpio.Low))
	}
	return first
}
