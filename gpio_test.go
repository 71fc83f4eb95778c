package mm5740

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

type testPins struct {
	columns [Columns]*gpiotest.Pin
	rows    [Rows]*gpiotest.Pin
	data    [8]*gpiotest.Pin
	strobe  *gpiotest.Pin
	shift   *gpiotest.Pin
	control *gpiotest.Pin
	repeat  *gpiotest.Pin
}

func newTestBoard() (*GPIOBoard, *testPins) {
	p := &testPins{
		strobe:  &gpiotest.Pin{N: "strobe"},
		shift:   &gpiotest.Pin{N: "shift"},
		control: &gpiotest.Pin{N: "control"},
		repeat:  &gpiotest.Pin{N: "repeat"},
	}
	b := &GPIOBoard{strobe: p.strobe, shift: p.shift, control: p.control, repeat: p.repeat}
	for i := range p.columns {
		p.columns[i] = &gpiotest.Pin{N: "column"}
		b.columns[i] = p.columns[i]
	}
	for i := range p.rows {
		// Pulled up rows idle high.
		p.rows[i] = &gpiotest.Pin{N: "row", L: gpio.High}
		b.rows[i] = p.rows[i]
	}
	for i := range p.data {
		p.data[i] = &gpiotest.Pin{N: "data"}
		b.data[i] = p.data[i]
	}
	return b, p
}

func (p *testPins) dataByte() byte {
	var v byte
	for i, pin := range p.data {
		if pin.Read() == gpio.High {
			v |= 1 << uint(i)
		}
	}
	return v
}

func TestGPIOReadRows(t *testing.T) {
	b, p := newTestBoard()
	assert.Equal(t, RowMask(0), b.ReadRows())

	p.rows[2].L = gpio.Low
	p.rows[9].L = gpio.Low
	assert.Equal(t, RowMask(0).With(2).With(9), b.ReadRows())
}

func TestGPIOColumns(t *testing.T) {
	b, p := newTestBoard()
	p.columns[4].L = gpio.High

	b.EnableColumn(4)
	assert.Equal(t, gpio.Low, p.columns[4].Read())
	b.DisableColumn(4)
	assert.Equal(t, gpio.Float, p.columns[4].P)
	assert.NoError(t, b.Err())
}

func TestGPIOBus(t *testing.T) {
	b, p := newTestBoard()
	b.SetData(0x51)
	assert.Equal(t, byte(0x51), p.dataByte())
	assert.Equal(t, gpio.High, p.data[0].Read())
	assert.Equal(t, gpio.Low, p.data[1].Read())

	b.SetStrobe(true)
	assert.Equal(t, gpio.High, p.strobe.Read())
	b.SetStrobe(false)
	assert.Equal(t, gpio.Low, p.strobe.Read())

	b.SetData(0xff)
	assert.NoError(t, b.Close())
	assert.Equal(t, byte(0), p.dataByte())
}

func TestGPIOInputs(t *testing.T) {
	b, p := newTestBoard()
	assert.False(t, b.Shift())
	assert.False(t, b.Control())
	assert.False(t, b.Repeat())

	p.shift.L = gpio.High
	p.repeat.L = gpio.High
	assert.True(t, b.Shift())
	assert.False(t, b.Control())
	assert.True(t, b.Repeat())
}

func TestGPIOEncoder(t *testing.T) {
	b, p := newTestBoard()
	enc := New(b, b, b, WithDelay(NoDelay))
	enc.Reset()

	// The test pins are not wired to each other, so a grounded row reads as
	// pressed on every column. The last column scanned wins the bus.
	p.rows[1].L = gpio.Low
	assert.True(t, enc.Scan())
	assert.Equal(t, Lookup(NewScancode(8, 1), ModNone), p.dataByte())
	assert.Equal(t, gpio.Low, p.strobe.Read())
	assert.NoError(t, b.Err())
}

// flakyPin fails its next fails writes.
type flakyPin struct {
	*gpiotest.Pin
	fails int
}

func (p *flakyPin) Out(l gpio.Level) error {
	if p.fails > 0 {
		p.fails--
		return errors.New("pin write failed")
	}
	return p.Pin.Out(l)
}

func TestGPIOErrorsAreKept(t *testing.T) {
	b, p := newTestBoard()
	b.strobe = &flakyPin{Pin: p.strobe, fails: 1}

	b.SetStrobe(true)
	b.SetStrobe(false)
	b.SetData(0x20)
	if b.Err() == nil {
		t.Fatal("expected the failed strobe write to be kept")
	}

	assert.NoError(t, b.Close())
	assert.Equal(t, gpio.Low, p.strobe.Read())
	if b.Err() == nil {
		t.Error("expected Close to leave the scan error in place")
	}
}

func TestLookupPin(t *testing.T) {
	_, err := lookupPin("strobe", "")
	if err == nil {
		t.Error("expected error for an unassigned pin")
	}
	_, err = lookupPin("strobe", "MM5740_NO_SUCH_PIN")
	if err == nil {
		t.Error("expected error for an unknown pin")
	}

	pin := &gpiotest.Pin{N: "MM5740_TEST_STROBE", Num: -1}
	assert.NoError(t, gpioreg.Register(pin))
	defer gpioreg.Unregister(pin.N)
	got, err := lookupPin("strobe", pin.N)
	assert.NoError(t, err)
	assert.Equal(t, pin.N, got.Name())
}

func TestDefaultPins(t *testing.T) {
	pins := DefaultPins()
	seen := make(map[string]bool)
	names := append(append([]string{}, pins.Columns[:]...), pins.Rows[:]...)
	names = append(names, pins.Strobe, pins.Shift, pins.Control, pins.Repeat)
	for _, name := range names {
		assert.False(t, name == "")
		assert.False(t, seen[name])
		seen[name] = true
	}
	assert.Equal(t, "", pins.Data[0])
}
