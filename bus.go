package mm5740

// Bus is the parallel output port and its strobe line.
type Bus interface {
	SetData(b byte)
	SetStrobe(high bool)
}

// Inputs are the lines sampled live by the encoder. Shift and Control are
// read at lookup time, Repeat once per cycle while a key is held.
type Inputs interface {
	Shift() bool
	Control() bool
	Repeat() bool
}
