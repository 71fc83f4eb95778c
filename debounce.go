package mm5740

import "time"

// Debouncer confirms that a row seen as pressed on the enabled column stays
// pressed.
type Debouncer interface {
	Confirm(col, row int) bool
}

// SampleDebouncer re-reads the rows of the enabled column Samples times,
// Interval apart, and gives up on the first sample where the row is released.
type SampleDebouncer struct {
	Matrix   Matrix
	Samples  int
	Interval time.Duration
	Wait     Delay
}

func NewSampleDebouncer(m Matrix, t Timing, wait Delay) *SampleDebouncer {
	return &SampleDebouncer{
		Matrix:   m,
		Samples:  t.DebounceSamples,
		Interval: t.SampleInterval,
		Wait:     wait,
	}
}

// Confirm does not touch the column drive: col must already be enabled.
func (d *SampleDebouncer) Confirm(col, row int) bool {
	for i := 0; i < d.Samples; i++ {
		d.Wait(d.Interval)
		if !d.Matrix.ReadRows().Pressed(row) {
			return false
		}
	}
	return true
}
