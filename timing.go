package mm5740

import "time"

const (
	SettleDelay     = 50 * time.Microsecond // column drive to row read
	SampleInterval  = 10 * time.Microsecond
	DebounceSamples = 200 // 2ms window at SampleInterval
	StrobeTime      = 50 * time.Microsecond
)

// Timing groups the fixed waits of a scan cycle.
type Timing struct {
	Settle          time.Duration
	SampleInterval  time.Duration
	DebounceSamples int
	Strobe          time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		Settle:          SettleDelay,
		SampleInterval:  SampleInterval,
		DebounceSamples: DebounceSamples,
		Strobe:          StrobeTime,
	}
}

// Delay blocks for the given duration. Waits always run to completion.
type Delay func(time.Duration)

// BusyWait spins on the monotonic clock until d has elapsed.
func BusyWait(d time.Duration) {
	if d <= 0 {
		return
	}
	start := time.Now()
	for time.Since(start) < d {
	}
}

func NoDelay(time.Duration) {}
