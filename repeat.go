package mm5740

// RepeatDetector remembers the last level of the repeat clock line and
// reports its high to low transitions.
type RepeatDetector struct {
	last bool
}

// DetectEdge returns true when level is low and the previous level was high.
// The level is stored on every call.
func (r *RepeatDetector) DetectEdge(level bool) bool {
	edge := r.last && !level
	r.last = level
	return edge
}

func (r *RepeatDetector) Level() bool { return r.last }

func (r *RepeatDetector) Reset() { r.last = false }
