package mm5740

import "sync"

// QueueSize bounds the characters waiting to be typed.
const QueueSize = 4096

type queuedKey struct {
	sc  Scancode
	mod Modifier
}

// VirtualKeyboard turns characters into key presses on an in-memory matrix.
// Typed characters are queued and played back one key at a time by Next, so
// a burst comes out in order with the modifiers of each character.
type VirtualKeyboard struct {
	Matrix *MemMatrix
	Lines  *MemLines

	mu      sync.Mutex
	queue   []queuedKey
	current Scancode
	down    bool
}

func NewVirtualKeyboard() *VirtualKeyboard {
	return &VirtualKeyboard{
		Matrix: NewMemMatrix(),
		Lines:  &MemLines{},
	}
}

// Type queues the key that produces b. Lower case letters use their upper
// case key. It returns false if no key produces b or the queue is full.
func (k *VirtualKeyboard) Type(b byte) bool {
	sc, mod, ok := KeyFor(b)
	if !ok {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.queue) >= QueueSize {
		return false
	}
	k.queue = append(k.queue, queuedKey{sc: sc, mod: mod})
	return true
}

// Next moves the playback one step and must run before every scan. A queued
// key is pressed with its modifiers for one scan and released for the next.
// It returns true when it pressed or released a key.
func (k *VirtualKeyboard) Next() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.down {
		k.Up(k.current)
		k.Lines.SetShift(false)
		k.Lines.SetControl(false)
		k.down = false
		return true
	}
	if len(k.queue) == 0 {
		return false
	}
	key := k.queue[0]
	k.queue = k.queue[1:]
	k.Hold(key.sc, key.mod)
	k.current = key.sc
	k.down = true
	return true
}

// Step runs Next and then one cycle of enc, or only a scan while a queued
// key is being played back.
func (k *VirtualKeyboard) Step(enc *Encoder) {
	if k.Next() {
		enc.Scan()
		return
	}
	enc.Cycle()
}

// Pending counts the characters not yet pressed.
func (k *VirtualKeyboard) Pending() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.queue)
}

// KeyFor is Find with lower case letters folded onto their upper case key.
func KeyFor(b byte) (Scancode, Modifier, bool) {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	return Find(b)
}

// Hold presses sc and sets the modifier lines until Up is called.
func (k *VirtualKeyboard) Hold(sc Scancode, mod Modifier) {
	k.Lines.SetShift(mod.Shift())
	k.Lines.SetControl(mod.Control())
	k.Matrix.Press(sc)
}

func (k *VirtualKeyboard) Up(sc Scancode) {
	k.Matrix.Release(sc)
}
