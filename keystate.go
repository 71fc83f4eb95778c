package mm5740

// KeyState marks the keys whose press has been reported and not yet
// released.
type KeyState [KeyCount]bool

func (k *KeyState) IsReported(sc Scancode) bool { return k[sc] }
func (k *KeyState) MarkReported(sc Scancode)    { k[sc] = true }
func (k *KeyState) Clear(sc Scancode)           { k[sc] = false }

func (k *KeyState) Reset() {
	for i := range k {
		k[i] = false
	}
}

// Any reports whether at least one key is held.
func (k *KeyState) Any() bool {
	for _, down := range k {
		if down {
			return true
		}
	}
	return false
}

// Held lists the held keys in scan order.
func (k *KeyState) Held() []Scancode {
	var held []Scancode
	for i, down := range k {
		if down {
			held = append(held, Scancode(i))
		}
	}
	return held
}
