package mm5740

import "fmt"

// Modifier selects one of the four regions of the key ROM. Bit 0 is the shift
// line and bit 1 the control line.
type Modifier uint8

const (
	ModNone Modifier = iota
	ModShift
	ModControl
	ModShiftControl
)

// ModifierFrom combines the live shift and control line levels.
func ModifierFrom(shift, control bool) Modifier {
	var m Modifier
	if shift {
		m |= ModShift
	}
	if control {
		m |= ModControl
	}
	return m
}

func (m Modifier) Shift() bool   { return m&ModShift != 0 }
func (m Modifier) Control() bool { return m&ModControl != 0 }

func (m Modifier) String() string {
	switch m {
	case ModNone:
		return "none"
	case ModShift:
		return "shift"
	case ModControl:
		return "control"
	case ModShiftControl:
		return "shift+control"
	default:
		return fmt.Sprintf("Modifier(%d)", uint8(m))
	}
}

// Region offsets inside keyROM.
const (
	shiftOffset   = KeyCount
	controlOffset = 2 * KeyCount
)

// keyROM holds one byte per scancode for each modifier region, in the order
// unshifted, shifted, control, shift+control. Each line is one column, rows
// Y1 through Y10 left to right.
var keyROM = [4 * KeyCount]byte{
	// Unshifted
	'8', '4', '5', '1', '2', '3', '0', '6', '9', '7',
	0x0c, 0x0d, 0x1c, 0x1d, 0x0b, 0x0e, 0x20, 0x09, 0x08, '-',
	'0', 0x0a, 'P', 0x7f, ';', '.', '/', 'P', 'O', ':',
	'9', 'I', 'O', 'K', 'L', ',', '.', 'L', 'K', '8',
	'6', 'U', 'Y', 'J', 'H', 'M', 'N', 'M', 'N', '7',
	'5', 'R', 'T', 'F', 'G', 'V', 'B', 0x18, 0x19, '4',
	0x12, 'E', 0x13, 'D', 0x14, 'C', 0x15, 0x16, 0x17, '3',
	0x05, 'W', 0x06, 'S', 0x07, 'X', 0x0f, 0x10, 0x11, '2',
	0x00, 'Q', 0x1b, 'A', 0x01, 'Z', 0x02, 0x03, 0x04, '1',

	// Shifted
	'8', '4', '5', '1', '2', '3', '0', '6', '9', '7',
	0x0c, 0x0d, 0x1c, 0x1d, 0x0b, 0x0e, 0x20, 0x09, 0x08, '=',
	'0', 0x0a, '@', 0x7f, '+', '.', '?', 'P', 'O', '*',
	')', 'I', '_', '[', 0x5c, '<', '>', 'L', 'K', '(',
	'&', 'U', 'Y', 'J', 'H', ']', '^', 'M', 'N', 0x27,
	'%', 'R', 'T', 'F', 'G', 'V', 'B', 0x18, 0x19, '$',
	0x12, 'E', 0x13, 'D', 0x14, 'C', 0x15, 0x16, 0x17, '#',
	0x05, 'W', 0x06, 'S', 0x07, 'X', 0x0f, 0x10, 0x11, 0x22,
	0x00, 'Q', 0x1b, 'A', 0x01, 'Z', 0x02, 0x03, 0x04, '!',

	// Control
	'8', '4', '5', '1', '2', '3', '0', '6', '9', '7',
	0x0c, 0x0d, 0x1c, 0x1d, 0x0b, 0x0e, 0x20, 0x09, 0x08, '-',
	'0', 0x0a, 'P', 0x7f, ';', '.', '/', 0x10, 0x0f, ':',
	'9', 0x09, 0x0f, 0x0b, 0x0c, ',', '.', 0x0c, 0x0b, '8',
	'6', 0x15, 0x19, 0x0a, 0x08, 0x0d, 0x0e, 0x0d, 0x0e, '7',
	'5', 0x12, 0x14, 0x06, 0x07, 0x16, 0x02, 0x18, 0x19, '4',
	0x12, 0x05, 0x13, 0x04, 0x14, 0x03, 0x15, 0x16, 0x17, '3',
	0x05, 0x17, 0x06, 0x13, 0x07, 0x18, 0x0f, 0x10, 0x11, '2',
	0x00, 0x11, 0x1b, 0x01, 0x01, 0x1a, 0x02, 0x03, 0x04, '1',

	// Shift + Control
	'8', '4', '5', '1', '2', '3', '0', '6', '9', '7',
	0x0c, 0x0d, 0x1c, 0x1d, 0x0b, 0x0e, 0x20, 0x09, 0x08, '=',
	'0', 0x0a, 0x00, 0x7f, '+', '.', '?', 0x10, 0x0f, '*',
	')', 0x09, 0x1f, 0x1b, 0x1c, '<', '>', 0x0c, 0x0b, '(',
	'&', 0x15, 0x19, 0x0a, 0x08, 0x1d, 0x1e, 0x0d, 0x0e, 0x27,
	'%', 0x12, 0x14, 0x06, 0x07, 0x16, 0x02, 0x18, 0x19, '$',
	0x12, 0x05, 0x13, 0x04, 0x14, 0x03, 0x15, 0x16, 0x17, '#',
	0x05, 0x17, 0x06, 0x13, 0x07, 0x18, 0x0f, 0x10, 0x11, 0x22,
	0x00, 0x11, 0x1b, 0x01, 0x01, 0x1a, 0x02, 0x03, 0x04, '!',
}

func romAddress(sc Scancode, m Modifier) int {
	addr := int(sc)
	if m.Shift() {
		addr += shiftOffset
	}
	if m.Control() {
		addr += controlOffset
	}
	return addr
}

// Lookup returns the output byte for a scancode under a modifier state. It is
// defined for every valid scancode and modifier.
func Lookup(sc Scancode, m Modifier) byte {
	return keyROM[romAddress(sc, m&ModShiftControl)]
}

// Find returns a key position and modifier state that produce b, preferring
// the unmodified region and then the lowest scancode.
func Find(b byte) (Scancode, Modifier, bool) {
	for m := ModNone; m <= ModShiftControl; m++ {
		for sc := Scancode(0); sc < KeyCount; sc++ {
			if Lookup(sc, m) == b {
				return sc, m, true
			}
		}
	}
	return 0, ModNone, false
}
