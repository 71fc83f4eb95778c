package mm5740

import "fmt"

// ByteName renders an output byte for display: control codes as ^X, space
// as SP and rubout as DEL.
func ByteName(b byte) string {
	switch {
	case b < 0x20:
		return "^" + string(rune('@'+b))
	case b == ' ':
		return "SP"
	case b == 0x7f:
		return "DEL"
	case b > 0x7f:
		return fmt.Sprintf("$%02X", b)
	default:
		return string(rune(b))
	}
}
