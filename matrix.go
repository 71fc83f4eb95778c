package mm5740

import "fmt"

const (
	Columns  = 9
	Rows     = 10
	KeyCount = Columns * Rows
)

// Scancode addresses one key position as column*Rows + row.
type Scancode uint8

func NewScancode(col, row int) Scancode {
	return Scancode(col*Rows + row)
}

func (sc Scancode) Column() int { return int(sc) / Rows }
func (sc Scancode) Row() int    { return int(sc) % Rows }
func (sc Scancode) Valid() bool { return sc < KeyCount }

func (sc Scancode) String() string {
	return fmt.Sprintf("%d (X%d Y%d)", uint8(sc), sc.Column()+1, sc.Row()+1)
}

// RowMask has bit n set when row n of the enabled column reads as pressed.
type RowMask uint16

func (r RowMask) Pressed(row int) bool {
	return r&(1<<uint(row)) != 0
}

func (r RowMask) With(row int) RowMask {
	return r | 1<<uint(row)
}

// Matrix drives the column lines and senses the row lines. Only one column
// may be enabled at a time; ReadRows reports the logical (pressed = 1) state
// of the rows for the enabled column.
type Matrix interface {
	EnableColumn(col int)
	DisableColumn(col int)
	ReadRows() RowMask
}
