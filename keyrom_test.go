package mm5740

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestModifierFrom(t *testing.T) {
	cases := []struct {
		shift, control bool
		want           Modifier
	}{
		{false, false, ModNone},
		{true, false, ModShift},
		{false, true, ModControl},
		{true, true, ModShiftControl},
	}

	for i, c := range cases {
		m := ModifierFrom(c.shift, c.control)
		if m != c.want {
			t.Errorf("Case %d expected %s, got %s\n", i, c.want, m)
		}
		assert.Equal(t, c.shift, m.Shift())
		assert.Equal(t, c.control, m.Control())
	}
}

func TestLookupRegions(t *testing.T) {
	for sc := Scancode(0); sc < KeyCount; sc++ {
		assert.Equal(t, keyROM[sc], Lookup(sc, ModNone))
		assert.Equal(t, keyROM[int(sc)+90], Lookup(sc, ModShift))
		assert.Equal(t, keyROM[int(sc)+180], Lookup(sc, ModControl))
		assert.Equal(t, keyROM[int(sc)+270], Lookup(sc, ModShiftControl))
	}
}

func TestLookup(t *testing.T) {
	cases := []struct {
		col, row int
		mod      Modifier
		want     byte
	}{
		{0, 0, ModNone, '8'},
		{0, 0, ModShift, '8'},
		{0, 0, ModControl, '8'},
		{0, 0, ModShiftControl, '8'},
		{1, 9, ModNone, '-'},
		{1, 9, ModShift, '='},
		{1, 6, ModNone, ' '},
		{2, 2, ModNone, 'P'},
		{2, 2, ModShift, '@'},
		{2, 2, ModShiftControl, 0x00},
		{2, 3, ModNone, 0x7f},
		{3, 4, ModShift, '\\'},
		{3, 2, ModShiftControl, 0x1f},
		{4, 9, ModShift, '\''},
		{7, 9, ModShift, '"'},
		{8, 1, ModNone, 'Q'},
		{8, 1, ModControl, 0x11},
		{8, 3, ModControl, 0x01},
		{8, 9, ModShift, '!'},
	}

	for i, c := range cases {
		got := Lookup(NewScancode(c.col, c.row), c.mod)
		if got != c.want {
			t.Errorf("Case %d expected 0x%02X, got 0x%02X\n", i, c.want, got)
		}
	}
}

func TestLookupIsTotal(t *testing.T) {
	count := 0
	for sc := Scancode(0); sc < KeyCount; sc++ {
		for m := ModNone; m <= ModShiftControl; m++ {
			_ = Lookup(sc, m)
			count++
		}
	}
	assert.Equal(t, 360, count)
	assert.Equal(t, 360, len(keyROM))
}

func TestFind(t *testing.T) {
	t.Run("every found byte looks up to itself", func(t *testing.T) {
		for b := 0; b < 0x100; b++ {
			sc, m, ok := Find(byte(b))
			if !ok {
				continue
			}
			assert.Equal(t, byte(b), Lookup(sc, m))
		}
	})

	t.Run("prefers unshifted region", func(t *testing.T) {
		sc, m, ok := Find('8')
		assert.True(t, ok)
		assert.Equal(t, Scancode(0), sc)
		assert.Equal(t, ModNone, m)
	})

	t.Run("shifted only characters", func(t *testing.T) {
		sc, m, ok := Find('!')
		assert.True(t, ok)
		assert.Equal(t, NewScancode(8, 9), sc)
		assert.Equal(t, ModShift, m)
	})

	t.Run("missing characters", func(t *testing.T) {
		_, _, ok := Find('a')
		assert.False(t, ok)
		_, _, ok = Find('`')
		assert.False(t, ok)
	})
}

func TestScancode(t *testing.T) {
	sc := NewScancode(3, 7)
	assert.Equal(t, Scancode(37), sc)
	assert.Equal(t, 3, sc.Column())
	assert.Equal(t, 7, sc.Row())
	assert.True(t, sc.Valid())
	assert.False(t, Scancode(KeyCount).Valid())
	assert.Equal(t, "37 (X4 Y8)", sc.String())
}

func TestRowMask(t *testing.T) {
	var r RowMask
	r = r.With(0).With(9)
	assert.True(t, r.Pressed(0))
	assert.True(t, r.Pressed(9))
	assert.False(t, r.Pressed(5))
	assert.Equal(t, RowMask(0x201), r)
}

func TestByteName(t *testing.T) {
	cases := []struct {
		b    byte
		want string
	}{
		{'A', "A"},
		{0x00, "^@"},
		{0x0d, "^M"},
		{0x1b, "^["},
		{' ', "SP"},
		{0x7f, "DEL"},
		{0x80, "$80"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ByteName(c.b))
	}
}
