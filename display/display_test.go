package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vfdtap/bus"
	"github.com/ezrec/vfdtap/segment"
)

// wordAt builds the word for position pos showing c.
func wordAt(pos int, c byte) bus.RawWord {
	code, ok := segment.Encode(c)
	if !ok {
		panic(c)
	}
	return bus.RawWord(uint32(1)<<(20+pos) | uint32(code))
}

// snapshotOf lays out text, left to right, over the 12 positions.
func snapshotOf(text string) (snap bus.Snapshot) {
	for n := range POSITIONS {
		pos := POSITIONS - 1 - n
		c := byte(' ')
		if n < len(text) {
			c = text[n]
		}
		snap.Slots[pos] = wordAt(pos, c)
	}
	for n := bus.HIGHLIGHT_SLOT; n < bus.SLOT_COUNT; n++ {
		snap.Slots[n] = bus.HIGHLIGHT_NONE
	}
	return
}

func textOf(disp *Display) string {
	var out []byte
	for n := POSITIONS - 1; n >= 0; n-- {
		out = append(out, disp.Text[n])
	}
	return string(out)
}

func TestDisplayInitial(t *testing.T) {
	assert := assert.New(t)

	disp := NewDisplay(nil)
	disp.Update(bus.Snapshot{Slots: bus.INITIAL_SLOTS})
	assert.Equal(CHANGE_TEXT, disp.Change)
	assert.Equal("---         ", textOf(disp))

	disp.Combine()
	assert.Equal(CHANGE_TEXT|CHANGE_TEXT_COMB, disp.Change)
	assert.Equal("---         ", disp.TextCombined)
	assert.Len(disp.HighlightsCombined, 12)
	assert.Equal("", disp.UnitsCombined)
	assert.Equal("", disp.LabelsCombined)

	// Nothing changed, nothing rebuilt.
	disp.Update(bus.Snapshot{Slots: bus.INITIAL_SLOTS})
	disp.Combine()
	assert.Equal(ChangeMask(0), disp.Change)
}

func TestDisplayText(t *testing.T) {
	assert := assert.New(t)

	disp := NewDisplay(nil)
	snap := snapshotOf("   10000 MHZ")
	snap.Slots[7] |= 2 << 16 // '.' after the "0" at position 7

	disp.Update(snap)
	disp.Combine()
	assert.Equal("   10000 MHZ", textOf(disp))
	assert.Equal(byte('.'), disp.Separators[7])
	assert.Equal("   10.000 MHZ", disp.TextCombined)
	assert.Empty(disp.Decoder.Unknown())
}

func TestDisplaySeparators(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Code uint8
		Sep  byte
	}){
		{0, 0},
		{2, '.'},
		{3, ':'},
		{6, ','},
		{7, ';'},
	}

	for _, tc := range table {
		disp := NewDisplay(nil)
		snap := snapshotOf("123456789012")
		snap.Slots[4] |= bus.RawWord(tc.Code) << 16
		disp.Update(snap)
		assert.Equal(tc.Sep, disp.Separators[4])
		assert.Equal(uint8(0), disp.UnknownSeparator)
	}

	for _, code := range []uint8{1, 4, 5} {
		disp := NewDisplay(nil)
		snap := snapshotOf("123456789012")
		snap.Slots[4] |= bus.RawWord(code) << 16
		disp.Update(snap)
		assert.Equal(byte(0), disp.Separators[4])
		assert.Equal(code, disp.UnknownSeparator)
	}
}

func TestDisplayUnits(t *testing.T) {
	assert := assert.New(t)

	disp := NewDisplay(nil)
	snap := snapshotOf("12")
	disp.Update(snap)
	disp.Combine()

	// M and Hz in the outer bits, u s and Gate in the separator code.
	snap.Slots[0] |= 0x3<<8 | 0x7<<16
	disp.Update(snap)
	assert.Equal(CHANGE_UNITS|CHANGE_GATE, disp.Change)
	assert.Equal([UNIT_COUNT]bool{true, true, true, true, true}, disp.Units)
	assert.Equal(byte(0), disp.Separators[0])

	disp.Combine()
	assert.Equal("MHzus", disp.UnitsCombined)
	assert.Equal(CHANGE_UNITS|CHANGE_GATE|CHANGE_UNITS_COMB, disp.Change)

	// Only the gate annunciator.
	snap.Slots[0] &^= 0x3<<8 | 0x3<<16
	disp.Update(snap)
	assert.Equal(CHANGE_UNITS, disp.Change)
	disp.Combine()
	assert.Equal("", disp.UnitsCombined)
	assert.True(disp.Units[UNIT_GATE])

	snap.Slots[0] = wordAt(0, '0') | 0x1<<8
	disp.Update(snap)
	disp.Combine()
	assert.Equal("M", disp.UnitsCombined)
	assert.True(disp.Change.Has(CHANGE_GATE))
}

func TestDisplayLabelsOnly(t *testing.T) {
	assert := assert.New(t)

	disp := NewDisplay(nil)
	snap := snapshotOf("  1 0000 ")
	disp.Update(snap)
	disp.Combine()
	disp.Update(snap)
	disp.Combine()
	assert.Equal(ChangeMask(0), disp.Change)

	snap.Slots[5] |= bus.LABEL_MASK
	disp.Update(snap)
	assert.Equal(CHANGE_LABELS, disp.Change)

	disp.Combine()
	assert.Equal(CHANGE_LABELS|CHANGE_LABELS_COMB, disp.Change)
	assert.Equal("Time", disp.LabelsCombined)

	snap.Slots[11] |= bus.LABEL_MASK
	snap.Slots[0] |= bus.LABEL_MASK
	disp.Update(snap)
	disp.Combine()
	assert.Equal("Period Time ExtRef", disp.LabelsCombined)
}

func TestDisplayLabelsCapacity(t *testing.T) {
	assert := assert.New(t)

	disp := NewDisplay(nil)
	for n := range disp.Profile.Labels {
		disp.Profile.Labels[n] = "ABCDEFGHIJ"
	}

	snap := snapshotOf("")
	for n := range POSITIONS {
		snap.Slots[n] |= bus.LABEL_MASK
	}
	disp.Update(snap)
	disp.Combine()
	assert.Len(disp.LabelsCombined, LABELS_CAPACITY)
	assert.Equal("ABCDEFGHIJ ABCDEFGHIJ ", disp.LabelsCombined[:22])
}

func TestDisplayHighlights(t *testing.T) {
	assert := assert.New(t)

	disp := NewDisplay(nil)
	snap := snapshotOf("ABCDEFGHIKLM")
	snap.Slots[3] |= 2 << 16 // "I."

	// A highlight field addresses position 4 ("H") with a payload.
	snap.Slots[13] = bus.RawWord(uint32(1)<<(20+4) | 0x8c)
	// A highlight field with nothing but gates highlights nothing.
	snap.Slots[14] = bus.RawWord(uint32(1) << (20 + 9))

	disp.Update(snap)
	assert.Equal(CHANGE_TEXT, disp.Change)
	assert.True(disp.Highlights[4])
	assert.False(disp.Highlights[9])

	disp.Combine()
	assert.Equal("ABCDEFGHI.KLM", disp.TextCombined)
	for n, hl := range disp.HighlightsCombined {
		assert.Equal(n == 7, hl, n)
	}

	// Dropping the highlight is a text change.
	snap.Slots[13] = bus.HIGHLIGHT_NONE
	disp.Update(snap)
	assert.Equal(CHANGE_TEXT, disp.Change)
	assert.False(disp.Highlights[4])
}

func TestDisplayTextCapacity(t *testing.T) {
	assert := assert.New(t)

	disp := NewDisplay(nil)
	snap := snapshotOf("888888888888")
	for n := range POSITIONS {
		snap.Slots[n] |= 7 << 16
	}
	disp.Update(snap)
	disp.Combine()

	assert.Len(disp.TextCombined, TEXT_CAPACITY)
	assert.Len(disp.HighlightsCombined, TEXT_CAPACITY)
	assert.Equal("8;8;8;8;8;8;8;8;8;8;8;8", disp.TextCombined)
}

func TestDisplayUnknownSegments(t *testing.T) {
	assert := assert.New(t)

	disp := NewDisplay(nil)
	snap := snapshotOf("1")
	snap.Slots[10] = bus.RawWord(uint32(1)<<(20+10) | 0x0001)
	disp.Update(snap)
	disp.Combine()
	assert.Equal("1x          ", disp.TextCombined)
	assert.Equal([]uint16{0x0001}, disp.Decoder.Unknown())
}

func TestDisplayNoDisplay(t *testing.T) {
	assert := assert.New(t)

	disp := NewDisplay(nil)
	snap := snapshotOf("  12 5 MHZ")
	snap.Slots[0] |= bus.LABEL_MASK | 0x1<<16
	disp.Update(snap)
	disp.Combine()

	snap.Timeout = true
	disp.Update(snap)
	assert.True(disp.NoDisplayData)
	assert.Equal(CHANGE_ALL, disp.Change)
	assert.Equal(NO_DISPLAY, textOf(disp))
	assert.Equal([POSITIONS]bool{}, disp.Labels)
	assert.Equal([UNIT_COUNT]bool{}, disp.Units)

	disp.Combine()
	assert.Equal(NO_DISPLAY, disp.TextCombined)
	assert.Equal("", disp.UnitsCombined)
	assert.Equal("", disp.LabelsCombined)
	assert.True(disp.Change.Has(CHANGE_TEXT_COMB | CHANGE_UNITS_COMB | CHANGE_LABELS_COMB))

	// Still silent: steady.
	disp.Update(snap)
	assert.Equal(ChangeMask(0), disp.Change)
	assert.Equal(NO_DISPLAY, textOf(disp))

	// Data is back.
	snap.Timeout = false
	disp.Update(snap)
	assert.False(disp.NoDisplayData)
	assert.Equal(CHANGE_ALL, disp.Change)
	disp.Combine()
	assert.Equal("  12 5 MHZ  ", disp.TextCombined)
	assert.Equal("ExtRef", disp.LabelsCombined)
	assert.Equal("u", disp.UnitsCombined)
}

func TestFixZero(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		In  string // left to right
		Out string
	}){
		{"          0N", "          ON"},
		{"         0FF", "         OFF"},
		{"  ON     0FF", "  ON     OFF"},
		{"  0N   10.05", "  ON   10.05"},
		{"    102     ", "    102     "},
		{"0           ", "0           "},
		{"0A          ", "OA          "},
		{"  C0L       ", "  COL       "},
		{"  B00       ", "  BOO       "},
		{"  10N       ", "  10N       "},
		{"   10 dB    ", "   10 dB    "},
		{"           0", "           0"},
		{" 0N         ", " 0N         "},
		{"0N          ", "ON          "},
	}

	for _, tc := range table {
		var text [POSITIONS]byte
		for n := range POSITIONS {
			text[POSITIONS-1-n] = tc.In[n]
		}
		fixZero(&text)
		var out []byte
		for n := POSITIONS - 1; n >= 0; n-- {
			out = append(out, text[n])
		}
		assert.Equal(tc.Out, string(out), tc.In)
	}
}

func TestChangeMaskString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("none", ChangeMask(0).String())
	assert.Equal("text|labels-comb", (CHANGE_TEXT | CHANGE_LABELS_COMB).String())
	assert.Equal("text|labels|units|gate", CHANGE_ALL.String())
}

func TestUnitString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("M", UNIT_M.String())
	assert.Equal("Hz", UNIT_HZ.String())
	assert.Equal("Gate", UNIT_GATE.String())
	assert.Equal("Unit(9)", Unit(9).String())
}
