package trace

import (
	"github.com/ezrec/vfdtap/bus"
	"github.com/ezrec/vfdtap/display"
	"github.com/ezrec/vfdtap/segment"
)

const MAX_HIGHLIGHTS = bus.SLOT_COUNT - bus.HIGHLIGHT_SLOT

var separatorCodes = map[byte]uint32{
	'.': 2,
	':': 3,
	',': 6,
	';': 7,
}

// unitBits are the slot 0 bits for each unit annunciator.
var unitBits = [display.UNIT_COUNT]uint32{
	display.UNIT_M:    0x1 << 8,
	display.UNIT_HZ:   0x2 << 8,
	display.UNIT_U:    0x1 << 16,
	display.UNIT_S:    0x2 << 16,
	display.UNIT_GATE: 0x4 << 16,
}

// Frame describes what one scan of the display shows.
type Frame struct {
	Text       string // Right aligned; separators attach to the cell before them.
	Labels     [bus.GATE_COUNT]bool
	Units      [display.UNIT_COUNT]bool
	Highlights []int // Positions, at most MAX_HIGHLIGHTS.
}

type cell struct {
	char byte
	sep  uint32
}

// cells splits text into display cells, left to right.
func cells(text string) (out []cell) {
	for n := range len(text) {
		c := text[n]
		sep, is_sep := separatorCodes[c]
		if !is_sep {
			out = append(out, cell{char: c})
			continue
		}
		if len(out) == 0 || out[len(out)-1].sep != 0 {
			out = append(out, cell{char: ' '})
		}
		out[len(out)-1].sep = sep
	}
	return
}

// Words encodes the frame as the bus would scan it, in FRAME_SEQUENCE order.
func (fr *Frame) Words() (words [bus.SLOT_COUNT]bus.RawWord, err error) {
	var cells_at [bus.GATE_COUNT]uint32

	text := cells(fr.Text)
	if len(text) > bus.GATE_COUNT {
		err = ErrFrameTooLong
		return
	}

	for n, ce := range text {
		pos := len(text) - 1 - n
		if pos == 0 && ce.sep != 0 {
			err = ErrFrameSeparator
			return
		}
		code, ok := segment.Encode(ce.char)
		if !ok {
			err = ErrFrameChar(ce.char)
			return
		}
		cells_at[pos] = uint32(code) | ce.sep<<16
	}

	// Unused cells on the left stay blank, which is pattern 0.
	for n, label := range fr.Labels {
		if label {
			cells_at[n] |= bus.LABEL_MASK
		}
	}

	for n, unit := range fr.Units {
		if unit {
			cells_at[0] |= unitBits[n]
		}
	}

	if len(fr.Highlights) > MAX_HIGHLIGHTS {
		err = ErrHighlightFull
		return
	}

	var slots [bus.SLOT_COUNT]bus.RawWord
	for n := range bus.GATE_COUNT {
		slots[n] = bus.RawWord(uint32(1)<<(20+n) | cells_at[n])
	}
	for n := range MAX_HIGHLIGHTS {
		slot := bus.HIGHLIGHT_SLOT + n
		if n >= len(fr.Highlights) {
			slots[slot] = bus.HIGHLIGHT_NONE
			continue
		}
		hl := fr.Highlights[n]
		if hl < 0 || hl >= bus.GATE_COUNT {
			err = ErrPosition
			return
		}
		// A highlight needs some payload; a blank cell lights one bit.
		payload := cells_at[hl] & 0xffff
		if payload == 0 {
			payload = 1
		}
		slots[slot] = bus.RawWord(uint32(1)<<(20+hl) | payload)
	}

	for n, slot := range bus.FRAME_SEQUENCE {
		words[n] = slots[slot]
	}

	return
}
