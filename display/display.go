// Package display turns the bus slot store into renderer neutral display
// state: characters, separators, labels, highlights and units, plus change
// flags and combined strings for renderers that draw whole lines.
//
// Positions are numbered as the hardware scans them, 0 at the right edge
// of the glass and 11 at the left.
package display

import (
	"github.com/ezrec/vfdtap/bus"
	"github.com/ezrec/vfdtap/internal"
	"github.com/ezrec/vfdtap/profile"
	"github.com/ezrec/vfdtap/segment"
)

const (
	POSITIONS = bus.GATE_COUNT // Character positions.

	TEXT_CAPACITY   = 23 // Characters plus separators in TextCombined.
	UNITS_CAPACITY  = 5
	LABELS_CAPACITY = 63

	NO_DISPLAY = "(NO DISPLAY)" // Shown while the bus is silent.
)

// Slot 0 carries the unit annunciators instead of a separator.
const (
	unitUBit    = 0x1 // of the separator code
	unitSBit    = 0x2
	unitGateBit = 0x4
	unitMBit    = 0x1 // of the outer bits
	unitHzBit   = 0x2
)

var separators = map[uint8]byte{
	0: 0,
	2: '.',
	3: ':',
	6: ',',
	7: ';',
}

// State is the decoded content of the display.
type State struct {
	Text       [POSITIONS]byte
	Separators [POSITIONS]byte // '.', ':', ',', ';' or 0.
	Labels     [POSITIONS]bool
	Highlights [POSITIONS]bool
	Units      [UNIT_COUNT]bool
}

// Display holds the latest State, what changed in it, and the combined
// strings built from it. Renderers read it; only Update and Combine write.
type Display struct {
	State

	Change        ChangeMask // Set by Update, combined bits added by Combine.
	NoDisplayData bool       // Bus has been silent for over bus.TIMEOUT_MS.

	UnknownSeparator uint8 // Last separator code with no known glyph.

	TextCombined       string
	HighlightsCombined []bool // One flag per byte of TextCombined.
	UnitsCombined      string // Active units except Gate.
	LabelsCombined     string // Active labels, space separated.

	Profile *profile.Profile
	Decoder segment.Decoder

	prev   State
	text   *internal.Bounded
	units  *internal.Bounded
	labels *internal.Bounded
}

// NewDisplay creates a display naming its annunciators from prof.
// A nil prof uses profile.Default().
func NewDisplay(prof *profile.Profile) (disp *Display) {
	if prof == nil {
		prof = profile.Default()
	}

	disp = &Display{
		Profile:            prof,
		HighlightsCombined: make([]bool, 0, TEXT_CAPACITY),
		text:               internal.NewBounded(TEXT_CAPACITY),
		units:              internal.NewBounded(UNITS_CAPACITY),
		labels:             internal.NewBounded(LABELS_CAPACITY),
	}

	return
}

// decode fills State from the slot store.
func (disp *Display) decode(slots *[bus.SLOT_COUNT]bus.RawWord) {
	for n := range POSITIONS {
		w := slots[n]

		disp.Text[n] = disp.Decoder.DecodeX(w.Segments())
		code := w.SeparatorCode()
		if n == 0 {
			outer := w.Outer()
			disp.Units[UNIT_M] = outer&unitMBit != 0
			disp.Units[UNIT_HZ] = outer&unitHzBit != 0
			disp.Units[UNIT_U] = code&unitUBit != 0
			disp.Units[UNIT_S] = code&unitSBit != 0
			disp.Units[UNIT_GATE] = code&unitGateBit != 0
		} else {
			sep, ok := separators[code]
			if !ok {
				disp.UnknownSeparator = code
			}
			disp.Separators[n] = sep
		}

		disp.Labels[n] = w.Label()
	}

	disp.Highlights = [POSITIONS]bool{}
	for n := bus.HIGHLIGHT_SLOT; n < bus.SLOT_COUNT; n++ {
		w := slots[n]
		if w == bus.HIGHLIGHT_NONE {
			continue
		}
		if w.Payload() != 0 {
			disp.Highlights[w.Gate()] = true
		}
	}

	fixZero(&disp.Text)
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// fixZero decides between zero and the letter O, which share a pattern.
// The character to the left decides; the one to the right only at the left
// edge, since right of a number there is often a unit such as "V" or "dB".
// "ON" and "OFF" are recognized as words.
func fixZero(text *[POSITIONS]byte) {
	for n := POSITIONS - 1; n >= 0; n-- {
		if text[n] != '0' {
			continue
		}

		var left, right byte
		if n < POSITIONS-1 {
			left = text[n+1]
		}
		if n > 0 {
			right = text[n-1]
		}

		switch {
		case n < POSITIONS-1 && isUpper(left):
		case n == POSITIONS-1 && isUpper(right):
		case n < POSITIONS-2 && left == ' ' && right == 'N':
		case n > 1 && right == 'F' && text[n-2] == 'F':
		default:
			continue
		}
		text[n] = 'O'
	}
}

// Update decodes a snapshot and sets Change to what differs from the last
// Update. While the bus is silent the state shows NO_DISPLAY.
func (disp *Display) Update(snap bus.Snapshot) {
	disp.decode(&snap.Slots)

	// Every category is copied, even once a change is known.
	var ch ChangeMask
	text := copyCompare(disp.prev.Text[:], disp.Text[:])
	seps := copyCompare(disp.prev.Separators[:], disp.Separators[:])
	highlights := copyCompare(disp.prev.Highlights[:], disp.Highlights[:])
	if text || seps || highlights {
		ch |= CHANGE_TEXT
	}
	if copyCompare(disp.prev.Labels[:], disp.Labels[:]) {
		ch |= CHANGE_LABELS
	}
	if copyCompare(disp.prev.Units[:UNIT_GATE], disp.Units[:UNIT_GATE]) {
		ch |= CHANGE_UNITS
	}
	if copyCompare(disp.prev.Units[UNIT_GATE:], disp.Units[UNIT_GATE:]) {
		ch |= CHANGE_GATE
	}

	if snap.Timeout != disp.NoDisplayData {
		disp.NoDisplayData = snap.Timeout
		ch |= CHANGE_ALL
	}
	if disp.NoDisplayData {
		disp.State = State{}
		for n := range POSITIONS {
			disp.Text[POSITIONS-1-n] = NO_DISPLAY[n]
		}
	}

	disp.Change = ch
}

// Combine rebuilds the combined strings whose inputs changed on the last
// Update, and flags each rebuild in Change.
func (disp *Display) Combine() {
	if disp.Change.Has(CHANGE_TEXT) {
		disp.text.Reset()
		disp.HighlightsCombined = disp.HighlightsCombined[:0]
		for n := POSITIONS - 1; n >= 0 && !disp.text.Full(); n-- {
			disp.text.AppendByte(disp.Text[n])
			disp.HighlightsCombined = append(disp.HighlightsCombined, disp.Highlights[n])
			sep := disp.Separators[n]
			if sep != 0 && disp.text.AppendByte(sep) {
				disp.HighlightsCombined = append(disp.HighlightsCombined, false)
			}
		}
		disp.TextCombined = disp.text.String()
		disp.Change |= CHANGE_TEXT_COMB
	}

	if disp.Change.Has(CHANGE_UNITS) {
		disp.units.Reset()
		for n := range UNIT_TEXT {
			if disp.Units[n] {
				disp.units.AppendString(disp.Profile.Units[n])
			}
		}
		disp.UnitsCombined = disp.units.String()
		disp.Change |= CHANGE_UNITS_COMB
	}

	if disp.Change.Has(CHANGE_LABELS) {
		disp.labels.Reset()
		for n := POSITIONS - 1; n >= 0 && !disp.labels.Full(); n-- {
			if !disp.Labels[n] {
				continue
			}
			if disp.labels.Len() > 0 {
				disp.labels.AppendByte(' ')
			}
			disp.labels.AppendString(disp.Profile.Label(n))
		}
		disp.LabelsCombined = disp.labels.String()
		disp.Change |= CHANGE_LABELS_COMB
	}
}
