// Package segment maps the 14 segment patterns driven onto a display cell
// into printable characters.
//
// Patterns use the instrument's own bit assignment (mask CODE_MASK of a bus
// word), not the conventional A..N segment lettering.
package segment

const (
	CODE_MASK = 0xfcff // Bits of a bus word that carry segments.

	UNKNOWN_CAPACITY = 4   // Distinct unknown patterns remembered.
	UNKNOWN_CHAR     = 'x' // Permissive placeholder.
)

// Decoder looks up segment patterns and remembers the first few patterns
// it could not map. The zero value is ready to use.
type Decoder struct {
	unknown  [UNKNOWN_CAPACITY]uint16
	nUnknown int
}

func lookup(code uint16) (c byte, ok bool) {
	for _, m := range TABLE {
		if m.Code == code {
			return m.Char, true
		}
	}
	return
}

// Decode maps code to its character, or NUL if unknown.
func (dec *Decoder) Decode(code uint16) (c byte) {
	c, ok := lookup(code)
	if !ok {
		dec.addUnknown(code)
	}
	return
}

// DecodeX maps code to its character, or UNKNOWN_CHAR if unknown.
func (dec *Decoder) DecodeX(code uint16) (c byte) {
	c, ok := lookup(code)
	if !ok {
		dec.addUnknown(code)
		c = UNKNOWN_CHAR
	}
	return
}

func (dec *Decoder) addUnknown(code uint16) {
	if dec.nUnknown >= len(dec.unknown) {
		return
	}
	for _, seen := range dec.unknown[:dec.nUnknown] {
		if seen == code {
			return
		}
	}
	dec.unknown[dec.nUnknown] = code
	dec.nUnknown++
}

// Unknown returns the distinct unmapped patterns seen, oldest first.
func (dec *Decoder) Unknown() (codes []uint16) {
	codes = append(codes, dec.unknown[:dec.nUnknown]...)
	return
}

// Reset forgets all unknown patterns.
func (dec *Decoder) Reset() {
	dec.nUnknown = 0
}

// Encode returns the first pattern that displays c.
func Encode(c byte) (code uint16, ok bool) {
	for _, m := range TABLE {
		if m.Char == c {
			return m.Code, true
		}
	}
	return
}
