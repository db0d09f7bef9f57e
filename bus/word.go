package bus

import (
	"encoding/binary"

	"github.com/ezrec/vfdtap/segment"
)

const (
	WORD_BYTES = 4 // Bytes per bus transaction.

	LABEL_MASK     = 0x0008_0000 // Label annunciator of a position.
	PAYLOAD_MASK   = 0x000f_ffff // Everything below the driven gates.
	SEPARATOR_MASK = 0x0007_0000 // Separator, or unit bits in slot 0.
	OUTER_MASK     = 0x0000_0300 // M and Hz in slot 0.

	// HIGHLIGHT_NONE is what an unused highlight field carries.
	HIGHLIGHT_NONE = RawWord(0x8000_0000)
)

// RawWord is one bus transaction, first byte most significant.
type RawWord uint32

// WordFromBytes assembles a word from the bytes in bus order.
func WordFromBytes(b [WORD_BYTES]byte) RawWord {
	return RawWord(binary.BigEndian.Uint32(b[:]))
}

// Bytes splits the word into bus order.
func (w RawWord) Bytes() (b [WORD_BYTES]byte) {
	binary.BigEndian.PutUint32(b[:], uint32(w))
	return
}

// GateField is the upper 16 bits, which carry the driven gates.
func (w RawWord) GateField() uint16 {
	return uint16(w >> 16)
}

// Gates is the 12 bit driven gate bitmap.
func (w RawWord) Gates() uint16 {
	return uint16(w >> 20)
}

// Gate resolves the character position the word drives.
func (w RawWord) Gate() int {
	return GateAddress(w.GateField())
}

// Segments is the segment pattern.
func (w RawWord) Segments() uint16 {
	return uint16(w) & segment.CODE_MASK
}

// SeparatorCode is the 3 bit separator code.
func (w RawWord) SeparatorCode() uint8 {
	return uint8((w & SEPARATOR_MASK) >> 16)
}

// Label reports if the position's label annunciator is lit.
func (w RawWord) Label() bool {
	return (w & LABEL_MASK) != 0
}

// Outer is the 2 bit outer unit field, only meaningful in slot 0.
func (w RawWord) Outer() uint8 {
	return uint8((w & OUTER_MASK) >> 8)
}

// Payload is everything except the driven gates.
func (w RawWord) Payload() uint32 {
	return uint32(w) & PAYLOAD_MASK
}

// String renders the field breakdown of the word.
func (w RawWord) String() string {
	label := "-"
	if w.Label() {
		label = "L"
	}
	return f("%04X_%04X gate %v segs %04x sep %v %v outer %v",
		uint32(w)>>16, uint32(w)&0xffff, w.Gate(), w.Segments(), w.SeparatorCode(), label, w.Outer())
}
