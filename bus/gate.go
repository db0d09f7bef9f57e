package bus

const (
	GATE_COUNT = 12 // Character positions.

	gateBit1   = 0x2220
	gateBit2   = 0x4440
	gateBit3   = 0x8880
	gateHigh   = 0xf000
	gateMiddle = 0x0f00
)

// GateAddress maps the gate field of a word to a character position.
//
// The instrument drives three gate drivers of four outputs each; the
// tests below follow its wiring, and their order decides which position
// wins when more than one gate is driven.
func GateAddress(field uint16) (addr int) {
	switch {
	case field&gateBit1 != 0:
		addr = 1
	case field&gateBit2 != 0:
		addr = 2
	case field&gateBit3 != 0:
		addr = 3
	}

	switch {
	case field&gateHigh != 0:
		addr |= 8
	case field&gateMiddle != 0:
		addr |= 4
	}

	// Not reachable from the tests above.
	if addr >= GATE_COUNT {
		addr = 0
	}

	return
}
