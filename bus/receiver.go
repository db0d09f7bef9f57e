package bus

const POLL_BUDGET = 100 // Poll iterations per transaction.

// Receiver is the enable line handler. It owns no state of its own beyond
// the scratch bytes of the transaction in flight.
type Receiver struct {
	*Context
	Port Port // Bus shift register.
	Line Line // Resync output, may be nil.

	bytes [WORD_BYTES]byte
}

// NewReceiver attaches a handler to ctx.
func NewReceiver(ctx *Context, port Port, line Line) *Receiver {
	return &Receiver{
		Context: ctx,
		Port:    port,
		Line:    line,
	}
}

// OnEnable handles a rising edge of the enable line. It runs to completion
// inside the Context mask, polls at most POLL_BUDGET times, and neither
// blocks nor allocates.
func (rx *Receiver) OnEnable() {
	rx.Mask.Lock()
	defer rx.Mask.Unlock()

	n := 0
	loops := 0
	for ; loops < POLL_BUDGET; loops++ {
		if rx.Port.Ready() {
			rx.bytes[n] = rx.Port.Data()
			n++
		}
		if n == WORD_BYTES {
			break
		}
	}

	if n < WORD_BYTES {
		if aligner, ok := rx.Port.(Aligner); ok {
			aligner.Realign()
		}
		rx.incomplete()
		rx.stats.Loops = loops
		return
	}

	rx.deliver(WordFromBytes(rx.bytes), rx.Line)
	rx.stats.Loops = loops
}
