package trace

import (
	"log"

	"github.com/ezrec/vfdtap/bus"
)

// Player feeds a Trace to a Receiver through a Fifo, moving a ManualClock
// so that timeouts behave as on the wire.
type Player struct {
	Verbose bool
	Trace   *Trace
	Fifo    *bus.Fifo
	Clock   *bus.ManualClock
	Enable  func() // Enable edge handler, usually bus.Receiver.OnEnable.
	WordMs  uint32 // Clock advance after each transaction.

	pos int
}

// Done is true once every event has been played.
func (pl *Player) Done() bool {
	return pl.pos >= len(pl.Trace.Events)
}

// Rewind restarts the trace from the first event.
func (pl *Player) Rewind() {
	pl.pos = 0
}

// Step plays the next event. It returns false once the trace is done.
func (pl *Player) Step() (ev Event, ok bool) {
	if pl.Done() {
		return
	}

	ev = pl.Trace.Events[pl.pos]
	pl.pos++
	ok = true

	if pl.Verbose {
		log.Printf("trace: %v: %v %x %v", ev.LineNo, ev.Kind, ev.Data, ev.Ms)
	}

	switch ev.Kind {
	case EVENT_WORD, EVENT_SHORT:
		pl.Fifo.Flush()
		// A flushed Fifo always has room for one word.
		_ = pl.Fifo.Load(ev.Data...)
		pl.Enable()
		pl.Fifo.Flush()
		pl.Clock.Advance(pl.WordMs)
	case EVENT_IDLE:
		pl.Clock.Advance(ev.Ms)
	case EVENT_RENDER:
	}

	return
}

// Run plays the remaining events, calling render on each EVENT_RENDER.
func (pl *Player) Run(render func()) {
	for {
		ev, ok := pl.Step()
		if !ok {
			return
		}
		if ev.Kind == EVENT_RENDER && render != nil {
			render()
		}
	}
}
