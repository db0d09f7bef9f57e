package trace

// EventKind is the type of a trace event.
type EventKind int

//go:generate go tool stringer -linecomment -type=EventKind
const (
	EVENT_WORD   = EventKind(0) // word
	EVENT_SHORT  = EventKind(1) // short
	EVENT_IDLE   = EventKind(2) // idle
	EVENT_RENDER = EventKind(3) // render
)

// Event is one step of bus activity.
type Event struct {
	Kind   EventKind
	Data   []byte // Bytes shifted in on one enable edge (WORD, SHORT).
	Ms     uint32 // Clock advance (IDLE).
	LineNo int    // Source line, 0 if not from a script.
}

// Trace is a sequence of events.
type Trace struct {
	Events []Event
}

// Words counts the complete transactions in the trace.
func (tr *Trace) Words() (count int) {
	for _, ev := range tr.Events {
		if ev.Kind == EVENT_WORD {
			count++
		}
	}
	return
}
