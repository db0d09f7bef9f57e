package hw

import (
	"sync/atomic"

	"github.com/warthog618/go-gpiocdev"
)

// EnableTrigger calls a handler on every rising edge of the bus enable
// line.
type EnableTrigger struct {
	line  *gpiocdev.Line
	edges atomic.Uint32
	seqno atomic.Uint32
}

// Open requests offset on chip as an edge detecting input.
func (et *EnableTrigger) Open(chip string, offset int, handler func()) (err error) {
	if et.line != nil {
		err = ErrTriggerOpen
		return
	}

	line, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsInput,
		gpiocdev.WithRisingEdge,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			et.edges.Add(1)
			et.seqno.Store(evt.LineSeqno)
			handler()
		}))
	if err != nil {
		err = &ErrHost{Op: chip, Err: err}
		return
	}

	et.line = line
	return
}

// Edges counts handled edges.
func (et *EnableTrigger) Edges() uint32 {
	return et.edges.Load()
}

// Missed counts edges the kernel saw but the handler did not.
func (et *EnableTrigger) Missed() uint32 {
	return et.seqno.Load() - et.edges.Load()
}

// Close releases the line.
func (et *EnableTrigger) Close() (err error) {
	if et.line == nil {
		return
	}
	err = et.line.Close()
	et.line = nil
	return
}
