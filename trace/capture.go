package trace

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/ezrec/vfdtap/bus"
)

// ReadCapture reads a raw bus capture: 4 byte big endian words, one per
// enable edge, as a logic analyzer would dump them. A render is requested
// after every full scan, preceded by an idle of stepMs if stepMs is not 0.
// A partial word at the end becomes a short transaction.
func ReadCapture(r io.Reader, stepMs uint32) (tr *Trace, err error) {
	br := bufio.NewReader(r)
	tr = &Trace{}

	var offset int64
	count := 0
	render := func() {
		if stepMs != 0 {
			tr.Events = append(tr.Events, Event{Kind: EVENT_IDLE, Ms: stepMs})
		}
		tr.Events = append(tr.Events, Event{Kind: EVENT_RENDER})
	}

	for {
		var data [bus.WORD_BYTES]byte
		var n int
		n, err = io.ReadFull(br, data[:])
		switch {
		case err == nil:
			tr.Events = append(tr.Events, Event{Kind: EVENT_WORD, Data: data[:]})
			offset += int64(n)
			count++
			if count%bus.SLOT_COUNT == 0 {
				render()
			}
			continue
		case errors.Is(err, io.ErrUnexpectedEOF):
			tr.Events = append(tr.Events, Event{Kind: EVENT_SHORT, Data: data[:n]})
			count++
		case errors.Is(err, io.EOF):
		default:
			err = &ErrCapture{Offset: offset, Err: err}
			tr = nil
			return
		}
		break
	}

	err = nil
	if count%bus.SLOT_COUNT != 0 {
		render()
	}

	return
}

// WriteCapture writes words in the format ReadCapture reads.
func WriteCapture(w io.Writer, words []bus.RawWord) (err error) {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, bus.WORD_BYTES)
	for _, word := range words {
		buf = binary.BigEndian.AppendUint32(buf[:0], uint32(word))
		_, err = bw.Write(buf)
		if err != nil {
			return
		}
	}
	err = bw.Flush()
	return
}

// CaptureWords lists the complete transactions of a trace, in order.
func (tr *Trace) CaptureWords() (words []bus.RawWord) {
	for _, ev := range tr.Events {
		if ev.Kind == EVENT_WORD {
			words = append(words, bus.WordFromBytes([bus.WORD_BYTES]byte(ev.Data)))
		}
	}
	return
}
