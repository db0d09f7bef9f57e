package hw

import (
	"io"
	"sync/atomic"

	"github.com/jacobsa/go-serial/serial"

	"github.com/ezrec/vfdtap/bus"
)

const STREAM_BUFFER = 256 // Bytes buffered ahead of the receiver.

// StreamPort is a bus.Port fed from a byte stream, such as a serial bridge
// that forwards every byte shifted in from the bus.
type StreamPort struct {
	rc   io.ReadCloser
	data chan byte
	done chan struct{}
	err  error

	overruns atomic.Uint32

	phase int // Bytes taken of the word in flight.
	skip  int // Bytes still to drop before the next word.
}

var _ bus.Port = (*StreamPort)(nil)
var _ bus.Aligner = (*StreamPort)(nil)

// NewStreamPort starts reading rc.
func NewStreamPort(rc io.ReadCloser) (sp *StreamPort) {
	sp = &StreamPort{
		rc:   rc,
		data: make(chan byte, STREAM_BUFFER),
		done: make(chan struct{}),
	}

	go sp.pump()

	return
}

// OpenSerial opens a serial bridge at baud, 8N1.
func OpenSerial(name string, baud uint) (sp *StreamPort, err error) {
	options := serial.OpenOptions{
		PortName:        name,
		BaudRate:        baud,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	}

	rwc, err := serial.Open(options)
	if err != nil {
		err = &ErrHost{Op: name, Err: err}
		return
	}

	sp = NewStreamPort(rwc)
	return
}

func (sp *StreamPort) pump() {
	defer close(sp.done)

	buf := make([]byte, STREAM_BUFFER)
	for {
		n, err := sp.rc.Read(buf)
		for _, b := range buf[:n] {
			select {
			case sp.data <- b:
			default:
				sp.overruns.Add(1)
			}
		}
		if err != nil {
			if err != io.EOF {
				sp.err = err
			}
			return
		}
	}
}

func (sp *StreamPort) Ready() bool {
	for sp.skip > 0 && len(sp.data) > 0 {
		<-sp.data
		sp.skip--
	}
	return sp.skip == 0 && len(sp.data) > 0
}

func (sp *StreamPort) Data() (b byte) {
	if !sp.Ready() {
		return
	}
	b = <-sp.data
	sp.phase = (sp.phase + 1) % bus.WORD_BYTES
	return
}

// Realign drops the bytes of the abandoned word still to come from the
// bridge, whenever they arrive.
func (sp *StreamPort) Realign() {
	sp.skip += (bus.WORD_BYTES - sp.phase) % bus.WORD_BYTES
	sp.phase = 0
	sp.Ready()
}

// Overruns counts bytes dropped because the receiver fell behind.
func (sp *StreamPort) Overruns() uint32 {
	return sp.overruns.Load()
}

// Wait blocks until the stream ends, and returns why it did.
func (sp *StreamPort) Wait() (err error) {
	<-sp.done
	err = sp.err
	if err == nil {
		err = ErrPortClosed
	}
	return
}

// Close stops the stream.
func (sp *StreamPort) Close() (err error) {
	err = sp.rc.Close()
	return
}
