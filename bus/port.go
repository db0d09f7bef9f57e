package bus

import (
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Port is the receive side of the bus shift register. After each byte the
// hardware advances on its own; Data must only be called once Ready.
type Port interface {
	Ready() bool // A received byte is waiting.
	Data() byte  // Take the waiting byte.
}

// Aligner is a Port that can drop the rest of an abandoned transaction, so
// the next transaction starts on a word boundary.
type Aligner interface {
	Realign()
}

// Line is an output pin. Any periph.io gpio.PinOut satisfies it.
type Line interface {
	Out(l gpio.Level) error
}

// Clock is a free running millisecond counter. It may wrap.
type Clock interface {
	Millis() uint32
}

// SystemClock counts milliseconds since its creation.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (sc *SystemClock) Millis() uint32 {
	return uint32(time.Since(sc.start).Milliseconds())
}

// ManualClock only moves when told to.
type ManualClock struct {
	now atomic.Uint32
}

func (mc *ManualClock) Millis() uint32 {
	return mc.now.Load()
}

// Advance moves the clock forward by ms.
func (mc *ManualClock) Advance(ms uint32) {
	mc.now.Add(ms)
}

// Fifo is an in-memory Port fed from software.
type Fifo struct {
	Capacity int

	data []byte
}

var _ Port = (*Fifo)(nil)

// Load queues bytes for reception.
func (fifo *Fifo) Load(data ...byte) (err error) {
	if fifo.Capacity > 0 && len(fifo.data)+len(data) > fifo.Capacity {
		err = ErrFifoFull
		return
	}
	fifo.data = append(fifo.data, data...)
	return
}

// Pending is the number of queued bytes.
func (fifo *Fifo) Pending() int {
	return len(fifo.data)
}

// Flush drops all queued bytes.
func (fifo *Fifo) Flush() {
	fifo.data = fifo.data[:0]
}

func (fifo *Fifo) Ready() bool {
	return len(fifo.data) > 0
}

func (fifo *Fifo) Data() (b byte) {
	if len(fifo.data) == 0 {
		return
	}
	b = fifo.data[0]
	fifo.data = fifo.data[1:]
	return
}

// Pulse drives line high then low. A nil line is ignored.
func Pulse(line Line) {
	if line == nil {
		return
	}
	_ = line.Out(gpio.High)
	_ = line.Out(gpio.Low)
}
