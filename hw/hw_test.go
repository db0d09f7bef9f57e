package hw

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vfdtap/bus"
)

func TestStreamPort(t *testing.T) {
	assert := assert.New(t)

	pr, pw := io.Pipe()
	sp := NewStreamPort(pr)

	assert.False(sp.Ready())
	assert.Equal(byte(0), sp.Data())

	go func() {
		pw.Write([]byte{0x00, 0x10, 0xc4, 0x8c})
	}()

	assert.Eventually(func() bool { return len(sp.data) == bus.WORD_BYTES }, time.Second, time.Millisecond)

	ctx := bus.NewContext(&bus.ManualClock{}, nil)
	rx := bus.NewReceiver(ctx, sp, nil)
	rx.OnEnable()
	assert.Equal(uint32(1), ctx.Stats().Ok)
	assert.Equal([]bus.RawWord{0x0010_c48c}, ctx.Recent())
	assert.False(sp.Ready())

	pw.Close()
	assert.ErrorIs(sp.Wait(), ErrPortClosed)
	assert.Equal(uint32(0), sp.Overruns())
}

func TestStreamPortRealign(t *testing.T) {
	assert := assert.New(t)

	pr, pw := io.Pipe()
	sp := NewStreamPort(pr)
	defer pw.Close()

	ctx := bus.NewContext(&bus.ManualClock{}, nil)
	rx := bus.NewReceiver(ctx, sp, nil)

	a := bus.RawWord(0x0020_4001).Bytes()
	b := bus.RawWord(0x0100_c08b).Bytes()
	c := bus.RawWord(0x8000_0003).Bytes()

	feed := func(data []byte, pending int) {
		go pw.Write(data)
		assert.Eventually(func() bool { return len(sp.data) == pending }, time.Second, time.Millisecond)
	}

	// Enable fires with half of a forwarded.
	feed(a[:2], 2)
	rx.OnEnable()
	assert.Equal(uint32(1), ctx.Stats().Incomplete)

	// Enable fires again before the rest of a shows up.
	rx.OnEnable()
	assert.Equal(uint32(2), ctx.Stats().Incomplete)

	var rest []byte
	rest = append(rest, a[2:]...)
	rest = append(rest, b[:]...)
	rest = append(rest, c[:]...)
	feed(rest, len(rest))

	rx.OnEnable()
	rx.OnEnable()
	assert.Equal(uint32(2), ctx.Stats().Ok)
	assert.Equal([]bus.RawWord{0x0100_c08b, 0x8000_0003}, ctx.Recent())
	assert.False(sp.Ready())
}

func TestStreamPortError(t *testing.T) {
	assert := assert.New(t)

	broken := errors.New("broken")
	pr, pw := io.Pipe()
	sp := NewStreamPort(pr)
	pw.CloseWithError(broken)

	assert.ErrorIs(sp.Wait(), broken)
	assert.NoError(sp.Close())
}

func TestStreamPortOverrun(t *testing.T) {
	assert := assert.New(t)

	pr, pw := io.Pipe()
	sp := NewStreamPort(pr)

	go func() {
		pw.Write(make([]byte, STREAM_BUFFER+3))
		pw.Close()
	}()

	sp.Wait()
	assert.Equal(uint32(3), sp.Overruns())
	assert.True(sp.Ready())
}

func TestEnableTriggerClosed(t *testing.T) {
	assert := assert.New(t)

	et := &EnableTrigger{}
	assert.NoError(et.Close())
	assert.Equal(uint32(0), et.Edges())
	assert.Equal(uint32(0), et.Missed())
}

func TestErrHost(t *testing.T) {
	assert := assert.New(t)

	err := error(&ErrHost{Op: "GPIO4", Err: ErrPinUnknown})
	assert.ErrorIs(err, ErrPinUnknown)
	assert.Contains(err.Error(), "GPIO4")
}
