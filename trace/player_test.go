package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vfdtap/bus"
)

func TestPlayer(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		`frame "  12.5"`,
		`frame "  12.5"`,
		"short 2 0x00100000",
		"idle 1001",
	}
	tr, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	fr := &Frame{Text: "  12.5"}
	scan, err := fr.Words()
	assert.NoError(err)

	clock := &bus.ManualClock{}
	ctx := bus.NewContext(clock, nil)
	fifo := &bus.Fifo{Capacity: bus.WORD_BYTES}
	rx := bus.NewReceiver(ctx, fifo, nil)

	pl := &Player{
		Trace:  tr,
		Fifo:   fifo,
		Clock:  clock,
		Enable: rx.OnEnable,
		WordMs: 1,
	}

	renders := 0
	snaps := []bus.Snapshot{}
	pl.Run(func() {
		renders++
		snaps = append(snaps, ctx.Snapshot())
	})
	assert.True(pl.Done())
	assert.Equal(3, renders)

	// The first scan is only picked up from the resync gate on.
	expected := bus.INITIAL_SLOTS
	for n := bus.RESYNC_INDEX - 1; n < bus.SLOT_COUNT; n++ {
		expected[bus.FRAME_SEQUENCE[n]] = scan[n]
	}
	assert.Equal(expected, snaps[0].Slots)
	assert.False(snaps[0].Timeout)

	for n, slot := range bus.FRAME_SEQUENCE {
		expected[slot] = scan[n]
	}
	assert.Equal(expected, snaps[1].Slots)
	assert.Equal(expected, snaps[2].Slots)
	assert.True(snaps[2].Timeout)

	stats := ctx.Stats()
	assert.Equal(uint32(2*bus.SLOT_COUNT), stats.Ok)
	assert.Equal(uint32(1), stats.Incomplete)
	assert.Equal(bus.SyncState(0), ctx.State())
	assert.Equal(uint32(2*bus.SLOT_COUNT+1), clock.Millis()-1001)

	_, ok := pl.Step()
	assert.False(ok)
	pl.Rewind()
	assert.False(pl.Done())
}
