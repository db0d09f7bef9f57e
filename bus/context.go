package bus

import (
	"sync"
)

const TIMEOUT_MS = 1000 // Silence after which the display is considered gone.

// INITIAL_SLOTS shows "---" at the left of the display until data arrives.
var INITIAL_SLOTS = [SLOT_COUNT]RawWord{
	9:  0x2000_0003,
	10: 0x4000_0003,
	11: 0x8000_0003,
}

// Stats are the capture counters.
type Stats struct {
	Ok         uint32 // Complete transactions.
	Incomplete uint32 // Transactions abandoned short of WORD_BYTES.
	SyncLoss   uint32 // Transitions into SYNC_LOST.
	Frames     uint32 // Completed scans, plus glitches while lost.
	Loops      int    // Poll iterations used by the last transaction.
}

// Snapshot is a torn free copy of the slot store.
type Snapshot struct {
	Slots   [SLOT_COUNT]RawWord
	Timeout bool // No complete transaction for over TIMEOUT_MS.
}

// Context owns all state shared between the capture handler and the
// render loop.
type Context struct {
	Mask  sync.Locker // Excludes the capture handler. Never nil after NewContext.
	Clock Clock

	sync  Synchronizer
	slots [SLOT_COUNT]RawWord
	stats Stats

	last        RawWord // Last stored word.
	lastCapture uint32  // Clock at the last complete transaction.
	lastUpdate  uint32  // Clock at the last stored word.

	recent   Ring // Every complete transaction.
	lost     Ring // Copy of recent taken when sync was lost.
	rejected Ring // Transactions dropped while lost.
}

// NewContext creates a context. A nil mask gets a mutex.
func NewContext(clock Clock, mask sync.Locker) (ctx *Context) {
	if mask == nil {
		mask = &sync.Mutex{}
	}
	ctx = &Context{
		Mask:  mask,
		Clock: clock,
	}
	ctx.Reset()
	return
}

// Reset restores the power-on state.
func (ctx *Context) Reset() {
	ctx.Mask.Lock()
	defer ctx.Mask.Unlock()

	ctx.sync.Reset()
	ctx.slots = INITIAL_SLOTS
	ctx.stats = Stats{}
	ctx.last = 0
	ctx.lastCapture = ctx.Clock.Millis()
	ctx.lastUpdate = ctx.lastCapture
	ctx.recent.Reset()
	ctx.lost.Reset()
	ctx.rejected.Reset()
}

// deliver folds a complete transaction into the store. Mask must be held.
func (ctx *Context) deliver(w RawWord, line Line) {
	now := ctx.Clock.Millis()

	ctx.stats.Ok++
	ctx.lastCapture = now
	ctx.recent.Push(w)

	slot, step := ctx.sync.Next(w.Gate())
	switch step {
	case STEP_MISMATCH, STEP_RESYNC:
		Pulse(line)
		if ctx.sync.Losses() != ctx.stats.SyncLoss {
			ctx.stats.SyncLoss = ctx.sync.Losses()
			ctx.lost = ctx.recent
		}
	}
	ctx.stats.Frames = ctx.sync.Frames()

	if ctx.sync.Lost() {
		ctx.rejected.Push(w)
		return
	}

	ctx.slots[slot] = w
	ctx.last = w
	ctx.lastUpdate = now
}

// incomplete counts an abandoned transaction. Mask must be held.
func (ctx *Context) incomplete() {
	ctx.stats.Incomplete++
}

// timeout checks for bus silence. Mask must be held.
func (ctx *Context) timeout(now uint32) bool {
	last := ctx.lastCapture
	if int32(now-last) < 0 {
		last = now
	}
	return now-last > TIMEOUT_MS
}

// Snapshot copies the slot store and checks for bus silence.
func (ctx *Context) Snapshot() (snap Snapshot) {
	ctx.Mask.Lock()
	defer ctx.Mask.Unlock()

	now := ctx.Clock.Millis()
	snap.Slots = ctx.slots
	snap.Timeout = ctx.timeout(now)
	return
}

// Timeout reports if no complete transaction arrived for over TIMEOUT_MS.
func (ctx *Context) Timeout() bool {
	ctx.Mask.Lock()
	defer ctx.Mask.Unlock()

	now := ctx.Clock.Millis()
	return ctx.timeout(now)
}

// Slot returns one stored word.
func (ctx *Context) Slot(n int) RawWord {
	ctx.Mask.Lock()
	defer ctx.Mask.Unlock()

	return ctx.slots[n]
}

// Stats returns the capture counters.
func (ctx *Context) Stats() Stats {
	ctx.Mask.Lock()
	defer ctx.Mask.Unlock()

	return ctx.stats
}

// State returns the synchronizer state.
func (ctx *Context) State() SyncState {
	ctx.Mask.Lock()
	defer ctx.Mask.Unlock()

	return ctx.sync.State()
}

// Last returns the most recently stored word, 0 before any.
func (ctx *Context) Last() RawWord {
	ctx.Mask.Lock()
	defer ctx.Mask.Unlock()

	return ctx.last
}

// LastUpdate returns the clock reading when a word was last stored.
func (ctx *Context) LastUpdate() uint32 {
	ctx.Mask.Lock()
	defer ctx.Mask.Unlock()

	return ctx.lastUpdate
}

// Recent returns the last complete transactions, oldest first.
func (ctx *Context) Recent() []RawWord {
	ctx.Mask.Lock()
	defer ctx.Mask.Unlock()

	return ctx.recent.Slice()
}

// LostWords returns the transactions leading up to the latest sync loss.
func (ctx *Context) LostWords() []RawWord {
	ctx.Mask.Lock()
	defer ctx.Mask.Unlock()

	return ctx.lost.Slice()
}

// Rejected returns the last transactions dropped while lost.
func (ctx *Context) Rejected() []RawWord {
	ctx.Mask.Lock()
	defer ctx.Mask.Unlock()

	return ctx.rejected.Slice()
}
