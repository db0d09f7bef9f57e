package bus

const (
	SLOT_COUNT     = 16 // Character positions plus highlight fields.
	HIGHLIGHT_SLOT = 12 // First highlight field slot.

	RESYNC_GATE  = 10 // Gate trusted as a frame marker while lost.
	RESYNC_INDEX = 5  // Sequence index expected right after RESYNC_GATE.
)

// FRAME_SEQUENCE is the slot order of one complete scan. Entries from
// HIGHLIGHT_SLOT up are highlight fields, which may drive any gate.
var FRAME_SEQUENCE = [SLOT_COUNT]int{8, 0, 9, 1, 10, 2, 11, 3, 12, 4, 13, 5, 14, 6, 15, 7}

// SyncState is the FRAME_SEQUENCE index expected next, or SYNC_LOST.
type SyncState int

const SYNC_LOST = SyncState(SLOT_COUNT)

func (s SyncState) String() string {
	if s == SYNC_LOST {
		return "LOST"
	}
	return f("%d", int(s))
}

// Step is the outcome of one gate presented to a Synchronizer.
type Step int

const (
	STEP_MATCH    = Step(0) // Gate was the expected one.
	STEP_WILDCARD = Step(1) // Accepted as a highlight field.
	STEP_MISMATCH = Step(2) // Out of order; sync is lost.
	STEP_RESYNC   = Step(3) // Out of order, but a frame marker resumed sync.
)

// Synchronizer tracks the position of the bus within FRAME_SEQUENCE.
type Synchronizer struct {
	index  SyncState
	frames uint32
	losses uint32
}

// NewSynchronizer returns a Synchronizer waiting for a frame marker.
func NewSynchronizer() (sy *Synchronizer) {
	sy = &Synchronizer{}
	sy.Reset()
	return
}

// Reset drops sync and zeros the counters.
func (sy *Synchronizer) Reset() {
	sy.index = SYNC_LOST
	sy.frames = 0
	sy.losses = 0
}

// State returns the current sequence index or SYNC_LOST.
func (sy *Synchronizer) State() SyncState {
	return sy.index
}

// Frames counts completed scans. While lost it also counts every rejected
// gate, so a glitching bus stays visible to anyone watching it.
func (sy *Synchronizer) Frames() uint32 {
	return sy.frames
}

// Losses counts transitions into SYNC_LOST.
func (sy *Synchronizer) Losses() uint32 {
	return sy.losses
}

// Lost reports if the synchronizer is waiting for a frame marker.
func (sy *Synchronizer) Lost() bool {
	return sy.index == SYNC_LOST
}

func (sy *Synchronizer) advance() {
	sy.index = (sy.index + 1) % SLOT_COUNT
	if sy.index == 0 {
		sy.frames++
	}
}

// Next presents a resolved gate. It returns the slot the word belongs in,
// which differs from gate only for highlight fields, and how the gate was
// taken. The word should be stored only if the synchronizer is not Lost
// afterwards.
func (sy *Synchronizer) Next(gate int) (slot int, step Step) {
	slot = gate

	if sy.index != SYNC_LOST {
		expected := FRAME_SEQUENCE[sy.index]
		if gate == expected {
			step = STEP_MATCH
			sy.advance()
			return
		}
		if expected >= HIGHLIGHT_SLOT {
			slot = expected
			step = STEP_WILDCARD
			sy.advance()
			return
		}
		sy.index = SYNC_LOST
		sy.losses++
	}

	step = STEP_MISMATCH
	if gate == RESYNC_GATE {
		sy.index = RESYNC_INDEX
		step = STEP_RESYNC
		return
	}

	sy.frames++

	return
}
