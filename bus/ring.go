package bus

import (
	"iter"
)

const RING_SIZE = 16 // Words kept by each diagnostic ring.

// Ring keeps the last RING_SIZE words pushed. It never allocates.
type Ring struct {
	words [RING_SIZE]RawWord
	head  int // Next write position.
	count int
}

// Push records a word, overwriting the oldest once full.
func (ring *Ring) Push(w RawWord) {
	ring.words[ring.head] = w
	ring.head = (ring.head + 1) % RING_SIZE
	if ring.count < RING_SIZE {
		ring.count++
	}
}

// Len is the number of words held.
func (ring *Ring) Len() int {
	return ring.count
}

// Reset empties the ring.
func (ring *Ring) Reset() {
	ring.head = 0
	ring.count = 0
}

// Words returns an iterator over the held words, oldest first.
func (ring *Ring) Words() iter.Seq[RawWord] {
	return func(yield func(RawWord) bool) {
		start := (ring.head - ring.count + RING_SIZE) % RING_SIZE
		for n := range ring.count {
			if !yield(ring.words[(start+n)%RING_SIZE]) {
				return
			}
		}
	}
}

// Slice copies the held words, oldest first.
func (ring *Ring) Slice() (words []RawWord) {
	words = make([]RawWord, 0, ring.count)
	for w := range ring.Words() {
		words = append(words, w)
	}
	return
}
