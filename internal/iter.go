package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return
				}
			}
		}
	}
}

// IterPairs yields key/value pairs from a flat list, in order.
// A trailing odd key is dropped.
func IterPairs(kv ...string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for n := 0; n+1 < len(kv); n += 2 {
			if !yield(kv[n], kv[n+1]) {
				return
			}
		}
	}
}
