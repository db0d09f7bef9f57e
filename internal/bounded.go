package internal

// Bounded is a byte string builder that never grows past Max bytes.
// Appends that would overrun are truncated at exactly Max.
type Bounded struct {
	Max int
	buf []byte
}

// NewBounded returns a builder holding at most max bytes.
func NewBounded(max int) (b *Bounded) {
	b = &Bounded{Max: max, buf: make([]byte, 0, max)}
	return
}

// Reset empties the builder, keeping its storage.
func (b *Bounded) Reset() {
	b.buf = b.buf[:0]
}

// Len is the current length.
func (b *Bounded) Len() int {
	return len(b.buf)
}

// Full reports if no more bytes fit.
func (b *Bounded) Full() bool {
	return len(b.buf) >= b.Max
}

// AppendByte appends c, reporting false if there was no room.
func (b *Bounded) AppendByte(c byte) (ok bool) {
	if b.Full() {
		return
	}
	b.buf = append(b.buf, c)
	ok = true
	return
}

// AppendString appends as much of s as fits, returning the count appended.
func (b *Bounded) AppendString(s string) (n int) {
	for n < len(s) && b.AppendByte(s[n]) {
		n++
	}
	return
}

// String returns a copy of the contents.
func (b *Bounded) String() string {
	return string(b.buf)
}
