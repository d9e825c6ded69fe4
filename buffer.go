package kafka

// growingBuffer is an append-only byte buffer whose backing array doubles
// in capacity whenever a reservation doesn't fit, mirroring the original C
// client's KafkaBuffer (original_source/src/buffer.c: KafkaBufferReserve /
// KafkaBufferResize). Callers get back absolute offsets, never pointers, so
// a later realloc-style grow never invalidates a previously returned
// offset — those offsets remain valid indices into Bytes() for back-patching
// length and CRC fields after the payload they cover has been written.
type growingBuffer struct {
	data []byte
}

const growingBufferInitialCapacity = 1024

func newGrowingBuffer() *growingBuffer {
	return &growingBuffer{data: make([]byte, 0, growingBufferInitialCapacity)}
}

// Reserve ensures there is room for n additional bytes without forcing a
// reallocation on the next Write, doubling capacity until it fits (same
// growth policy as KafkaBufferResize).
func (b *growingBuffer) Reserve(n int) {
	need := len(b.data) + n
	if need <= cap(b.data) {
		return
	}
	newCap := cap(b.data)
	if newCap == 0 {
		newCap = growingBufferInitialCapacity
	}
	for newCap < need {
		newCap *= 2
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// Len returns the number of bytes written so far.
func (b *growingBuffer) Len() int {
	return len(b.data)
}

// Write appends p and returns the absolute offset at which it was written.
func (b *growingBuffer) Write(p []byte) int {
	b.Reserve(len(p))
	offset := len(b.data)
	b.data = append(b.data, p...)
	return offset
}

// Grow appends n zero bytes and returns the absolute offset of the first
// one, for fields whose value is only known once the rest of the frame has
// been serialized (length prefixes, CRCs).
func (b *growingBuffer) Grow(n int) int {
	b.Reserve(n)
	offset := len(b.data)
	b.data = append(b.data, make([]byte, n)...)
	return offset
}

// PatchAt overwrites the n bytes starting at the given absolute offset,
// which must have been returned by a prior Write or Grow on this buffer.
func (b *growingBuffer) PatchAt(offset int, p []byte) {
	copy(b.data[offset:offset+len(p)], p)
}

// Bytes returns the buffer's contents. The returned slice is only valid
// until the next Write/Grow/Reserve call that triggers a grow.
func (b *growingBuffer) Bytes() []byte {
	return b.data
}
