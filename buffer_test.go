package kafka

import (
	"bytes"
	"testing"
)

func TestGrowingBufferWriteAndPatch(t *testing.T) {
	b := newGrowingBuffer()

	off1 := b.Write([]byte("hello"))
	if off1 != 0 {
		t.Fatalf("first write offset = %d, want 0", off1)
	}

	lenOffset := b.Grow(4)
	off2 := b.Write([]byte("world"))
	if off2 != 9 {
		t.Fatalf("second write offset = %d, want 9", off2)
	}

	b.PatchAt(lenOffset, []byte{0, 0, 0, 5})

	want := append([]byte("hello"), 0, 0, 0, 5)
	want = append(want, []byte("world")...)
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("got %x, want %x", b.Bytes(), want)
	}
}

func TestGrowingBufferDoublesAcrossReallocation(t *testing.T) {
	b := newGrowingBuffer()

	offsets := make([]int, 0, 2000)
	for i := 0; i < 2000; i++ {
		offsets = append(offsets, b.Write([]byte{byte(i)}))
	}

	if cap(b.data) < 2000 {
		t.Fatalf("expected capacity to have grown past initial 1024, got %d", cap(b.data))
	}

	// Offsets returned before a reallocation must still index correctly
	// into the buffer after it has grown.
	for i, off := range offsets {
		if b.Bytes()[off] != byte(i) {
			t.Fatalf("offset %d (index %d) no longer points at the byte written there: got %d, want %d", off, i, b.Bytes()[off], byte(i))
		}
	}
}
