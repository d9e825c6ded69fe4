package kafka

import "encoding/binary"

// packetEncoder is the write-side half of the byte codec (C1). Its method
// names and big-endian fixed-width conventions mirror the teacher's
// packetEncoder (see init_producer_id_request.go's pe.putInt32/putString
// call sites); the implementation underneath is a growingBuffer rather than
// sarama's two-pass prepEncoder, per spec.md's C2 (see DESIGN.md).
type packetEncoder interface {
	putInt8(in int8)
	putInt16(in int16)
	putInt32(in int32)
	putInt64(in int64)

	// putString writes a short-string: int16 length followed by raw bytes.
	putString(s string)

	// putBytes writes a byte-string: int32 length followed by raw bytes.
	// A nil slice is encoded as length -1 (absent), distinct from a
	// zero-length non-nil slice which encodes as length 0 (present, empty).
	putBytes(b []byte)

	// reserveInt32 reserves space for a later back-patched int32 and
	// returns its absolute offset.
	reserveInt32() int
	patchInt32(offset int, v int32)

	// reserveCRC32 reserves space for a later back-patched CRC-32 and
	// returns its absolute offset.
	reserveCRC32() int
	// patchCRC32 computes the CRC over bytes written since `coverageStart`
	// up to the current end of the buffer, and patches it at `offset`.
	patchCRC32(offset int, coverageStart int)

	offset() int
	bytes() []byte
}

type realEncoder struct {
	buf *growingBuffer
}

func newRealEncoder() *realEncoder {
	return &realEncoder{buf: newGrowingBuffer()}
}

func (e *realEncoder) putInt8(in int8) {
	e.buf.Write([]byte{byte(in)})
}

func (e *realEncoder) putInt16(in int16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], uint16(in))
	e.buf.Write(tmp[:])
}

func (e *realEncoder) putInt32(in int32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(in))
	e.buf.Write(tmp[:])
}

func (e *realEncoder) putInt64(in int64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(in))
	e.buf.Write(tmp[:])
}

func (e *realEncoder) putString(s string) {
	e.putInt16(int16(len(s)))
	e.buf.Write([]byte(s))
}

func (e *realEncoder) putBytes(b []byte) {
	if b == nil {
		e.putInt32(-1)
		return
	}
	e.putInt32(int32(len(b)))
	if len(b) > 0 {
		e.buf.Write(b)
	}
}

func (e *realEncoder) reserveInt32() int {
	return e.buf.Grow(4)
}

func (e *realEncoder) patchInt32(offset int, v int32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(v))
	e.buf.PatchAt(offset, tmp[:])
}

func (e *realEncoder) reserveCRC32() int {
	return e.buf.Grow(4)
}

func (e *realEncoder) patchCRC32(offset int, coverageStart int) {
	sum := crc32IEEE(e.buf.Bytes()[coverageStart:])
	e.patchInt32(offset, int32(sum))
}

func (e *realEncoder) offset() int {
	return e.buf.Len()
}

func (e *realEncoder) bytes() []byte {
	return e.buf.Bytes()
}
