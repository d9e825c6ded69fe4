package kafka

import "encoding/binary"

// packetDecoder is the read-side half of the byte codec (C1), mirroring the
// teacher's packetDecoder (see delete_topics_response.go's
// pd.getInt16/getString call sites).
type packetDecoder interface {
	getInt8() (int8, error)
	getInt16() (int16, error)
	getInt32() (int32, error)
	getInt64() (int64, error)

	// getString reads a short-string: int16 length followed by raw bytes.
	getString() (string, error)

	// getBytes reads a byte-string: int32 length followed by raw bytes.
	// A length of -1 decodes to a nil slice (absent); a length of 0
	// decodes to a non-nil, zero-length slice (present but empty).
	getBytes() ([]byte, error)

	remaining() int
	getRawBytes(n int) ([]byte, error)
}

type realDecoder struct {
	raw []byte
	off int
}

func newRealDecoder(raw []byte) *realDecoder {
	return &realDecoder{raw: raw}
}

func (d *realDecoder) need(n int) error {
	if n < 0 || d.off+n > len(d.raw) {
		return PacketDecodingError{Info: "insufficient data to decode packet, more bytes expected"}
	}
	return nil
}

func (d *realDecoder) getInt8() (int8, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	v := int8(d.raw[d.off])
	d.off++
	return v, nil
}

func (d *realDecoder) getInt16() (int16, error) {
	if err := d.need(2); err != nil {
		return 0, err
	}
	v := int16(binary.BigEndian.Uint16(d.raw[d.off:]))
	d.off += 2
	return v, nil
}

func (d *realDecoder) getInt32() (int32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := int32(binary.BigEndian.Uint32(d.raw[d.off:]))
	d.off += 4
	return v, nil
}

func (d *realDecoder) getInt64() (int64, error) {
	if err := d.need(8); err != nil {
		return 0, err
	}
	v := int64(binary.BigEndian.Uint64(d.raw[d.off:]))
	d.off += 8
	return v, nil
}

func (d *realDecoder) getString() (string, error) {
	n, err := d.getInt16()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", PacketDecodingError{Info: "negative length for short-string"}
	}
	if err := d.need(int(n)); err != nil {
		return "", err
	}
	s := string(d.raw[d.off : d.off+int(n)])
	d.off += int(n)
	return s, nil
}

func (d *realDecoder) getBytes() ([]byte, error) {
	n, err := d.getInt32()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}
	if n < 0 {
		return nil, PacketDecodingError{Info: "invalid negative length for byte-string"}
	}
	if err := d.need(int(n)); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, d.raw[d.off:d.off+int(n)])
	d.off += int(n)
	return b, nil
}

func (d *realDecoder) remaining() int {
	return len(d.raw) - d.off
}

func (d *realDecoder) getRawBytes(n int) ([]byte, error) {
	if err := d.need(n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, d.raw[d.off:d.off+n])
	d.off += n
	return b, nil
}
