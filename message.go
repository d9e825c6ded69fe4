package kafka

// Message is the immutable value an application hands to the producer
// (spec.md §3). Key is nil when absent, which is distinct from a non-nil
// zero-length key; Value is never nil on the wire (an absent value is not
// representable — only an absent key is).
type Message struct {
	Topic string
	Key   []byte // nil means absent
	Value []byte

	// set by the grouping transform (C7) once a partition has been chosen.
	partition int32
	hasPartition bool
}

// messageFixedOverhead is the byte count of everything in a framed message
// besides the key and value payloads: int64 offset + int32 message_size +
// int32 crc + int8 magic + int8 attributes + the 4-byte length prefixes of
// key and value (spec.md §4.3.4).
const messageFixedOverhead = 8 + 4 + 4 + 1 + 1 + 4 + 4

// byteSize estimates the number of bytes this message will occupy on the
// wire, including its own framing but not the enclosing message_set or
// partition/topic headers.
func (m *Message) byteSize() int {
	size := messageFixedOverhead
	size += len(m.Key)
	size += len(m.Value)
	return size
}

// encode writes this message's frame (spec.md §4.3.4: offset, message_size,
// crc, magic, attributes, key, value) to pe, back-patching message_size and
// crc once the payload is known.
func (m *Message) encode(pe packetEncoder) error {
	pe.putInt64(0) // offset is always 0 in a produce request

	sizeOffset := pe.reserveInt32()
	bodyStart := pe.offset()

	crcOffset := pe.reserveCRC32()
	crcCoverageStart := pe.offset()

	pe.putInt8(0) // magic
	pe.putInt8(0) // attributes: no compression (compression is a non-goal)
	pe.putBytes(m.Key)
	value := m.Value
	if value == nil {
		value = []byte{} // a nil Value goes out as present-but-empty
	}
	pe.putBytes(value)

	pe.patchCRC32(crcOffset, crcCoverageStart)
	pe.patchInt32(sizeOffset, int32(pe.offset()-bodyStart))

	return nil
}

// decodedMessage is the result of decoding a single framed message off the
// wire (used by tests verifying the round-trip law in spec.md §8; the
// producer itself never needs to decode messages it sent).
type decodedMessage struct {
	Offset      int64
	MessageSize int32
	CRC         uint32
	Magic       int8
	Attributes  int8
	Key         []byte
	Value       []byte
}

func decodeMessage(pd packetDecoder) (*decodedMessage, error) {
	m := &decodedMessage{}

	var err error
	if m.Offset, err = pd.getInt64(); err != nil {
		return nil, err
	}

	size, err := pd.getInt32()
	if err != nil {
		return nil, err
	}
	m.MessageSize = size

	crc, err := pd.getInt32()
	if err != nil {
		return nil, err
	}
	m.CRC = uint32(crc)

	if m.Magic, err = pd.getInt8(); err != nil {
		return nil, err
	}
	if m.Attributes, err = pd.getInt8(); err != nil {
		return nil, err
	}
	if m.Key, err = pd.getBytes(); err != nil {
		return nil, err
	}
	if m.Value, err = pd.getBytes(); err != nil {
		return nil, err
	}

	return m, nil
}
