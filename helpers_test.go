package kafka

import (
	"bytes"
	"testing"
)

// testEncodable and testDecodable follow the teacher's utils_test.go
// convention: testEncodable encodes a value and compares it against a
// known-good wire fixture; testDecodable checks only that a fixture decodes
// without error.

type encodable interface {
	encode(pe packetEncoder) error
}

type decodable interface {
	decode(pd packetDecoder) error
}

func testEncodable(t *testing.T, name string, in encodable, expected []byte) {
	t.Helper()
	pe := newRealEncoder()
	if err := in.encode(pe); err != nil {
		t.Errorf("Failed to encode %s: %s", name, err)
	}
	if !bytes.Equal(pe.bytes(), expected) {
		t.Errorf("Encoding %s failed\ngot  %x\nwant %x", name, pe.bytes(), expected)
	}
}

func testDecodable(t *testing.T, name string, out decodable, in []byte) {
	t.Helper()
	pd := newRealDecoder(in)
	if err := out.decode(pd); err != nil {
		t.Errorf("Failed to decode %s: %s", name, err)
	}
}
