package kafka

import "testing"

func TestEmptyMetadataRequestEnvelope(t *testing.T) {
	req := &request{
		correlationID: 1,
		clientID:      "libkafka",
		body:          &MetadataRequest{Topics: nil},
	}

	got, err := req.encode()
	if err != nil {
		t.Fatalf("encode failed: %s", err)
	}

	want := []byte{
		0x00, 0x00, 0x00, 0x16, // request_size = 22
		0x00, 0x03, // api_key = 3 (metadata)
		0x00, 0x00, // api_version = 0
		0x00, 0x00, 0x00, 0x01, // correlation_id = 1
		0x00, 0x08, 'l', 'i', 'b', 'k', 'a', 'f', 'k', 'a', // client_id
		0x00, 0x00, 0x00, 0x00, // num_topics = 0
	}

	if len(got) != 26 {
		t.Fatalf("expected a 26-byte frame, got %d bytes", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got 0x%02x, want 0x%02x\nfull got:  %x\nfull want: %x", i, got[i], want[i], got, want)
		}
	}
}
