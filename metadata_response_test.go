package kafka

import (
	"bytes"
	"testing"
)

// TestMetadataResponseRoundTrip is spec.md §8 concrete scenario 3: decode
// then re-encode must produce byte-identical output.
func TestMetadataResponseRoundTrip(t *testing.T) {
	resp := &MetadataResponse{
		Brokers: []BrokerInfo{
			{NodeID: 1, Host: "h1", Port: 9092},
			{NodeID: 2, Host: "h2", Port: 9092},
		},
		Topics: []TopicInfo{
			{
				Topic: "t",
				Partitions: []PartitionInfo{
					{PartitionID: 0, Leader: 1, Replicas: []int32{1, 2}, ISR: []int32{1, 2}},
					{PartitionID: 1, Leader: 2, Replicas: []int32{1, 2}, ISR: []int32{1, 2}},
				},
			},
		},
	}

	pe := newRealEncoder()
	if err := resp.encode(pe); err != nil {
		t.Fatalf("initial encode failed: %s", err)
	}
	original := pe.bytes()

	decoded := &MetadataResponse{}
	if err := decoded.decode(newRealDecoder(original)); err != nil {
		t.Fatalf("decode failed: %s", err)
	}

	pe2 := newRealEncoder()
	if err := decoded.encode(pe2); err != nil {
		t.Fatalf("re-encode failed: %s", err)
	}

	if !bytes.Equal(original, pe2.bytes()) {
		t.Fatalf("decode->encode is not byte-identical\noriginal:  %x\nre-encoded: %x", original, pe2.bytes())
	}
}
