package kafka

import "testing"

func TestRandomPartitionerStaysInRange(t *testing.T) {
	p := NewRandomPartitioner()
	for i := 0; i < 100; i++ {
		part, err := p.Partition(&Message{}, 5)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if part < 0 || part >= 5 {
			t.Fatalf("partition %d out of range [0,5)", part)
		}
	}
}

func TestRandomPartitionerRejectsZeroPartitions(t *testing.T) {
	p := NewRandomPartitioner()
	if _, err := p.Partition(&Message{}, 0); err == nil {
		t.Error("expected an error when a topic has zero partitions")
	}
}
