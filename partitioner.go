package kafka

import "math/rand"

// Partitioner chooses which of a topic's partitions a message should land
// on. spec.md §4.5 step 2 pins the policy to uniform random and leaves
// keyed/deterministic partitioning as an open question (spec.md §9) that
// this repository does not settle — see DESIGN.md. The interface itself is
// grounded on Skandalik-sarama's Partitioner/NewRandomPartitioner shape, so
// a future keyed partitioner can be added without touching the grouping
// transform.
type Partitioner interface {
	// Partition chooses an index in [0, numPartitions) for the message.
	Partition(msg *Message, numPartitions int32) (int32, error)
}

type randomPartitioner struct{}

// NewRandomPartitioner returns the partitioner spec.md §4.5 mandates:
// uniform random over [0, numPartitions).
func NewRandomPartitioner() Partitioner {
	return randomPartitioner{}
}

func (randomPartitioner) Partition(_ *Message, numPartitions int32) (int32, error) {
	if numPartitions <= 0 {
		return -1, ErrLeaderNotAvailable
	}
	return int32(rand.Intn(int(numPartitions))), nil
}
