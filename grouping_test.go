package kafka

import "testing"

func newTestTopology(leaderByPartition map[int32]int32) *topology {
	top := newTopology()
	seen := make(map[int32]bool)
	for _, leader := range leaderByPartition {
		if leader >= 0 && !seen[leader] {
			top.brokers[leader] = NewBroker(leader, "broker", 9092)
			seen[leader] = true
		}
	}
	partitions := make(map[int32]*PartitionMeta, len(leaderByPartition))
	for p, leader := range leaderByPartition {
		partitions[p] = &PartitionMeta{PartitionID: p, Leader: leader}
	}
	top.topics["test"] = &TopicMeta{
		Topic:         "test",
		NumPartitions: int32(len(leaderByPartition)),
		Partitions:    partitions,
	}
	return top
}

func TestGroupMessagesUnknownTopicIsFatal(t *testing.T) {
	top := newTestTopology(map[int32]int32{0: 1})
	msg := &Message{Topic: "missing"}

	grouping, failures := groupMessages(top, NewRandomPartitioner(), []*Message{msg})

	if len(grouping) != 0 {
		t.Fatalf("expected no grouping entries, got %+v", grouping)
	}
	if len(failures) != 1 || !failures[0].Fatal || failures[0].Err != ErrUnknownTopicOrPartition {
		t.Fatalf("unexpected failures: %+v", failures)
	}
}

func TestGroupMessagesUnresolvedLeaderIsRetryable(t *testing.T) {
	top := newTestTopology(map[int32]int32{0: -1})
	msg := &Message{Topic: "test"}
	msg.partition = 0
	msg.hasPartition = true

	grouping, failures := groupMessages(top, NewRandomPartitioner(), []*Message{msg})

	if len(grouping) != 0 {
		t.Fatalf("expected no grouping entries, got %+v", grouping)
	}
	if len(failures) != 1 || failures[0].Fatal || failures[0].Err != ErrLeaderNotAvailable {
		t.Fatalf("unexpected failures: %+v", failures)
	}
}

func TestGroupMessagesIntoThreeLevelStructure(t *testing.T) {
	top := newTestTopology(map[int32]int32{0: 1, 1: 2})

	m1 := &Message{Topic: "test"}
	m1.partition, m1.hasPartition = 0, true
	m2 := &Message{Topic: "test"}
	m2.partition, m2.hasPartition = 1, true
	m3 := &Message{Topic: "test"}
	m3.partition, m3.hasPartition = 0, true

	grouping, failures := groupMessages(top, NewRandomPartitioner(), []*Message{m1, m2, m3})
	if len(failures) != 0 {
		t.Fatalf("expected no failures, got %+v", failures)
	}

	if len(grouping[1]["test"][0]) != 2 {
		t.Errorf("expected 2 messages grouped under broker 1 / test / partition 0, got %d", len(grouping[1]["test"][0]))
	}
	if len(grouping[2]["test"][1]) != 1 {
		t.Errorf("expected 1 message grouped under broker 2 / test / partition 1, got %d", len(grouping[2]["test"][1]))
	}
	// Ordering within a partition's message set must match input order.
	if grouping[1]["test"][0][0] != m1 || grouping[1]["test"][0][1] != m3 {
		t.Error("messages within a partition were not preserved in input order")
	}
}

func TestGroupMessagesAssignsPartitionOnlyOnce(t *testing.T) {
	top := newTestTopology(map[int32]int32{0: 1, 1: 1})
	msg := &Message{Topic: "test"}

	_, failures := groupMessages(top, NewRandomPartitioner(), []*Message{msg})
	if len(failures) != 0 {
		t.Fatalf("expected no failures, got %+v", failures)
	}
	if !msg.hasPartition {
		t.Fatal("expected the partitioner to assign a partition")
	}
	assigned := msg.partition

	// A second grouping pass (as a retry attempt would perform) must not
	// re-randomize the partition already chosen for this message.
	groupMessages(top, NewRandomPartitioner(), []*Message{msg})
	if msg.partition != assigned {
		t.Errorf("partition changed across calls: %d -> %d", assigned, msg.partition)
	}
}
