package kafka

// ProduceGrouping is the transient, per-send-attempt structure C7 builds:
// broker-id -> topic -> partition-id -> the messages bound for it
// (spec.md §3's ProduceGrouping, §4.5). It is discarded once the attempt
// that built it completes.
type ProduceGrouping map[int32]map[string]map[int32][]*Message

// PartitionFailure is a (topic, partition) pair that failed during an
// attempt, driving retry selection (spec.md §3, §4.9). Fatal failures are
// never retried; the controller instead surfaces them immediately.
type PartitionFailure struct {
	Topic     string
	Partition int32
	Err       error
	Fatal     bool
}

func add(g ProduceGrouping, brokerID int32, topic string, partition int32, msg *Message) {
	byTopic, ok := g[brokerID]
	if !ok {
		byTopic = make(map[string]map[int32][]*Message)
		g[brokerID] = byTopic
	}
	byPartition, ok := byTopic[topic]
	if !ok {
		byPartition = make(map[int32][]*Message)
		byTopic[topic] = byPartition
	}
	byPartition[partition] = append(byPartition[partition], msg)
}

// groupMessages implements C7 (spec.md §4.5). For each message:
//  1. look up its topic; absent means a fatal, unretryable local failure.
//  2. choose a partition via partitioner (uniform random, spec.md §4.5 step 2).
//  3. resolve the partition's leader; unresolved means a retryable failure
//     for (topic, partition) this attempt.
//  4. insert into grouping[leader.id][topic][partition].
//
// Ordering within a single call is preserved per (broker, topic, partition)
// because messages are appended to the grouping in input order and the
// dispatcher (C8) serializes a partition's message_set in that same order
// (spec.md §5's ordering guarantee).
func groupMessages(top *topology, partitioner Partitioner, messages []*Message) (ProduceGrouping, []PartitionFailure) {
	grouping := make(ProduceGrouping)
	var failures []PartitionFailure

	for _, msg := range messages {
		tm, ok := top.topic(msg.Topic)
		if !ok || tm.Err != ErrNoError {
			failures = append(failures, PartitionFailure{
				Topic: msg.Topic,
				// Partition is unknown; -1 marks "no partition was ever
				// chosen": this failure is keyed by topic alone, not a
				// real partition.
				Partition: -1,
				Err:       ErrUnknownTopicOrPartition,
				Fatal:     true,
			})
			continue
		}

		if !msg.hasPartition {
			partition, err := partitioner.Partition(msg, tm.NumPartitions)
			if err != nil {
				failures = append(failures, PartitionFailure{Topic: msg.Topic, Partition: -1, Err: err, Fatal: true})
				continue
			}
			msg.partition = partition
			msg.hasPartition = true
		}

		top.mu.RLock()
		pm, havePartition := tm.Partitions[msg.partition]
		top.mu.RUnlock()

		if !havePartition || !pm.LeaderResolved() {
			failures = append(failures, PartitionFailure{
				Topic:     msg.Topic,
				Partition: msg.partition,
				Err:       ErrLeaderNotAvailable,
				Fatal:     false,
			})
			continue
		}

		add(grouping, pm.Leader, msg.Topic, msg.partition, msg)
	}

	return grouping, failures
}
