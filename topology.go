package kafka

import "sync"

// PartitionMeta is the cached view of a single partition (spec.md §3).
// leader is stored as an id, not an owning reference, so that partitions
// never hold a pointer cycle back into the broker map — grounded on
// other_examples/0e4d3ed3_kfsong-sarama__broker_manager.go.go's
// partitionMetadata.leader int32 field and spec.md §9's "store brokers in a
// flat map keyed by broker_id ... partitions hold an int32 leader_id".
type PartitionMeta struct {
	PartitionID int32
	Leader      int32 // broker id; -1 if unresolved
	Replicas    []int32
	ISR         []int32
	Err         KError
}

// LeaderResolved reports whether this partition currently has a leader.
func (p *PartitionMeta) LeaderResolved() bool {
	return p.Err == ErrNoError && p.Leader >= 0
}

// TopicMeta is the cached view of a single topic (spec.md §3).
type TopicMeta struct {
	Topic         string
	NumPartitions int32
	Partitions    map[int32]*PartitionMeta
	Err           KError
}

// topology is the in-memory snapshot of brokers and topic metadata
// (spec.md §3's Topology type and C5). It is rebuilt atomically as a unit:
// buildTopology below always constructs a complete new value before it
// replaces the one a Client holds, so a partially-built topology from a
// failed bootstrap is never observed (spec.md §4.9).
type topology struct {
	mu      sync.RWMutex
	brokers map[int32]*Broker
	topics  map[string]*TopicMeta
}

func newTopology() *topology {
	return &topology{
		brokers: make(map[int32]*Broker),
		topics:  make(map[string]*TopicMeta),
	}
}

func (t *topology) broker(id int32) (*Broker, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	b, ok := t.brokers[id]
	return b, ok
}

func (t *topology) topic(name string) (*TopicMeta, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	tm, ok := t.topics[name]
	return tm, ok
}

// teardown closes every broker connection owned by this topology
// (spec.md §4.9: "Teardown closes all broker sockets owned by the
// topology, frees partition tables, then rebuilds").
func (t *topology) teardown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, b := range t.brokers {
		_ = b.Close()
	}
	t.brokers = nil
	t.topics = nil
}

// buildTopology converts a decoded MetadataResponse into a fresh topology,
// opening (or adopting) a connection for every broker it names (spec.md
// §4.4 step 3). It never mutates an existing topology in place.
func buildTopology(conf *Config, resp *MetadataResponse) (*topology, error) {
	t := newTopology()

	for _, bi := range resp.Brokers {
		b := NewBroker(bi.NodeID, bi.Host, bi.Port)
		if err := b.Open(conf); err != nil {
			// A single unreachable broker from the response doesn't fail
			// bootstrap outright; it will simply be unusable as a leader
			// until the next refresh, mirroring spec.md §4.4's tolerance
			// of individual broker connection failures.
			Logger.Printf("kafka: failed to open connection to broker %d (%s): %s\n", bi.NodeID, b.Addr(), err)
		}
		t.brokers[bi.NodeID] = b
	}

	for _, ti := range resp.Topics {
		tm := &TopicMeta{
			Topic:         ti.Topic,
			NumPartitions: int32(len(ti.Partitions)),
			Partitions:    make(map[int32]*PartitionMeta, len(ti.Partitions)),
			Err:           ti.Err,
		}
		for _, pi := range ti.Partitions {
			tm.Partitions[pi.PartitionID] = &PartitionMeta{
				PartitionID: pi.PartitionID,
				Leader:      pi.Leader,
				Replicas:    pi.Replicas,
				ISR:         pi.ISR,
				Err:         pi.Err,
			}
		}
		t.topics[ti.Topic] = tm
	}

	return t, nil
}
