package kafka

// produceRequestPartition is one partition's worth of messages inside a
// ProduceRequest.
type produceRequestPartition struct {
	PartitionID int32
	Messages    []*Message
}

// produceRequestTopic groups the partitions of a single topic.
type produceRequestTopic struct {
	Topic      string
	Partitions []produceRequestPartition
}

// ProduceRequest is the canonical in-memory shape of spec.md §3's "Produce
// request on the wire" and §4.3.4's body. It is built per-broker by the
// dispatcher (C8) from the grouping transform's output.
type ProduceRequest struct {
	RequiredAcks RequiredAcks
	TimeoutMs    int32
	Topics       []produceRequestTopic
}

// AddMessage appends a message to the named topic/partition, creating the
// topic and partition entries as needed. Grounded in the teacher's
// ProduceRequest.AddMessage idiom (see async_producer.go's
// req.AddMessage(topic, partition, msg) call sites).
func (r *ProduceRequest) AddMessage(topic string, partition int32, msg *Message) {
	for i := range r.Topics {
		if r.Topics[i].Topic != topic {
			continue
		}
		for j := range r.Topics[i].Partitions {
			if r.Topics[i].Partitions[j].PartitionID == partition {
				r.Topics[i].Partitions[j].Messages = append(r.Topics[i].Partitions[j].Messages, msg)
				return
			}
		}
		r.Topics[i].Partitions = append(r.Topics[i].Partitions, produceRequestPartition{
			PartitionID: partition,
			Messages:    []*Message{msg},
		})
		return
	}
	r.Topics = append(r.Topics, produceRequestTopic{
		Topic: topic,
		Partitions: []produceRequestPartition{{
			PartitionID: partition,
			Messages:    []*Message{msg},
		}},
	})
}

func (r *ProduceRequest) key() int16 {
	return apiKeyProduce
}

// encode writes the produce request body per spec.md §4.3.4: acks,
// timeout_ms, then for each topic/partition a back-patched
// message_set_size followed by the concatenated framed messages.
func (r *ProduceRequest) encode(pe packetEncoder) error {
	pe.putInt16(int16(r.RequiredAcks))
	pe.putInt32(r.TimeoutMs)

	pe.putInt32(int32(len(r.Topics)))
	for _, topic := range r.Topics {
		pe.putString(topic.Topic)

		pe.putInt32(int32(len(topic.Partitions)))
		for _, part := range topic.Partitions {
			pe.putInt32(part.PartitionID)

			sizeOffset := pe.reserveInt32()
			setStart := pe.offset()

			for _, msg := range part.Messages {
				if err := msg.encode(pe); err != nil {
					return err
				}
			}

			pe.patchInt32(sizeOffset, int32(pe.offset()-setStart))
		}
	}

	return nil
}

// decode parses a produce request body, used by tests verifying the
// round-trip law of spec.md §8 and by any in-memory fake broker.
func (r *ProduceRequest) decode(pd packetDecoder) error {
	acks, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.RequiredAcks = RequiredAcks(acks)

	if r.TimeoutMs, err = pd.getInt32(); err != nil {
		return err
	}

	numTopics, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.Topics = make([]produceRequestTopic, numTopics)
	for i := range r.Topics {
		if r.Topics[i].Topic, err = pd.getString(); err != nil {
			return err
		}

		numPartitions, err := pd.getInt32()
		if err != nil {
			return err
		}
		r.Topics[i].Partitions = make([]produceRequestPartition, numPartitions)
		for j := range r.Topics[i].Partitions {
			part := &r.Topics[i].Partitions[j]
			if part.PartitionID, err = pd.getInt32(); err != nil {
				return err
			}

			setSize, err := pd.getInt32()
			if err != nil {
				return err
			}
			setBytes, err := pd.getRawBytes(int(setSize))
			if err != nil {
				return err
			}
			setDecoder := newRealDecoder(setBytes)
			for setDecoder.remaining() > 0 {
				dm, err := decodeMessage(setDecoder)
				if err != nil {
					return err
				}
				part.Messages = append(part.Messages, &Message{Key: dm.Key, Value: dm.Value})
			}
		}
	}

	return nil
}
