package kafka

// ProducePartitionResponse is one partition's result inside a
// ProduceResponse (spec.md §4.3.5). BaseOffset is only meaningful when
// Err == ErrNoError.
type ProducePartitionResponse struct {
	PartitionID int32
	Err         KError
	BaseOffset  int64
}

// ProduceTopicResponse groups the partition results of a single topic.
type ProduceTopicResponse struct {
	Topic      string
	Partitions []ProducePartitionResponse
}

// ProduceResponse is the decoded shape of a Produce response body
// (spec.md §4.3.5).
type ProduceResponse struct {
	Topics []ProduceTopicResponse
}

// GetBlock returns the per-partition result for (topic, partition), or nil
// if the response didn't mention it (spec.md §4.6 step 5 and the
// "IncompleteResponse" handling modeled on signalfx-sarama's
// f.parent.returnErrors(msgs, ErrIncompleteResponse) path).
func (r *ProduceResponse) GetBlock(topic string, partition int32) *ProducePartitionResponse {
	for i := range r.Topics {
		if r.Topics[i].Topic != topic {
			continue
		}
		for j := range r.Topics[i].Partitions {
			if r.Topics[i].Partitions[j].PartitionID == partition {
				return &r.Topics[i].Partitions[j]
			}
		}
	}
	return nil
}

func (r *ProduceResponse) decode(pd packetDecoder) error {
	numTopics, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.Topics = make([]ProduceTopicResponse, numTopics)
	for i := range r.Topics {
		if r.Topics[i].Topic, err = pd.getString(); err != nil {
			return err
		}

		numPartitions, err := pd.getInt32()
		if err != nil {
			return err
		}
		r.Topics[i].Partitions = make([]ProducePartitionResponse, numPartitions)
		for j := range r.Topics[i].Partitions {
			part := &r.Topics[i].Partitions[j]
			if part.PartitionID, err = pd.getInt32(); err != nil {
				return err
			}

			errCode, err := pd.getInt16()
			if err != nil {
				return err
			}
			part.Err = KError(errCode)

			if part.BaseOffset, err = pd.getInt64(); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *ProduceResponse) encode(pe packetEncoder) error {
	pe.putInt32(int32(len(r.Topics)))
	for _, topic := range r.Topics {
		pe.putString(topic.Topic)

		pe.putInt32(int32(len(topic.Partitions)))
		for _, part := range topic.Partitions {
			pe.putInt32(part.PartitionID)
			pe.putInt16(int16(part.Err))
			pe.putInt64(part.BaseOffset)
		}
	}
	return nil
}
