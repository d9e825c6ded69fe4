package kafka

// BrokerInfo is a single broker descriptor as it appears inside a metadata
// response (spec.md §4.3.3).
type BrokerInfo struct {
	NodeID int32
	Host   string
	Port   int32
}

// PartitionInfo describes one partition of one topic inside a metadata
// response (spec.md §4.3.3, and the PartitionMeta data model of §3).
type PartitionInfo struct {
	Err         KError
	PartitionID int32
	Leader      int32
	Replicas    []int32
	ISR         []int32
}

// TopicInfo describes one topic inside a metadata response.
type TopicInfo struct {
	Err        KError
	Topic      string
	Partitions []PartitionInfo
}

// MetadataResponse is the decoded shape of a Metadata response body
// (spec.md §4.3.3), grounded on
// other_examples/8cd90e22_sundy-li-healer__metadata_response.go.go's
// Broker/TopicMetadata/PartitionMetadata nesting.
type MetadataResponse struct {
	Brokers []BrokerInfo
	Topics  []TopicInfo
}

func (r *MetadataResponse) decode(pd packetDecoder) error {
	numBrokers, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.Brokers = make([]BrokerInfo, numBrokers)
	for i := range r.Brokers {
		if r.Brokers[i].NodeID, err = pd.getInt32(); err != nil {
			return err
		}
		if r.Brokers[i].Host, err = pd.getString(); err != nil {
			return err
		}
		if r.Brokers[i].Port, err = pd.getInt32(); err != nil {
			return err
		}
	}

	numTopics, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.Topics = make([]TopicInfo, numTopics)
	for i := range r.Topics {
		topic := &r.Topics[i]

		errCode, err := pd.getInt16()
		if err != nil {
			return err
		}
		topic.Err = KError(errCode)

		if topic.Topic, err = pd.getString(); err != nil {
			return err
		}

		numPartitions, err := pd.getInt32()
		if err != nil {
			return err
		}
		topic.Partitions = make([]PartitionInfo, numPartitions)
		for j := range topic.Partitions {
			part := &topic.Partitions[j]

			pErrCode, err := pd.getInt16()
			if err != nil {
				return err
			}
			part.Err = KError(pErrCode)

			if part.PartitionID, err = pd.getInt32(); err != nil {
				return err
			}
			if part.Leader, err = pd.getInt32(); err != nil {
				return err
			}

			numReplicas, err := pd.getInt32()
			if err != nil {
				return err
			}
			part.Replicas = make([]int32, numReplicas)
			for k := range part.Replicas {
				if part.Replicas[k], err = pd.getInt32(); err != nil {
					return err
				}
			}

			numISR, err := pd.getInt32()
			if err != nil {
				return err
			}
			part.ISR = make([]int32, numISR)
			for k := range part.ISR {
				if part.ISR[k], err = pd.getInt32(); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (r *MetadataResponse) encode(pe packetEncoder) error {
	pe.putInt32(int32(len(r.Brokers)))
	for _, b := range r.Brokers {
		pe.putInt32(b.NodeID)
		pe.putString(b.Host)
		pe.putInt32(b.Port)
	}

	pe.putInt32(int32(len(r.Topics)))
	for _, topic := range r.Topics {
		pe.putInt16(int16(topic.Err))
		pe.putString(topic.Topic)

		pe.putInt32(int32(len(topic.Partitions)))
		for _, part := range topic.Partitions {
			pe.putInt16(int16(part.Err))
			pe.putInt32(part.PartitionID)
			pe.putInt32(part.Leader)

			pe.putInt32(int32(len(part.Replicas)))
			for _, r := range part.Replicas {
				pe.putInt32(r)
			}

			pe.putInt32(int32(len(part.ISR)))
			for _, id := range part.ISR {
				pe.putInt32(id)
			}
		}
	}

	return nil
}
