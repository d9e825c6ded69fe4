package kafka

// MetadataRequest asks a broker for cluster topology. An empty Topics list
// means "all topics" (spec.md §4.3.2, tested explicitly by §8 boundary
// behaviors).
type MetadataRequest struct {
	Topics []string
}

func (r *MetadataRequest) key() int16 {
	return apiKeyMetadata
}

func (r *MetadataRequest) encode(pe packetEncoder) error {
	pe.putInt32(int32(len(r.Topics)))
	for _, topic := range r.Topics {
		pe.putString(topic)
	}
	return nil
}

func (r *MetadataRequest) decode(pd packetDecoder) error {
	n, err := pd.getInt32()
	if err != nil {
		return err
	}
	if n < 0 {
		return PacketDecodingError{Info: "negative num_topics in metadata request"}
	}
	r.Topics = make([]string, n)
	for i := range r.Topics {
		if r.Topics[i], err = pd.getString(); err != nil {
			return err
		}
	}
	return nil
}
