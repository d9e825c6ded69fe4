package kafka

// dispatch implements C8 (spec.md §4.6): for each broker named in the
// grouping, build one ProduceRequest covering every topic/partition bound
// to it, send it, and record every (topic, partition) the broker reported
// as failed. Grounded on
// other_examples/0e4d3ed3_kfsong-sarama__broker_manager.go.go's synchronous
// sendToPartition/sendToAny flow rather than the teacher's channel-based
// aggregator/flusher pipeline — see DESIGN.md for why.
func dispatch(client *Client, conf *Config, grouping ProduceGrouping) []PartitionFailure {
	var failures []PartitionFailure

	for brokerID, byTopic := range grouping {
		broker, ok := client.topologySnapshot().broker(brokerID)
		if !ok {
			failures = append(failures, failEveryPartition(byTopic, ErrBrokerNotAvailable, false)...)
			continue
		}

		req := &ProduceRequest{
			RequiredAcks: conf.Producer.RequiredAcks,
			TimeoutMs:    int32(conf.Producer.Timeout.Milliseconds()),
		}
		for topic, byPartition := range byTopic {
			for partition, msgs := range byPartition {
				for _, msg := range msgs {
					req.AddMessage(topic, partition, msg)
				}
			}
		}

		var resp *ProduceResponse
		err := timeRequest(conf.Producer.MetricRegistry, brokerID, func() error {
			var produceErr error
			resp, produceErr = broker.Produce(conf.ClientID, req)
			return produceErr
		})
		if err != nil {
			Logger.Printf("kafka: produce request to broker %d failed: %s\n", brokerID, err)
			failures = append(failures, failEveryPartition(byTopic, ErrBrokerNotAvailable, false)...)
			continue
		}

		if resp == nil {
			// conf.Producer.RequiredAcks == NoResponse: no response is
			// expected, the request is tentatively successful
			// (spec.md §4.6 step 5).
			continue
		}

		for topic, byPartition := range byTopic {
			for partition, msgs := range byPartition {
				block := resp.GetBlock(topic, partition)
				if block == nil {
					failures = append(failures, PartitionFailure{
						Topic: topic, Partition: partition, Err: ErrUnknownTopicOrPartition, Fatal: false,
					})
					continue
				}
				if block.Err == ErrNoError {
					assignOffsets(msgs, block.BaseOffset)
					continue
				}
				failures = append(failures, PartitionFailure{
					Topic: topic, Partition: partition, Err: block.Err, Fatal: block.Err.IsFatal(),
				})
			}
		}
	}

	return failures
}

// failEveryPartition marks every (topic, partition) present in byTopic as
// failed with the given error (spec.md §4.6 step 1: a missing broker fails
// every topic/partition bound to it; §7: "socket write/read errors are
// treated as if every (topic, partition) in the affected request failed
// with a retryable code").
func failEveryPartition(byTopic map[string]map[int32][]*Message, err KError, fatal bool) []PartitionFailure {
	var out []PartitionFailure
	for topic, byPartition := range byTopic {
		for partition := range byPartition {
			out = append(out, PartitionFailure{Topic: topic, Partition: partition, Err: err, Fatal: fatal})
		}
	}
	return out
}

// assignOffsets is a no-op: Message has no Offset field (offsets aren't
// part of spec.md's data model), so the base offset a successful partition
// response reports is discarded. It marks the spot where
// signalfx-sarama/async_producer.go sets msgs[i].Offset = block.Offset +
// int64(i).
func assignOffsets(_ []*Message, _ int64) {}
