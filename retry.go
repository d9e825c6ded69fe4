package kafka

import (
	"time"
)

// Send implements spec.md §4.9's bounded retry controller: it groups
// messages, dispatches one attempt, and — for every retryable failure —
// refreshes the topology and retries only the messages still outstanding,
// up to conf.Producer.Retry.Max attempts. Fatal failures are never
// retried; they are reported immediately in the returned failure list.
//
// Grounded on other_examples/0e4d3ed3_kfsong-sarama__broker_manager.go.go's
// synchronous retry loop and spec.md §4.9's pseudocode; unlike the
// teacher's async_producer.go, there is no background retryHandler
// goroutine — the controller runs entirely on the caller's goroutine,
// matching spec.md §5's single-actor model.
func (p *Producer) Send(messages []*Message) ([]PartitionFailure, ProducerStatus) {
	if len(messages) == 0 {
		return nil, StatusOK
	}

	remaining := messages
	var fatal []PartitionFailure

	maxAttempts := p.conf.Producer.Retry.Max
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if p.conf.Producer.Retry.Backoff > 0 {
				time.Sleep(p.conf.Producer.Retry.Backoff)
			}
			if err := p.client.Refresh(); err != nil {
				// spec.md §4.9/§7: a bootstrap failure during refresh is
				// fatal to the whole send, not just this attempt.
				Logger.Printf("kafka: topology refresh before retry attempt %d failed: %s\n", attempt+1, err)
				return fatal, StatusMetadataError
			}
		}

		top := p.client.topologySnapshot()
		grouping, groupFailures := groupMessages(top, p.partitioner, remaining)

		var dispatchFailures []PartitionFailure
		if len(grouping) > 0 {
			dispatchFailures = dispatch(p.client, p.conf, grouping)
		}

		allFailures := append(groupFailures, dispatchFailures...)
		if len(allFailures) == 0 {
			if len(fatal) > 0 {
				// An earlier attempt rejected some messages outright.
				return fatal, StatusProducerError
			}
			return nil, StatusOK
		}

		retryable := make(map[string]map[int32]bool)
		for _, f := range allFailures {
			if f.Fatal {
				fatal = append(fatal, f)
				continue
			}
			byPartition, ok := retryable[f.Topic]
			if !ok {
				byPartition = make(map[int32]bool)
				retryable[f.Topic] = byPartition
			}
			byPartition[f.Partition] = true
		}

		if len(retryable) == 0 {
			// Every failure this attempt was fatal; nothing left to retry.
			return fatal, StatusProducerError
		}

		next := remaining[:0:0]
		for _, msg := range remaining {
			byPartition, ok := retryable[msg.Topic]
			if !ok {
				continue
			}
			if msg.hasPartition && !byPartition[msg.partition] {
				continue
			}
			next = append(next, msg)
		}
		remaining = next

		if len(remaining) == 0 {
			return fatal, StatusProducerError
		}

		if attempt == maxAttempts-1 {
			for topic, byPartition := range retryable {
				for partition := range byPartition {
					fatal = append(fatal, PartitionFailure{Topic: topic, Partition: partition, Err: ErrRequestTimedOut, Fatal: true})
				}
			}
			return fatal, StatusRetryExhausted
		}
	}

	return fatal, StatusRetryExhausted
}
