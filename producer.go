package kafka

// Producer is the public entry point of this package: spec.md §6's
// producer_open/producer_send/producer_close veneer over the lower-level
// Client, grouping, dispatch and retry machinery. Grounded on
// Skandalik-sarama/multiproducer.go's MultiProducer shape (NewMultiProducer,
// SendMessage/SendMessages, Close) adapted to a synchronous, single-actor
// send path rather than its channel-fed goroutine pool.
type Producer struct {
	client      *Client
	conf        *Config
	partitioner Partitioner
}

// NewProducer opens a Producer against the coordination service, bootstraps
// its topology, and returns it ready to send (spec.md §4.4, §6's
// producer_open). The Producer takes over cc (Close closes it); conf may be
// nil to use NewConfig()'s defaults.
func NewProducer(cc CoordinationClient, conf *Config) (*Producer, error) {
	client, err := NewClient(cc, conf)
	if err != nil {
		return nil, err
	}
	return &Producer{
		client:      client,
		conf:        client.Config(),
		partitioner: NewRandomPartitioner(),
	}, nil
}

// SetPartitioner overrides the default uniform-random partitioner (spec.md
// §9's keyed-partitioning open question; see DESIGN.md for why this
// package leaves the decision to callers instead of picking one).
func (p *Producer) SetPartitioner(partitioner Partitioner) {
	p.partitioner = partitioner
}

// NewMessage constructs an unkeyed message bound to topic, letting the
// partitioner choose its partition (spec.md §6's message_new).
func NewMessage(topic string, value []byte) *Message {
	return &Message{Topic: topic, Value: value}
}

// NewKeyedMessage constructs a message carrying both a key and a value
// (spec.md §6's keyed_message_new). The key is carried on the wire but, per
// spec.md §9's open question, does not currently influence partition
// selection.
func NewKeyedMessage(topic string, key, value []byte) *Message {
	return &Message{Topic: topic, Key: key, Value: value}
}

// SendMessage sends a single message and reports the outcome (spec.md §6's
// producer_send). It is a thin wrapper over SendMessages for callers that
// don't want to build a slice themselves.
func (p *Producer) SendMessage(msg *Message) ProducerStatus {
	_, status := p.Send([]*Message{msg})
	return status
}

// SendMessages sends a batch of messages through the grouping, dispatch,
// and bounded-retry pipeline (spec.md §6's producer_send_batch, §4.5-§4.9).
// The returned failures, if any, are the ones that survived every retry
// attempt or were fatal on first sight.
func (p *Producer) SendMessages(messages []*Message) ([]PartitionFailure, ProducerStatus) {
	return p.Send(messages)
}

// Client exposes the underlying topology-owning Client, for callers that
// need direct access to Leader/Partitions/Refresh.
func (p *Producer) Client() *Client {
	return p.client
}

// Close releases the Producer's Client and every broker connection it owns
// (spec.md §6's producer_close).
func (p *Producer) Close() error {
	return p.client.Close()
}
