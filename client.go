package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Client owns the topology cache and drives its bootstrap/refresh
// (spec.md §4.4's C6). It is the one logical actor of spec.md §5: a single
// send runs to completion before another starts, and the topology is only
// ever rebuilt between attempts, never concurrently with a dispatch.
type Client struct {
	conf *Config
	cc   CoordinationClient

	mu  sync.Mutex // guards top; serializes bootstrap/refresh against reads
	top *topology

	stale int32 // set by the optional watcher, cleared by Refresh; read by Stale

	watchCancel context.CancelFunc
}

// NewClient bootstraps a Client's initial topology from the coordination
// service (spec.md §4.4). Individual broker connection failures are
// tolerated as long as at least one broker answers the metadata request;
// if none do, bootstrap fails with StatusMetadataError.
func NewClient(cc CoordinationClient, conf *Config) (*Client, error) {
	if conf == nil {
		conf = NewConfig()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	c := &Client{conf: conf, cc: cc}

	top, err := bootstrap(conf, cc)
	if err != nil {
		return nil, fmt.Errorf("kafka: %w: %s", StatusMetadataError, err)
	}
	c.top = top

	return c, nil
}

// bootstrap implements spec.md §4.4 steps 1-3: fetch the candidate broker
// list from the coordination service, then try each in order until one
// answers a Metadata request with an empty topic list ("all topics").
func bootstrap(conf *Config, cc CoordinationClient) (*topology, error) {
	candidates, err := bootstrapBrokerList(cc)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, cand := range candidates {
		b := NewBroker(cand.NodeID, cand.Host, cand.Port)
		if err := b.Open(conf); err != nil {
			lastErr = err
			Logger.Printf("kafka: bootstrap candidate %s unreachable: %s\n", b.Addr(), err)
			continue
		}

		resp, err := b.Metadata(conf.ClientID, nil)
		_ = b.Close()
		if err != nil {
			lastErr = err
			Logger.Printf("kafka: bootstrap candidate %s metadata request failed: %s\n", b.Addr(), err)
			continue
		}

		return buildTopology(conf, resp)
	}

	if lastErr == nil {
		lastErr = errors.New("no candidate brokers were available")
	}
	return nil, lastErr
}

// Refresh tears down the current topology and rebuilds it from scratch.
// spec.md §4.9: invoked only between retry attempts, never concurrently
// with a send in progress; the mutex here enforces that for any other
// caller of this Client as well.
func (c *Client) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.top
	newTop, err := bootstrap(c.conf, c.cc)
	if err != nil {
		// old topology is left untouched; the caller keeps operating
		// against it (or fails the send, per the retry controller).
		return err
	}

	if old != nil {
		old.teardown()
	}
	c.top = newTop
	atomic.StoreInt32(&c.stale, 0)
	return nil
}

// topologySnapshot returns the Client's current topology under lock.
func (c *Client) topologySnapshot() *topology {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.top
}

// Brokers returns every broker known to the current topology.
func (c *Client) Brokers() []*Broker {
	top := c.topologySnapshot()
	top.mu.RLock()
	defer top.mu.RUnlock()
	out := make([]*Broker, 0, len(top.brokers))
	for _, b := range top.brokers {
		out = append(out, b)
	}
	return out
}

// Leader returns the broker currently recorded as leader of (topic,
// partition), or an error if the topic is unknown or the partition has no
// resolved leader (spec.md §4.5 step 3).
func (c *Client) Leader(topic string, partition int32) (*Broker, error) {
	top := c.topologySnapshot()
	tm, ok := top.topic(topic)
	if !ok {
		return nil, ErrUnknownTopicOrPartition
	}
	top.mu.RLock()
	pm, ok := tm.Partitions[partition]
	top.mu.RUnlock()
	if !ok || !pm.LeaderResolved() {
		return nil, ErrLeaderNotAvailable
	}
	b, ok := top.broker(pm.Leader)
	if !ok {
		return nil, ErrLeaderNotAvailable
	}
	return b, nil
}

// Partitions returns the partition ids of topic as currently cached.
func (c *Client) Partitions(topic string) ([]int32, error) {
	top := c.topologySnapshot()
	tm, ok := top.topic(topic)
	if !ok {
		return nil, ErrUnknownTopicOrPartition
	}
	top.mu.RLock()
	defer top.mu.RUnlock()
	out := make([]int32, 0, len(tm.Partitions))
	for id := range tm.Partitions {
		out = append(out, id)
	}
	return out, nil
}

// Config returns the Client's configuration, in the teacher's
// client.Config() idiom (see admin.go's ca.client.Config() call sites).
func (c *Client) Config() *Config {
	return c.conf
}

// Stale reports whether the optional watcher (SPEC_FULL's supplemented
// feature, grounded on original_source/src/producer/watchers.c) has seen a
// coordination-service change since the last refresh.
func (c *Client) Stale() bool {
	return atomic.LoadInt32(&c.stale) != 0
}

// Watch starts a background goroutine that polls the coordination
// service's broker-ids and brokers-topics namespaces and marks the
// topology stale on any change, without itself touching the topology —
// only the next Refresh (driven by the retry controller between send
// attempts) rebuilds it. This preserves spec.md §5's single-actor guarantee
// for the send path itself. Grounded on
// original_source/src/producer/watchers.c's producer_watch_broker_topics,
// which watches /brokers/topics for topic/partition changes rather than
// the broker-ids count alone; both roots are polled here since either one
// changing can invalidate the cached topology. Stop by cancelling ctx.
func (c *Client) Watch(ctx context.Context, pollInterval time.Duration) {
	watchCtx, cancel := context.WithCancel(ctx)
	c.watchCancel = cancel

	go func() {
		lastBrokerCount := -1
		lastTopicCount := -1
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-watchCtx.Done():
				return
			case <-ticker.C:
				brokers, err := c.cc.ListChildren(BrokerIDsPath)
				if err != nil {
					continue
				}
				if lastBrokerCount != -1 && len(brokers) != lastBrokerCount {
					atomic.StoreInt32(&c.stale, 1)
					Logger.Printf("kafka: coordination watcher observed broker count change %d -> %d, marking topology stale\n", lastBrokerCount, len(brokers))
				}
				lastBrokerCount = len(brokers)

				topics, err := c.cc.ListChildren(BrokerTopicsPath)
				if err != nil {
					continue
				}
				if lastTopicCount != -1 && len(topics) != lastTopicCount {
					atomic.StoreInt32(&c.stale, 1)
					Logger.Printf("kafka: coordination watcher observed topic count change %d -> %d, marking topology stale\n", lastTopicCount, len(topics))
				}
				lastTopicCount = len(topics)
			}
		}
	}()
}

// Close tears down the topology and the coordination-service connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watchCancel != nil {
		c.watchCancel()
	}
	if c.top != nil {
		c.top.teardown()
	}
	if c.cc != nil {
		c.cc.Close()
	}
	return nil
}
