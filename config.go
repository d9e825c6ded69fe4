package kafka

import (
	"time"

	metrics "github.com/rcrowley/go-metrics"
)

// RequiredAcks is the acknowledgement policy for a produce request
// (spec.md §4.7). It is encoded on the wire as a signed int16.
type RequiredAcks int16

const (
	// NoResponse ("ASYNC"): the broker does not send a response at all.
	NoResponse RequiredAcks = 0
	// WaitForLocal ("SYNC"): wait for the leader to write to its local log.
	WaitForLocal RequiredAcks = 1
	// WaitForAll ("FULL_SYNC"): wait for all in-sync replicas to acknowledge.
	WaitForAll RequiredAcks = -1
)

// Config bundles every tunable of the producer. Grounded in the teacher's
// client.Config() accessor, trimmed to what this spec's core needs.
type Config struct {
	// ClientID is sent as the short_string client_id field of every request.
	ClientID string

	Producer struct {
		RequiredAcks RequiredAcks
		// Timeout is the broker-side produce timeout (wire timeout_ms).
		Timeout time.Duration
		Retry   struct {
			// Max is the bounded attempt count N from spec.md §4.9.
			Max int
			// Backoff paces the loop between retry attempts.
			Backoff time.Duration
		}
		// MetricRegistry receives per-broker request counters/timers if set.
		MetricRegistry metrics.Registry
	}

	Net struct {
		DialTimeout  time.Duration
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
	}

	Metadata struct {
		// RefreshBackoff is carried in the configuration but not read by
		// the client: NewClient makes a single bootstrap pass over the
		// candidate brokers, with no pause and no repeated attempt.
		RefreshBackoff time.Duration
	}
}

// NewConfig returns a Config populated with the defaults named throughout
// spec.md (1500ms produce timeout, at most 4 send attempts, ...).
func NewConfig() *Config {
	c := &Config{
		ClientID: "kafka-producer-core",
	}
	c.Producer.RequiredAcks = WaitForLocal
	c.Producer.Timeout = 1500 * time.Millisecond
	c.Producer.Retry.Max = 4
	c.Producer.Retry.Backoff = 100 * time.Millisecond
	c.Producer.MetricRegistry = metrics.NewRegistry()

	c.Net.DialTimeout = 30 * time.Second
	c.Net.ReadTimeout = 30 * time.Second
	c.Net.WriteTimeout = 30 * time.Second

	c.Metadata.RefreshBackoff = 250 * time.Millisecond

	return c
}

// Validate reports configuration errors before they can cause confusing
// failures later, in the style of Skandalik-sarama's NewMultiProducer checks.
func (c *Config) Validate() error {
	switch c.Producer.RequiredAcks {
	case NoResponse, WaitForLocal, WaitForAll:
	default:
		return ConfigurationError("Producer.RequiredAcks must be NoResponse, WaitForLocal or WaitForAll")
	}

	if c.Producer.Timeout < 0 {
		return ConfigurationError("Producer.Timeout must not be negative")
	}

	if c.Producer.Retry.Max < 0 {
		return ConfigurationError("Producer.Retry.Max must not be negative")
	}

	if c.ClientID == "" {
		return ConfigurationError("ClientID must not be empty")
	}

	if c.Producer.MetricRegistry == nil {
		c.Producer.MetricRegistry = metrics.NewRegistry()
	}

	return nil
}
