package kafka

import (
	"fmt"
	"time"

	metrics "github.com/rcrowley/go-metrics"
)

// registerBrokerMetrics wires up the per-broker meters the dispatcher
// updates (spec.md's Domain Stack: SPEC_FULL.md wires go-metrics, the
// teacher's own metrics dependency, into the send hot path rather than
// leaving it unused). Safe to call repeatedly; go-metrics registries are
// idempotent on GetOrRegister.
func registerBrokerMetrics(reg metrics.Registry, brokerID int32) (metrics.Meter, metrics.Timer) {
	requestRate := metrics.GetOrRegisterMeter(fmt.Sprintf("broker-%d-produce-rate", brokerID), reg)
	requestLatency := metrics.GetOrRegisterTimer(fmt.Sprintf("broker-%d-produce-latency", brokerID), reg)
	return requestRate, requestLatency
}

// timeRequest marks a broker's request meter and records its latency,
// mirroring the teacher's consumer.go use of go-metrics timers around
// blocking network calls.
func timeRequest(reg metrics.Registry, brokerID int32, fn func() error) error {
	rate, timer := registerBrokerMetrics(reg, brokerID)
	rate.Mark(1)
	start := time.Now()
	err := fn()
	timer.Update(time.Since(start))
	return err
}
