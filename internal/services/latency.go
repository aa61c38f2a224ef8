package services

import (
	"math/rand/v2"
	"time"

	"github.com/huangang/taskflow/internal/config"
)

// Latency simulates the network round-trip of a real backend in front of
// every store operation. A zero Max disables the delay entirely, which is
// how tests run. There is no cancellation path: a dispatched operation runs
// to completion.
type Latency struct {
	Min time.Duration
	Max time.Duration
}

// LatencyFromConfig builds the store latency from configuration.
func LatencyFromConfig(cfg *config.StoreConfig) Latency {
	return Latency{
		Min: time.Duration(cfg.LatencyMinMs) * time.Millisecond,
		Max: time.Duration(cfg.LatencyMaxMs) * time.Millisecond,
	}
}

// Wait blocks for a random duration in [Min, Max].
func (l Latency) Wait() {
	if l.Max <= 0 {
		return
	}
	d := l.Min
	if l.Max > l.Min {
		d += rand.N(l.Max - l.Min)
	}
	time.Sleep(d)
}
