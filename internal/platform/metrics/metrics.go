package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64
	distributions   uint64
	periodsCreated  uint64
	cancellations   uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordDistribution(periodsCreated int) {
	atomic.AddUint64(&c.distributions, 1)
	atomic.AddUint64(&c.periodsCreated, uint64(periodsCreated))
}

func (c *Collector) RecordCancellations(count int) {
	atomic.AddUint64(&c.cancellations, uint64(count))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":       total,
		"errorsTotal":         atomic.LoadUint64(&c.errorRequests),
		"avgDurationMs":       avg,
		"distributionsTotal":  atomic.LoadUint64(&c.distributions),
		"periodsCreatedTotal": atomic.LoadUint64(&c.periodsCreated),
		"cancellationsTotal":  atomic.LoadUint64(&c.cancellations),
	}
}
