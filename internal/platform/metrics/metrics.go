// Package metrics keeps lightweight in-process counters exposed on /metricsz.
package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64

	payrollRuns     uint64
	rowsCalculated  uint64
	rowsRejected    uint64
	payslipsEmailed uint64
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

// RecordPayrollRun counts one completed run with its accepted and rejected
// row totals.
func (c *Collector) RecordPayrollRun(calculated, rejected int) {
	atomic.AddUint64(&c.payrollRuns, 1)
	atomic.AddUint64(&c.rowsCalculated, uint64(calculated))
	atomic.AddUint64(&c.rowsRejected, uint64(rejected))
}

func (c *Collector) RecordPayslipEmailed() {
	atomic.AddUint64(&c.payslipsEmailed, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":        total,
		"errorsTotal":          atomic.LoadUint64(&c.errorRequests),
		"avgDurationMs":        avg,
		"totalDurationMs":      totalMs,
		"payrollRunsTotal":     atomic.LoadUint64(&c.payrollRuns),
		"rowsCalculatedTotal":  atomic.LoadUint64(&c.rowsCalculated),
		"rowsRejectedTotal":    atomic.LoadUint64(&c.rowsRejected),
		"payslipsEmailedTotal": atomic.LoadUint64(&c.payslipsEmailed),
	}
}
