package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64

	submissions   uint64
	resubmissions uint64
	approvals     uint64
	rejections    uint64
	withdrawals   uint64
	promotions    uint64
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

func (c *Collector) Submission()   { atomic.AddUint64(&c.submissions, 1) }
func (c *Collector) Resubmission() { atomic.AddUint64(&c.resubmissions, 1) }
func (c *Collector) Approval()     { atomic.AddUint64(&c.approvals, 1) }
func (c *Collector) Rejection()    { atomic.AddUint64(&c.rejections, 1) }
func (c *Collector) Withdrawal()   { atomic.AddUint64(&c.withdrawals, 1) }
func (c *Collector) Promotion()    { atomic.AddUint64(&c.promotions, 1) }

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":      total,
		"errorsTotal":        atomic.LoadUint64(&c.errorRequests),
		"avgDurationMs":      avg,
		"submissionsTotal":   atomic.LoadUint64(&c.submissions),
		"resubmissionsTotal": atomic.LoadUint64(&c.resubmissions),
		"approvalsTotal":     atomic.LoadUint64(&c.approvals),
		"rejectionsTotal":    atomic.LoadUint64(&c.rejections),
		"withdrawalsTotal":   atomic.LoadUint64(&c.withdrawals),
		"promotionsTotal":    atomic.LoadUint64(&c.promotions),
	}
}
