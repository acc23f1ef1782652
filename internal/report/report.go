// Package report produces the Associator's periodic performance
// reports. The report cadence itself is gated by
// github.com/joeycumines/go-catrate's sliding-window Limiter
// (configured for exactly one event per report interval), and the
// per-interval/running-average figures follow the incremental-mean
// recurrence used by the original associator's performance report.
package report

import (
	"sync"
	"time"

	"github.com/joeycumines/go-catrate"
)

// Snapshot is the data logged by one completed report interval.
type Snapshot struct {
	Count          int64   // items dispatched since the last report
	TotalCount     int64   // cumulative items dispatched since Reporter creation
	ElapsedSeconds float64 // wall-clock time since the last report
	RatePerSecond  float64 // Count / ElapsedSeconds
	RunningAverage float64 // cumulative mean of RatePerSecond across all intervals
}

// Reporter accumulates Observe() calls and, once per configured
// interval, yields a Snapshot via Report().
type Reporter struct {
	limiter  *catrate.Limiter
	interval time.Duration

	mu              sync.Mutex
	lastReport      time.Time
	sinceCount      int64
	totalCount      int64
	runningAvgCount int64
	runningAvg      float64
}

// NewReporter constructs a Reporter that yields at most one Snapshot
// per interval.
func NewReporter(interval time.Duration) *Reporter {
	r := &Reporter{
		limiter:    catrate.NewLimiter(map[time.Duration]int{interval: 1}),
		interval:   interval,
		lastReport: time.Now(),
	}
	// Take the first slot now, so the first Snapshot comes one full
	// interval after creation rather than on the first Report call.
	r.limiter.Allow("report")
	return r
}

// Observe records that one item was dispatched.
func (r *Reporter) Observe() {
	r.mu.Lock()
	r.sinceCount++
	r.mu.Unlock()
}

// Report reports whether the configured interval has elapsed since the
// last successful Report call, returning a Snapshot and resetting the
// per-interval counters if so.
func (r *Reporter) Report() (Snapshot, bool) {
	if _, ok := r.limiter.Allow("report"); !ok {
		return Snapshot{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(r.lastReport).Seconds()
	count := r.sinceCount
	r.totalCount += count

	var rate float64
	if elapsed > 0 {
		rate = float64(count) / elapsed
	}

	r.runningAvgCount++
	if r.runningAvgCount == 1 {
		r.runningAvg = rate
	} else {
		r.runningAvg = (r.runningAvg*float64(r.runningAvgCount-1) + rate) / float64(r.runningAvgCount)
	}

	snap := Snapshot{
		Count:          count,
		TotalCount:     r.totalCount,
		ElapsedSeconds: elapsed,
		RatePerSecond:  rate,
		RunningAverage: r.runningAvg,
	}

	r.sinceCount = 0
	r.lastReport = now
	return snap, true
}
