// Package worker implements the supervised cooperative worker loop
// shared by every pipeline stage (Input, Associator, Output) and the
// thread pool. Its lifecycle plumbing (a stop channel closed under
// sync.Once, plus a done channel) follows the same shape as
// github.com/joeycumines/go-microbatch's Batcher, generalized from a
// channel-driven batch accumulator to a polling work() tick loop.
package worker

import (
	"sync"
	"sync/atomic"
	"time"
)

// State is one of the WorkerState machine's five values. Transitions
// are monotonic except that Stopped may re-enter Starting (via a
// second Start call).
type State int32

const (
	Initialized State = iota
	Starting
	Started
	Stopping
	Stopped
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "Initialized"
	case Starting:
		return "Starting"
	case Started:
		return "Started"
	case Stopping:
		return "Stopping"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Result is returned by a single invocation of Work.
type Result int

const (
	Idle Result = iota
	OK
	Error
)

// Default tunables, per spec.
const (
	DefaultSleep          = 100 * time.Millisecond
	DefaultHealthInterval = 30 * time.Second
)

// Work is implemented by the caller to perform one tick's worth of
// work. It must not block for long periods; long-running steps should
// call Heartbeat partway through.
type Work func(w *Base) Result

// Base is a supervised cooperative worker. It is safe for its public
// methods to be called concurrently.
type Base struct {
	// Name identifies the worker in logs; purely cosmetic.
	Name string

	// SleepTime is the cooperative sleep between Idle ticks. Defaults
	// to DefaultSleep if zero.
	SleepTime time.Duration

	// HealthInterval is the maximum age of the last heartbeat for
	// HealthCheck to report healthy. A negative value disables health
	// checks (HealthCheck always reports true). Defaults to
	// DefaultHealthInterval if zero.
	HealthInterval time.Duration

	// RestartOnError changes the Error handling for this worker: instead
	// of transitioning to Stopping (the generic contract), the tick that
	// returned Error is simply the last one's result, and the loop
	// continues as Started. Used by Pool, where one job's panic must not
	// take down the other workers' queue-draining capacity.
	RestartOnError bool

	work Work

	mu    sync.Mutex
	state State

	heartbeat  atomic.Int64 // unix nanos
	errorCount atomic.Int64

	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// New constructs a Base that invokes fn on every tick.
func New(name string, fn Work) *Base {
	return &Base{
		Name:  name,
		work:  fn,
		state: Initialized,
	}
}

func (w *Base) sleepTime() time.Duration {
	if w.SleepTime > 0 {
		return w.SleepTime
	}
	return DefaultSleep
}

func (w *Base) healthInterval() time.Duration {
	if w.HealthInterval != 0 {
		return w.HealthInterval
	}
	return DefaultHealthInterval
}

// State returns the current WorkerState.
func (w *Base) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// IsStarted reports whether the worker has reached Started.
func (w *Base) IsStarted() bool {
	return w.State() == Started
}

// IsRunning reports whether the worker's fiber is currently executing
// (Starting, Started, or Stopping).
func (w *Base) IsRunning() bool {
	switch w.State() {
	case Starting, Started, Stopping:
		return true
	default:
		return false
	}
}

// Heartbeat records that the worker is alive. Called automatically at
// the top of every tick; Work implementations performing a long inner
// step should call it again before that step.
func (w *Base) Heartbeat() {
	w.heartbeat.Store(time.Now().UnixNano())
}

// ErrorCount returns the cumulative number of ticks that returned
// Error over this worker's lifetime, including ticks absorbed by
// RestartOnError.
func (w *Base) ErrorCount() int64 {
	return w.errorCount.Load()
}

// HealthCheck reports true iff the heartbeat is fresher than
// HealthInterval, or health checks are disabled (HealthInterval < 0).
func (w *Base) HealthCheck() bool {
	interval := w.healthInterval()
	if interval < 0 {
		return true
	}
	last := w.heartbeat.Load()
	if last == 0 {
		return false
	}
	return time.Since(time.Unix(0, last)) <= interval
}

// Start idempotently transitions the worker to Started, spawning its
// fiber if it is not already running. Safe to call again after Stop.
func (w *Base) Start() {
	w.mu.Lock()
	if w.state == Starting || w.state == Started {
		w.mu.Unlock()
		return
	}
	w.state = Starting
	w.done = make(chan struct{})
	w.stopped = make(chan struct{})
	w.once = sync.Once{}
	stopped := w.stopped
	done := w.done
	w.mu.Unlock()

	w.Heartbeat()
	go w.run(stopped, done)
}

func (w *Base) run(stopped, done chan struct{}) {
	defer close(done)

	w.mu.Lock()
	w.state = Started
	w.mu.Unlock()

	for {
		select {
		case <-stopped:
			w.mu.Lock()
			w.state = Stopped
			w.mu.Unlock()
			return
		default:
		}

		w.Heartbeat()
		result := w.work(w)

		switch result {
		case Error:
			w.errorCount.Add(1)
			if !w.RestartOnError {
				w.requestStop(stopped)
			}
		case Idle:
			select {
			case <-stopped:
			case <-time.After(w.sleepTime()):
			}
		case OK:
			// immediately re-invoke
		}
	}
}

// RequestStop signals the worker to stop after the current tick,
// without counting as an error tick. Safe to call from inside Work,
// e.g. when a tick itself determines the worker's job is done (a
// file-directory source running dry with ShutdownWhenNoData set).
func (w *Base) RequestStop() {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	w.requestStop(stopped)
}

func (w *Base) requestStop(stopped chan struct{}) {
	w.mu.Lock()
	if w.state == Started || w.state == Starting {
		w.state = Stopping
	}
	w.mu.Unlock()
	w.stopOnce(stopped)
}

func (w *Base) stopOnce(stopped chan struct{}) {
	w.mu.Lock()
	once := &w.once
	w.mu.Unlock()
	once.Do(func() { close(stopped) })
}

// Stop signals Stopping and waits (up to 4x SleepTime, a small bounded
// grace interval) for Stopped to be reached.
func (w *Base) Stop() {
	w.mu.Lock()
	if w.state != Started && w.state != Starting {
		w.mu.Unlock()
		return
	}
	w.state = Stopping
	stopped := w.stopped
	done := w.done
	w.mu.Unlock()

	w.stopOnce(stopped)

	select {
	case <-done:
	case <-time.After(4 * w.sleepTime()):
	}
}
