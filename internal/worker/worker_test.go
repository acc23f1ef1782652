package worker

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkerLiveness(t *testing.T) {
	var ticks atomic.Int64
	w := New("test", func(w *Base) Result {
		ticks.Add(1)
		return Idle
	})
	w.SleepTime = 10 * time.Millisecond

	w.Start()
	assert.Eventually(t, w.IsRunning, 2*w.sleepTime(), time.Millisecond)

	w.Stop()
	assert.Eventually(t, func() bool { return !w.IsRunning() }, 4*w.sleepTime()+50*time.Millisecond, time.Millisecond)
}

func TestWorkerHealthCheck(t *testing.T) {
	w := New("test", func(w *Base) Result { return Idle })
	w.SleepTime = 5 * time.Millisecond
	w.HealthInterval = 50 * time.Millisecond

	assert.False(t, w.HealthCheck(), "no heartbeat yet")

	w.Start()
	defer w.Stop()
	assert.Eventually(t, w.HealthCheck, 100*time.Millisecond, time.Millisecond)
}

func TestWorkerHealthCheckDisabled(t *testing.T) {
	w := New("test", func(w *Base) Result { return Idle })
	w.HealthInterval = -1
	assert.True(t, w.HealthCheck())
}

func TestWorkerErrorStopsLoop(t *testing.T) {
	var calls atomic.Int64
	w := New("test", func(w *Base) Result {
		calls.Add(1)
		return Error
	})
	w.SleepTime = 5 * time.Millisecond

	w.Start()
	assert.Eventually(t, func() bool { return w.State() == Stopped }, 200*time.Millisecond, time.Millisecond)
	assert.Equal(t, int64(1), calls.Load(), "worker must stop after a single Error tick")
}

func TestWorkerOKRunsImmediately(t *testing.T) {
	var calls atomic.Int64
	w := New("test", func(w *Base) Result {
		n := calls.Add(1)
		if n >= 5 {
			return Error
		}
		return OK
	})
	w.SleepTime = 50 * time.Millisecond

	w.Start()
	assert.Eventually(t, func() bool { return w.State() == Stopped }, 100*time.Millisecond, time.Millisecond)
	assert.Equal(t, int64(5), calls.Load())
}

func TestWorkerRestartAfterStop(t *testing.T) {
	var calls atomic.Int64
	w := New("test", func(w *Base) Result {
		calls.Add(1)
		return Idle
	})
	w.SleepTime = 5 * time.Millisecond

	w.Start()
	assert.Eventually(t, w.IsStarted, 50*time.Millisecond, time.Millisecond)
	w.Stop()
	assert.Eventually(t, func() bool { return w.State() == Stopped }, 50*time.Millisecond, time.Millisecond)

	w.Start()
	assert.Eventually(t, w.IsStarted, 50*time.Millisecond, time.Millisecond)
	w.Stop()
}
