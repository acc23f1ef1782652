package worker

import (
	"fmt"

	"github.com/usgs/neic-glass3-sub002/internal/queue"
)

// Job is a nullary unit of work submitted to a Pool.
type Job func()

// Pool is a worker base specialized to drain a job queue: a fixed
// number of Base workers, each popping and invoking one Job per tick.
// A panicking Job is captured and reported as a single Error tick for
// that worker only; since every pool worker has RestartOnError set, the
// worker then goes straight on to its next tick and stays Started.
type Pool struct {
	jobs    *queue.Queue[Job]
	workers []*Base
}

// NewPool constructs a Pool with the given fixed worker count.
func NewPool(name string, size int) *Pool {
	p := &Pool{
		jobs: queue.New[Job](0),
	}
	p.workers = make([]*Base, size)
	for i := range p.workers {
		p.workers[i] = New(fmt.Sprintf("%s-%d", name, i), p.tick)
		p.workers[i].RestartOnError = true
	}
	return p
}

// Submit enqueues job for execution by the next available worker.
func (p *Pool) Submit(job Job) {
	p.jobs.Push(job)
}

// Start starts every worker in the pool.
func (p *Pool) Start() {
	for _, w := range p.workers {
		w.Start()
	}
}

// Stop stops every worker in the pool.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		w.Stop()
	}
}

// HealthCheck reports true iff every worker in the pool is healthy.
func (p *Pool) HealthCheck() bool {
	for _, w := range p.workers {
		if !w.HealthCheck() {
			return false
		}
	}
	return true
}

func (p *Pool) tick(w *Base) (result Result) {
	job, ok := p.jobs.Pop()
	if !ok {
		return Idle
	}

	defer func() {
		if r := recover(); r != nil {
			result = Error
		}
	}()

	job()
	return OK
}
