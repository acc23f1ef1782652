// Package associator implements the Associator stage: it owns the
// engine instance and bridges it to the Input and Output stages,
// forwards configuration, ticks one MessageQueue item and one Record
// per work cycle, and logs periodic performance reports.
package associator

import (
	"fmt"
	"sync"
	"time"

	"github.com/usgs/neic-glass3-sub002/internal/engine"
	"github.com/usgs/neic-glass3-sub002/internal/logx"
	"github.com/usgs/neic-glass3-sub002/internal/queue"
	"github.com/usgs/neic-glass3-sub002/internal/record"
	"github.com/usgs/neic-glass3-sub002/internal/report"
	"github.com/usgs/neic-glass3-sub002/internal/worker"
)

// Output is the narrow surface the Associator needs from the Output
// stage: routing a single message. *output.Stage satisfies this.
type Output interface {
	Send(msgType, id, body string)
}

// DefaultReportInterval matches the original associator's default.
const DefaultReportInterval = 60 * time.Second

// Stage is the Associator. It owns no Input/Output lifecycle (those
// are started/stopped independently); it only pulls from the Input
// queue, pushes to the Output sink, and drives the engine.
type Stage struct {
	*worker.Base

	engine       engine.Engine
	input        *queue.Queue[record.Record]
	output       Output
	messageQueue *queue.Queue[engine.ControlMessage]
	reporter     *report.Reporter
	log          *logx.Logger

	mu                sync.Mutex
	inputCounter      int64
	totalInputCounter int64
	dispatchDuration  time.Duration
}

// NewStage constructs an Associator stage. reportInterval defaults to
// DefaultReportInterval if non-positive.
func NewStage(name string, eng engine.Engine, input *queue.Queue[record.Record], output Output, reportInterval time.Duration, log *logx.Logger) *Stage {
	if reportInterval <= 0 {
		reportInterval = DefaultReportInterval
	}

	s := &Stage{
		engine:       eng,
		input:        input,
		output:       output,
		messageQueue: queue.New[engine.ControlMessage](-1),
		reporter:     report.NewReporter(reportInterval),
		log:          log,
	}
	s.Base = worker.New(name, s.tick)

	eng.SetSendSink(func(msgType, id, body string) {
		if s.output != nil {
			s.output.Send(msgType, id, body)
		}
	})
	eng.SetLogSink(s.logGlass)

	return s
}

// logGlass re-homes the engine's own diagnostic stream onto the
// stage's structured logger, at the level the engine reported.
func (s *Stage) logGlass(level, msg string) {
	if s.log == nil {
		return
	}
	line := "engine: " + msg
	switch level {
	case "debug":
		s.log.Debug().Log(line)
	case "warning", "warn":
		s.log.Warn().Log(line)
	case "error", "critical":
		s.log.Error().Log(line)
	default:
		s.log.Info().Log(line)
	}
}

// Setup forwards configuration to the engine. Safe to call multiple
// times in succession (initialize, station list, grid files) before
// the worker is started.
func (s *Stage) Setup(config map[string]any) error {
	return s.engine.Dispatch(config)
}

// SendControl enqueues a control message for the next tick to dispatch
// to the engine, out of band from the Record pipeline.
func (s *Stage) SendControl(msg engine.ControlMessage) {
	s.messageQueue.Push(msg)
}

// HealthCheck reports true iff the base worker heartbeat is fresh and
// the engine itself reports healthy.
func (s *Stage) HealthCheck() bool {
	if !s.Base.HealthCheck() {
		return false
	}
	return s.engine.StatusCheck()
}

func (s *Stage) tick(w *worker.Base) worker.Result {
	if msg, ok := s.messageQueue.Pop(); ok {
		if err := s.engine.Dispatch(msg); err != nil && s.log != nil {
			s.log.Error().Err(err).Log("associator: engine rejected control message")
		}
	}

	rec, ok := s.input.Pop()
	if !ok {
		return worker.Idle
	}

	start := time.Now()
	err := s.engine.Dispatch(rec)
	elapsed := time.Since(start)

	if err != nil {
		if s.log != nil {
			s.log.Warn().Err(err).Str("id", rec.ID).Log("associator: engine rejected record")
		}
	}

	s.mu.Lock()
	s.inputCounter++
	s.dispatchDuration += elapsed
	s.mu.Unlock()
	s.reporter.Observe()

	s.maybeReport()

	return worker.OK
}

func (s *Stage) maybeReport() {
	snap, ok := s.reporter.Report()
	if !ok {
		return
	}

	s.mu.Lock()
	sent := s.inputCounter
	s.totalInputCounter += sent
	total := s.totalInputCounter
	var avgDispatch time.Duration
	if sent > 0 {
		avgDispatch = s.dispatchDuration / time.Duration(sent)
	}
	s.inputCounter = 0
	s.dispatchDuration = 0
	s.mu.Unlock()

	if s.log == nil {
		return
	}

	pending := s.input.Size()
	if sent == 0 {
		s.log.Warn().Log(fmt.Sprintf("associator: sent no data to the engine in the last %.0f seconds", snap.ElapsedSeconds))
		return
	}

	s.log.Info().Log(fmt.Sprintf(
		"associator: sent %d records to engine (%d pending, %d total) in %.0f seconds "+
			"(%.3f rps, %.3f avg rps, %s avg dispatch time, pickList=%d, hypoList=%d)",
		sent, pending, total, snap.ElapsedSeconds, snap.RatePerSecond, snap.RunningAverage,
		avgDispatch, s.engine.PickListSize(), s.engine.HypoListSize(),
	))
}
