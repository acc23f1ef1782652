// Package output implements the Output stage: routes Records/messages
// produced by the engine to one or more sinks. The base Stage handles
// the known message types and drops the rest with a warning; concrete
// sinks (a file adapter so far) implement Sink.
package output

import (
	"github.com/usgs/neic-glass3-sub002/internal/logx"
	"github.com/usgs/neic-glass3-sub002/internal/worker"
)

// Known output message types. Anything else is dropped with a warning.
const (
	TypeDetection         = "Detection"
	TypeRetraction        = "Retraction"
	TypeStationInfoRequest = "StationInfoRequest"
	TypeStationList       = "StationList"
)

// Sink delivers a single routed message to its destination. Send must
// not block indefinitely; best-effort delivery is expected (errors are
// logged by the sink itself and never returned to the caller).
type Sink interface {
	Send(msgType, id, body string)
}

// Stage is the Output stage. It has no tick loop of its own driven by
// worker.Base's run loop; Send is called directly by whatever produced
// the message (the Associator/Engine integration surface). The
// embedded *worker.Base exists purely so Stage satisfies the same
// Control/health-check surface as the other stages.
type Stage struct {
	*worker.Base

	sink Sink
	log  *logx.Logger
}

// NewStage constructs an Output stage that routes to sink.
func NewStage(name string, sink Sink, log *logx.Logger) *Stage {
	s := &Stage{sink: sink, log: log}
	s.Base = worker.New(name, s.tick)
	return s
}

// tick satisfies worker.Work, but Stage is send-driven rather than
// poll-driven; it always reports Idle so the supervisor loop just
// exists for health-check/lifecycle symmetry with the other stages.
func (s *Stage) tick(w *worker.Base) worker.Result {
	return worker.Idle
}

// Send routes a single (type, id, body) message to the sink, dropping
// unrecognized types with a warning. Empty type/id/body are also
// dropped and logged as errors, matching the base class's guard.
func (s *Stage) Send(msgType, id, body string) {
	if msgType == "" {
		if s.log != nil {
			s.log.Error().Log("output: empty type passed in")
		}
		return
	}
	if id == "" {
		if s.log != nil {
			s.log.Error().Log("output: empty id passed in")
		}
		return
	}
	if body == "" {
		if s.log != nil {
			s.log.Error().Log("output: empty message passed in")
		}
		return
	}

	switch msgType {
	case TypeDetection, TypeRetraction, TypeStationInfoRequest, TypeStationList:
		// known, routed below
	default:
		if s.log != nil {
			s.log.Warn().Str("type", msgType).Log("output: dropping unrecognized message type")
		}
		return
	}

	if s.sink == nil {
		return
	}
	s.sink.Send(msgType, id, body)
}
