// Package engine defines the Engine integration surface: an opaque
// collaborator the Associator drives with configuration, control
// messages, and Records, and which emits its own output back through a
// registered send sink. The nucleation/association algebra itself is
// out of scope here; Stub is a minimal reference implementation
// sufficient to exercise the Associator's wiring and tests.
package engine

import (
	"fmt"
	"sync"

	"github.com/usgs/neic-glass3-sub002/internal/record"
)

// SendSink receives a single output message the engine has produced.
// Invoked synchronously from whatever goroutine called Dispatch; it
// must not block and must not call back into Dispatch (no re-entrancy).
type SendSink func(msgType, id, body string)

// LogSink receives an engine-internal diagnostic line. level is one of
// "debug", "info", "warning", "error".
type LogSink func(level, msg string)

// Engine is the opaque collaborator the Associator owns and drives.
type Engine interface {
	// Dispatch accepts a configuration block (map[string]any), a
	// control message (ControlMessage), or a record.Record. It must be
	// safe to call repeatedly from the Associator's worker goroutine
	// and must not block for more than a few milliseconds.
	Dispatch(msg any) error

	// StatusCheck is a cheap liveness probe.
	StatusCheck() bool

	// SetSendSink registers the callback the engine uses to emit
	// output. Must be called before the first Dispatch.
	SetSendSink(sink SendSink)

	// SetLogSink registers the callback the engine uses for its own
	// diagnostics.
	SetLogSink(sink LogSink)

	HypoListSize() int
	PickListSize() int
}

// ControlMessage is an out-of-band instruction routed through the
// Associator's MessageQueue rather than the Input pipeline (e.g. a
// request to dump the current hypo list).
type ControlMessage struct {
	Command string
	Args    map[string]any
}

// Stub is a minimal reference Engine: it tracks dispatched picks and
// correlations as a pending "pick list", folds Detection-kind records
// it is fed back in (simulating an engine echoing its own output) into
// a "hypo list", and otherwise just counts. It implements no real
// nucleation/association logic.
type Stub struct {
	mu sync.Mutex

	config   map[string]any
	sendSink SendSink
	logSink  LogSink

	pickListSize int
	hypoListSize int
	healthy      bool
}

// NewStub constructs a Stub engine, initially healthy.
func NewStub() *Stub {
	return &Stub{healthy: true}
}

func (s *Stub) SetSendSink(sink SendSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendSink = sink
}

func (s *Stub) SetLogSink(sink LogSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logSink = sink
}

func (s *Stub) log(level, msg string) {
	s.mu.Lock()
	sink := s.logSink
	s.mu.Unlock()
	if sink != nil {
		sink(level, msg)
	}
}

// Dispatch implements Engine.
func (s *Stub) Dispatch(msg any) error {
	switch v := msg.(type) {
	case map[string]any:
		s.mu.Lock()
		s.config = v
		s.mu.Unlock()
		s.log("debug", "engine: configuration updated")
		return nil
	case ControlMessage:
		s.log("debug", fmt.Sprintf("engine: control message %q", v.Command))
		if v.Command == "ReqHypoList" {
			s.mu.Lock()
			sink := s.sendSink
			size := s.hypoListSize
			s.mu.Unlock()
			if sink != nil {
				sink("StationList", "hypolist", fmt.Sprintf(`{"count":%d}`, size))
			}
		}
		return nil
	case record.Record:
		return s.dispatchRecord(v)
	default:
		return fmt.Errorf("engine: unsupported message type %T", msg)
	}
}

func (s *Stub) dispatchRecord(r record.Record) error {
	if err := r.Validate(); err != nil {
		s.log("warning", "engine: rejected invalid record: "+err.Error())
		return err
	}

	s.mu.Lock()
	switch r.Kind {
	case record.KindPick, record.KindCorrelation:
		s.pickListSize++
	case record.KindDetection:
		s.hypoListSize++
	}
	sink := s.sendSink
	s.mu.Unlock()

	// A real engine nucleates/associates asynchronously; the stub
	// simply echoes Detection-kind input straight back out as output,
	// enough to exercise the Associator's send-sink wiring end to end.
	if r.Kind == record.KindDetection && sink != nil {
		sink("Detection", r.ID, string(r.Encode()))
	}
	return nil
}

// StatusCheck implements Engine.
func (s *Stub) StatusCheck() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.healthy
}

// SetHealthy lets tests simulate an unhealthy engine.
func (s *Stub) SetHealthy(healthy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healthy = healthy
}

func (s *Stub) HypoListSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hypoListSize
}

func (s *Stub) PickListSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pickListSize
}
