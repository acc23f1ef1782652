// Package input implements the Input stage: retrieve raw messages
// from a source, classify by type tag, parse, validate, and enqueue
// onto a bounded record.Record queue. The stage itself is
// source-agnostic (template-method style): concrete sources (file
// directory, message broker) implement Source.
package input

import (
	"strings"

	"github.com/usgs/neic-glass3-sub002/internal/logx"
	"github.com/usgs/neic-glass3-sub002/internal/parse"
	"github.com/usgs/neic-glass3-sub002/internal/queue"
	"github.com/usgs/neic-glass3-sub002/internal/record"
	"github.com/usgs/neic-glass3-sub002/internal/worker"
)

// Type tags selecting a parser; for the file-directory source these
// double as the configured file extension.
const (
	TypeGPick      = "gpick"
	TypeGPicks     = "gpicks"
	TypeJSON       = "json"
	TypeCC         = "dat"
	TypeSimplePick = "simplepick"
)

// Source is implemented by a concrete input collaborator (file
// directory, message broker). FetchRaw returns the next raw message
// and its type tag, or ("", tag) if nothing is currently available.
type Source interface {
	FetchRaw() (message, typeTag string)
}

// Stage is the Input stage's supervised worker: it owns the parser
// set and the output queue, and drives Source.FetchRaw() once per
// tick.
type Stage struct {
	*worker.Base

	data    *queue.Queue[record.Record]
	parsers map[string]parse.Parser
	source  Source
	log     *logx.Logger
}

// NewStage constructs an Input stage using the default parser set
// (Global-Pick, Correlation, JSON, SimplePick), all attributed to
// agencyID/author by default. queueMaxSize <= 0 means unbounded.
func NewStage(name, agencyID, author string, queueMaxSize int, source Source, log *logx.Logger) *Stage {
	s := &Stage{
		data:   queue.New[record.Record](queueMaxSize),
		source: source,
		log:    log,
		parsers: map[string]parse.Parser{
			TypeGPick:      parse.NewGlobalPickParser(agencyID, author, log),
			TypeGPicks:     parse.NewGlobalPickParser(agencyID, author, log),
			TypeCC:         parse.NewCorrelationParser(agencyID, author, log),
			TypeSimplePick: parse.NewSimplePickParser(agencyID, author, log),
			TypeJSON:       parse.NewJSONParser(agencyID, author, log),
		},
	}
	s.Base = worker.New(name, s.tick)
	return s
}

// Data returns the stage's output queue, consumed by the Associator.
func (s *Stage) Data() *queue.Queue[record.Record] { return s.data }

// SetSource assigns the stage's Source after construction, for
// sources (e.g. FileSource) that need a Control reference back to
// this Stage and so can't be built before it.
func (s *Stage) SetSource(source Source) { s.source = source }

func (s *Stage) parserFor(typeTag string) parse.Parser {
	if p, ok := s.parsers[typeTag]; ok {
		return p
	}
	if strings.Contains(typeTag, "json") {
		return s.parsers[TypeJSON]
	}
	return nil
}

// tick implements the per-tick procedure documented for the Input
// stage: back-pressure check, fetch, dispatch by type tag, parse,
// validate, enqueue.
func (s *Stage) tick(w *worker.Base) worker.Result {
	if s.data.Full() {
		return worker.Idle
	}

	message, typeTag := s.source.FetchRaw()
	if message == "" {
		return worker.Idle
	}

	if s.log != nil {
		s.log.Trace().Str("type", typeTag).Log("input: got message")
	}

	p := s.parserFor(typeTag)
	if p == nil {
		if s.log != nil {
			s.log.Warn().Str("type", typeTag).Log("input: unrecognized type tag, discarding")
		}
		return worker.OK
	}

	rec, ok := p.Parse(message)
	if !ok {
		// parser already logged the failure at warning level.
		return worker.OK
	}

	if !p.Validate(rec) {
		if s.log != nil {
			s.log.Debug().Str("id", rec.ID).Log("input: record failed validation, discarding")
		}
		return worker.OK
	}

	s.data.Push(rec)
	return worker.OK
}
