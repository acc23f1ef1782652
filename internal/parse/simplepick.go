package parse

import (
	"strconv"
	"strings"

	"github.com/usgs/neic-glass3-sub002/internal/logx"
	"github.com/usgs/neic-glass3-sub002/internal/record"
)

// SimplePickParser parses space-delimited SimplePick messages:
//
//	57647 AK GLI BHZ -- 1568999913.12 P
//
//	0 pick id   3 channel        6 phase (optional)
//	1 network   4 location
//	2 station   5 arrival time (epoch seconds)
//
// The format carries no source attribution, so every record is
// attributed to the literal agency/author "None" rather than to this
// instance's configured defaults.
type SimplePickParser struct{ base }

// NewSimplePickParser constructs a SimplePickParser. Unlike the other
// parsers, agencyID/author aren't used for source attribution (the
// wire format always attributes to "None"); they're retained only for
// interface symmetry with the rest of the parser set.
func NewSimplePickParser(agencyID, author string, log *logx.Logger) *SimplePickParser {
	return &SimplePickParser{base{agencyID, author, log}}
}

func (p *SimplePickParser) Validate(r record.Record) bool { return p.validate(r) }

func (p *SimplePickParser) Parse(input string) (record.Record, bool) {
	if input == "" {
		return record.Record{}, false
	}
	fields := strings.Fields(input)
	if len(fields) < 6 {
		if p.log != nil {
			p.log.Warn().Int("fields", len(fields)).Log("simplepick: insufficient fields")
		}
		return record.Record{}, false
	}

	t, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		if p.log != nil {
			p.log.Warn().Str("time", fields[5]).Log("simplepick: bad arrival time")
		}
		return record.Record{}, false
	}

	r := record.Record{
		Kind: record.KindPick,
		ID:   fields[0],
		Site: record.Site{
			Network:  fields[1],
			Station:  fields[2],
			Channel:  fields[3],
			Location: fields[4],
		},
		Time: t,
		Source: record.Source{
			AgencyID: "None",
			Author:   "None",
		},
	}

	if len(fields) >= 7 {
		r.Phase = fields[6]
		r.Classification = &record.Classification{Phase: fields[6], Probability: 1.0}
	}

	return r, true
}
