// Package parse implements the wire-format parser set: Global-Pick,
// Correlation (CC), JSON, and SimplePick. Each parser converts a raw
// message string into a canonical record.Record, or reports a parse
// failure (returning ok=false); validation is a separate step, so that
// a caller can log/account for the two failure modes differently per
// the error taxonomy in spec.md §7.
package parse

import (
	"strconv"
	"strings"

	"github.com/usgs/neic-glass3-sub002/internal/glasstime"
	"github.com/usgs/neic-glass3-sub002/internal/logx"
	"github.com/usgs/neic-glass3-sub002/internal/record"
)

// Parser is implemented by every wire-format parser in this package.
type Parser interface {
	Parse(input string) (record.Record, bool)
	Validate(r record.Record) bool
}

// base carries the default agency/author substituted for records that
// don't otherwise specify their source, and a logger for the
// logged-at-warning/error parse failure paths.
type base struct {
	agencyID string
	author   string
	log      *logx.Logger
}

func (b base) validate(r record.Record) bool {
	return r.Validate() == nil
}

// GlobalPickParser parses space-delimited Global-Pick messages (>=20
// fields).
type GlobalPickParser struct{ base }

// NewGlobalPickParser constructs a GlobalPickParser using agencyID/author
// as the default source attribution, logging through log.
func NewGlobalPickParser(agencyID, author string, log *logx.Logger) *GlobalPickParser {
	return &GlobalPickParser{base{agencyID, author, log}}
}

func (p *GlobalPickParser) Validate(r record.Record) bool { return p.validate(r) }

// Parse implements the Global-Pick field layout documented in
// spec.md §4.5:
//
//	0  author/logo            10 polarity
//	1  pick id                11 onset
//	2  version (ignored)      12 picker
//	3  station                13 hp_freq
//	4  channel                14 lp_freq
//	5  network                15 back_az (ignored)
//	6  location                16 slowness (ignored)
//	7  time "YYYYMMDDHHMMSS.sss" 17 snr
//	8  phase                  18 amplitude
//	9  err_halfwidth          19 period
func (p *GlobalPickParser) Parse(input string) (record.Record, bool) {
	if input == "" {
		return record.Record{}, false
	}
	fields := strings.Fields(input)
	if len(fields) < 20 {
		if p.log != nil {
			p.log.Warn().Int("fields", len(fields)).Log("gpick: insufficient fields")
		}
		return record.Record{}, false
	}

	t, err := glasstime.ParseGPickTime(fields[7])
	if err != nil {
		if p.log != nil {
			p.log.Warn().Str("time", fields[7]).Log("gpick: bad arrival time")
		}
		return record.Record{}, false
	}

	errHalfWidth, err := strconv.ParseFloat(fields[9], 64)
	if err != nil {
		if p.log != nil {
			p.log.Warn().Str("field", fields[9]).Log("gpick: bad err_halfwidth")
		}
		return record.Record{}, false
	}

	r := record.Record{
		Kind: record.KindPick,
		ID:   fields[1],
		Site: record.Site{
			Station:  fields[3],
			Channel:  fields[4],
			Network:  fields[5],
			Location: fields[6],
		},
		Time: t,
		Source: record.Source{
			AgencyID: p.agencyID,
			Author:   fields[0],
		},
		Phase:          fields[8],
		ErrorHalfWidth: errHalfWidth,
		Polarity:       parsePolarity(fields[10]),
		Onset:          parseOnset(fields[11]),
		Picker:         parsePicker(fields[12]),
	}

	if hp, err1 := strconv.ParseFloat(fields[13], 64); err1 == nil {
		if lp, err2 := strconv.ParseFloat(fields[14], 64); err2 == nil {
			r.Filter = &record.Filter{HighPass: hp, LowPass: lp}
		}
	}

	snr, errSNR := strconv.ParseFloat(fields[17], 64)
	amp, errAmp := strconv.ParseFloat(fields[18], 64)
	period, errPeriod := strconv.ParseFloat(fields[19], 64)
	// A zero amplitude or period is a placeholder, not a measurement;
	// such a group carries no information and is dropped rather than
	// emitted as a spurious reading.
	if errSNR == nil && errAmp == nil && errPeriod == nil && amp != 0 && period != 0 {
		r.Amplitude = &record.Amplitude{Amplitude: amp, Period: period, SNR: snr}
	}

	return r, true
}

func parsePolarity(s string) record.Polarity {
	switch s {
	case "U":
		return record.PolarityUp
	case "D":
		return record.PolarityDown
	default:
		return record.PolarityNone
	}
}

func parseOnset(s string) record.Onset {
	switch s {
	case "i":
		return record.OnsetImpulsive
	case "e":
		return record.OnsetEmergent
	case "q":
		return record.OnsetQuestionable
	default:
		return record.OnsetNone
	}
}

func parsePicker(s string) record.PickerType {
	switch s {
	case "m":
		return record.PickerManual
	case "r":
		return record.PickerRaypicker
	case "l":
		return record.PickerLocal
	case "e":
		return record.PickerEarthworm
	case "U":
		return record.PickerUnidentified
	default:
		return record.PickerNone
	}
}
