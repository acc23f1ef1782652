package parse

import (
	"strconv"
	"strings"

	"github.com/usgs/neic-glass3-sub002/internal/glasstime"
	"github.com/usgs/neic-glass3-sub002/internal/logx"
	"github.com/usgs/neic-glass3-sub002/internal/record"
)

// CorrelationParser parses space-delimited Correlation (CC) messages
// (>=15 fields).
type CorrelationParser struct{ base }

// NewCorrelationParser constructs a CorrelationParser using agencyID/author
// as the source attribution for every parsed record (the wire format
// carries no per-message source fields).
func NewCorrelationParser(agencyID, author string, log *logx.Logger) *CorrelationParser {
	return &CorrelationParser{base{agencyID, author, log}}
}

func (p *CorrelationParser) Validate(r record.Record) bool { return p.validate(r) }

// Parse implements the Correlation field layout documented in
// spec.md §4.5:
//
//	0-1  origin date/time "YYYY/MM/DD" "HH:MM:SS.sss"
//	2    lat                    9  channel
//	3    lon                    10 location
//	4    depth                  11 phase
//	5    magnitude              12-13 arrival date/time
//	6    magnitude type         14 correlation value
//	7    network
//	8    station
//
// Derived id = "CC" + station + channel + network + location +
// arrival_date(no '/') + arrival_time(no ':' or '.'), with separators
// stripped but no other normalization: collisions between stations
// whose codes differ only by field boundaries are possible, and this
// is preserved exactly rather than papered over with a delimiter.
func (p *CorrelationParser) Parse(input string) (record.Record, bool) {
	if input == "" {
		return record.Record{}, false
	}
	fields := strings.Fields(input)
	if len(fields) < 15 {
		if p.log != nil {
			p.log.Warn().Int("fields", len(fields)).Log("cc: insufficient fields")
		}
		return record.Record{}, false
	}

	originDate := stripChars(fields[0], "/")
	originTime := stripChars(fields[1], ":")
	originTimeEpoch, err := glasstime.ParseCCDateTime(originDate + originTime)
	if err != nil {
		if p.log != nil {
			p.log.Warn().Str("origin_time", fields[0]+" "+fields[1]).Log("cc: bad origin time")
		}
		return record.Record{}, false
	}

	arrivalDate := stripChars(fields[12], "/")
	arrivalTime := stripChars(fields[13], ":")
	arrivalTimeNoDot := stripChars(arrivalTime, ".")
	arrivalEpoch, err := glasstime.ParseCCDateTime(arrivalDate + arrivalTime)
	if err != nil {
		if p.log != nil {
			p.log.Warn().Str("arrival_time", fields[12]+" "+fields[13]).Log("cc: bad arrival time")
		}
		return record.Record{}, false
	}

	lat, errLat := strconv.ParseFloat(fields[2], 64)
	lon, errLon := strconv.ParseFloat(fields[3], 64)
	depth, errDepth := strconv.ParseFloat(fields[4], 64)
	mag, errMag := strconv.ParseFloat(fields[5], 64)
	corrValue, errCorr := strconv.ParseFloat(fields[14], 64)
	if errLat != nil || errLon != nil || errDepth != nil || errMag != nil || errCorr != nil {
		if p.log != nil {
			p.log.Warn().Log("cc: non-numeric required field")
		}
		return record.Record{}, false
	}

	station := fields[8]
	channel := fields[9]
	network := fields[7]
	location := fields[10]

	id := "CC" + station + channel + network + location + arrivalDate + arrivalTimeNoDot

	r := record.Record{
		Kind: record.KindCorrelation,
		ID:   id,
		Site: record.Site{
			Station:  station,
			Channel:  channel,
			Network:  network,
			Location: location,
		},
		Time: arrivalEpoch,
		Source: record.Source{
			AgencyID: p.agencyID,
			Author:   p.author,
		},
		Phase: fields[11],
		Hypocenter: &record.Hypocenter{
			Latitude:  lat,
			Longitude: lon,
			Depth:     depth,
			Time:      originTimeEpoch,
		},
		CorrelationValue: corrValue,
		Magnitude:        mag,
		MagnitudeType:    fields[6],
		EventType:        "earthquake",
	}
	return r, true
}

func stripChars(s, chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}
