package parse

import (
	"encoding/json"
	"strings"

	"github.com/usgs/neic-glass3-sub002/internal/logx"
	"github.com/usgs/neic-glass3-sub002/internal/record"
)

// jsonEnvelope carries every field any of the four canonical JSON
// message shapes might need; unused fields are simply absent in any
// given message. This mirrors how detection-formats' JSON schemas are
// siblings sharing a discriminator, re-expressed without that library.
type jsonEnvelope struct {
	Type   string `json:"Type"`
	ID     string `json:"ID"`
	Site   *struct {
		Station  string `json:"Station"`
		Channel  string `json:"Channel"`
		Network  string `json:"Network"`
		Location string `json:"Location"`
	} `json:"Site"`
	Time   float64 `json:"Time"`
	Source *struct {
		AgencyID string `json:"AgencyID"`
		Author   string `json:"Author"`
	} `json:"Source"`
	Phase     string `json:"Phase"`
	Polarity  string `json:"Polarity"`
	Onset     string `json:"Onset"`
	Picker    string `json:"Picker"`
	Filter    *struct {
		HighPass float64 `json:"HighPass"`
		LowPass  float64 `json:"LowPass"`
	} `json:"Filter"`
	Amplitude *struct {
		Amplitude float64 `json:"Amplitude"`
		Period    float64 `json:"Period"`
		SNR       float64 `json:"SNR"`
	} `json:"Amplitude"`
	Hypocenter *struct {
		Latitude  float64 `json:"Latitude"`
		Longitude float64 `json:"Longitude"`
		Depth     float64 `json:"Depth"`
		Time      float64 `json:"Time"`
	} `json:"Hypocenter"`
	CorrelationValue float64 `json:"CorrelationValue"`
	Magnitude        float64 `json:"Magnitude"`
	MagnitudeType    string  `json:"MagnitudeType"`
	EventType        string  `json:"EventType"`

	InformationRequestor *struct {
		AgencyID string `json:"AgencyID"`
		Author   string `json:"Author"`
	} `json:"InformationRequestor"`
}

const (
	jsonTypePick        = "Pick"
	jsonTypeCorrelation = "Correlation"
	jsonTypeDetection   = "Detection"
	jsonTypeStationInfo = "StationInfo"
)

// JSONParser auto-detects the message kind from the payload's Type
// discriminator and maps it onto a canonical record.Record.
type JSONParser struct{ base }

// NewJSONParser constructs a JSONParser using agencyID/author both as
// the default source attribution for messages that omit Source, and
// as this instance's identity when filtering unsolicited StationInfo
// responses.
func NewJSONParser(agencyID, author string, log *logx.Logger) *JSONParser {
	return &JSONParser{base{agencyID, author, log}}
}

func (p *JSONParser) Validate(r record.Record) bool { return p.validate(r) }

func (p *JSONParser) Parse(input string) (record.Record, bool) {
	if strings.TrimSpace(input) == "" {
		return record.Record{}, false
	}

	var env jsonEnvelope
	if err := json.Unmarshal([]byte(input), &env); err != nil {
		if p.log != nil {
			p.log.Warn().Err(err).Log("json: malformed message")
		}
		return record.Record{}, false
	}

	var kind record.Kind
	switch env.Type {
	case jsonTypePick:
		kind = record.KindPick
	case jsonTypeCorrelation:
		kind = record.KindCorrelation
	case jsonTypeDetection:
		kind = record.KindDetection
	case jsonTypeStationInfo:
		kind = record.KindStationInfo
	default:
		if p.log != nil {
			p.log.Warn().Str("type", env.Type).Log("json: unrecognized message type")
		}
		return record.Record{}, false
	}

	r := record.Record{
		Kind: kind,
		ID:   env.ID,
		Time: env.Time,
		Source: record.Source{
			AgencyID: p.agencyID,
			Author:   p.author,
		},
		Phase:            env.Phase,
		Polarity:         parsePolarity(env.Polarity),
		Onset:            parseOnset(env.Onset),
		Picker:           parsePicker(env.Picker),
		CorrelationValue: env.CorrelationValue,
		Magnitude:        env.Magnitude,
		MagnitudeType:    env.MagnitudeType,
		EventType:        env.EventType,
	}

	if env.Site != nil {
		r.Site = record.Site{
			Station:  env.Site.Station,
			Channel:  env.Site.Channel,
			Network:  env.Site.Network,
			Location: env.Site.Location,
		}
	}
	if env.Source != nil && env.Source.AgencyID != "" {
		r.Source = record.Source{AgencyID: env.Source.AgencyID, Author: env.Source.Author}
	}
	if env.Filter != nil {
		r.Filter = &record.Filter{HighPass: env.Filter.HighPass, LowPass: env.Filter.LowPass}
	}
	if env.Amplitude != nil {
		r.Amplitude = &record.Amplitude{Amplitude: env.Amplitude.Amplitude, Period: env.Amplitude.Period, SNR: env.Amplitude.SNR}
	}
	if env.Hypocenter != nil {
		r.Hypocenter = &record.Hypocenter{
			Latitude:  env.Hypocenter.Latitude,
			Longitude: env.Hypocenter.Longitude,
			Depth:     env.Hypocenter.Depth,
			Time:      env.Hypocenter.Time,
		}
	}

	if kind == record.KindStationInfo {
		if env.InformationRequestor != nil &&
			(env.InformationRequestor.AgencyID != p.agencyID || env.InformationRequestor.Author != p.author) {
			if p.log != nil {
				p.log.Debug().Log("json: station-info is not for this instance's agency/author")
			}
			return record.Record{}, false
		}
		if env.InformationRequestor != nil {
			r.InformationRequestor = env.InformationRequestor.AgencyID + "/" + env.InformationRequestor.Author
		}
	}

	return r, true
}
