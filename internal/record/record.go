// Package record defines the canonical detection record, the lingua
// franca passed between the Input stage, the InputQueue/Cache, and the
// Engine integration surface.
package record

import (
	"fmt"

	"github.com/joeycumines/go-utilpkg/jsonenc"
)

// Kind discriminates the four canonical record shapes.
type Kind string

const (
	KindPick        Kind = "Pick"
	KindCorrelation Kind = "Correlation"
	KindDetection   Kind = "Detection"
	KindStationInfo Kind = "StationInfo"
)

// Polarity is the canonical first-motion enum. Unknown wire values map
// to PolarityNone (absent), never to an error.
type Polarity string

const (
	PolarityNone Polarity = ""
	PolarityUp   Polarity = "U"
	PolarityDown Polarity = "D"
)

// Onset is the canonical pick-onset enum.
type Onset string

const (
	OnsetNone        Onset = ""
	OnsetImpulsive   Onset = "i"
	OnsetEmergent    Onset = "e"
	OnsetQuestionable Onset = "q"
)

// PickerType is the canonical picker-source enum.
type PickerType string

const (
	PickerNone         PickerType = ""
	PickerManual       PickerType = "m"
	PickerRaypicker    PickerType = "r"
	PickerLocal        PickerType = "l"
	PickerEarthworm    PickerType = "e"
	PickerUnidentified PickerType = "U"
)

// Site identifies the SCNL (station/channel/network/location) tuple a
// record was observed on.
type Site struct {
	Network  string
	Station  string
	Channel  string
	Location string
}

// Source identifies the producing agency.
type Source struct {
	AgencyID string
	Author   string
}

// Filter captures a pick's applied band, when the wire format supplies
// both sub-fields as numeric.
type Filter struct {
	HighPass float64
	LowPass  float64
}

// Amplitude captures a pick's amplitude measurement, when the wire
// format supplies all three sub-fields as numeric.
type Amplitude struct {
	Amplitude float64
	Period    float64
	SNR       float64
}

// Hypocenter is the correlation payload's candidate origin.
type Hypocenter struct {
	Latitude  float64
	Longitude float64
	Depth     float64
	Time      float64 // epoch seconds
}

// Classification is an optional phase-probability annotation (e.g. the
// SimplePick parser sets it, with probability 1.0, when a phase is given).
type Classification struct {
	Phase       string
	Probability float64
}

// Record is the canonical detection record: the single shape that
// flows through InputQueue, Cache, and the Engine dispatch contract.
// Not every field applies to every Kind; see the per-kind payload
// comments and Validate.
type Record struct {
	Kind Kind
	ID   string
	Site Site
	Time float64 // epoch seconds, resolution >= 1ms
	Source Source

	// Pick-kind payload.
	Phase      string
	Polarity   Polarity
	Onset      Onset
	Picker     PickerType
	Filter     *Filter
	Amplitude  *Amplitude
	BackAzimuth float64
	Slowness    float64
	ErrorHalfWidth float64

	// Correlation-kind payload.
	Hypocenter       *Hypocenter
	CorrelationValue float64
	Magnitude        float64
	MagnitudeType    string
	EventType        string

	// StationInfo-kind payload.
	InformationRequestor string

	Classification *Classification
}

// Validate reports whether r carries the fields required for its Kind
// and a non-empty agency ID. It does not reject extra fields from
// other kinds that may have been left populated; it only checks that
// the fields the kind requires are present.
func (r Record) Validate() error {
	if r.Source.AgencyID == "" {
		return fmt.Errorf("record %q: agency_id is required", r.ID)
	}
	if r.ID == "" {
		return fmt.Errorf("record: id is required")
	}
	switch r.Kind {
	case KindPick:
		if r.Site.Station == "" {
			return fmt.Errorf("record %q: pick requires site.station", r.ID)
		}
		if r.Time == 0 {
			return fmt.Errorf("record %q: pick requires time", r.ID)
		}
	case KindCorrelation:
		if r.Hypocenter == nil {
			return fmt.Errorf("record %q: correlation requires hypocenter", r.ID)
		}
		if r.Site.Station == "" {
			return fmt.Errorf("record %q: correlation requires site.station", r.ID)
		}
	case KindDetection:
		if r.Hypocenter == nil {
			return fmt.Errorf("record %q: detection requires hypocenter", r.ID)
		}
	case KindStationInfo:
		if r.Site.Station == "" {
			return fmt.Errorf("record %q: station-info requires site.station", r.ID)
		}
	default:
		return fmt.Errorf("record %q: unknown kind %q", r.ID, r.Kind)
	}
	return nil
}

// Encode renders r as the canonical wire body handed to the Output
// stage. Epoch time and hypocenter fields are appended with
// jsonenc.AppendFloat64 rather than encoding/json, matching its
// handling of NaN/Inf (engine-internal floating point results that
// encoding/json cannot marshal at all) and its cutover to exponential
// notation past 1e21/1e-6.
func (r Record) Encode() []byte {
	buf := make([]byte, 0, 128)
	buf = append(buf, `{"id":`...)
	buf = appendJSONString(buf, r.ID)
	buf = append(buf, `,"kind":`...)
	buf = appendJSONString(buf, string(r.Kind))
	buf = append(buf, `,"time":`...)
	buf = jsonenc.AppendFloat64(buf, r.Time)
	buf = append(buf, `,"agencyid":`...)
	buf = appendJSONString(buf, r.Source.AgencyID)
	buf = append(buf, `,"author":`...)
	buf = appendJSONString(buf, r.Source.Author)

	if r.Hypocenter != nil {
		buf = append(buf, `,"latitude":`...)
		buf = jsonenc.AppendFloat64(buf, r.Hypocenter.Latitude)
		buf = append(buf, `,"longitude":`...)
		buf = jsonenc.AppendFloat64(buf, r.Hypocenter.Longitude)
		buf = append(buf, `,"depth":`...)
		buf = jsonenc.AppendFloat64(buf, r.Hypocenter.Depth)
		buf = append(buf, `,"origintime":`...)
		buf = jsonenc.AppendFloat64(buf, r.Hypocenter.Time)
	}
	if r.Amplitude != nil {
		buf = append(buf, `,"amplitude":`...)
		buf = jsonenc.AppendFloat64(buf, r.Amplitude.Amplitude)
		buf = append(buf, `,"period":`...)
		buf = jsonenc.AppendFloat64(buf, r.Amplitude.Period)
		buf = append(buf, `,"snr":`...)
		buf = jsonenc.AppendFloat64(buf, r.Amplitude.SNR)
	}

	buf = append(buf, '}')
	return buf
}

func appendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			dst = append(dst, '\\', byte(r))
		default:
			dst = append(dst, string(r)...)
		}
	}
	return append(dst, '"')
}
