package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usgs/neic-glass3-sub002/internal/glasstime"
	"github.com/usgs/neic-glass3-sub002/internal/record"
)

func TestGlobalPickParseScenario(t *testing.T) {
	p := NewGlobalPickParser("US", "glasstest", nil)
	input := "228041013 22637648 1 BOZ BHZ US 00 20150303000044.175 P -1.0000 U  ? m 1.050 2.650 0.0 0.000000 3.49 0.000000 0.000000"

	r, ok := p.Parse(input)
	require.True(t, ok)

	wantTime, err := glasstime.ISO8601ToEpoch("2015-03-03T00:00:44.175Z")
	require.NoError(t, err)

	assert.Equal(t, record.KindPick, r.Kind)
	assert.Equal(t, record.Site{Network: "US", Station: "BOZ", Channel: "BHZ", Location: "00"}, r.Site)
	assert.InDelta(t, wantTime, r.Time, 1e-6)
	assert.Equal(t, "P", r.Phase)
	assert.Equal(t, record.PolarityUp, r.Polarity)
	assert.Equal(t, record.PickerManual, r.Picker)
	require.NotNil(t, r.Filter)
	assert.Equal(t, 1.050, r.Filter.HighPass)
	assert.Equal(t, 2.650, r.Filter.LowPass)
	assert.Nil(t, r.Amplitude)

	assert.True(t, p.Validate(r))
}

func TestGlobalPickParseInsufficientFields(t *testing.T) {
	p := NewGlobalPickParser("US", "glasstest", nil)
	_, ok := p.Parse("too few fields here")
	assert.False(t, ok)
}

func TestGlobalPickParseBadTime(t *testing.T) {
	p := NewGlobalPickParser("US", "glasstest", nil)
	input := "228041013 22637648 1 BOZ BHZ US 00 not-a-time P -1.0000 U  ? m 1.050 2.650 0.0 0.000000 3.49 0.000000 0.000000"
	_, ok := p.Parse(input)
	assert.False(t, ok)
}

func TestCorrelationParseScenario(t *testing.T) {
	p := NewCorrelationParser("US", "glasstest", nil)
	input := "2015/03/23 23:53:47.630 36.769 -98.019 5.0 1.2677417 mblg GS OK032 HHZ 00 P 2015/03/23 23:53:50.850 0.7663822 0.65"

	r, ok := p.Parse(input)
	require.True(t, ok)

	wantHypoTime, err := glasstime.ISO8601ToEpoch("2015-03-23T23:53:47.630Z")
	require.NoError(t, err)

	assert.Equal(t, record.KindCorrelation, r.Kind)
	assert.Equal(t, "CCOK032HHZGS0020150323235350850", r.ID)
	require.NotNil(t, r.Hypocenter)
	assert.Equal(t, 36.769, r.Hypocenter.Latitude)
	assert.Equal(t, -98.019, r.Hypocenter.Longitude)
	assert.Equal(t, 5.0, r.Hypocenter.Depth)
	assert.InDelta(t, wantHypoTime, r.Hypocenter.Time, 1e-6)
	assert.Equal(t, 1.2677417, r.Magnitude)
	assert.Equal(t, 0.7663822, r.CorrelationValue)
	assert.Equal(t, "P", r.Phase)
	assert.Equal(t, "earthquake", r.EventType)

	assert.True(t, p.Validate(r))
}

func TestCorrelationParseInsufficientFields(t *testing.T) {
	p := NewCorrelationParser("US", "glasstest", nil)
	_, ok := p.Parse("2015/03/23 23:53:47.630 36.769")
	assert.False(t, ok)
}

func TestJSONParsePick(t *testing.T) {
	p := NewJSONParser("US", "glasstest", nil)
	input := `{"Type":"Pick","ID":"abc123","Site":{"Station":"BOZ","Channel":"BHZ","Network":"US","Location":"00"},"Time":1425340844.175,"Phase":"P"}`

	r, ok := p.Parse(input)
	require.True(t, ok)
	assert.Equal(t, record.KindPick, r.Kind)
	assert.Equal(t, "abc123", r.ID)
	assert.Equal(t, "US", r.Source.AgencyID)
	assert.Equal(t, "glasstest", r.Source.Author)
	assert.Equal(t, "P", r.Phase)
	assert.True(t, p.Validate(r))
}

func TestJSONParseStationInfoFilteredByRequestor(t *testing.T) {
	p := NewJSONParser("US", "glasstest", nil)
	input := `{"Type":"StationInfo","ID":"BOZ","Site":{"Station":"BOZ"},"InformationRequestor":{"AgencyID":"OTHER","Author":"someone"}}`

	_, ok := p.Parse(input)
	assert.False(t, ok)
}

func TestJSONParseStationInfoAcceptedForOwnRequestor(t *testing.T) {
	p := NewJSONParser("US", "glasstest", nil)
	input := `{"Type":"StationInfo","ID":"BOZ","Site":{"Station":"BOZ"},"InformationRequestor":{"AgencyID":"US","Author":"glasstest"}}`

	r, ok := p.Parse(input)
	require.True(t, ok)
	assert.Equal(t, record.KindStationInfo, r.Kind)
}

func TestJSONParseUnrecognizedType(t *testing.T) {
	p := NewJSONParser("US", "glasstest", nil)
	_, ok := p.Parse(`{"Type":"Bogus"}`)
	assert.False(t, ok)
}

func TestJSONParseMalformed(t *testing.T) {
	p := NewJSONParser("US", "glasstest", nil)
	_, ok := p.Parse(`{not valid json`)
	assert.False(t, ok)
}

func TestSimplePickParseWithPhase(t *testing.T) {
	p := NewSimplePickParser("US", "glasstest", nil)
	input := "57647 AK GLI BHZ -- 1568999913.12 P"

	r, ok := p.Parse(input)
	require.True(t, ok)
	assert.Equal(t, record.KindPick, r.Kind)
	assert.Equal(t, "57647", r.ID)
	assert.Equal(t, record.Site{Network: "AK", Station: "GLI", Channel: "BHZ", Location: "--"}, r.Site)
	assert.Equal(t, 1568999913.12, r.Time)
	assert.Equal(t, "None", r.Source.AgencyID)
	assert.Equal(t, "None", r.Source.Author)
	assert.Equal(t, "P", r.Phase)
	require.NotNil(t, r.Classification)
	assert.Equal(t, "P", r.Classification.Phase)
	assert.Equal(t, 1.0, r.Classification.Probability)
}

func TestSimplePickParseWithoutPhase(t *testing.T) {
	p := NewSimplePickParser("US", "glasstest", nil)
	r, ok := p.Parse("57647 AK GLI BHZ -- 1568999913.12")
	require.True(t, ok)
	assert.Equal(t, "", r.Phase)
	assert.Nil(t, r.Classification)
}

func TestSimplePickParseInsufficientFields(t *testing.T) {
	p := NewSimplePickParser("US", "glasstest", nil)
	_, ok := p.Parse("57647 AK GLI")
	assert.False(t, ok)
}
