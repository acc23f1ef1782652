package glasstime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpochToISO8601(t *testing.T) {
	cases := []struct {
		epoch float64
		want  string
	}{
		{1451338344.017, "2015-12-28T21:32:24.017Z"},
		{1451338344.5, "2015-12-28T21:32:24.500Z"},
		{1451338344.9999997, "2015-12-28T21:32:25.000Z"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, EpochToISO8601(c.epoch))
	}
}

func TestISO8601RoundTrip(t *testing.T) {
	for epoch := float64(0); epoch < 2e9; epoch += 104729.123 {
		s := EpochToISO8601(epoch)
		got, err := ISO8601ToEpoch(s)
		require.NoError(t, err)
		assert.InDelta(t, math.Round(epoch*1000)/1000, got, 1e-3)
	}
}

func TestParseGPickTime(t *testing.T) {
	got, err := ParseGPickTime("20150303000044.175")
	require.NoError(t, err)
	want, err := ISO8601ToEpoch("2015-03-03T00:00:44.175Z")
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-6)
}

func TestParseCCDateTime(t *testing.T) {
	got, err := ParseCCDateTime("20150323235347.630")
	require.NoError(t, err)
	want, err := ISO8601ToEpoch("2015-03-23T23:53:47.630Z")
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-6)
}
