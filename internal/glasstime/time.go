// Package glasstime provides the deterministic time, angle, and numeric
// primitives shared across the pipeline: ISO8601/epoch conversion, geocentric
// angle math, Gaussian/uniform deviates, and Brent minimization.
package glasstime

import (
	"fmt"
	"math"
	"time"
)

const iso8601Layout = "2006-01-02T15:04:05.000Z"

// EpochToISO8601 converts an epoch-seconds timestamp (double precision, UTC)
// into the canonical wire format, rounding to the nearest millisecond.
func EpochToISO8601(epoch float64) string {
	ms := int64(math.Round(epoch * 1000))
	sec := ms / 1000
	nsec := (ms % 1000) * int64(time.Millisecond)
	if nsec < 0 {
		sec--
		nsec += int64(time.Second)
	}
	t := time.Unix(sec, nsec).UTC()
	return t.Format(iso8601Layout)
}

// ISO8601ToEpoch parses the canonical wire format into epoch seconds.
func ISO8601ToEpoch(s string) (float64, error) {
	t, err := time.Parse(iso8601Layout, s)
	if err != nil {
		return 0, fmt.Errorf("glasstime: parse iso8601: %w", err)
	}
	return float64(t.UnixNano()) / float64(time.Second), nil
}

// gpickTimeLayout is the GlobalPick wire format: YYYYMMDDHHMMSS.sss
const gpickTimeLayout = "20060102150405.000"

// ParseGPickTime converts a GlobalPick-format datetime string to epoch seconds.
func ParseGPickTime(s string) (float64, error) {
	t, err := time.Parse(gpickTimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("glasstime: parse gpick time %q: %w", s, err)
	}
	return float64(t.UnixNano()) / float64(time.Second), nil
}

// ccDateTimeLayout is the Correlation wire format after date/time have been
// concatenated with their internal separators stripped: YYYYMMDDHHMMSS.sss
const ccDateTimeLayout = "20060102150405.000"

// ParseCCDateTime converts a concatenated, separator-stripped Correlation
// date+time string ("YYYYMMDD"+"HHMMSS.sss") to epoch seconds.
func ParseCCDateTime(s string) (float64, error) {
	t, err := time.Parse(ccDateTimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("glasstime: parse cc datetime %q: %w", s, err)
	}
	return float64(t.UnixNano()) / float64(time.Second), nil
}
