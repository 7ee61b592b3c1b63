package behavior

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jz2447/csci420-gps-proj/internal/models"
)

func withRawTimes(fixes []models.GPSFix, raw ...float64) []models.GPSFix {
	for i := range raw {
		fixes[i].RawTime = raw[i]
	}
	return fixes
}

func TestStopDetector_QualifyingRunYieldsOneStopAtMidpoint(t *testing.T) {
	fixes := withRawTimes(speeds(5, 0.2, 0.2, 0.2, 5), 99, 100, 102, 105, 106)

	stops := NewStopDetector(DefaultStopThresholds).Detect(fixes)
	require.Len(t, stops, 1)
	assert.Equal(t, fixes[2].Latitude, stops[0].Latitude)
	assert.Equal(t, fixes[2].Timestamp, stops[0].Timestamp)
	assert.Equal(t, 3, stops[0].Samples)
	assert.InDelta(t, 5, stops[0].Span, 1e-9)
}

func TestStopDetector_ShortRunYieldsNothing(t *testing.T) {
	fixes := withRawTimes(speeds(5, 0.2, 0.2, 5), 99, 100, 100.5, 101)
	assert.Empty(t, NewStopDetector(DefaultStopThresholds).Detect(fixes))
}

func TestStopDetector_SpeedAtThresholdClosesRun(t *testing.T) {
	fixes := withRawTimes(speeds(0.2, 0.2, 1.0, 0.2, 0.2, 3), 100, 103, 104, 105, 109, 110)

	stops := NewStopDetector(DefaultStopThresholds).Detect(fixes)
	require.Len(t, stops, 2)
	assert.Equal(t, fixes[1].Latitude, stops[0].Latitude) // run of 2, index 1
	assert.Equal(t, fixes[4].Latitude, stops[1].Latitude)
}

func TestStopDetector_TrailingRun(t *testing.T) {
	fixes := withRawTimes(speeds(5, 0.2, 0.2, 0.2), 99, 100, 102, 105)

	assert.Empty(t, NewStopDetector(DefaultStopThresholds).Detect(fixes))

	th := DefaultStopThresholds
	th.FlushTrailing = true
	stops := NewStopDetector(th).Detect(fixes)
	require.Len(t, stops, 1)
	assert.Equal(t, fixes[2].Latitude, stops[0].Latitude)
}

func TestStopDetector_ElapsedBasis(t *testing.T) {
	// raw values straddle a minute boundary: 140059 -> 140101 is 2 s, not 42
	fixes := withRawTimes(speeds(5, 0.2, 0.2, 5), 140058, 140059, 140101, 140102)
	fixes[2].Timestamp = fixes[1].Timestamp.Add(2 * time.Second)

	th := DefaultStopThresholds
	th.MinDuration = 10
	assert.Len(t, NewStopDetector(th).Detect(fixes), 1, "raw basis over-counts the span")

	th.Basis = TimeBasisElapsed
	assert.Empty(t, NewStopDetector(th).Detect(fixes))
}

func TestParseTimeBasis(t *testing.T) {
	b, err := ParseTimeBasis("")
	require.NoError(t, err)
	assert.Equal(t, TimeBasisRaw, b)

	b, err = ParseTimeBasis("elapsed")
	require.NoError(t, err)
	assert.Equal(t, TimeBasisElapsed, b)

	_, err = ParseTimeBasis("minutes")
	assert.Error(t, err)
}
