package nmea

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rmcLine = "$GPRMC,144904.500,A,4308.4726,N,07740.8333,W,12.40,246.35,010525,,,A*7C"

func TestParseCoordinate(t *testing.T) {
	lat, err := ParseCoordinate("4308.4726", "N")
	require.NoError(t, err)
	assert.InDelta(t, 43.14121, lat, 1e-4)

	lon, err := ParseCoordinate("07740.8333", "W")
	require.NoError(t, err)
	assert.InDelta(t, -77.680555, lon, 1e-4)

	south, err := ParseCoordinate("3352.0000", "S")
	require.NoError(t, err)
	assert.InDelta(t, -33.866666, south, 1e-6)

	// fewer than two digits before the point: all minutes, no degrees
	small, err := ParseCoordinate("5.5", "N")
	require.NoError(t, err)
	assert.InDelta(t, 5.5/60, small, 1e-9)

	_, err = ParseCoordinate("0", "N")
	assert.ErrorIs(t, err, ErrMalformedSentence)
}

func TestParsePositionFix(t *testing.T) {
	fix, err := ParsePositionFix(SplitFields(rmcLine))
	require.NoError(t, err)
	require.NotNil(t, fix)

	assert.Equal(t, time.Date(2025, 5, 1, 14, 49, 4, 0, time.UTC), fix.Timestamp)
	assert.InDelta(t, 144904.5, fix.RawTime, 1e-9)
	assert.Equal(t, "A", fix.Status)
	assert.InDelta(t, 43.14121, fix.Latitude, 1e-4)
	assert.InDelta(t, -77.68055, fix.Longitude, 1e-4)
	assert.InDelta(t, 12.40, fix.SpeedKnots, 1e-9)
	assert.InDelta(t, 246.35, fix.CourseDeg, 1e-9)
	assert.Equal(t, "A", fix.Mode)
	assert.Equal(t, "7C", fix.Checksum)
}

func TestParsePositionFix_VoidIsNotAnError(t *testing.T) {
	fix, err := ParsePositionFix(SplitFields("$GPRMC,144904.500,V,,,,,,,010525,,,N*53"))
	assert.NoError(t, err)
	assert.Nil(t, fix)
}

func TestParsePositionFix_Malformed(t *testing.T) {
	cases := map[string]string{
		"too few fields":   "$GPRMC,144904.500,A,4308.4726,N",
		"wrong type":       "$GPGSA,144904.500,A,4308.4726,N,07740.8333,W,12.4,246.35,010525",
		"no decimal point": "$GPRMC,144904.500,A,4308,N,07740.8333,W,12.4,246.35,010525",
		"bad course":       "$GPRMC,144904.500,A,4308.4726,N,07740.8333,W,12.4,abc,010525",
		"short date":       "$GPRMC,144904.500,A,4308.4726,N,07740.8333,W,12.4,246.35,0105",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			fix, err := ParsePositionFix(SplitFields(line))
			assert.ErrorIs(t, err, ErrMalformedSentence)
			assert.Nil(t, fix)
		})
	}
}

func TestParsePositionFix_SpeedIsSanitized(t *testing.T) {
	fix, err := ParsePositionFix(SplitFields("$GPRMC,144904,A,4308.4726,N,07740.8333,W,1.5kn,0,010525"))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, fix.SpeedKnots, 1e-9)
	assert.Empty(t, fix.Mode)

	fix, err = ParsePositionFix(SplitFields("$GPRMC,144904,A,4308.4726,N,07740.8333,W,,0,010525"))
	require.NoError(t, err)
	assert.Zero(t, fix.SpeedKnots)
}

func TestParsePrecisionFix(t *testing.T) {
	fix, err := ParsePrecisionFix(SplitFields("$GPGGA,144904.750,4308.4726,N,07740.8333,W,1,08,0.9,162.6,M,-34.4,M,,0000*5E"))
	require.NoError(t, err)
	require.NotNil(t, fix)

	assert.Equal(t, 14*time.Hour+49*time.Minute+4*time.Second+750*time.Millisecond, fix.TimeOfDay)
	assert.InDelta(t, 43.14121, fix.Latitude, 1e-4)
	assert.Equal(t, 1, fix.FixQuality)
	assert.Equal(t, 8, fix.Satellites)
	assert.InDelta(t, 0.9, fix.HDOP, 1e-9)
	assert.InDelta(t, 162.6, fix.AltitudeM, 1e-9)
	assert.InDelta(t, -34.4, fix.GeoidHeightM, 1e-9)
	assert.Equal(t, "0", fix.DGPSAge)
	assert.Equal(t, "0000", fix.DGPSStation)
	assert.Equal(t, "5E", fix.Checksum)
}

func TestParsePrecisionFix_Malformed(t *testing.T) {
	_, err := ParsePrecisionFix(SplitFields("$GPGGA,144904.750,4308.4726,N"))
	assert.ErrorIs(t, err, ErrMalformedSentence)

	_, err = ParsePrecisionFix(SplitFields(rmcLine))
	assert.ErrorIs(t, err, ErrMalformedSentence)
}

func TestParse_DispatchesAndCounts(t *testing.T) {
	sentences := []Sentence{
		{Raw: rmcLine, Fields: SplitFields(rmcLine)},
		{Fields: SplitFields("$GPRMC,144905.500,V,,,,,,,010525,,,N*53")},
		{Fields: SplitFields("$GPRMC,144906.500,A,4308.4726")},
		{Fields: SplitFields("$GPGGA,144904.750,4308.4726,N,07740.8333,W,1,08,0.9,162.6,M,-34.4,M,,0000*5E")},
		{Fields: SplitFields("$GPGSV,3,1,12,01,40,083,46*7A")},
	}

	res := Parse(sentences)
	assert.Len(t, res.Positions, 1)
	assert.Len(t, res.Precisions, 1)
	assert.Equal(t, 1, res.Stats.Positions)
	assert.Equal(t, 1, res.Stats.Precisions)
	assert.Equal(t, 1, res.Stats.Void)
	assert.Equal(t, 1, res.Stats.Malformed)
	assert.Equal(t, 1, res.Stats.Unrecognized)
}
