package nmea

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jz2447/csci420-gps-proj/internal/models"
)

// Sentence types recognized by the pipeline
const (
	TypeRMC = "RMC"
	TypeGGA = "GGA"
)

const (
	rmcDiscriminant = "GPRMC"
	ggaDiscriminant = "GPGGA"

	minRMCFields = 10
	minGGAFields = 10
)

// ErrMalformedSentence marks a line that cannot be turned into a fix; callers skip it
var ErrMalformedSentence = errors.New("nmea: malformed sentence")

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

func sentenceType(field0 string) string {
	switch {
	case strings.HasSuffix(field0, rmcDiscriminant):
		return TypeRMC
	case strings.HasSuffix(field0, ggaDiscriminant):
		return TypeGGA
	default:
		return ""
	}
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedSentence, fmt.Sprintf(format, args...))
}

// RMC: Recommended Minimum Specific GNSS Data
//
//	0: talker+type
//	1: time (hhmmss.sss)
//	2: status (A=active, V=void)
//	3: latitude (ddmm.mmmm)
//	4: N/S
//	5: longitude (dddmm.mmmm)
//	6: E/W
//	7: speed over ground (knots)
//	8: course over ground (deg)
//	9: date (ddmmyy)
//	10-11: magnetic variation
//	12: mode*checksum
//
// A void fix is not an error: it returns nil, nil.
func ParsePositionFix(f []string) (*models.GPSFix, error) {
	if len(f) < minRMCFields {
		return nil, malformed("RMC has %d fields, need %d", len(f), minRMCFields)
	}
	if sentenceType(f[0]) != TypeRMC {
		return nil, malformed("unexpected discriminant %q", f[0])
	}

	status := strings.TrimSpace(f[2])
	if status == models.StatusVoid {
		return nil, nil
	}

	ts, err := parseDateTime(f[9], f[1])
	if err != nil {
		return nil, err
	}
	rawTime, err := strconv.ParseFloat(strings.TrimSpace(f[1]), 64)
	if err != nil {
		return nil, malformed("time %q", f[1])
	}
	lat, err := ParseCoordinate(f[3], f[4])
	if err != nil {
		return nil, err
	}
	lon, err := ParseCoordinate(f[5], f[6])
	if err != nil {
		return nil, err
	}
	course, err := strconv.ParseFloat(strings.TrimSpace(f[8]), 64)
	if err != nil {
		return nil, malformed("course %q", f[8])
	}

	fix := &models.GPSFix{
		Timestamp:  ts,
		RawTime:    rawTime,
		Status:     status,
		Latitude:   lat,
		Longitude:  lon,
		SpeedKnots: safeFloat(f[7]),
		CourseDeg:  course,
	}
	if len(f) > 12 {
		fix.Mode, fix.Checksum = splitChecksum(f[12])
	}
	return fix, nil
}

// GGA: Global Positioning System Fix Data
//
//	0: talker+type
//	1: time (hhmmss.sss)
//	2-3: latitude, N/S
//	4-5: longitude, E/W
//	6: fix quality (0=invalid, 1=GPS, 2=DGPS)
//	7: number of satellites
//	8: HDOP
//	9: altitude (meters), 10: units
//	11: geoid height (meters), 12: units
//	13: DGPS age
//	14: DGPS station*checksum
func ParsePrecisionFix(f []string) (*models.PrecisionFix, error) {
	if len(f) < minGGAFields {
		return nil, malformed("GGA has %d fields, need %d", len(f), minGGAFields)
	}
	if sentenceType(f[0]) != TypeGGA {
		return nil, malformed("unexpected discriminant %q", f[0])
	}

	rawTime, err := strconv.ParseFloat(strings.TrimSpace(f[1]), 64)
	if err != nil {
		return nil, malformed("time %q", f[1])
	}
	tod, err := parseTimeOfDay(f[1])
	if err != nil {
		return nil, err
	}
	lat, err := ParseCoordinate(f[2], f[3])
	if err != nil {
		return nil, err
	}
	lon, err := ParseCoordinate(f[4], f[5])
	if err != nil {
		return nil, err
	}
	quality, err := strconv.Atoi(strings.TrimSpace(f[6]))
	if err != nil {
		return nil, malformed("fix quality %q", f[6])
	}
	sats, err := strconv.Atoi(strings.TrimSpace(f[7]))
	if err != nil {
		return nil, malformed("satellites %q", f[7])
	}
	hdop, err := strconv.ParseFloat(strings.TrimSpace(f[8]), 64)
	if err != nil {
		return nil, malformed("hdop %q", f[8])
	}
	alt, err := strconv.ParseFloat(strings.TrimSpace(f[9]), 64)
	if err != nil {
		return nil, malformed("altitude %q", f[9])
	}

	fix := &models.PrecisionFix{
		TimeOfDay:  tod,
		RawTime:    rawTime,
		Latitude:   lat,
		Longitude:  lon,
		FixQuality: quality,
		Satellites: sats,
		HDOP:       hdop,
		AltitudeM:  alt,
	}
	if len(f) > 11 {
		if geoid, err := strconv.ParseFloat(strings.TrimSpace(f[11]), 64); err == nil {
			fix.GeoidHeightM = geoid
		}
	}
	if len(f) > 13 {
		fix.DGPSAge = strings.TrimSpace(f[13])
	}
	if len(f) > 14 {
		fix.DGPSStation, fix.Checksum = splitChecksum(f[14])
	}
	return fix, nil
}

// ParseCoordinate converts NMEA (d)ddmm.mmmm plus hemisphere to signed decimal degrees.
// The last two digits before the decimal point start the minutes.
func ParseCoordinate(v, hemi string) (float64, error) {
	v = strings.TrimSpace(v)
	dot := strings.IndexByte(v, '.')
	if dot == -1 {
		return 0, malformed("coordinate %q has no decimal point", v)
	}
	minStart := dot - 2
	if minStart < 0 {
		minStart = 0
	}

	deg := safeFloat(v[:minStart])
	mins, err := strconv.ParseFloat(v[minStart:], 64)
	if err != nil {
		return 0, malformed("coordinate minutes %q", v[minStart:])
	}

	dec := deg + mins/60.0
	switch strings.ToUpper(strings.TrimSpace(hemi)) {
	case "S", "W":
		dec = -dec
	}
	return dec, nil
}

// parseDateTime combines ddmmyy and hhmmss[.sss] into a UTC timestamp at second resolution
func parseDateTime(date, tod string) (time.Time, error) {
	d := digitsOnly(date)
	if len(d) < 6 {
		return time.Time{}, malformed("date %q", date)
	}
	day, _ := strconv.Atoi(d[0:2])
	month, _ := strconv.Atoi(d[2:4])
	year, _ := strconv.Atoi(d[4:6])

	since, err := parseTimeOfDay(tod)
	if err != nil {
		return time.Time{}, err
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, malformed("date %q", date)
	}

	base := time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return base.Add(since.Truncate(time.Second)), nil
}

// parseTimeOfDay reads hhmmss[.sss] as a duration since midnight
func parseTimeOfDay(tod string) (time.Duration, error) {
	whole := strings.TrimSpace(tod)
	frac := 0.0
	if dot := strings.IndexByte(whole, '.'); dot != -1 {
		frac, _ = strconv.ParseFloat("0"+whole[dot:], 64)
		whole = whole[:dot]
	}
	t := digitsOnly(whole)
	if len(t) < 6 {
		return 0, malformed("time %q", tod)
	}
	h, _ := strconv.Atoi(t[0:2])
	m, _ := strconv.Atoi(t[2:4])
	s, _ := strconv.Atoi(t[4:6])
	if h > 23 || m > 59 || s > 60 {
		return 0, malformed("time %q", tod)
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(frac*float64(time.Second)), nil
}

// safeFloat strips everything but digits and '.', returning 0 when nothing parses
func safeFloat(s string) float64 {
	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitChecksum splits "A*7C" into ("A", "7C")
func splitChecksum(field string) (string, string) {
	field = strings.TrimSpace(field)
	if star := strings.IndexByte(field, '*'); star != -1 {
		return field[:star], field[star+1:]
	}
	return field, ""
}
