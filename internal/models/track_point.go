package models

import (
	"time"

	"github.com/paulmach/orb"
)

// Fix status values carried in the RMC status field
const (
	StatusActive = "A"
	StatusVoid   = "V"
)

// GPSFix represents one position/velocity reading from an RMC sentence
type GPSFix struct {
	Timestamp  time.Time `json:"timestamp"` // date + time of day, UTC, second resolution
	RawTime    float64   `json:"rawTime"`   // hhmmss.sss exactly as logged
	Status     string    `json:"status"`    // A = active, V = void
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	SpeedKnots float64   `json:"speedKnots"`     // speed over ground
	CourseDeg  float64   `json:"courseDeg"`      // course over ground
	Mode       string    `json:"mode,omitempty"` // A = autonomous, D = differential, E = estimated, N = not valid
	Checksum   string    `json:"checksum,omitempty"`
}

// Point returns the fix position in orb's (lon, lat) order
func (f GPSFix) Point() orb.Point {
	return orb.Point{f.Longitude, f.Latitude}
}

// PrecisionFix represents one fix-quality reading from a GGA sentence
type PrecisionFix struct {
	TimeOfDay    time.Duration `json:"timeOfDay"` // since UTC midnight
	RawTime      float64       `json:"rawTime"`
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`
	FixQuality   int           `json:"fixQuality"` // 0 = invalid, 1 = GPS fix, 2 = DGPS fix
	Satellites   int           `json:"satellites"`
	HDOP         float64       `json:"hdop"`
	AltitudeM    float64       `json:"altitudeM"`
	GeoidHeightM float64       `json:"geoidHeightM"`
	DGPSAge      string        `json:"dgpsAge,omitempty"`
	DGPSStation  string        `json:"dgpsStation,omitempty"`
	Checksum     string        `json:"checksum,omitempty"`
}

// Points converts fixes into their (lon, lat) coordinate sequence
func Points(fixes []GPSFix) []orb.Point {
	points := make([]orb.Point, len(fixes))
	for i, f := range fixes {
		points[i] = f.Point()
	}
	return points
}
