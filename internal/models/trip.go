package models

import (
	"time"

	"github.com/paulmach/orb"
)

// Waypoint is a fixed reference location, typically one end of a commute
type Waypoint struct {
	Name      string  `json:"name" yaml:"name"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Marker is a named point on the rendered track
type Marker struct {
	Name        string    `json:"name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

// DurationEstimate is the observed trip time plus the travel time
// extrapolated for boundaries the log did not capture
type DurationEstimate struct {
	Observed         time.Duration `json:"observed"`
	MissingLeading   time.Duration `json:"missingLeading"`
	MissingTrailing  time.Duration `json:"missingTrailing"`
	Total            time.Duration `json:"total"`
	TotalSeconds     float64       `json:"totalSeconds"`
	StartedInMotion  bool          `json:"startedInMotion"`
	EndedInMotion    bool          `json:"endedInMotion"`
	LeadingWaypoint  string        `json:"leadingWaypoint,omitempty"`
	TrailingWaypoint string        `json:"trailingWaypoint,omitempty"`
}

// IsEstimate reports whether any boundary term was extrapolated
func (d DurationEstimate) IsEstimate() bool {
	return d.StartedInMotion || d.EndedInMotion
}

// AnnotatedTrack is the result of one pipeline run, handed to a renderer
type AnnotatedTrack struct {
	Segments       []orb.LineString `json:"segments"`
	Start          Marker           `json:"start"`
	End            Marker           `json:"end"`
	Turns          []TurnEvent      `json:"turns"`
	Stops          []StopEvent      `json:"stops"`
	Duration       DurationEstimate `json:"duration"`
	DistanceMeters float64          `json:"distanceMeters"`
	Speed          SpeedSummary     `json:"speed"`
	Bounds         orb.Bound        `json:"bounds"`
	Stats          RunStats         `json:"stats"`
}

// VertexCount returns the number of coordinates across all segments
func (t *AnnotatedTrack) VertexCount() int {
	n := 0
	for _, seg := range t.Segments {
		n += len(seg)
	}
	return n
}
