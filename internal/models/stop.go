package models

import "time"

// StopEvent represents a sustained low-speed run, located at its temporal midpoint
type StopEvent struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
	Samples   int       `json:"samples"` // number of fixes in the run
	Span      float64   `json:"span"`    // run length in the detector's time basis
}
