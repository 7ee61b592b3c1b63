package behavior

import (
	"fmt"

	"github.com/jz2447/csci420-gps-proj/internal/models"
)

// TimeBasis selects how a stop run's length is measured
type TimeBasis string

// TimeBasis constants
const (
	// TimeBasisRaw subtracts the logged hhmmss.sss values as plain numbers.
	// This is not true elapsed time across a minute, hour or midnight boundary.
	TimeBasisRaw TimeBasis = "raw"
	// TimeBasisElapsed uses the difference of the fix timestamps in seconds
	TimeBasisElapsed TimeBasis = "elapsed"
)

// ParseTimeBasis validates a configured basis name; empty means raw
func ParseTimeBasis(s string) (TimeBasis, error) {
	switch TimeBasis(s) {
	case "", TimeBasisRaw:
		return TimeBasisRaw, nil
	case TimeBasisElapsed:
		return TimeBasisElapsed, nil
	default:
		return "", fmt.Errorf("unknown stop time basis %q", s)
	}
}

// StopThresholds defines configurable thresholds for stop detection
type StopThresholds struct {
	SpeedKnots    float64 // below this the vehicle counts as stopped
	MinDuration   float64 // minimum run length, in the unit of Basis
	Basis         TimeBasis
	FlushTrailing bool // evaluate a run still open at the end of the track
}

// DefaultStopThresholds provides default stop detection thresholds
var DefaultStopThresholds = StopThresholds{
	SpeedKnots:  1.0,
	MinDuration: 1.0,
	Basis:       TimeBasisRaw,
}

// StopDetector finds sustained low-speed runs
type StopDetector struct {
	Thresholds StopThresholds
}

// NewStopDetector creates a detector with the given thresholds
func NewStopDetector(th StopThresholds) *StopDetector {
	return &StopDetector{Thresholds: th}
}

// Detect emits one StopEvent per qualifying low-speed run, placed at the
// run's middle element. A run is evaluated when a fix at or above the stop
// speed closes it; the run is cleared whether or not it qualified.
func (d *StopDetector) Detect(fixes []models.GPSFix) []models.StopEvent {
	var stops []models.StopEvent
	var run []models.GPSFix

	for _, fix := range fixes {
		if fix.SpeedKnots < d.Thresholds.SpeedKnots {
			run = append(run, fix)
			continue
		}
		if len(run) > 0 {
			if stop, ok := d.evaluate(run); ok {
				stops = append(stops, stop)
			}
			run = nil
		}
	}

	if d.Thresholds.FlushTrailing && len(run) > 0 {
		if stop, ok := d.evaluate(run); ok {
			stops = append(stops, stop)
		}
	}

	return stops
}

func (d *StopDetector) evaluate(run []models.GPSFix) (models.StopEvent, bool) {
	first, last := run[0], run[len(run)-1]

	var span float64
	switch d.Thresholds.Basis {
	case TimeBasisElapsed:
		span = last.Timestamp.Sub(first.Timestamp).Seconds()
	default:
		span = last.RawTime - first.RawTime
	}
	if span < d.Thresholds.MinDuration {
		return models.StopEvent{}, false
	}

	mid := run[len(run)/2]
	return models.StopEvent{
		Latitude:  mid.Latitude,
		Longitude: mid.Longitude,
		Timestamp: mid.Timestamp,
		Samples:   len(run),
		Span:      span,
	}, true
}
