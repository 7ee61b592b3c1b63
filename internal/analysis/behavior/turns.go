package behavior

import (
	"github.com/paulmach/orb"

	"github.com/jz2447/csci420-gps-proj/internal/models"
	"github.com/jz2447/csci420-gps-proj/internal/spatial"
)

// TurnThresholds defines configurable thresholds for turn detection
type TurnThresholds struct {
	ThresholdDeg   float64 // minimum absolute bearing change for a turn
	MinSegmentM    float64 // shorter segments give noise-dominated bearings
	MinSeparationM float64 // markers closer than this to the previous one are dropped
}

// DefaultTurnThresholds provides default turn detection thresholds
var DefaultTurnThresholds = TurnThresholds{
	ThresholdDeg:   10.0,
	MinSegmentM:    3.0,
	MinSeparationM: 10.0,
}

// TurnDetector classifies heading changes over a sliding 3-point window
type TurnDetector struct {
	Thresholds TurnThresholds
}

// NewTurnDetector creates a detector with the given thresholds
func NewTurnDetector(th TurnThresholds) *TurnDetector {
	return &TurnDetector{Thresholds: th}
}

// Classify returns the direction of the bend p1 -> p2 -> p3 and the signed bearing change
func (d *TurnDetector) Classify(p1, p2, p3 orb.Point) (models.Direction, float64) {
	if spatial.PointDistance(p1, p2) < d.Thresholds.MinSegmentM ||
		spatial.PointDistance(p2, p3) < d.Thresholds.MinSegmentM {
		return models.DirectionStraight, 0
	}

	b1 := spatial.PointBearing(p1, p2)
	b2 := spatial.PointBearing(p2, p3)
	delta := spatial.SignedBearingDelta(b1, b2)

	switch {
	case delta > d.Thresholds.ThresholdDeg:
		return models.DirectionRight, delta
	case delta < -d.Thresholds.ThresholdDeg:
		return models.DirectionLeft, delta
	default:
		return models.DirectionStraight, delta
	}
}

// TurnResult holds the emitted left-turn markers and per-direction counts
type TurnResult struct {
	Markers []models.TurnEvent
	Left    int
	Right   int
}

// Detect slides over points (lon, lat) and emits a marker at the middle sample
// of each left turn, unless it lies within MinSeparationM of the previous marker.
// Consecutive windows along one curve therefore produce a single marker.
func (d *TurnDetector) Detect(points []orb.Point) TurnResult {
	var res TurnResult
	var last *orb.Point

	for i := 0; i+2 < len(points); i++ {
		p2 := points[i+1]
		dir, delta := d.Classify(points[i], p2, points[i+2])

		switch dir {
		case models.DirectionRight:
			res.Right++
		case models.DirectionLeft:
			res.Left++
			if last != nil && spatial.PointDistance(*last, p2) <= d.Thresholds.MinSeparationM {
				continue
			}
			marker := p2
			last = &marker
			res.Markers = append(res.Markers, models.TurnEvent{
				Latitude:  p2.Lat(),
				Longitude: p2.Lon(),
				Direction: dir,
				DeltaDeg:  delta,
			})
		}
	}

	return res
}
