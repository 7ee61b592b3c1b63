package behavior

import (
	"errors"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jz2447/csci420-gps-proj/internal/models"
	"github.com/jz2447/csci420-gps-proj/internal/spatial"
)

// ErrNoFixes is returned when a duration is requested for an empty track
var ErrNoFixes = errors.New("no fixes to estimate a duration from")

// DurationEstimator extrapolates travel time the log missed at either end of a trip
type DurationEstimator struct {
	MovingKnots float64
	Waypoints   []models.Waypoint
}

// NewDurationEstimator creates an estimator against the given reference waypoints
func NewDurationEstimator(movingKnots float64, waypoints []models.Waypoint) *DurationEstimator {
	return &DurationEstimator{MovingKnots: movingKnots, Waypoints: waypoints}
}

// NearestWaypoint returns the waypoint closest to fix and its distance in meters
func (e *DurationEstimator) NearestWaypoint(fix models.GPSFix) (models.Waypoint, float64, bool) {
	var nearest models.Waypoint
	minDist := math.Inf(1)
	for _, wp := range e.Waypoints {
		d := spatial.HaversineDistance(fix.Latitude, fix.Longitude, wp.Latitude, wp.Longitude)
		if d < minDist {
			minDist = d
			nearest = wp
		}
	}
	return nearest, minDist, len(e.Waypoints) > 0
}

// EstimateMissing returns how long the vehicle would take to cover the distance
// between fix and the nearest waypoint at the fix's own speed
func (e *DurationEstimator) EstimateMissing(fix models.GPSFix) (time.Duration, models.Waypoint) {
	wp, dist, ok := e.NearestWaypoint(fix)
	speed := spatial.KnotsToMPS(fix.SpeedKnots)
	if !ok || speed <= 0 {
		return 0, models.Waypoint{}
	}
	seconds := dist / speed
	return time.Duration(seconds * float64(time.Second)), wp
}

// Estimate computes the observed duration plus a boundary term for each end
// of the track at which the vehicle was already moving. fixes is taken to be
// the whole log.
func (e *DurationEstimator) Estimate(fixes []models.GPSFix) (models.DurationEstimate, error) {
	return e.estimate(fixes, true)
}

// EstimateWindow estimates the duration of the windowed part of track. The
// window always ends on a moving fix, so the trailing term is only added when
// nothing was logged after it.
func (e *DurationEstimator) EstimateWindow(track []models.GPSFix, w MotionWindow) (models.DurationEstimate, error) {
	if len(track) == 0 {
		return models.DurationEstimate{}, ErrNoFixes
	}
	return e.estimate(w.Apply(track), w.EndsTrack)
}

func (e *DurationEstimator) estimate(fixes []models.GPSFix, endsLog bool) (models.DurationEstimate, error) {
	if len(fixes) == 0 {
		return models.DurationEstimate{}, ErrNoFixes
	}

	first, last := fixes[0], fixes[len(fixes)-1]
	est := models.DurationEstimate{
		Observed: last.Timestamp.Sub(first.Timestamp),
	}

	if first.SpeedKnots > e.MovingKnots {
		est.StartedInMotion = true
		var wp models.Waypoint
		est.MissingLeading, wp = e.EstimateMissing(first)
		est.LeadingWaypoint = wp.Name
		log.Warnf("[DurationEstimator] log started while moving at %.2f knots, total duration is an estimate", first.SpeedKnots)
	}
	if endsLog && last.SpeedKnots > e.MovingKnots {
		est.EndedInMotion = true
		var wp models.Waypoint
		est.MissingTrailing, wp = e.EstimateMissing(last)
		est.TrailingWaypoint = wp.Name
		log.Warnf("[DurationEstimator] log ended while moving at %.2f knots, total duration is an estimate", last.SpeedKnots)
	}
	if est.IsEstimate() && len(e.Waypoints) == 0 {
		log.Warn("[DurationEstimator] no reference waypoints configured, boundary terms are zero")
	}

	est.Total = est.Observed + est.MissingLeading + est.MissingTrailing
	est.TotalSeconds = est.Total.Seconds()
	return est, nil
}
