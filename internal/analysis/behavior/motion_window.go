package behavior

import (
	"errors"

	"github.com/jz2447/csci420-gps-proj/internal/models"
)

// DefaultMovingKnots is the speed above which the vehicle counts as moving
const DefaultMovingKnots = 2.0

// ErrNoMotion is returned when no fix exceeds the moving threshold
var ErrNoMotion = errors.New("no fix exceeds the moving threshold")

// MotionWindow is an inclusive index range of a track. EndsTrack is set when
// no fix follows End, so the log stopped while the vehicle was still moving.
type MotionWindow struct {
	Start     int  `json:"start"`
	End       int  `json:"end"`
	EndsTrack bool `json:"endsTrack"`
}

// Len returns the number of fixes in the window
func (w MotionWindow) Len() int {
	return w.End - w.Start + 1
}

// Apply returns the windowed sub-slice of fixes
func (w MotionWindow) Apply(fixes []models.GPSFix) []models.GPSFix {
	return fixes[w.Start : w.End+1]
}

// DetectMotionWindow finds the range in which the vehicle is actually moving.
// One sample before motion begins is kept to bound the pre-motion gap.
func DetectMotionWindow(fixes []models.GPSFix, movingKnots float64) (MotionWindow, error) {
	start := -1
	for i, f := range fixes {
		if f.SpeedKnots > movingKnots {
			start = i
			break
		}
	}
	if start == -1 {
		return MotionWindow{}, ErrNoMotion
	}

	end := start
	for i := len(fixes) - 1; i >= start; i-- {
		if fixes[i].SpeedKnots > movingKnots {
			end = i
			break
		}
	}

	if start > 0 {
		start--
	}
	return MotionWindow{Start: start, End: end, EndsTrack: end == len(fixes)-1}, nil
}
