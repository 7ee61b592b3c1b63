package foundation

import (
	log "github.com/sirupsen/logrus"

	"github.com/jz2447/csci420-gps-proj/internal/models"
	"github.com/jz2447/csci420-gps-proj/internal/spatial"
)

// Verdict is the validator's decision for one candidate fix
type Verdict string

// Verdict constants
const (
	VerdictAccepted          Verdict = "ACCEPTED"
	VerdictInvalidCoordinate Verdict = "INVALID_COORDINATE"
	VerdictImplausibleJump   Verdict = "IMPLAUSIBLE_JUMP"
)

// JumpThresholds defines configurable thresholds for jump filtering
type JumpThresholds struct {
	MaxSpeedMPS float64 // ~97 knots, well above any road vehicle
}

// DefaultJumpThresholds provides default jump filtering thresholds
var DefaultJumpThresholds = JumpThresholds{
	MaxSpeedMPS: 50.0,
}

// FilterState is carried between fixes. LastAccepted only ever advances to an
// accepted fix, so a burst of bad fixes is always compared against the last
// good one.
type FilterState struct {
	LastAccepted *models.GPSFix
}

// FilterReport summarizes a filter run
type FilterReport struct {
	Stats    models.FilterStats
	Verdicts []Verdict // one per input fix
}

// JumpFilter removes fixes with impossible coordinates or implausible implied speed
type JumpFilter struct {
	Thresholds JumpThresholds
}

// NewJumpFilter creates a filter with the given thresholds
func NewJumpFilter(th JumpThresholds) *JumpFilter {
	return &JumpFilter{Thresholds: th}
}

// Step is the filter's transition function
func (f *JumpFilter) Step(state FilterState, fix models.GPSFix) (FilterState, Verdict) {
	if fix.Latitude < -90 || fix.Latitude > 90 || fix.Longitude < -180 || fix.Longitude > 180 {
		return state, VerdictInvalidCoordinate
	}

	if prev := state.LastAccepted; prev != nil {
		elapsed := fix.Timestamp.Sub(prev.Timestamp).Seconds()
		if elapsed == 0 {
			return state, VerdictImplausibleJump // duplicate timestamp
		}
		distance := spatial.HaversineDistance(prev.Latitude, prev.Longitude, fix.Latitude, fix.Longitude)
		if distance/elapsed > f.Thresholds.MaxSpeedMPS {
			return state, VerdictImplausibleJump
		}
	}

	accepted := fix
	return FilterState{LastAccepted: &accepted}, VerdictAccepted
}

// Filter folds Step over fixes in order and returns the accepted track
func (f *JumpFilter) Filter(fixes []models.GPSFix) ([]models.GPSFix, FilterReport) {
	report := FilterReport{Verdicts: make([]Verdict, len(fixes))}
	track := make([]models.GPSFix, 0, len(fixes))

	var state FilterState
	for i, fix := range fixes {
		var verdict Verdict
		state, verdict = f.Step(state, fix)
		report.Verdicts[i] = verdict

		switch verdict {
		case VerdictAccepted:
			track = append(track, fix)
			report.Stats.Accepted++
		case VerdictInvalidCoordinate:
			report.Stats.InvalidCoordinate++
			log.Debugf("[JumpFilter] invalid coordinate at %s: (%f, %f)",
				fix.Timestamp.Format("2006-01-02T15:04:05Z"), fix.Latitude, fix.Longitude)
		case VerdictImplausibleJump:
			report.Stats.ImplausibleJump++
			log.Debugf("[JumpFilter] ignored jump at %s", fix.Timestamp.Format("2006-01-02T15:04:05Z"))
		}
	}

	log.Infof("[JumpFilter] %d fixes processed, %d accepted, %d invalid, %d jumps",
		len(fixes), report.Stats.Accepted, report.Stats.InvalidCoordinate, report.Stats.ImplausibleJump)
	return track, report
}
