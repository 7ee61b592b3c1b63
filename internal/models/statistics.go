package models

// ReadStats counts what happened to raw lines before parsing
type ReadStats struct {
	Lines            int `json:"lines"` // lines after the header
	Blank            int `json:"blank"`
	Corrupted        int `json:"corrupted"` // more than one sentence marker
	ChecksumFailures int `json:"checksumFailures"`
}

// ParseStats counts sentence outcomes
type ParseStats struct {
	Positions    int `json:"positions"`
	Precisions   int `json:"precisions"`
	Void         int `json:"void"`
	Malformed    int `json:"malformed"`
	Unrecognized int `json:"unrecognized"`
}

// FilterStats counts validator verdicts
type FilterStats struct {
	Accepted          int `json:"accepted"`
	InvalidCoordinate int `json:"invalidCoordinate"`
	ImplausibleJump   int `json:"implausibleJump"`
}

// RunStats aggregates the counters of one pipeline run
type RunStats struct {
	Read        ReadStats   `json:"read"`
	Parse       ParseStats  `json:"parse"`
	Filter      FilterStats `json:"filter"`
	WindowStart int         `json:"windowStart"`
	WindowEnd   int         `json:"windowEnd"`
	Retained    int         `json:"retained"`
	LeftTurns   int         `json:"leftTurns"`
	RightTurns  int         `json:"rightTurns"`
}

// Rejected returns the number of fixes the validator discarded
func (s FilterStats) Rejected() int {
	return s.InvalidCoordinate + s.ImplausibleJump
}

// SpeedSummary describes the logged speeds of the windowed track, in knots
type SpeedSummary struct {
	MeanKnots   float64 `json:"meanKnots"`
	MedianKnots float64 `json:"medianKnots"`
	P95Knots    float64 `json:"p95Knots"`
	MaxKnots    float64 `json:"maxKnots"`
	MovingShare float64 `json:"movingShare"` // fraction of fixes above the moving threshold
}
