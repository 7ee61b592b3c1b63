package stats

import (
	"math"
	"sort"

	"github.com/jz2447/csci420-gps-proj/internal/models"
)

// Quantile calculates the q-th quantile (0 <= q <= 1) of already sorted values
// using linear interpolation between closest ranks
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	q = math.Max(0, math.Min(1, q))

	index := q * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SpeedProfile summarizes the logged speeds of a track. movingKnots splits
// fixes into moving and stationary for MovingShare.
func SpeedProfile(fixes []models.GPSFix, movingKnots float64) models.SpeedSummary {
	if len(fixes) == 0 {
		return models.SpeedSummary{}
	}

	speeds := make([]float64, len(fixes))
	var sum float64
	moving := 0
	for i, f := range fixes {
		speeds[i] = f.SpeedKnots
		sum += f.SpeedKnots
		if f.SpeedKnots > movingKnots {
			moving++
		}
	}
	sort.Float64s(speeds)

	return models.SpeedSummary{
		MeanKnots:   sum / float64(len(speeds)),
		MedianKnots: Quantile(speeds, 0.5),
		P95Knots:    Quantile(speeds, 0.95),
		MaxKnots:    speeds[len(speeds)-1],
		MovingShare: float64(moving) / float64(len(speeds)),
	}
}
