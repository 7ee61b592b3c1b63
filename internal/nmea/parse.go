package nmea

import (
	log "github.com/sirupsen/logrus"

	"github.com/jz2447/csci420-gps-proj/internal/models"
)

// ParseResult holds the typed fixes of one log, in log order
type ParseResult struct {
	Positions  []models.GPSFix
	Precisions []models.PrecisionFix
	Stats      models.ParseStats
}

// Parse turns sentences into fixes. Malformed sentences are skipped and counted.
func Parse(sentences []Sentence) ParseResult {
	var res ParseResult

	for _, s := range sentences {
		switch s.Type() {
		case TypeRMC:
			fix, err := ParsePositionFix(s.Fields)
			if err != nil {
				res.Stats.Malformed++
				log.Debugf("[Parser] skipped %q: %v", s.Raw, err)
				continue
			}
			if fix == nil {
				res.Stats.Void++
				continue
			}
			res.Positions = append(res.Positions, *fix)
			res.Stats.Positions++

		case TypeGGA:
			fix, err := ParsePrecisionFix(s.Fields)
			if err != nil {
				res.Stats.Malformed++
				log.Debugf("[Parser] skipped %q: %v", s.Raw, err)
				continue
			}
			res.Precisions = append(res.Precisions, *fix)
			res.Stats.Precisions++

		default:
			res.Stats.Unrecognized++
		}
	}

	return res
}
