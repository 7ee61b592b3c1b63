package analysis

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/paulmach/orb"
	log "github.com/sirupsen/logrus"

	"github.com/jz2447/csci420-gps-proj/internal/analysis/behavior"
	"github.com/jz2447/csci420-gps-proj/internal/analysis/foundation"
	"github.com/jz2447/csci420-gps-proj/internal/config"
	"github.com/jz2447/csci420-gps-proj/internal/models"
	"github.com/jz2447/csci420-gps-proj/internal/nmea"
	"github.com/jz2447/csci420-gps-proj/internal/spatial"
	trackstats "github.com/jz2447/csci420-gps-proj/internal/stats"
)

// ErrEmptyTrack is returned when a log yields nothing to render: either no fix
// survived validation or the vehicle never exceeded the moving threshold.
var ErrEmptyTrack = errors.New("empty track")

const markerTimeLayout = "2006-01-02T15:04:05Z"

// Pipeline runs every stage of a track reconstruction with one configuration.
// A Pipeline holds no per-run state and may be shared between goroutines.
type Pipeline struct {
	Reader            nmea.ReaderOptions
	Filter            *foundation.JumpFilter
	MovingKnots       float64
	Turns             *behavior.TurnDetector
	Stops             *behavior.StopDetector
	Duration          *behavior.DurationEstimator
	MaxVertices       int
	SimplifyTolerance float64
}

// NewPipeline builds the stages from cfg. An unknown stop time basis falls
// back to raw; config.Validate rejects it before this point.
func NewPipeline(cfg config.PipelineConfig) *Pipeline {
	basis, err := behavior.ParseTimeBasis(cfg.StopTimeBasis)
	if err != nil {
		log.Warnf("[Pipeline] %v, using %s", err, behavior.TimeBasisRaw)
		basis = behavior.TimeBasisRaw
	}

	return &Pipeline{
		Reader: nmea.ReaderOptions{
			HeaderLines:    cfg.HeaderLines,
			VerifyChecksum: cfg.VerifyChecksum,
		},
		Filter:      foundation.NewJumpFilter(foundation.JumpThresholds{MaxSpeedMPS: cfg.MaxSpeedMPS}),
		MovingKnots: cfg.MovingKnots,
		Turns: behavior.NewTurnDetector(behavior.TurnThresholds{
			ThresholdDeg:   cfg.TurnThresholdDeg,
			MinSegmentM:    cfg.TurnMinSegmentM,
			MinSeparationM: cfg.TurnMinSeparationM,
		}),
		Stops: behavior.NewStopDetector(behavior.StopThresholds{
			SpeedKnots:    cfg.StopKnots,
			MinDuration:   cfg.MinStopDuration,
			Basis:         basis,
			FlushTrailing: cfg.FlushTrailingStop,
		}),
		Duration:          behavior.NewDurationEstimator(cfg.MovingKnots, cfg.Waypoints),
		MaxVertices:       cfg.MaxVertices,
		SimplifyTolerance: cfg.SimplifyTolerance,
	}
}

// RunReader reads a receiver log and runs the pipeline over it. The returned
// stats are filled as far as the run got, including on error.
func (p *Pipeline) RunReader(r io.Reader) (*models.AnnotatedTrack, models.RunStats, error) {
	sentences, readStats, err := nmea.ReadSentences(r, p.Reader)
	if err != nil {
		return nil, models.RunStats{Read: readStats}, err
	}
	log.Infof("[Pipeline] read %d lines, %d sentences, %d blank, %d corrupted, %d bad checksum",
		readStats.Lines, len(sentences), readStats.Blank, readStats.Corrupted, readStats.ChecksumFailures)

	track, stats, err := p.run(sentences)
	stats.Read = readStats
	if track != nil {
		track.Stats.Read = readStats
	}
	return track, stats, err
}

// Run turns already-read sentences into an annotated track
func (p *Pipeline) Run(sentences []nmea.Sentence) (*models.AnnotatedTrack, error) {
	track, _, err := p.run(sentences)
	return track, err
}

func (p *Pipeline) run(sentences []nmea.Sentence) (*models.AnnotatedTrack, models.RunStats, error) {
	var stats models.RunStats
	startTime := time.Now()

	parsed := nmea.Parse(sentences)
	stats.Parse = parsed.Stats
	log.Infof("[Pipeline] parsed %d position fixes, %d precision fixes, %d void, %d malformed",
		parsed.Stats.Positions, parsed.Stats.Precisions, parsed.Stats.Void, parsed.Stats.Malformed)

	fixes, report := p.Filter.Filter(parsed.Positions)
	stats.Filter = report.Stats
	if len(fixes) == 0 {
		return nil, stats, fmt.Errorf("%w: no fix survived validation", ErrEmptyTrack)
	}

	window, err := behavior.DetectMotionWindow(fixes, p.MovingKnots)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %w", ErrEmptyTrack, err)
	}
	stats.WindowStart, stats.WindowEnd = window.Start, window.End

	duration, err := p.Duration.EstimateWindow(fixes, window)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %w", ErrEmptyTrack, err)
	}

	fixes = window.Apply(fixes)
	stats.Retained = len(fixes)

	path := orb.LineString(models.Points(fixes))

	turns := p.Turns.Detect(path)
	stats.LeftTurns, stats.RightTurns = turns.Left, turns.Right

	stops := p.Stops.Detect(fixes)

	rendered := spatial.SimplifyPath(path, p.SimplifyTolerance)
	first, last := fixes[0], fixes[len(fixes)-1]

	track := &models.AnnotatedTrack{
		Segments:       spatial.ChunkLineString(rendered, p.MaxVertices),
		Start:          endpointMarker("Start", first),
		End:            endpointMarker("End", last),
		Turns:          turns.Markers,
		Stops:          stops,
		Duration:       duration,
		DistanceMeters: spatial.PathLength(path),
		Speed:          trackstats.SpeedProfile(fixes, p.MovingKnots),
		Bounds:         path.Bound(),
		Stats:          stats,
	}

	log.Infof("[Pipeline] window [%d, %d], %d fixes kept, %d left turns, %d stops, %.0f m in %v",
		window.Start, window.End, len(fixes), len(turns.Markers), len(stops),
		track.DistanceMeters, time.Since(startTime))

	return track, stats, nil
}

func endpointMarker(name string, fix models.GPSFix) models.Marker {
	return models.Marker{
		Name:        name,
		Latitude:    fix.Latitude,
		Longitude:   fix.Longitude,
		Timestamp:   fix.Timestamp,
		Description: fmt.Sprintf("%s time: %s", name, fix.Timestamp.UTC().Format(markerTimeLayout)),
	}
}
