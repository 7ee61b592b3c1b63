package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jz2447/csci420-gps-proj/internal/analysis"
	"github.com/jz2447/csci420-gps-proj/internal/metrics"
	"github.com/jz2447/csci420-gps-proj/internal/models"
)

// ErrInputUnavailable is returned when a log file cannot be opened or read
var ErrInputUnavailable = errors.New("input unavailable")

// TrackService runs the reconstruction pipeline over receiver logs
type TrackService struct {
	pipeline *analysis.Pipeline
	metrics  *metrics.Collector
}

// NewTrackService creates a new track service. collector may be nil.
func NewTrackService(pipeline *analysis.Pipeline, collector *metrics.Collector) *TrackService {
	return &TrackService{
		pipeline: pipeline,
		metrics:  collector,
	}
}

// AnalyzeFile reconstructs the track recorded in the log at path
func (s *TrackService) AnalyzeFile(path string) (*models.AnnotatedTrack, error) {
	f, err := os.Open(path)
	if err != nil {
		s.observeFailure(metrics.OutcomeUnavailable, models.ReadStats{}, 0)
		return nil, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}
	defer f.Close()

	log.Infof("[TrackService] analyzing %s", path)
	return s.Analyze(f)
}

// Analyze reconstructs the track recorded in r
func (s *TrackService) Analyze(r io.Reader) (*models.AnnotatedTrack, error) {
	start := time.Now()

	track, stats, err := s.pipeline.RunReader(r)
	elapsed := time.Since(start)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrEmptyTrack):
			s.observeFailure(metrics.OutcomeEmptyTrack, stats.Read, elapsed)
			return nil, err
		default:
			// the reader only fails on I/O
			s.observeFailure(metrics.OutcomeUnavailable, stats.Read, elapsed)
			return nil, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveTrack(track, elapsed)
	}
	return track, nil
}

func (s *TrackService) observeFailure(outcome string, read models.ReadStats, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveFailure(outcome, read, elapsed)
	}
}
