package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jz2447/csci420-gps-proj/internal/models"
)

// Run outcomes
const (
	OutcomeOK          = "ok"
	OutcomeEmptyTrack  = "empty_track"
	OutcomeUnavailable = "input_unavailable"
)

// Collector owns a private registry with the track pipeline's series
type Collector struct {
	reg *prometheus.Registry

	Runs        *prometheus.CounterVec // outcome label
	Lines       *prometheus.CounterVec // result label: read|blank|corrupted|checksum
	Sentences   *prometheus.CounterVec // result label: position|precision|void|malformed|unrecognized
	Rejected    *prometheus.CounterVec // reason label: invalid_coordinate|implausible_jump
	Turns       *prometheus.CounterVec // direction label
	Stops       prometheus.Counter
	Vertices    prometheus.Histogram
	RunDuration prometheus.Histogram
}

// NewCollector creates and registers the pipeline collectors
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gpstrack_runs_total",
			Help: "Track reconstruction runs by outcome.",
		}, []string{"outcome"}),
		Lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gpstrack_lines_total",
			Help: "Input lines after the header, by reader result.",
		}, []string{"result"}),
		Sentences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gpstrack_sentences_total",
			Help: "Sentences by parse result.",
		}, []string{"result"}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gpstrack_fixes_rejected_total",
			Help: "Fixes discarded by the validator, by reason.",
		}, []string{"reason"}),
		Turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gpstrack_turns_total",
			Help: "Turns classified, by direction.",
		}, []string{"direction"}),
		Stops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gpstrack_stops_total",
			Help: "Stop events detected.",
		}),
		Vertices: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gpstrack_track_vertices",
			Help:    "Vertices rendered per track.",
			Buckets: prometheus.ExponentialBuckets(16, 4, 8),
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gpstrack_run_duration_seconds",
			Help:    "Wall time of one reconstruction run.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
	}

	reg.MustRegister(
		c.Runs, c.Lines, c.Sentences, c.Rejected,
		c.Turns, c.Stops, c.Vertices, c.RunDuration,
	)

	return c
}

// ObserveTrack records the counters of a successful run
func (c *Collector) ObserveTrack(track *models.AnnotatedTrack, elapsed time.Duration) {
	s := track.Stats
	c.Runs.WithLabelValues(OutcomeOK).Inc()
	c.observeRead(s.Read)

	c.Sentences.WithLabelValues("position").Add(float64(s.Parse.Positions))
	c.Sentences.WithLabelValues("precision").Add(float64(s.Parse.Precisions))
	c.Sentences.WithLabelValues("void").Add(float64(s.Parse.Void))
	c.Sentences.WithLabelValues("malformed").Add(float64(s.Parse.Malformed))
	c.Sentences.WithLabelValues("unrecognized").Add(float64(s.Parse.Unrecognized))

	c.Rejected.WithLabelValues("invalid_coordinate").Add(float64(s.Filter.InvalidCoordinate))
	c.Rejected.WithLabelValues("implausible_jump").Add(float64(s.Filter.ImplausibleJump))

	c.Turns.WithLabelValues(string(models.DirectionLeft)).Add(float64(s.LeftTurns))
	c.Turns.WithLabelValues(string(models.DirectionRight)).Add(float64(s.RightTurns))
	c.Stops.Add(float64(len(track.Stops)))

	c.Vertices.Observe(float64(track.VertexCount()))
	c.RunDuration.Observe(elapsed.Seconds())
}

// ObserveFailure records a run that produced no track
func (c *Collector) ObserveFailure(outcome string, read models.ReadStats, elapsed time.Duration) {
	c.Runs.WithLabelValues(outcome).Inc()
	c.observeRead(read)
	c.RunDuration.Observe(elapsed.Seconds())
}

func (c *Collector) observeRead(r models.ReadStats) {
	c.Lines.WithLabelValues("read").Add(float64(r.Lines))
	c.Lines.WithLabelValues("blank").Add(float64(r.Blank))
	c.Lines.WithLabelValues("corrupted").Add(float64(r.Corrupted))
	c.Lines.WithLabelValues("checksum").Add(float64(r.ChecksumFailures))
}

// Handler serves the collector's registry in the Prometheus text exposition format
func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }
