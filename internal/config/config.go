package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jz2447/csci420-gps-proj/internal/models"
)

// Config 应用配置
type Config struct {
	Port           string         `yaml:"port"`
	JWTSecret      string         `yaml:"jwt_secret"`
	LogLevel       string         `yaml:"log_level"`
	LogFilePath    string         `yaml:"log_file_path"`
	LogMaxAgeDays  int            `yaml:"log_max_age_days"`
	MetricsEnabled bool           `yaml:"metrics_enabled"`
	MaxUploadBytes int64          `yaml:"max_upload_bytes"`
	Pipeline       PipelineConfig `yaml:"pipeline"`
}

// PipelineConfig holds every threshold of a track reconstruction run
type PipelineConfig struct {
	HeaderLines    int  `yaml:"header_lines"`
	VerifyChecksum bool `yaml:"verify_checksum"`

	MaxSpeedMPS float64 `yaml:"max_speed_mps"`
	MovingKnots float64 `yaml:"moving_knots"`

	StopKnots         float64 `yaml:"stop_knots"`
	MinStopDuration   float64 `yaml:"min_stop_duration"`
	StopTimeBasis     string  `yaml:"stop_time_basis"`
	FlushTrailingStop bool    `yaml:"flush_trailing_stop"`

	TurnThresholdDeg   float64 `yaml:"turn_threshold_deg"`
	TurnMinSegmentM    float64 `yaml:"turn_min_segment_m"`
	TurnMinSeparationM float64 `yaml:"turn_min_separation_m"`

	MaxVertices       int     `yaml:"max_vertices"`
	SimplifyTolerance float64 `yaml:"simplify_tolerance"`

	Waypoints []models.Waypoint `yaml:"waypoints"`
}

// DefaultWaypoints are the two ends of the commute the logs were recorded on
var DefaultWaypoints = []models.Waypoint{
	{Name: "campus", Latitude: 43.085556, Longitude: -77.680556},
	{Name: "home", Latitude: 43.139444, Longitude: -77.439444},
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Port:           ":8080",
		LogLevel:       "INFO",
		LogMaxAgeDays:  30,
		MetricsEnabled: true,
		MaxUploadBytes: 64 << 20,
		Pipeline:       DefaultPipeline(),
	}
}

// DefaultPipeline returns the default reconstruction thresholds
func DefaultPipeline() PipelineConfig {
	waypoints := make([]models.Waypoint, len(DefaultWaypoints))
	copy(waypoints, DefaultWaypoints)
	return PipelineConfig{
		HeaderLines:        5,
		MaxSpeedMPS:        50,
		MovingKnots:        2.0,
		StopKnots:          1.0,
		MinStopDuration:    1.0,
		StopTimeBasis:      "raw",
		TurnThresholdDeg:   10,
		TurnMinSegmentM:    3,
		TurnMinSeparationM: 10,
		MaxVertices:        10000,
		Waypoints:          waypoints,
	}
}

// Load 加载配置: defaults, then the YAML file at path (if any), then .env and
// the process environment
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		c.Port = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.LogFilePath = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		c.MetricsEnabled = parseBool(v)
	}
	if v := os.Getenv("MAX_SPEED_MPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_SPEED_MPS: %q", v)
		}
		c.Pipeline.MaxSpeedMPS = f
	}
	if v := os.Getenv("MOVING_KNOTS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid MOVING_KNOTS: %q", v)
		}
		c.Pipeline.MovingKnots = f
	}
	return nil
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// Validate rejects thresholds the pipeline cannot run with
func (c *Config) Validate() error {
	if c.MaxUploadBytes <= 0 {
		return errors.New("max_upload_bytes must be > 0")
	}
	return c.Pipeline.Validate()
}

// Validate rejects non-positive thresholds and unknown option values
func (p PipelineConfig) Validate() error {
	switch {
	case p.HeaderLines < 0:
		return errors.New("pipeline.header_lines must be >= 0")
	case p.MaxSpeedMPS <= 0:
		return errors.New("pipeline.max_speed_mps must be > 0")
	case p.MovingKnots <= 0:
		return errors.New("pipeline.moving_knots must be > 0")
	case p.StopKnots <= 0:
		return errors.New("pipeline.stop_knots must be > 0")
	case p.MinStopDuration <= 0:
		return errors.New("pipeline.min_stop_duration must be > 0")
	case p.TurnThresholdDeg <= 0:
		return errors.New("pipeline.turn_threshold_deg must be > 0")
	case p.TurnMinSegmentM < 0, p.TurnMinSeparationM < 0:
		return errors.New("pipeline turn distances must be >= 0")
	case p.MaxVertices < 2:
		return errors.New("pipeline.max_vertices must be >= 2")
	case p.SimplifyTolerance < 0:
		return errors.New("pipeline.simplify_tolerance must be >= 0")
	}
	switch p.StopTimeBasis {
	case "", "raw", "elapsed":
	default:
		return fmt.Errorf("pipeline.stop_time_basis %q is not one of raw, elapsed", p.StopTimeBasis)
	}
	for _, wp := range p.Waypoints {
		if wp.Latitude < -90 || wp.Latitude > 90 || wp.Longitude < -180 || wp.Longitude > 180 {
			return fmt.Errorf("waypoint %q is out of range", wp.Name)
		}
	}
	return nil
}

// GetLogLevel maps the configured level name to a logrus level
func (c *Config) GetLogLevel() log.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "TRACE":
		return log.TraceLevel
	case "DEBUG":
		return log.DebugLevel
	case "INFO":
		return log.InfoLevel
	case "WARN", "WARNING":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
