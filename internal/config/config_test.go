package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "JWT_SECRET", "LOG_LEVEL", "LOG_FILE", "METRICS_ENABLED", "MAX_SPEED_MPS", "MOVING_KNOTS"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, 5, cfg.Pipeline.HeaderLines)
	assert.Equal(t, 50.0, cfg.Pipeline.MaxSpeedMPS)
	assert.Equal(t, 2.0, cfg.Pipeline.MovingKnots)
	assert.Equal(t, 10000, cfg.Pipeline.MaxVertices)
	assert.Len(t, cfg.Pipeline.Waypoints, 2)
	assert.Equal(t, "raw", cfg.Pipeline.StopTimeBasis)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
port: ":9000"
log_level: DEBUG
pipeline:
  max_speed_mps: 30
  moving_knots: 3
  stop_time_basis: elapsed
  waypoints:
    - name: depot
      latitude: 43.1
      longitude: -77.5
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	t.Setenv("MOVING_KNOTS", "4.5")
	t.Setenv("PORT", "7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Port)
	assert.Equal(t, log.DebugLevel, cfg.GetLogLevel())
	assert.Equal(t, 30.0, cfg.Pipeline.MaxSpeedMPS)
	assert.Equal(t, 4.5, cfg.Pipeline.MovingKnots)
	assert.Equal(t, "elapsed", cfg.Pipeline.StopTimeBasis)
	// unspecified keys keep their defaults
	assert.Equal(t, 1.0, cfg.Pipeline.StopKnots)
	require.Len(t, cfg.Pipeline.Waypoints, 1)
	assert.Equal(t, "depot", cfg.Pipeline.Waypoints[0].Name)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("MAX_SPEED_MPS", "fast")
	_, err = Load("")
	assert.Error(t, err)

	t.Setenv("MAX_SPEED_MPS", "-1")
	_, err = Load("")
	assert.Error(t, err)
}

func TestPipelineConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PipelineConfig)
	}{
		{"zero moving knots", func(p *PipelineConfig) { p.MovingKnots = 0 }},
		{"negative stop duration", func(p *PipelineConfig) { p.MinStopDuration = -1 }},
		{"vertex cap of one", func(p *PipelineConfig) { p.MaxVertices = 1 }},
		{"unknown basis", func(p *PipelineConfig) { p.StopTimeBasis = "minutes" }},
		{"waypoint out of range", func(p *PipelineConfig) { p.Waypoints[0].Latitude = 91 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPipeline()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}

	assert.NoError(t, DefaultPipeline().Validate())
}

func TestDefaultPipeline_WaypointsAreCopied(t *testing.T) {
	p := DefaultPipeline()
	p.Waypoints[0].Name = "changed"
	assert.Equal(t, "campus", DefaultWaypoints[0].Name)
}

func TestGetLogLevel(t *testing.T) {
	c := &Config{LogLevel: "warn"}
	assert.Equal(t, log.WarnLevel, c.GetLogLevel())
	c.LogLevel = "nonsense"
	assert.Equal(t, log.InfoLevel, c.GetLogLevel())
}

func TestLoad_ExampleConfig(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join("..", "..", "configs", "config.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPipeline(), cfg.Pipeline)
	assert.Equal(t, Default().MaxUploadBytes, cfg.MaxUploadBytes)
}
