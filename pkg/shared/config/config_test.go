package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetThen(t *testing.T) {
	assert.Equal(t, "quick", SetThen("", "quick"))
	assert.Equal(t, "full", SetThen("full", "quick"))
	assert.Equal(t, 3*time.Second, SetThen(time.Duration(0), 3*time.Second))
	assert.Equal(t, time.Second, SetThen(time.Second, 3*time.Second))
}

func TestBoolOr(t *testing.T) {
	yes := true
	assert.True(t, BoolOr(&yes, false))
	assert.False(t, BoolOr(nil, false))
	assert.True(t, BoolOr(nil, true))
}

func TestNewConfigMissingFileIsEmpty(t *testing.T) {
	cfg, err := NewConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)

	cfg, err = NewConfig("")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestNewConfigLoadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
logger:
  level: debug
analyzer:
  endpoint: https://analysis.example.com
  mode: full
  poll_interval: 1000000000
  timeout: 30000000000
report:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "https://analysis.example.com", cfg.Analyzer.Endpoint)
	assert.Equal(t, "full", cfg.Analyzer.Mode)
	assert.Equal(t, time.Second, cfg.Analyzer.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.Analyzer.Timeout)
	assert.Equal(t, "json", cfg.Report.Format)
}

func TestNewConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("analyzer: [broken"), 0644))

	_, err := NewConfig(path)
	assert.Error(t, err)
}

func TestDefaultAnalyzerConfig(t *testing.T) {
	defaults := DefaultAnalyzerConfig()
	assert.NotEmpty(t, defaults.Endpoint)
	assert.Equal(t, "quick", defaults.Mode)
	assert.Positive(t, defaults.PollInterval)
	assert.Positive(t, defaults.Timeout)
}
