package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"rubric": "extended",
		"min_score": 70,
		"format": "json",
		"concurrency": 8,
		"port": 9090,
		"log_json": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "extended", cfg.Rubric)
	assert.Equal(t, 70, cfg.MinScore)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.LogJSON)
	assert.False(t, cfg.Debug)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	rubricFile := filepath.Join(t.TempDir(), "rubric.yaml")
	require.NoError(t, os.WriteFile(rubricFile, []byte("name: x"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty", Config{}, ""},
		{"defaults", Defaults(), ""},
		{"rubric file", Config{RubricFile: rubricFile}, ""},
		{"mutually exclusive", Config{Rubric: "standard", RubricFile: rubricFile}, "mutually exclusive"},
		{"missing rubric file", Config{RubricFile: "/nonexistent/rubric.yaml"}, "rubric file not found"},
		{"negative min score", Config{MinScore: -1}, "min_score"},
		{"min score over 100", Config{MinScore: 101}, "min_score"},
		{"negative concurrency", Config{Concurrency: -2}, "concurrency"},
		{"bad port", Config{Port: 70000}, "port"},
		{"bad format", Config{Format: "xml"}, "unknown format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{Format: FormatJSON, Port: 9000}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "standard", merged.Rubric)
	assert.Equal(t, FormatJSON, merged.Format)
	assert.Equal(t, 4, merged.Concurrency)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, Config{Format: FormatJSON, Port: 9000}, *cfg, "receiver is not modified")
}

func TestMergeWithDefaults_RubricFileSuppressesDefaultRubric(t *testing.T) {
	cfg := &Config{RubricFile: "custom.yaml"}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Empty(t, merged.Rubric)
	assert.Equal(t, "custom.yaml", merged.RubricFile)
	assert.NoError(t, (&Config{Rubric: merged.Rubric, RubricFile: ""}).Validate())
}
