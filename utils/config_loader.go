package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ─── Pipeline config ────────────────────────────────────────────────────

type IngestConfig struct {
	TrialExtension string `yaml:"trial_extension"` // extension of trial files, default ".txt"
}

type FilterConfig struct {
	WindowSize int `yaml:"window_size"` // odd median window, default 3
}

type CSVOutputConfig struct {
	WriteHeader  bool `yaml:"write_header"`
	BufferSizeKB int  `yaml:"buffer_size_kb"`
}

type DiagnosticsConfig struct {
	Enabled         bool            `yaml:"enabled"`
	BaseDir         string          `yaml:"base_dir"`
	SessionPrefix   string          `yaml:"session_prefix"`
	SpectrumWindows []int           `yaml:"spectrum_windows"` // filter orders compared in the spectrum diagnostic
	CSV             CSVOutputConfig `yaml:"csv"`
}

// PipelineConfig is the top-level structure for pipeline.yaml.
type PipelineConfig struct {
	Ingest      IngestConfig      `yaml:"ingest"`
	Filter      FilterConfig      `yaml:"filter"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
}

// ─── Loaders ────────────────────────────────────────────────────────────

// DefaultPipelineConfig returns the configuration used when no YAML file is
// given: plain batch run, diagnostics off.
func DefaultPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		Ingest: IngestConfig{TrialExtension: ".txt"},
		Filter: FilterConfig{WindowSize: 3},
		Diagnostics: DiagnosticsConfig{
			BaseDir:         "diagnostics",
			SessionPrefix:   "batch",
			SpectrumWindows: []int{1, 3, 5},
			CSV:             CSVOutputConfig{WriteHeader: true, BufferSizeKB: 64},
		},
	}
}

// LoadPipelineConfig reads and parses pipeline.yaml, filling unset fields
// from the defaults.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline config: %w", err)
	}

	cfg := DefaultPipelineConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse pipeline config: %w", err)
	}

	if cfg.Ingest.TrialExtension == "" {
		cfg.Ingest.TrialExtension = ".txt"
	}
	if cfg.Filter.WindowSize == 0 {
		cfg.Filter.WindowSize = 3
	}
	return cfg, nil
}
