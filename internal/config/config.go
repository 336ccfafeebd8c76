package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/devtimehq/devtime/internal/engine"
)

// Config holds application configuration.
type Config struct {
	// Global settings
	Format  string `mapstructure:"format" json:"format"`
	Quiet   bool   `mapstructure:"quiet" json:"quiet"`
	Verbose bool   `mapstructure:"verbose" json:"verbose"`

	Sources  SourcesConfig  `mapstructure:"sources" json:"sources"`
	Analysis AnalysisConfig `mapstructure:"analysis" json:"analysis"`
}

// SourcesConfig points at the local data each extractor reads.
type SourcesConfig struct {
	// AgentLogDir is the root of the AI agent's per-project JSONL logs.
	AgentLogDir string `mapstructure:"agent_log_dir" json:"agent_log_dir"`

	// EditorStateDir is the editor's config root holding its state store.
	EditorStateDir string `mapstructure:"editor_state_dir" json:"editor_state_dir"`

	// Repos maps project names to local git repository paths.
	Repos map[string]string `mapstructure:"repos" json:"repos,omitempty"`
}

// AnalysisConfig exposes the reconciliation knobs. Every knob has a
// default and is overridable via config file or DEVTIME_* environment.
type AnalysisConfig struct {
	DedupEpsilonSeconds      int `mapstructure:"dedup_epsilon_seconds" json:"dedup_epsilon_seconds"`
	PointEventWidthMinutes   int `mapstructure:"point_event_width_minutes" json:"point_event_width_minutes"`
	MergeThresholdMinutes    int `mapstructure:"merge_threshold_minutes" json:"merge_threshold_minutes"`
	CommitBurstWindowMinutes int `mapstructure:"commit_burst_window_minutes" json:"commit_burst_window_minutes"`
	CommitDurationMinutes    int `mapstructure:"commit_duration_minutes" json:"commit_duration_minutes"`
	CommitLookbackHours      int `mapstructure:"commit_lookback_hours" json:"commit_lookback_hours"`
	CommitLookforwardHours   int `mapstructure:"commit_lookforward_hours" json:"commit_lookforward_hours"`
}

// Options converts the configured knobs into engine options.
func (a AnalysisConfig) Options() engine.Options {
	return engine.Options{
		DedupEpsilon:      time.Duration(a.DedupEpsilonSeconds) * time.Second,
		PointWidth:        time.Duration(a.PointEventWidthMinutes) * time.Minute,
		MergeThreshold:    time.Duration(a.MergeThresholdMinutes) * time.Minute,
		CommitBurstWindow: time.Duration(a.CommitBurstWindowMinutes) * time.Minute,
		CommitWidth:       time.Duration(a.CommitDurationMinutes) * time.Minute,
		CommitLookBack:    time.Duration(a.CommitLookbackHours) * time.Hour,
		CommitLookForward: time.Duration(a.CommitLookforwardHours) * time.Hour,
	}
}

// Default returns a Config with default values.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Format: "table",
		Sources: SourcesConfig{
			AgentLogDir:    filepath.Join(home, ".claude", "projects"),
			EditorStateDir: filepath.Join(home, ".config", "Cursor"),
		},
		Analysis: AnalysisConfig{
			DedupEpsilonSeconds:      5,
			PointEventWidthMinutes:   60,
			MergeThresholdMinutes:    10,
			CommitBurstWindowMinutes: 5,
			CommitDurationMinutes:    1,
			CommitLookbackHours:      2,
			CommitLookforwardHours:   12,
		},
	}
}

// Load loads configuration from files and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("devtime")
	v.SetConfigType("yaml")

	// Config paths, lowest precedence first.
	v.AddConfigPath("/etc/devtime/")
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "devtime"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".devtime")
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("DEVTIME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.BindEnv("format", "DEVTIME_FORMAT")
	v.BindEnv("quiet", "DEVTIME_QUIET")
	v.BindEnv("verbose", "DEVTIME_VERBOSE")
	v.BindEnv("sources.agent_log_dir", "DEVTIME_AGENT_LOG_DIR")
	v.BindEnv("sources.editor_state_dir", "DEVTIME_EDITOR_STATE_DIR")

	cfg := Default()
	v.SetDefault("format", cfg.Format)
	v.SetDefault("quiet", cfg.Quiet)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("sources.agent_log_dir", cfg.Sources.AgentLogDir)
	v.SetDefault("sources.editor_state_dir", cfg.Sources.EditorStateDir)
	v.SetDefault("analysis.dedup_epsilon_seconds", cfg.Analysis.DedupEpsilonSeconds)
	v.SetDefault("analysis.point_event_width_minutes", cfg.Analysis.PointEventWidthMinutes)
	v.SetDefault("analysis.merge_threshold_minutes", cfg.Analysis.MergeThresholdMinutes)
	v.SetDefault("analysis.commit_burst_window_minutes", cfg.Analysis.CommitBurstWindowMinutes)
	v.SetDefault("analysis.commit_duration_minutes", cfg.Analysis.CommitDurationMinutes)
	v.SetDefault("analysis.commit_lookback_hours", cfg.Analysis.CommitLookbackHours)
	v.SetDefault("analysis.commit_lookforward_hours", cfg.Analysis.CommitLookforwardHours)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found; use defaults.
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
