package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for fontvault
type Config struct {
	Archive ArchiveConfig `mapstructure:"archive" yaml:"archive"`
}

// ArchiveConfig holds options for the archival pipeline
type ArchiveConfig struct {
	// MinFontSize is the minimum file size in bytes for a file to be
	// considered a genuine font during classification.
	MinFontSize int64 `mapstructure:"min_font_size" yaml:"min_font_size"`
	// Collision selects the collision policy for renaming and filing:
	// "suffix" appends _1, _2, ... while "fail" reports an error.
	Collision string `mapstructure:"collision" yaml:"collision"`
	// OnRenameFailure selects severity for rename failures: "halt" stops
	// the remainder of the run, "continue" logs and skips the file.
	OnRenameFailure string `mapstructure:"on_rename_failure" yaml:"on_rename_failure"`
	// OnFileFailure selects severity for filing (move) failures.
	OnFileFailure string `mapstructure:"on_file_failure" yaml:"on_file_failure"`
	// ExtraFamilyTokens are additional style/weight tokens stripped during
	// family normalization, on top of the built-in set.
	ExtraFamilyTokens []string `mapstructure:"extra_family_tokens" yaml:"extra_family_tokens,omitempty"`
	// Exclude holds doublestar patterns skipped during the source walk.
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty"`
}

// Severity values for the per-failure-class policies.
const (
	SeverityHalt     = "halt"
	SeverityContinue = "continue"
)

// Collision policy values.
const (
	CollisionSuffix = "suffix"
	CollisionFail   = "fail"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Archive: ArchiveConfig{
			MinFontSize:     1024,
			Collision:       CollisionSuffix,
			OnRenameFailure: SeverityHalt,
			OnFileFailure:   SeverityContinue,
		},
	}
}

// Load reads configuration from .fontvault.yaml (cwd, then home) and the
// FONTVAULT_* environment, layered over the defaults.
func Load() (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("archive.min_font_size", def.Archive.MinFontSize)
	v.SetDefault("archive.collision", def.Archive.Collision)
	v.SetDefault("archive.on_rename_failure", def.Archive.OnRenameFailure)
	v.SetDefault("archive.on_file_failure", def.Archive.OnFileFailure)
	v.SetDefault("archive.extra_family_tokens", def.Archive.ExtraFamilyTokens)
	v.SetDefault("archive.exclude", def.Archive.Exclude)

	v.SetConfigName(".fontvault")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("FONTVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enum-valued fields.
func (c *Config) Validate() error {
	a := c.Archive
	if a.Collision != CollisionSuffix && a.Collision != CollisionFail {
		return fmt.Errorf("invalid archive.collision %q (want suffix|fail)", a.Collision)
	}
	if a.OnRenameFailure != SeverityHalt && a.OnRenameFailure != SeverityContinue {
		return fmt.Errorf("invalid archive.on_rename_failure %q (want halt|continue)", a.OnRenameFailure)
	}
	if a.OnFileFailure != SeverityHalt && a.OnFileFailure != SeverityContinue {
		return fmt.Errorf("invalid archive.on_file_failure %q (want halt|continue)", a.OnFileFailure)
	}
	if a.MinFontSize < 0 {
		return fmt.Errorf("invalid archive.min_font_size %d", a.MinFontSize)
	}
	return nil
}

// DefaultPath returns the per-directory config file path under dir.
func DefaultPath(dir string) string {
	return filepath.Join(dir, ".fontvault.yaml")
}
