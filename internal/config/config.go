package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/rsqsongdb/internal/builder"
	"github.com/harrison/rsqsongdb/internal/models"
	"github.com/harrison/rsqsongdb/internal/numbering"
	"github.com/harrison/rsqsongdb/internal/resolver"
	"github.com/harrison/rsqsongdb/internal/songdb"
	"gopkg.in/yaml.v3"
)

// Config represents rsqsongdb configuration options
type Config struct {
	// MusicDir is the source directory containing .mp3 and .cdg files (required)
	MusicDir string `yaml:"music_dir"`

	// AltDir replaces MusicDir in the song database; useful when the database
	// is generated on a different machine from the one that builds the song drive
	AltDir string `yaml:"alt_dir"`

	// FirstSongNumber is the number of the first song
	FirstSongNumber int `yaml:"first_song_number"`

	// SongDB is the song database file name (default: songdb.txt in MusicDir)
	SongDB string `yaml:"songdb"`

	// AudioExt is the audio file extension
	AudioExt string `yaml:"audio_ext"`

	// GraphicsExt is the graphics file extension
	GraphicsExt string `yaml:"graphics_ext"`

	// ExcludeDirs lists directory names that are not scanned
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// SkipHidden skips directories whose name starts with "."
	SkipHidden bool `yaml:"skip_hidden"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs will be written (empty disables file logging)
	LogDir string `yaml:"log_dir"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		FirstSongNumber: numbering.DefaultFirstSongNumber,
		AudioExt:        resolver.DefaultAudioExt,
		GraphicsExt:     resolver.DefaultGraphicsExt,
		LogLevel:        "info",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointers tell an explicit zero value apart from "unset"
	type yamlConfig struct {
		MusicDir        string   `yaml:"music_dir"`
		AltDir          string   `yaml:"alt_dir"`
		FirstSongNumber *int     `yaml:"first_song_number"`
		SongDB          string   `yaml:"songdb"`
		AudioExt        string   `yaml:"audio_ext"`
		GraphicsExt     string   `yaml:"graphics_ext"`
		ExcludeDirs     []string `yaml:"exclude_dirs"`
		SkipHidden      *bool    `yaml:"skip_hidden"`
		LogLevel        string   `yaml:"log_level"`
		LogDir          string   `yaml:"log_dir"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if yamlCfg.MusicDir != "" {
		cfg.MusicDir = yamlCfg.MusicDir
	}
	if yamlCfg.AltDir != "" {
		cfg.AltDir = yamlCfg.AltDir
	}
	if yamlCfg.FirstSongNumber != nil {
		cfg.FirstSongNumber = *yamlCfg.FirstSongNumber
	}
	if yamlCfg.SongDB != "" {
		cfg.SongDB = yamlCfg.SongDB
	}
	if yamlCfg.AudioExt != "" {
		cfg.AudioExt = yamlCfg.AudioExt
	}
	if yamlCfg.GraphicsExt != "" {
		cfg.GraphicsExt = yamlCfg.GraphicsExt
	}
	if len(yamlCfg.ExcludeDirs) > 0 {
		cfg.ExcludeDirs = yamlCfg.ExcludeDirs
	}
	if yamlCfg.SkipHidden != nil {
		cfg.SkipHidden = *yamlCfg.SkipHidden
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .rsqsongdb/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".rsqsongdb", "config.yaml")
	return LoadConfig(configPath)
}

// Flags carries CLI flag values; nil fields were not given on the command line
type Flags struct {
	MusicDir        *string
	AltDir          *string
	FirstSongNumber *int
	SongDB          *string
	AudioExt        *string
	GraphicsExt     *string
	SkipHidden      *bool
	LogLevel        *string
	LogDir          *string
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(f Flags) {
	if f.MusicDir != nil {
		c.MusicDir = *f.MusicDir
	}
	if f.AltDir != nil {
		c.AltDir = *f.AltDir
	}
	if f.FirstSongNumber != nil {
		c.FirstSongNumber = *f.FirstSongNumber
	}
	if f.SongDB != nil {
		c.SongDB = *f.SongDB
	}
	if f.AudioExt != nil {
		c.AudioExt = *f.AudioExt
	}
	if f.GraphicsExt != nil {
		c.GraphicsExt = *f.GraphicsExt
	}
	if f.SkipHidden != nil {
		c.SkipHidden = *f.SkipHidden
	}
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.LogDir != nil {
		c.LogDir = *f.LogDir
	}
}

// Resolve fills in derived defaults: MusicDir becomes absolute, SongDB
// defaults to songdb.txt inside MusicDir and AltDir defaults to MusicDir.
// AltDir is kept verbatim since it may name a drive on another machine.
// Call Validate first; Resolve does nothing useful without a MusicDir.
func (c *Config) Resolve() error {
	if c.MusicDir == "" {
		return models.ErrMissingMusicDir
	}

	abs, err := filepath.Abs(c.MusicDir)
	if err != nil {
		return fmt.Errorf("failed to resolve music directory %s: %w", c.MusicDir, err)
	}
	c.MusicDir = abs

	if c.SongDB == "" {
		c.SongDB = filepath.Join(c.MusicDir, songdb.DefaultFileName)
	} else if c.SongDB, err = filepath.Abs(c.SongDB); err != nil {
		return fmt.Errorf("failed to resolve song database path: %w", err)
	}

	if c.AltDir == "" {
		c.AltDir = c.MusicDir
	}
	return nil
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.MusicDir == "" {
		return models.ErrMissingMusicDir
	}

	if c.FirstSongNumber < 0 {
		return fmt.Errorf("first_song_number must be >= 0, got %d", c.FirstSongNumber)
	}

	// Validate log_level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if strings.TrimLeft(c.AudioExt, ".") == "" {
		return fmt.Errorf("audio_ext cannot be empty")
	}
	if strings.TrimLeft(c.GraphicsExt, ".") == "" {
		return fmt.Errorf("graphics_ext cannot be empty")
	}
	if strings.EqualFold(strings.TrimLeft(c.AudioExt, "."), strings.TrimLeft(c.GraphicsExt, ".")) {
		return fmt.Errorf("audio_ext and graphics_ext must differ, both are %q", c.AudioExt)
	}

	return nil
}

// BuilderOptions converts a resolved Config into pipeline options
func (c *Config) BuilderOptions() builder.Options {
	return builder.Options{
		MusicDir:        c.MusicDir,
		AltDir:          c.AltDir,
		FirstSongNumber: c.FirstSongNumber,
		SongDBPath:      c.SongDB,
		Resolver: resolver.Options{
			AudioExt:    c.AudioExt,
			GraphicsExt: c.GraphicsExt,
			ExcludeDirs: c.ExcludeDirs,
			SkipHidden:  c.SkipHidden,
		},
	}
}
