// Package config loads playcard settings from TOML files and the environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/playcard/internal/track"
)

const (
	appName   = "playcard"
	envPrefix = "PLAYCARD_"
)

type Config struct {
	Icons   string `koanf:"icons" default:"unicode" validate:"oneof=nerd unicode none"`
	Artwork string `koanf:"artwork" default:"auto" validate:"oneof=auto kitty none"` // kitty graphics or ASCII placeholder

	// Track to play when none is given on the command line
	Track TrackConfig `koanf:"track"`

	Player PlayerConfig `koanf:"player"`
	UI     UIConfig     `koanf:"ui"`
	Log    LogConfig    `koanf:"log"`

	// Last.fm love/unlove for the like button (enabled when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`

	MPRIS MPRISConfig `koanf:"mpris"`
}

// TrackConfig describes a track. An empty stream_url selects the demo track.
type TrackConfig struct {
	Title        string        `koanf:"title"`
	Subtitle     string        `koanf:"subtitle"`
	ArtworkURL   string        `koanf:"artwork_url" validate:"omitempty,url"`
	StreamURL    string        `koanf:"stream_url"`
	DurationHint time.Duration `koanf:"duration_hint" validate:"gte=0"`
}

// PlayerConfig holds playback engine settings.
type PlayerConfig struct {
	TickInterval   time.Duration `koanf:"tick_interval" default:"250ms" validate:"gte=10ms"`
	MaxStreamBytes int64         `koanf:"max_stream_bytes" default:"268435456" validate:"gt=0"` // remote streams are buffered in memory
	HTTPTimeout    time.Duration `koanf:"http_timeout" default:"30s" validate:"gt=0"`
	Volume         float64       `koanf:"volume" default:"1" validate:"gte=0,lte=1"`
}

// UIConfig holds player card settings.
type UIConfig struct {
	Width            int           `koanf:"width" default:"44" validate:"gte=30,lte=160"`
	ScrubStep        float64       `koanf:"scrub_step" default:"0.05" validate:"gt=0,lte=0.5"` // fraction of the track per key press
	ScrubGrace       time.Duration `koanf:"scrub_grace" default:"500ms" validate:"gte=0"`
	ScrubCommitDelay time.Duration `koanf:"scrub_commit_delay" default:"350ms" validate:"gte=0"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level      string `koanf:"level" default:"info" validate:"oneof=debug info warn error"`
	File       string `koanf:"file"` // empty means $XDG_STATE_HOME/playcard/playcard.log
	MaxSizeMB  int    `koanf:"max_size_mb" default:"5" validate:"gt=0"`
	MaxBackups int    `koanf:"max_backups" default:"3" validate:"gte=0"`
	MaxAgeDays int    `koanf:"max_age_days" default:"28" validate:"gte=0"`
}

// LastfmConfig holds Last.fm API credentials.
type LastfmConfig struct {
	APIKey     string `koanf:"api_key"`
	APISecret  string `koanf:"api_secret"`
	SessionKey string `koanf:"session_key"`
}

// MPRISConfig controls the D-Bus media player interface.
type MPRISConfig struct {
	Enabled bool `koanf:"enabled" default:"true"`
}

// Load reads the configuration files in priority order (last wins), then
// PLAYCARD_* environment variables. A .env file in the working directory is
// loaded into the environment first. explicit, when set, must exist.
func Load(explicit string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}
	paths := getConfigPaths()
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, errors.Wrap(err, "config file")
		}
		paths = append(paths, explicit)
	}
	return load(paths)
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "parse %s", path)
			}
		}
	}

	// PLAYCARD_PLAYER__TICK_INTERVAL -> player.tick_interval
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "set defaults")
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Track.StreamURL = expandPath(cfg.Track.StreamURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/playcard/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	return nil
}

// HasLastfmConfig returns true if Last.fm love/unlove is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != "" && c.Lastfm.SessionKey != ""
}

// TrackToPlay returns the configured track, or the demo track when no
// stream is configured.
func (c *Config) TrackToPlay() track.Track {
	if c.Track.StreamURL == "" {
		return track.Sample()
	}
	return track.Track{
		Title:        c.Track.Title,
		Subtitle:     c.Track.Subtitle,
		ArtworkURL:   c.Track.ArtworkURL,
		StreamURL:    c.Track.StreamURL,
		DurationHint: c.Track.DurationHint,
	}
}

// LogFile returns the log file path, defaulting to the XDG state directory.
func (c *Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	path, err := xdg.StateFile(filepath.Join(appName, appName+".log"))
	if err != nil {
		return "", errors.Wrap(err, "resolve log path")
	}
	return path, nil
}
