// Package config provides configuration management for calm.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/xvierd/calm-cli/internal/activity"
)

// ErrUnknownKey is returned by SetValue for keys the config does not have.
var ErrUnknownKey = errors.New("unknown config key")

// Config holds all configuration for the calm application.
type Config struct {
	Pacing        PacingConfig       `mapstructure:"pacing"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Log           LogConfig          `mapstructure:"log"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// PacingConfig holds the timing of sessions and their animations.
type PacingConfig struct {
	Prepare         Duration `mapstructure:"prepare"`
	Closing         Duration `mapstructure:"closing"`
	BreathPhase     Duration `mapstructure:"breath_phase"`
	ReflectionPause Duration `mapstructure:"reflection_pause"`
	ListingLeadIn   int      `mapstructure:"listing_lead_in"`
	CountdownUnit   Duration `mapstructure:"countdown_unit"`
	SpinnerTick     Duration `mapstructure:"spinner_tick"`
	PollInterval    Duration `mapstructure:"poll_interval"`
	MaxListed       int      `mapstructure:"max_listed"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ThemeConfig holds menu colors and icons.
type ThemeConfig struct {
	ColorTitle    string `mapstructure:"color_title"`
	ColorSelected string `mapstructure:"color_selected"`
	ColorAccent   string `mapstructure:"color_accent"`
	ColorHelp     string `mapstructure:"color_help"`
	IconApp       string `mapstructure:"icon_app"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorTitle:    "#7C6FE0",
		ColorSelected: "#4ECDC4",
		ColorAccent:   "#A78BFA",
		ColorHelp:     "#95A5A6",
		IconApp:       "🌿",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	p := activity.DefaultPacing()
	return &Config{
		Pacing: PacingConfig{
			Prepare:         Duration(p.Prepare),
			Closing:         Duration(p.Closing),
			BreathPhase:     Duration(p.BreathPhase),
			ReflectionPause: Duration(p.ReflectionPause),
			ListingLeadIn:   p.ListingLeadIn,
			CountdownUnit:   Duration(p.CountdownUnit),
			SpinnerTick:     Duration(p.SpinnerTick),
			PollInterval:    Duration(p.PollInterval),
			MaxListed:       p.MaxListed,
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			DataDir: "",
		},
		Log: LogConfig{
			Level: "info",
			File:  "calm.log",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the config file, creating it with
// defaults on first use, then applies environment overrides.
func Load() (*Config, error) {
	env, err := ParseEnv()
	if err != nil {
		return nil, err
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := newViper(configPath)
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = configDir
	}
	env.Apply(&cfg)

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(configPath)
	v.Set("pacing.prepare", cfg.Pacing.Prepare.String())
	v.Set("pacing.closing", cfg.Pacing.Closing.String())
	v.Set("pacing.breath_phase", cfg.Pacing.BreathPhase.String())
	v.Set("pacing.reflection_pause", cfg.Pacing.ReflectionPause.String())
	v.Set("pacing.listing_lead_in", cfg.Pacing.ListingLeadIn)
	v.Set("pacing.countdown_unit", cfg.Pacing.CountdownUnit.String())
	v.Set("pacing.spinner_tick", cfg.Pacing.SpinnerTick.String())
	v.Set("pacing.poll_interval", cfg.Pacing.PollInterval.String())
	v.Set("pacing.max_listed", cfg.Pacing.MaxListed)
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("theme.color_title", cfg.Theme.ColorTitle)
	v.Set("theme.color_selected", cfg.Theme.ColorSelected)
	v.Set("theme.color_accent", cfg.Theme.ColorAccent)
	v.Set("theme.color_help", cfg.Theme.ColorHelp)
	v.Set("theme.icon_app", cfg.Theme.IconApp)

	return v.WriteConfig()
}

// GetConfigDir returns the directory holding the config, database and log
// files: $CALM_HOME when set, ~/.calm otherwise.
func GetConfigDir() (string, error) {
	env, err := ParseEnv()
	if err != nil {
		return "", err
	}
	if env.Home != "" {
		return env.Home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".calm"), nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "calm.db")
}

// GetLogPath returns the path to the log file. A relative log file is
// placed in the data directory.
func GetLogPath(cfg *Config) string {
	if filepath.IsAbs(cfg.Log.File) {
		return cfg.Log.File
	}
	return filepath.Join(cfg.Storage.DataDir, cfg.Log.File)
}

// ToPacing converts the pacing section to the values sessions run with.
// Unset or non-positive entries fall back to the defaults.
func (c *Config) ToPacing() activity.Pacing {
	p := activity.DefaultPacing()
	setDuration := func(dst *time.Duration, src Duration) {
		if src > 0 {
			*dst = time.Duration(src)
		}
	}
	setDuration(&p.Prepare, c.Pacing.Prepare)
	setDuration(&p.Closing, c.Pacing.Closing)
	setDuration(&p.BreathPhase, c.Pacing.BreathPhase)
	setDuration(&p.ReflectionPause, c.Pacing.ReflectionPause)
	setDuration(&p.CountdownUnit, c.Pacing.CountdownUnit)
	setDuration(&p.SpinnerTick, c.Pacing.SpinnerTick)
	setDuration(&p.PollInterval, c.Pacing.PollInterval)
	if c.Pacing.ListingLeadIn > 0 {
		p.ListingLeadIn = c.Pacing.ListingLeadIn
	}
	if c.Pacing.MaxListed > 0 {
		p.MaxListed = c.Pacing.MaxListed
	}
	return p
}

// SetValue changes one key (e.g. "pacing.breath_phase") in the config file.
// The edited file must still decode, so "pacing.prepare = soon" is
// rejected before anything is written.
func SetValue(key, value string) error {
	// Load creates the file on first use.
	if _, err := Load(); err != nil {
		return err
	}
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	v := newViper(configPath)
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	key = strings.ToLower(strings.TrimSpace(key))
	if !slices.Contains(v.AllKeys(), key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	v.Set(key, value)

	var edited Config
	if err := v.Unmarshal(&edited, decodeHook()); err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
	return Save(&edited)
}

// Keys returns every settable config key, sorted.
func Keys() []string {
	v := viper.New()
	setDefaults(v)
	keys := v.AllKeys()
	slices.Sort(keys)
	return keys
}

func decodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	return v
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("pacing.prepare", defaults.Pacing.Prepare.String())
	v.SetDefault("pacing.closing", defaults.Pacing.Closing.String())
	v.SetDefault("pacing.breath_phase", defaults.Pacing.BreathPhase.String())
	v.SetDefault("pacing.reflection_pause", defaults.Pacing.ReflectionPause.String())
	v.SetDefault("pacing.listing_lead_in", defaults.Pacing.ListingLeadIn)
	v.SetDefault("pacing.countdown_unit", defaults.Pacing.CountdownUnit.String())
	v.SetDefault("pacing.spinner_tick", defaults.Pacing.SpinnerTick.String())
	v.SetDefault("pacing.poll_interval", defaults.Pacing.PollInterval.String())
	v.SetDefault("pacing.max_listed", defaults.Pacing.MaxListed)
	v.SetDefault("notifications.enabled", true)
	v.SetDefault("storage.data_dir", "")
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)

	// Theme defaults
	v.SetDefault("theme.color_title", defaults.Theme.ColorTitle)
	v.SetDefault("theme.color_selected", defaults.Theme.ColorSelected)
	v.SetDefault("theme.color_accent", defaults.Theme.ColorAccent)
	v.SetDefault("theme.color_help", defaults.Theme.ColorHelp)
	v.SetDefault("theme.icon_app", defaults.Theme.IconApp)
}
