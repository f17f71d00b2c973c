package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Pointer fields
// distinguish "unset" from zero values.
type FileConfig struct {
	Converter ConverterConfig `toml:"converter"`
	Server    ServerConfig    `toml:"server"`
	Profile   ProfileConfig   `toml:"profile"`
}

// ConverterConfig maps the calendar converter settings.
type ConverterConfig struct {
	Mode      *string `toml:"mode"`
	URL       *string `toml:"url"`
	Account   *string `toml:"account"`
	Cache     *bool   `toml:"cache"`
	CachePath *string `toml:"cache-path"`
}

// ServerConfig maps the HTTP server settings.
type ServerConfig struct {
	Port       *string `toml:"port"`
	ContentDir *string `toml:"content-dir"`
	Reminder   *string `toml:"reminder"`
}

// ProfileConfig maps the computation defaults.
type ProfileConfig struct {
	Lang    *string `toml:"lang"`
	Workers *int    `toml:"workers"`
}

// Settings is the resolved runtime configuration.
type Settings struct {
	ConverterMode   string
	ConverterURL    string
	Account         string
	Cache           bool
	CachePath       string
	Port            string
	ContentDir      string
	ReminderTrigger string
	Language        string
	Workers         int
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		ConverterMode: ConverterModeLocal,
		Account:       DefaultAccount,
		CachePath:     DefaultCachePath(),
		Port:          DefaultPort,
		Language:      DefaultLanguage,
		Workers:       DefaultWorkers,
	}
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, errors.New(ErrConfigPath)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			slog.Debug(MsgConfigFallback, LogKeyComponent, CompConfig, LogKeyFile, path)
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("%s: %w", ErrConfigStat, err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("%s: %w", ErrConfigDecode, err)
	}
	return cfg, nil
}

// LoadSettings overlays the file at path on the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	cfg, err := LoadConfig(path)
	if err != nil {
		return s, err
	}
	s.Apply(cfg)
	return s, nil
}

// Apply copies every field set in cfg.
func (s *Settings) Apply(cfg FileConfig) {
	setString(&s.ConverterMode, cfg.Converter.Mode)
	setString(&s.ConverterURL, cfg.Converter.URL)
	setString(&s.Account, cfg.Converter.Account)
	if cfg.Converter.Cache != nil {
		s.Cache = *cfg.Converter.Cache
	}
	setString(&s.CachePath, cfg.Converter.CachePath)
	setString(&s.Port, cfg.Server.Port)
	setString(&s.ContentDir, cfg.Server.ContentDir)
	setString(&s.ReminderTrigger, cfg.Server.Reminder)
	setString(&s.Language, cfg.Profile.Lang)
	if cfg.Profile.Workers != nil {
		s.Workers = *cfg.Profile.Workers
	}
}

// Validate rejects settings no command can run with.
func (s Settings) Validate() error {
	switch s.ConverterMode {
	case ConverterModeLocal:
	case ConverterModeRemote:
		if s.ConverterURL == "" {
			return errors.New(ErrConverterNotSet)
		}
	default:
		return fmt.Errorf("%s: %q", ErrModeUnsupport, s.ConverterMode)
	}
	if s.Workers <= 0 {
		return errors.New(ErrWorkers)
	}
	if s.Port == "" {
		return errors.New(ErrPortRequired)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
