// Package config loads the scoutforms CLI settings from an optional file
// and SCOUTFORMS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-scoutforms/pkg/prefs"
	"github.com/goliatone/go-scoutforms/pkg/render"
	"github.com/goliatone/go-scoutforms/pkg/validation"
)

// PreviewConfig configures the local preview server.
type PreviewConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// Config holds every CLI setting.
type Config struct {
	Locale               string        `mapstructure:"locale" yaml:"locale"`
	Theme                string        `mapstructure:"theme" yaml:"theme"`
	ExcludeClass         string        `mapstructure:"exclude_class" yaml:"exclude_class"`
	NotificationDuration time.Duration `mapstructure:"notification_duration" yaml:"notification_duration"`
	OrderEndpointBase    string        `mapstructure:"order_endpoint_base" yaml:"order_endpoint_base"`
	Preview              PreviewConfig `mapstructure:"preview" yaml:"preview"`
	Log                  LogConfig     `mapstructure:"log" yaml:"log"`
}

var defaults = map[string]any{
	"locale":                render.DefaultLocale,
	"theme":                 prefs.DefaultTheme,
	"exclude_class":         validation.DefaultExcludeClass,
	"notification_duration": 5 * time.Second,
	"order_endpoint_base":   "http://localhost:5000",
	"preview.addr":          "127.0.0.1:8080",
	"log.level":             "info",
	"log.development":       false,
}

// envBindings maps config keys to the environment variables that can set
// them, preferred name first.
var envBindings = map[string][]string{
	"locale":                {"SCOUTFORMS_LOCALE"},
	"theme":                 {"SCOUTFORMS_THEME"},
	"exclude_class":         {"SCOUTFORMS_EXCLUDE_CLASS"},
	"notification_duration": {"SCOUTFORMS_NOTIFICATION_DURATION"},
	"order_endpoint_base":   {"SCOUTFORMS_ORDER_ENDPOINT_BASE"},
	"preview.addr":          {"SCOUTFORMS_PREVIEW_ADDR"},
	"log.level":             {"SCOUTFORMS_LOG_LEVEL", "LOG_LEVEL"},
	"log.development":       {"SCOUTFORMS_LOG_DEVELOPMENT"},
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg, err := LoadEnv()
	if err != nil {
		return &Config{Locale: render.DefaultLocale, Theme: prefs.DefaultTheme}
	}
	return cfg
}

// Load reads filePath when it exists and applies environment overrides on
// top. A missing file falls back to defaults plus environment.
func Load(filePath string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	if filePath != "" {
		v.SetConfigFile(filePath)
		if _, statErr := os.Stat(filePath); !errors.Is(statErr, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", filePath, err)
			}
		}
	}
	return decode(v)
}

// LoadEnv builds the configuration from defaults and environment only.
func LoadEnv() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// Validate rejects values the engine cannot honour.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Locale) == "" {
		errs = append(errs, errors.New("locale is empty"))
	}
	if _, err := prefs.ParseTheme(c.Theme); err != nil {
		errs = append(errs, fmt.Errorf("theme %q: %w", c.Theme, err))
	}
	if c.NotificationDuration <= 0 {
		errs = append(errs, fmt.Errorf("notification_duration must be positive, got %s", c.NotificationDuration))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Preferences returns the theme preferences described by the config.
func (c *Config) Preferences() prefs.Preferences {
	theme, err := prefs.ParseTheme(c.Theme)
	if err != nil {
		return prefs.Default()
	}
	return prefs.Preferences{Theme: theme}
}

// Localizer returns the message localizer for the configured locale.
func (c *Config) Localizer() render.Localizer {
	return render.Localizer{Locale: c.Locale}
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if err := bindEnvs(v); err != nil {
		return nil, fmt.Errorf("config: bind env: %w", err)
	}
	return v, nil
}

func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(slices.Clone(envs), 0, key)
		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}
	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	return cfg, nil
}
