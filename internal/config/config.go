// Package config loads formwizard settings from an optional YAML file and
// FORMWIZARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formwizard/pkg/submit"
)

// EnvPrefix prefixes every environment override, e.g. FORMWIZARD_SERVER_ADDR.
const EnvPrefix = "FORMWIZARD"

// Submit targets.
const (
	TargetLog    = "log"
	TargetStdout = "stdout"
	TargetHTTP   = "http"
	TargetNone   = "none"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Submit SubmitConfig `mapstructure:"submit"`
	Theme  ThemeConfig  `mapstructure:"theme"`
	Layout LayoutConfig `mapstructure:"layout"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	BasePath string `mapstructure:"base_path"`
}

// SubmitConfig selects where submitted records go. Targets may be combined
// with commas, e.g. "log,http".
type SubmitConfig struct {
	Target  string            `mapstructure:"target"`
	Format  string            `mapstructure:"format"`
	URL     string            `mapstructure:"url"`
	Timeout time.Duration     `mapstructure:"timeout"`
	Headers map[string]string `mapstructure:"headers"`
}

// ThemeConfig picks the HTML theme. Manifest points at an optional YAML
// theme manifest registered next to the built-in one.
type ThemeConfig struct {
	Name     string `mapstructure:"name"`
	Variant  string `mapstructure:"variant"`
	Manifest string `mapstructure:"manifest"`
}

// LayoutConfig points at an optional layout file or directory.
type LayoutConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadOption adjusts the viper instance before the config is decoded, e.g.
// to apply command-line flags.
type LoadOption func(v *viper.Viper) error

// WithOverride sets key to value, taking precedence over file and env.
func WithOverride(key string, value any) LoadOption {
	return func(v *viper.Viper) error {
		v.Set(key, value)
		return nil
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080", BasePath: "/wizard"},
		Submit: SubmitConfig{Target: TargetLog, Format: string(submit.FormatJSON), Timeout: 15 * time.Second},
		Theme:  ThemeConfig{Name: "formwizard"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads configuration from path (or FORMWIZARD_CONFIG, or
// ./formwizard.yaml, or ~/.config/formwizard/formwizard.yaml) and the
// environment. A missing default file is not an error; an explicit path that
// cannot be read is.
func Load(path string, options ...LoadOption) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.base_path", def.Server.BasePath)
	v.SetDefault("submit.target", def.Submit.Target)
	v.SetDefault("submit.format", def.Submit.Format)
	v.SetDefault("submit.url", "")
	v.SetDefault("submit.timeout", def.Submit.Timeout)
	v.SetDefault("submit.headers", map[string]string{})
	v.SetDefault("theme.name", def.Theme.Name)
	v.SetDefault("theme.variant", "")
	v.SetDefault("theme.manifest", "")
	v.SetDefault("layout.path", "")
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	v.SetConfigType("yaml")
	explicit := strings.TrimSpace(path)
	if explicit == "" {
		explicit = strings.TrimSpace(os.Getenv(EnvPrefix + "_CONFIG"))
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("formwizard")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "formwizard"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(v); err != nil {
			return Config{}, fmt.Errorf("config: apply option: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Targets returns the normalised submit targets.
func (s SubmitConfig) Targets() []string {
	var out []string
	for _, part := range strings.Split(s.Target, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	var errs []error
	for _, target := range c.Submit.Targets() {
		switch target {
		case TargetLog, TargetStdout, TargetNone:
		case TargetHTTP:
			if strings.TrimSpace(c.Submit.URL) == "" {
				errs = append(errs, errors.New("config: submit.url is required for the http target"))
			}
		default:
			errs = append(errs, fmt.Errorf("config: unknown submit target %q", target))
		}
	}
	if _, err := submit.ParseFormat(c.Submit.Format); err != nil {
		errs = append(errs, fmt.Errorf("config: submit.format: %w", err))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("config: log.level: %w", err))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log.format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
