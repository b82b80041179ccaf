// Package config loads the dashboard client settings from a YAML file, an
// optional .env file and AGENDA_* environment variables, in increasing order
// of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	// Zone data for hosts without a system tz database.
	_ "time/tzdata"

	"github.com/goliatone/go-agenda/pkg/appointment"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AGENDA_"

// Defaults.
const (
	DefaultTimezone       = "America/Lima"
	DefaultRequestTimeout = 15 * time.Second
	DefaultLogLevel       = "info"
	DefaultEnvironment    = "development"
)

// Duration reads YAML values such as "15s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("config: line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the client settings.
type Config struct {
	BaseURL        string   `yaml:"base_url"`
	Role           string   `yaml:"role"`
	Timezone       string   `yaml:"timezone"`
	Token          string   `yaml:"token"`
	SessionCookie  string   `yaml:"session_cookie"`
	RequestTimeout Duration `yaml:"request_timeout"`
	LogLevel       string   `yaml:"log_level"`
	Environment    string   `yaml:"environment"`
	RangeFilter    bool     `yaml:"range_filter"`
	ShowHistory    bool     `yaml:"show_history"`
	ThemeVariant   string   `yaml:"theme_variant"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Role:           string(appointment.RoleProfessional),
		Timezone:       DefaultTimezone,
		RequestTimeout: Duration(DefaultRequestTimeout),
		LogLevel:       DefaultLogLevel,
		Environment:    DefaultEnvironment,
	}
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	file    string
	envFile string
	lookup  func(string) (string, bool)
}

// WithFile reads path as YAML. A missing file is an error.
func WithFile(path string) Option {
	return func(l *loader) {
		l.file = strings.TrimSpace(path)
	}
}

// WithEnvFile loads path into the process environment first. A missing file
// is ignored; existing variables are never replaced.
func WithEnvFile(path string) Option {
	return func(l *loader) {
		l.envFile = strings.TrimSpace(path)
	}
}

// WithLookup replaces os.LookupEnv.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(l *loader) {
		if lookup != nil {
			l.lookup = lookup
		}
	}
}

// Load builds a validated Config.
func Load(opts ...Option) (*Config, error) {
	l := &loader{lookup: os.LookupEnv}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load env file %s: %w", l.envFile, err)
		}
	}

	cfg := Default()
	if l.file != "" {
		data, err := os.ReadFile(l.file)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", l.file, err)
		}
		if err := decode(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", l.file, err)
		}
	}
	if err := cfg.applyEnv(l.lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"BASE_URL":       &c.BaseURL,
		"ROLE":           &c.Role,
		"TIMEZONE":       &c.Timezone,
		"TOKEN":          &c.Token,
		"SESSION_COOKIE": &c.SessionCookie,
		"LOG_LEVEL":      &c.LogLevel,
		"ENVIRONMENT":    &c.Environment,
		"THEME_VARIANT":  &c.ThemeVariant,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	bools := map[string]*bool{
		"RANGE_FILTER": &c.RangeFilter,
		"SHOW_HISTORY": &c.ShowHistory,
	}
	for key, dst := range bools {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = parsed
	}

	if v, ok := lookup(EnvPrefix + "REQUEST_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %sREQUEST_TIMEOUT: %w", EnvPrefix, err)
		}
		c.RequestTimeout = Duration(parsed)
	}
	return nil
}

// Validate reports missing or malformed settings.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.BaseURL) == "" {
		errs = append(errs, errors.New("config: base_url is required"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("config: request_timeout must be positive"))
	}
	return errors.Join(errs...)
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", name, err)
	}
	return loc, nil
}

// ViewerRole parses the configured role.
func (c *Config) ViewerRole() appointment.Role {
	return appointment.ParseRole(c.Role)
}

// Timeout returns the request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout)
}
