// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/searchprobe/pkg/ports"
	"github.com/user/searchprobe/pkg/scenario"
)

// Supported browser drivers.
const (
	DriverChromedp   = "chromedp"
	DriverPlaywright = "playwright"
)

// Config represents the full configuration for searchprobe.
type Config struct {
	// Browser
	Headless          Headless `yaml:"headless"`
	Driver            string   `yaml:"driver"`
	ChromePath        string   `yaml:"chrome_path"`
	PlaywrightInstall bool     `yaml:"playwright_install"`

	// Readiness waits
	PageLoadTimeout time.Duration `yaml:"page_load_timeout"`
	ResultsTimeout  time.Duration `yaml:"results_timeout"`
	PollInterval    time.Duration `yaml:"poll_interval"`

	// Output
	Summary  string `yaml:"summary"`
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
	LogLevel string `yaml:"log_level"`
}

// Headless is the headless switch. It accepts "true" or "false" in any case;
// anything else, including an empty value, means true.
type Headless bool

// UnmarshalYAML applies ParseHeadless to the scalar value.
func (h *Headless) UnmarshalYAML(value *yaml.Node) error {
	*h = Headless(ParseHeadless(value.Value))
	return nil
}

// ParseHeadless parses the headless switch. Only a case-insensitive "false" disables it.
func ParseHeadless(s string) bool {
	return !strings.EqualFold(strings.TrimSpace(s), "false")
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Headless: true,
		Driver:   DriverChromedp,

		PageLoadTimeout: scenario.DefaultPageLoadTimeout,
		ResultsTimeout:  scenario.DefaultResultsTimeout,
		PollInterval:    scenario.DefaultPollInterval,

		DebugDir: "./debug",
		LogLevel: "info",
	}
}

// LoadFromFile reads a YAML file over the defaults. Keys absent from the file keep their default.
func LoadFromFile(fs ports.FileSystem, path string) (Config, error) {
	cfg := Defaults()

	data, err := fs.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that have no sensible fallback.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverChromedp, DriverPlaywright:
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", c.Driver, DriverChromedp, DriverPlaywright)
	}
	if c.PageLoadTimeout <= 0 {
		return fmt.Errorf("page_load_timeout must be positive, got %s", c.PageLoadTimeout)
	}
	if c.ResultsTimeout <= 0 {
		return fmt.Errorf("results_timeout must be positive, got %s", c.ResultsTimeout)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	return nil
}

// ToScenarioConfig converts to the scenario input with the fixed search target.
func (c Config) ToScenarioConfig() scenario.Config {
	sc := scenario.DefaultConfig()
	sc.Headless = bool(c.Headless)
	sc.ChromePath = c.ChromePath
	sc.PageLoadTimeout = c.PageLoadTimeout
	sc.ResultsTimeout = c.ResultsTimeout
	sc.PollInterval = c.PollInterval
	return sc
}
