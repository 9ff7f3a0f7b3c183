package commands

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/resmng/pkg/simulation"
)

// SimulateConfig holds configuration for the simulate command. The same
// fields can come from flags or from a YAML file.
type SimulateConfig struct {
	Cycles         int           `yaml:"cycles"` // 0 runs until interrupted
	Interval       time.Duration `yaml:"interval"`
	Seed           int64         `yaml:"seed"`
	MaxValue       int64         `yaml:"max_value"`
	ScenarioDir    string        `yaml:"scenario"`
	MetricsAddr    string        `yaml:"metrics_addr"`
	FatalForecasts bool          `yaml:"fatal_forecasts"`
	Verbose        bool          `yaml:"verbose"`
	LogFormat      string        `yaml:"log_format"`

	// Catalog generated before the first cycle when no scenario is given
	BootstrapMaterials int `yaml:"bootstrap_materials"`
	BootstrapProducts  int `yaml:"bootstrap_products"`

	Help bool `yaml:"-"`
}

// DefaultSimulateConfig returns the configuration used when nothing is set
func DefaultSimulateConfig() SimulateConfig {
	return SimulateConfig{
		Cycles:             500,
		Seed:               1,
		MaxValue:           simulation.DefaultMaxValue,
		LogFormat:          "console",
		BootstrapMaterials: 8,
		BootstrapProducts:  16,
	}
}

// LoadConfigFile loads and parses a YAML config file from the given path
func LoadConfigFile(path string) (SimulateConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SimulateConfig{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML data on top of the defaults
func ParseConfig(data []byte) (SimulateConfig, error) {
	cfg := DefaultSimulateConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SimulateConfig{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return cfg, nil
}

// Override copies the named fields of flags onto cfg. Names are flag names.
func (cfg SimulateConfig) Override(flags SimulateConfig, set map[string]bool) SimulateConfig {
	if set["cycles"] {
		cfg.Cycles = flags.Cycles
	}
	if set["interval"] {
		cfg.Interval = flags.Interval
	}
	if set["seed"] {
		cfg.Seed = flags.Seed
	}
	if set["max-value"] {
		cfg.MaxValue = flags.MaxValue
	}
	if set["scenario"] {
		cfg.ScenarioDir = flags.ScenarioDir
	}
	if set["metrics-addr"] {
		cfg.MetricsAddr = flags.MetricsAddr
	}
	if set["fatal-forecasts"] {
		cfg.FatalForecasts = flags.FatalForecasts
	}
	if set["verbose"] {
		cfg.Verbose = flags.Verbose
	}
	if set["log-format"] {
		cfg.LogFormat = flags.LogFormat
	}
	if set["help"] {
		cfg.Help = flags.Help
	}
	return cfg
}

func (cfg SimulateConfig) validate() error {
	if cfg.Cycles < 0 {
		return fmt.Errorf("cycles cannot be negative, got %d", cfg.Cycles)
	}
	if cfg.Interval < 0 {
		return fmt.Errorf("interval cannot be negative, got %s", cfg.Interval)
	}
	if cfg.BootstrapMaterials < 0 || cfg.BootstrapProducts < 0 {
		return fmt.Errorf("bootstrap sizes cannot be negative")
	}
	if cfg.BootstrapProducts > 0 && cfg.BootstrapMaterials == 0 && cfg.ScenarioDir == "" {
		return fmt.Errorf("bootstrapping products needs at least one material")
	}
	switch cfg.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.LogFormat)
	}
	return nil
}
