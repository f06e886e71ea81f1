package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied by ApplyDefaults when a field is unset.
const (
	DefaultIntervalSeconds = 300
	DefaultPlanFile        = "desired-state.yaml"
	DefaultLogDir          = "logs"
)

// Settings represents the agent configuration. Every field can also be
// set by a command-line flag; flags win over the file.
type Settings struct {
	Endpoint        string `yaml:"endpoint"`                   // host:port of the libvirt daemon
	IntervalSeconds int    `yaml:"interval_seconds,omitempty"` // delay at the top of every cycle
	DryRun          bool   `yaml:"dry_run,omitempty"`
	PlanFile        string `yaml:"plan_file,omitempty"`
	LogDir          string `yaml:"log_dir,omitempty"`
}

// ApplyDefaults fills in unset optional fields.
func (s *Settings) ApplyDefaults() {
	if s.IntervalSeconds == 0 {
		s.IntervalSeconds = DefaultIntervalSeconds
	}
	if s.PlanFile == "" {
		s.PlanFile = DefaultPlanFile
	}
	if s.LogDir == "" {
		s.LogDir = DefaultLogDir
	}
}

// Validate checks the configuration for errors. It does not verify that
// the endpoint is reachable or that the plan file exists; both are
// checked per cycle at runtime.
func (s *Settings) Validate() error {
	if s.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if s.IntervalSeconds < 0 {
		return fmt.Errorf("interval_seconds must be >= 0, got %d", s.IntervalSeconds)
	}
	return nil
}

// Interval returns the cycle delay as a duration.
func (s *Settings) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

// LoadFromFile reads a Settings document from a YAML file and applies
// the defaults. Validation is left to the caller so flag overrides can
// be merged in first.
func LoadFromFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	s.ApplyDefaults()
	return &s, nil
}
