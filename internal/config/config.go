package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const configFileName = "oncall_config.yaml"

// DutyShift defines an external-duty conflict for a fellow
type DutyShift struct {
	Fellow    string `yaml:"fellow" validate:"required"`
	Start     string `yaml:"start" validate:"required,datetime=2006-01-02"`
	End       string `yaml:"end,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime string `yaml:"startTime,omitempty" validate:"omitempty,datetime=15:04"`
	RRule     string `yaml:"rrule,omitempty"`
}

// OffDays defines a requested day-off range for a fellow
type OffDays struct {
	Fellow string `yaml:"fellow" validate:"required"`
	Start  string `yaml:"start" validate:"required,datetime=2006-01-02"`
	End    string `yaml:"end,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Config represents the application configuration
type Config struct {
	FirstYearFellows  []string    `yaml:"firstYearFellows,omitempty" validate:"required_without=DatabaseURL,omitempty,min=1,dive,required"`
	SecondYearFellows []string    `yaml:"secondYearFellows,omitempty" validate:"required_without=DatabaseURL,omitempty,min=1,dive,required"`
	Year              int         `yaml:"year,omitempty" validate:"omitempty,min=2000,max=2100"`
	Month             int         `yaml:"month,omitempty" validate:"omitempty,min=1,max=12"`
	ClinicDate        string      `yaml:"clinicDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DutyShifts        []DutyShift `yaml:"dutyShifts,omitempty" validate:"dive"`
	OffDays           []OffDays   `yaml:"offDays,omitempty" validate:"dive"`
	DatabaseURL       string      `yaml:"databaseURL,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from oncall_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, rrule syntax and fellow references
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Fellow names must be unique across both tiers
	rostered := make(map[string]bool)
	for _, name := range append(append([]string{}, cfg.FirstYearFellows...), cfg.SecondYearFellows...) {
		if rostered[name] {
			return fmt.Errorf("duplicate fellow %q in roster", name)
		}
		rostered[name] = true
	}

	for i, shift := range cfg.DutyShifts {
		if !rostered[shift.Fellow] {
			return fmt.Errorf("dutyShifts[%d] references unknown fellow %q", i, shift.Fellow)
		}
		if err := checkRange(shift.Start, shift.End); err != nil {
			return fmt.Errorf("dutyShifts[%d]: %w", i, err)
		}
		if shift.RRule != "" {
			if _, err := rrule.StrToRRule(shift.RRule); err != nil {
				return fmt.Errorf("invalid rrule in dutyShifts[%d]: %w", i, err)
			}
		}
	}

	for i, off := range cfg.OffDays {
		if !rostered[off.Fellow] {
			return fmt.Errorf("offDays[%d] references unknown fellow %q", i, off.Fellow)
		}
		if err := checkRange(off.Start, off.End); err != nil {
			return fmt.Errorf("offDays[%d]: %w", i, err)
		}
	}

	return nil
}

// checkRange assumes both dates already passed the datetime tag
func checkRange(start, end string) error {
	if end == "" {
		return nil
	}
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	if e.Before(s) {
		return fmt.Errorf("end %s is before start %s", end, start)
	}
	return nil
}

// findConfigFile searches for oncall_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
