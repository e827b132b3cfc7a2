// Package config defines the data structures related to configuration and
// includes functions for loading the config and converting it into calculator
// inputs.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/spf13/viper"
)

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = constants.DateLayout

// ErrMissingSection is returned when a command needs a config section that is
// not present.
var ErrMissingSection = errors.New("missing configuration section")

// Configuration holds all configuration for mortgage-calc.
type Configuration struct {
	Logging       LoggingConfig        `yaml:"logging,omitempty"`
	Output        OutputConfig         `yaml:"output,omitempty"`
	Loan          *LoanConfig          `yaml:"loan,omitempty"`
	Affordability *AffordabilityConfig `yaml:"affordability,omitempty"`
	Purchase      *PurchaseConfig      `yaml:"purchase,omitempty"`
	// Regions overrides the built-in regional tax table when non-empty.
	Regions []RegionConfig `yaml:"regions,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix("MORTGAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.applyDefaults()
	return &configuration, nil
}

// applyDefaults fills values that only have a meaning once their section is
// present.
func (conf *Configuration) applyDefaults() {
	if conf.Affordability != nil {
		conf.Affordability.ApplyDefaults()
	}
}

// RequireLoan returns the loan section or ErrMissingSection.
func (conf *Configuration) RequireLoan() (*LoanConfig, error) {
	if conf.Loan == nil {
		return nil, fmt.Errorf("%w: loan", ErrMissingSection)
	}
	return conf.Loan, nil
}

// RequireAffordability returns the affordability section or ErrMissingSection.
func (conf *Configuration) RequireAffordability() (*AffordabilityConfig, error) {
	if conf.Affordability == nil {
		return nil, fmt.Errorf("%w: affordability", ErrMissingSection)
	}
	return conf.Affordability, nil
}

// RequirePurchase returns the purchase section or ErrMissingSection.
func (conf *Configuration) RequirePurchase() (*PurchaseConfig, error) {
	if conf.Purchase == nil {
		return nil, fmt.Errorf("%w: purchase", ErrMissingSection)
	}
	return conf.Purchase, nil
}
