package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"motiontracker/types"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "MOTIONTRACKER_"

// Config is the complete application configuration
type Config struct {
	Capture  types.CaptureConfig  `yaml:"capture" envPrefix:"CAPTURE_"`
	Tracking types.TrackingConfig `yaml:"tracking" envPrefix:"TRACKING_"`
	Video    types.VideoConfig    `yaml:"video" envPrefix:"VIDEO_"`
	UI       types.UIConfig       `yaml:"ui" envPrefix:"UI_"`
	Output   types.OutputConfig   `yaml:"output"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Capture:  types.DefaultCaptureConfig(),
		Tracking: types.DefaultTrackingConfig(),
		Video:    types.DefaultVideoConfig(),
		UI:       types.DefaultUIConfig(),
		Output:   types.DefaultOutputConfig(),
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path and environment overrides, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "parse config file %s", path)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, errors.Wrap(err, "parse environment")
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section of cfg
func Validate(cfg Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}
