package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// expectedUnit is the unit footprint coordinates are written in.
const expectedUnit = "mm"

const defaultResolution = 0.1

// Config controls one conversion run.
type Config struct {
	Layer      string            `yaml:"layer"`
	Name       string            `yaml:"name"`
	Output     string            `yaml:"output"`
	Resolution float64           `yaml:"resolution"`
	Strict     bool              `yaml:"strict"`
	SkipHidden bool              `yaml:"skip_hidden"`
	Layers     map[string]string `yaml:"layers"`
}

func defaultConfig() Config {
	return Config{
		Layer:      autoLayer,
		Resolution: defaultResolution,
	}
}

// loadConfigFile reads a YAML configuration on top of cfg. Fields missing
// from the file keep their current values.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if !(c.Resolution > 0) || math.IsInf(c.Resolution, 0) {
		return fmt.Errorf("resolution must be a positive number, got %g", c.Resolution)
	}
	if c.Layer == "" {
		return errors.New("layer must be AUTO or a KiCad layer name")
	}
	return nil
}

// footprintName returns the configured name, or one derived from the
// current time.
func (c *Config) footprintName(now time.Time) string {
	if c.Name != "" {
		return c.Name
	}
	return "FOOTPRINT" + strconv.FormatInt(now.Unix(), 10)
}

func (c *Config) binder() LayerBinder {
	return LayerBinder{
		Force:      c.Layer,
		Map:        c.Layers,
		SkipHidden: c.SkipHidden,
	}
}
