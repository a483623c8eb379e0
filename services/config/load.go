//go:build !tinygo

package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file. See Parse.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes YAML over the embedded defaults of the named device
// ("sim" when absent) and validates the result.
func Parse(b []byte) (*Config, error) {
	var head struct {
		Device string `yaml:"device"`
	}
	if err := yaml.Unmarshal(b, &head); err != nil {
		return nil, err
	}
	if head.Device == "" {
		head.Device = "sim"
	}
	cfg, err := Lookup(head.Device)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
