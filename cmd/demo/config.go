package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// config is the demo server's config file shape, grounded on the
// teacher's own YAML-configured cmd/demo. validate is constructed once at
// package scope and reused, matching the teacher's template.go
// (`validate = validator.New()`).
type config struct {
	Addr           string `yaml:"addr" validate:"required"`
	CacheDB        string `yaml:"cacheDB"`
	DeferHydration bool   `yaml:"deferHydration"`
}

var validate = validator.New()

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("demo: read config: %w", err)
	}
	var c config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("demo: parse config: %w", err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("demo: invalid config: %w", err)
	}
	return &c, nil
}
