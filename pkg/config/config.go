// Package config loads provider configuration from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/finagents/provider-kit/pkg/types"
)

// File is the top-level YAML configuration document. Each named profile is
// a full provider configuration; the "default" profile is used when no name
// is given.
type File struct {
	Profiles map[string]types.Config `yaml:"profiles"`
}

// DefaultProfile is the profile name used when none is specified
const DefaultProfile = "default"

// Load reads a YAML configuration file and returns the named profile.
// An empty profile name selects the default profile.
func Load(path, profile string) (types.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Config{}, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data, profile)
}

// Parse decodes YAML configuration data and returns the named profile.
func Parse(data []byte, profile string) (types.Config, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return types.Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg, ok := file.Profiles[profile]
	if !ok {
		return types.Config{}, fmt.Errorf("config profile %q not found", profile)
	}

	return cfg, nil
}
