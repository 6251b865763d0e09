package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Load loads a configuration data set into the config struct. Missing values are filled with their defaults.
func Load(configData any) (*Config, error) {
	return getConfigSchema().UnserializeType(configData)
}

// LoadYAML parses a YAML configuration file and loads it. An empty file yields the default configuration.
func LoadYAML(data []byte) (*Config, error) {
	var configData any
	if err := yaml.Unmarshal(data, &configData); err != nil {
		return nil, fmt.Errorf("failed to parse configuration YAML (%w)", err)
	}
	if configData == nil {
		configData = map[string]any{}
	}
	return Load(configData)
}

// Default returns the default configuration.
func Default() *Config {
	cfg, err := getConfigSchema().UnserializeType(map[string]any{})
	if err != nil {
		panic(fmt.Errorf("failed to obtain default configuration (%w)", err))
	}
	return cfg
}
