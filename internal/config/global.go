// Package config reads the user's gleanctl configuration file, which names
// the Glean instances a datasource can be pushed to.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents the user's gleanctl configuration file.
type GlobalConfig struct {
	Instances       []InstanceConfig `yaml:"instances"`
	DefaultInstance string           `yaml:"default_instance"`
}

// InstanceConfig identifies a named Glean instance. APIKeyEnv names an
// environment variable holding the indexing API key; an inline APIKey is
// supported but the indirection keeps secrets out of the config file.
type InstanceConfig struct {
	Name      string `yaml:"name"`
	Instance  string `yaml:"instance"`
	APIKey    string `yaml:"api_key"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// ResolveAPIKey returns the instance's indexing API key, preferring the
// environment indirection over an inline value. Empty when neither is set.
func (i *InstanceConfig) ResolveAPIKey() string {
	if i.APIKeyEnv != "" {
		if v := os.Getenv(i.APIKeyEnv); v != "" {
			return v
		}
	}

	return i.APIKey
}

// DefaultConfigDir returns the default configuration directory, respecting XDG_CONFIG_HOME.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gleanctl")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "gleanctl")
	}

	return filepath.Join(home, ".config", "gleanctl")
}

// LoadGlobalConfig reads the global config from the given path.
// If the file doesn't exist, it returns a zero-value config (no error).
func LoadGlobalConfig(path string) (*GlobalConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}

		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return &cfg, nil
}

// FindInstance looks up an instance by name. If name is empty, it returns
// the default instance. Returns an error if the instance is not found.
func (c *GlobalConfig) FindInstance(name string) (*InstanceConfig, error) {
	if name == "" {
		name = c.DefaultInstance
	}

	if name == "" && len(c.Instances) > 0 {
		return &c.Instances[0], nil
	}

	for i := range c.Instances {
		if c.Instances[i].Name == name {
			return &c.Instances[i], nil
		}
	}

	if name == "" {
		return nil, fmt.Errorf("no instances configured")
	}

	return nil, fmt.Errorf("instance %q not found in config", name)
}
