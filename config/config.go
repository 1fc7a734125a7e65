// Package config provides configuration management for RedWARP.
// It handles loading, saving, and turning the saved form defaults into
// generation options.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yllada/redwarp/common"
	"github.com/yllada/redwarp/warp"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// Endpoint is the default peer endpoint (host:port).
	Endpoint string `yaml:"endpoint"`
	// MTU is the default interface MTU, kept as text.
	MTU string `yaml:"mtu"`
	// IPv6 keeps IPv6 addresses, routes and resolvers.
	IPv6 bool `yaml:"ipv6"`
	// Obfuscation inserts the AmneziaWG parameter block.
	Obfuscation bool `yaml:"obfuscation"`
	// Randomize draws fresh obfuscation values on every run.
	Randomize bool `yaml:"randomize"`
	// DNS holds the resolver selection per address family.
	DNS DNSConfig `yaml:"dns"`

	// WGCFPath is the wgcf executable, relative to WorkDir unless absolute.
	WGCFPath string `yaml:"wgcf_path"`
	// WorkDir is where wgcf runs and where the profile is written.
	WorkDir string `yaml:"work_dir"`
	// OutputName is the file name of the finished profile.
	OutputName string `yaml:"output_name"`

	// ShowNotifications sends a desktop notification after each run.
	ShowNotifications bool `yaml:"show_notifications"`
	// MinimizeToTray hides the window instead of quitting when it is closed.
	MinimizeToTray bool `yaml:"minimize_to_tray"`
	// Theme sets the color theme: "light", "dark", or "auto".
	Theme string `yaml:"theme"`

	path string
}

// DNSConfig selects a preset per family. Custom text is used when the
// preset is "custom".
type DNSConfig struct {
	IPv4Preset string `yaml:"ipv4_preset"`
	IPv6Preset string `yaml:"ipv6_preset"`
	IPv4Custom string `yaml:"ipv4_custom"`
	IPv6Custom string `yaml:"ipv6_custom"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:    common.DefaultEndpoint,
		MTU:         common.DefaultMTU,
		IPv6:        true,
		Obfuscation: true,
		Randomize:   false,
		DNS: DNSConfig{
			IPv4Preset: warp.PresetOpenDNS,
			IPv6Preset: warp.PresetOpenDNS,
		},
		WGCFPath:          common.DefaultBinaryPath(),
		WorkDir:           ".",
		OutputName:        common.OutputFileName,
		ShowNotifications: true,
		MinimizeToTray:    false,
		Theme:             common.ThemeAuto,
	}
}

// Load loads the configuration from the default config file.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from path, creating it with default
// values when it does not exist.
func LoadFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = configPath
		if err := cfg.Save(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: error opening configuration: %v", common.ErrConfigLoad, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // Strict validation: reject unknown fields

	// Fields missing from the file keep their defaults.
	config := DefaultConfig()
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("%w: error parsing configuration: %v", common.ErrConfigLoad, err)
	}
	config.path = configPath

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid configuration: %v", common.ErrConfigLoad, err)
	}

	return config, nil
}

// validate falls back to defaults for values that cannot be used.
func (c *Config) validate() error {
	defaults := DefaultConfig()

	switch c.Theme {
	case common.ThemeAuto, common.ThemeLight, common.ThemeDark:
	default:
		c.Theme = defaults.Theme
	}

	if !knownPreset(c.DNS.IPv4Preset) {
		c.DNS.IPv4Preset = defaults.DNS.IPv4Preset
	}
	if !knownPreset(c.DNS.IPv6Preset) {
		c.DNS.IPv6Preset = defaults.DNS.IPv6Preset
	}

	if strings.TrimSpace(c.Endpoint) == "" {
		c.Endpoint = defaults.Endpoint
	}
	if strings.TrimSpace(c.MTU) == "" {
		c.MTU = defaults.MTU
	}
	if c.WGCFPath == "" {
		c.WGCFPath = defaults.WGCFPath
	}
	if c.WorkDir == "" {
		c.WorkDir = defaults.WorkDir
	}
	if c.OutputName == "" {
		c.OutputName = defaults.OutputName
	}
	if strings.ContainsAny(c.OutputName, `/\`) {
		return fmt.Errorf("output_name %q must be a plain file name", c.OutputName)
	}
	return nil
}

func knownPreset(id string) bool {
	for _, p := range warp.DNSPresets() {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Save saves the configuration to the file it was loaded from, or to the
// default location.
func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		var err error
		if configPath, err = DefaultPath(); err != nil {
			return err
		}
		c.path = configPath
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("%w: error creating config directory: %v", common.ErrConfigSave, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: error serializing configuration: %v", common.ErrConfigSave, err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("%w: error saving configuration: %v", common.ErrConfigSave, err)
	}

	return nil
}

// Path returns the file the configuration is persisted to.
func (c *Config) Path() string {
	return c.path
}

// Options builds generation options from the saved defaults.
func (c *Config) Options() (warp.Options, error) {
	v4, err := warp.ResolveDNS(warp.FamilyIPv4, c.DNS.IPv4Preset, c.DNS.IPv4Custom)
	if err != nil {
		return warp.Options{}, err
	}
	v6, err := warp.ResolveDNS(warp.FamilyIPv6, c.DNS.IPv6Preset, c.DNS.IPv6Custom)
	if err != nil {
		return warp.Options{}, err
	}

	return warp.Options{
		Endpoint:             c.Endpoint,
		MTU:                  c.MTU,
		IPv6:                 c.IPv6,
		Obfuscation:          c.Obfuscation,
		RandomizeObfuscation: c.Randomize,
		DNSv4:                v4,
		DNSv6:                v6,
	}, nil
}

// Paths returns the wgcf and output locations for a run.
func (c *Config) Paths() warp.Paths {
	return warp.Paths{
		WorkDir: c.WorkDir,
		Binary:  c.WGCFPath,
		Output:  c.OutputName,
	}
}

// DefaultPath returns ~/.config/redwarp/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: error getting home directory: %v", common.ErrConfigLoad, err)
	}

	return filepath.Join(homeDir, ".config", common.ConfigDirName, common.ConfigFileName), nil
}
