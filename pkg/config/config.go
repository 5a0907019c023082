package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/assetd/config"
	ConfigFileName    = "assetd.yml"
)

// AssetdConfig holds all assetd configuration settings
type AssetdConfig struct {
	// BindAddress is the address the server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the port the server listens on
	Port string `yaml:"port" json:"port"`

	// TokenTTL is the lifetime of issued login tokens in seconds
	TokenTTL int `yaml:"token_ttl" json:"token_ttl"`

	// ConsolidationMapFile is the path to the module consolidation map
	ConsolidationMapFile string `yaml:"consolidation_map_file" json:"consolidation_map_file"`

	// WatchConsolidationMap reloads the consolidation map on file change
	WatchConsolidationMap bool `yaml:"watch_consolidation_map" json:"watch_consolidation_map"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *AssetdConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *AssetdConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *AssetdConfig {
	return &AssetdConfig{
		BindAddress:           "0.0.0.0",
		Port:                  "8000",
		TokenTTL:              480,
		ConsolidationMapFile:  "",
		WatchConsolidationMap: false,
		sources:               make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*AssetdConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("ASSETD_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig AssetdConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"bind_address", "port", "token_ttl",
		"consolidation_map_file", "watch_consolidation_map",
	}
}

func (c *AssetdConfig) applyFileConfig(file *AssetdConfig) {
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != "" {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.TokenTTL != 0 {
		c.TokenTTL = file.TokenTTL
		c.sources["token_ttl"] = "file"
	}
	if file.ConsolidationMapFile != "" {
		c.ConsolidationMapFile = file.ConsolidationMapFile
		c.sources["consolidation_map_file"] = "file"
	}
	if file.WatchConsolidationMap {
		c.WatchConsolidationMap = true
		c.sources["watch_consolidation_map"] = "file"
	}
}

func (c *AssetdConfig) applyEnvConfig() {
	if val := os.Getenv("ASSETD_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("ASSETD_PORT"); val != "" {
		c.Port = val
		c.sources["port"] = "environment"
	}
	if val := os.Getenv("ASSETD_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.TokenTTL = i
			c.sources["token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("ASSETD_CONSOLIDATION_MAP_FILE"); val != "" {
		c.ConsolidationMapFile = val
		c.sources["consolidation_map_file"] = "environment"
	}
	if val := os.Getenv("ASSETD_WATCH_CONSOLIDATION_MAP"); val != "" {
		c.WatchConsolidationMap = val == "true" || val == "1"
		c.sources["watch_consolidation_map"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *AssetdConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *AssetdConfig) Source(name string) string {
	if src, ok := c.sources[name]; ok {
		return src
	}
	return "default"
}

// Attributes returns all configuration attributes with their sources
func (c *AssetdConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: c.Port, Source: c.Source("port")},
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTL), Source: c.Source("token_ttl")},
		{Name: "consolidation_map_file", Value: c.ConsolidationMapFile, Source: c.Source("consolidation_map_file")},
		{Name: "watch_consolidation_map", Value: strconv.FormatBool(c.WatchConsolidationMap), Source: c.Source("watch_consolidation_map")},
	}
}

// TokenLifetime returns the login token TTL as a duration
func (c *AssetdConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}
