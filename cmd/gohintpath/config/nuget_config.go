// Package config reads the NuGet.config settings that decide where a solution's
// packages are installed.
package config

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// RepositoryPathKey is the <config> key that relocates the solution package folder.
const RepositoryPathKey = "repositoryPath"

// NuGetConfig represents the parts of a NuGet.config file this tool reads
type NuGetConfig struct {
	XMLName xml.Name `xml:"configuration"`
	Config  *Section `xml:"config"`
}

// Section contains configuration settings
type Section struct {
	Clear *struct{} `xml:"clear"`
	Add   []Item    `xml:"add"`
}

// Item represents a configuration key-value pair
type Item struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

// LoadNuGetConfig loads a NuGet.config file
func LoadNuGetConfig(path string) (*NuGetConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg, err := ParseNuGetConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseNuGetConfig parses NuGet.config XML from a reader
func ParseNuGetConfig(r io.Reader) (*NuGetConfig, error) {
	var config NuGetConfig
	if err := xml.NewDecoder(r).Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config XML: %w", err)
	}
	return &config, nil
}

// GetConfigValue gets a configuration value by key. Keys compare case-insensitively
// and the last definition in the file wins.
func (c *NuGetConfig) GetConfigValue(key string) (string, bool) {
	if c.Config == nil {
		return "", false
	}

	value, found := "", false
	for _, item := range c.Config.Add {
		if strings.EqualFold(item.Key, key) {
			value, found = item.Value, true
		}
	}
	return value, found
}

// Clears reports whether the <config> section contains <clear />, which hides
// the settings of every config file further from the solution.
func (c *NuGetConfig) Clears() bool {
	return c.Config != nil && c.Config.Clear != nil
}
