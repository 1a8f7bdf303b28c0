// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package epochpickconfig provides configuration parsing and validation for epochpick.
//
// Configuration is stored at ~/.config/epochpick/config.yaml (or $EPOCHPICK_CONFIG_DIR/config.yaml).
// A config.toml in the same directory is read if no config.yaml exists. If neither
// exists, the default configuration is used.
package epochpickconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bufdev/epochpick/internal/epochpick/epochpickconvert"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the name of the YAML configuration file within the config directory.
	ConfigFileName = "config.yaml"
	// TOMLConfigFileName is the name of the TOML configuration file within the config directory.
	TOMLConfigFileName = "config.toml"
)

// configTemplate is the default configuration file template with comments.
// yaml.v3 does not preserve comments, so we hardcode the template string.
const configTemplate = `# The configuration file version.
#
# Required. The only current valid version is v1.
version: v1
# The zone used when no zone is given.
#
# Optional. Defaults to the host zone ($TZ or /etc/localtime), then UTC.
# default_zone: America/New_York
# The zones offered when the host zone database cannot be listed.
#
# Optional. Defaults to a small set of common zones.
# zones:
#   - UTC
#   - America/New_York
#   - Europe/London
# How to resolve times skipped or repeated by a daylight saving change.
#
# Optional. One of compatible, earlier, later, reject. Defaults to compatible.
# disambiguation: compatible
# Clipboard configuration.
#
# Optional. By default the system clipboard utility is detected.
# clipboard:
#   # A command that reads the text to copy on stdin.
#   command: ["wl-copy"]
`

// ExternalConfig is the serializable configuration file structure.
type ExternalConfig struct {
	// Version is the configuration file version (must be "v1").
	Version string `yaml:"version" toml:"version"`
	// DefaultZone is the zone used when no zone is given.
	DefaultZone string `yaml:"default_zone" toml:"default_zone"`
	// Zones is the fallback zone list.
	Zones []string `yaml:"zones" toml:"zones"`
	// Disambiguation is the DST disambiguation policy.
	Disambiguation string `yaml:"disambiguation" toml:"disambiguation"`
	// Clipboard holds the clipboard configuration.
	Clipboard ExternalClipboardConfig `yaml:"clipboard" toml:"clipboard"`
}

// ExternalClipboardConfig holds clipboard configuration.
type ExternalClipboardConfig struct {
	// Command is the command that reads the text to copy on stdin.
	Command []string `yaml:"command" toml:"command"`
}

// Config is the validated runtime configuration derived from the config file.
type Config struct {
	// DefaultZone is the zone used when no zone is given.
	//
	// Empty means the host zone.
	DefaultZone string
	// Zones is the fallback zone list for the zone catalog.
	//
	// Empty means the built-in fallback zones.
	Zones []string
	// Disambiguation is the DST disambiguation policy.
	Disambiguation epochpickconvert.Disambiguation
	// ClipboardCommand is the external clipboard command.
	//
	// Empty means the system clipboard.
	ClipboardCommand []string
}

// NewConfig validates an ExternalConfig and returns a runtime Config.
func NewConfig(externalConfig ExternalConfig) (*Config, error) {
	if externalConfig.Version != "v1" {
		return nil, fmt.Errorf("unsupported config version %q, must be v1", externalConfig.Version)
	}
	if externalConfig.DefaultZone != "" {
		if _, err := epochpickconvert.LoadZone(externalConfig.DefaultZone); err != nil {
			return nil, fmt.Errorf("default_zone: %w", err)
		}
	}
	// Check zones resolve and are not duplicated.
	seenZones := make(map[string]struct{}, len(externalConfig.Zones))
	for _, zone := range externalConfig.Zones {
		if _, err := epochpickconvert.LoadZone(zone); err != nil {
			return nil, fmt.Errorf("zones: %w", err)
		}
		if _, ok := seenZones[zone]; ok {
			return nil, fmt.Errorf("zones: duplicate zone %q", zone)
		}
		seenZones[zone] = struct{}{}
	}
	disambiguation, err := epochpickconvert.ParseDisambiguation(externalConfig.Disambiguation)
	if err != nil {
		return nil, fmt.Errorf("disambiguation: %w", err)
	}
	if command := externalConfig.Clipboard.Command; len(command) > 0 && command[0] == "" {
		return nil, errors.New("clipboard.command: the first element must be the program to run")
	}
	return &Config{
		DefaultZone:      externalConfig.DefaultZone,
		Zones:            slices.Clone(externalConfig.Zones),
		Disambiguation:   disambiguation,
		ClipboardCommand: slices.Clone(externalConfig.Clipboard.Command),
	}, nil
}

// NewDefaultConfig returns the Config used when no configuration file exists.
func NewDefaultConfig() *Config {
	return &Config{
		Disambiguation: epochpickconvert.DisambiguationCompatible,
	}
}

// ConfigFilePath returns the path to the YAML configuration file within the given config directory.
func ConfigFilePath(configDirPath string) string {
	return filepath.Join(configDirPath, ConfigFileName)
}

// TOMLConfigFilePath returns the path to the TOML configuration file within the given config directory.
func TOMLConfigFilePath(configDirPath string) string {
	return filepath.Join(configDirPath, TOMLConfigFileName)
}

// ReadConfig reads and validates the configuration file from the given config directory.
//
// If neither config.yaml nor config.toml exists, the default configuration is returned.
// It is an error for both to exist.
func ReadConfig(configDirPath string) (*Config, error) {
	filePath, err := findConfigFile(configDirPath)
	if err != nil {
		return nil, err
	}
	if filePath == "" {
		return NewDefaultConfig(), nil
	}
	return ReadConfigFile(filePath)
}

// ReadConfigFile reads and validates the configuration file at the given path.
//
// Files ending in .toml are read as TOML, all others as YAML.
func ReadConfigFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var externalConfig ExternalConfig
	if filepath.Ext(filePath) == ".toml" {
		err = unmarshalTOMLStrict(data, &externalConfig)
	} else {
		err = unmarshalYAMLStrict(data, &externalConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
	}
	config, err := NewConfig(externalConfig)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}
	return config, nil
}

// InitConfig creates a new configuration file with a documented template.
// Creates the config directory if it does not exist.
// Returns the path to the created file, or an error if a configuration file already exists.
func InitConfig(configDirPath string) (string, error) {
	existingFilePath, err := findConfigFile(configDirPath)
	if err != nil {
		return "", err
	}
	if existingFilePath != "" {
		return "", fmt.Errorf("configuration file already exists: %s", existingFilePath)
	}
	// Create the config directory if it does not exist.
	if err := os.MkdirAll(configDirPath, 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	filePath := ConfigFilePath(configDirPath)
	if err := os.WriteFile(filePath, []byte(configTemplate), 0o644); err != nil {
		return "", err
	}
	return filePath, nil
}

// ValidateConfigFile reads and validates the configuration file at the given path.
func ValidateConfigFile(filePath string) error {
	_, err := ReadConfigFile(filePath)
	return err
}

// ExistingConfigFilePath returns the path of the configuration file in the
// given config directory, or the YAML path if none exists yet.
func ExistingConfigFilePath(configDirPath string) (string, error) {
	filePath, err := findConfigFile(configDirPath)
	if err != nil {
		return "", err
	}
	if filePath == "" {
		return ConfigFilePath(configDirPath), nil
	}
	return filePath, nil
}

// *** PRIVATE ***

// findConfigFile returns the configuration file in configDirPath, or "" if there is none.
func findConfigFile(configDirPath string) (string, error) {
	var filePaths []string
	for _, filePath := range []string{
		ConfigFilePath(configDirPath),
		TOMLConfigFilePath(configDirPath),
	} {
		if _, err := os.Stat(filePath); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("reading config file: %w", err)
		}
		filePaths = append(filePaths, filePath)
	}
	switch len(filePaths) {
	case 0:
		return "", nil
	case 1:
		return filePaths[0], nil
	default:
		return "", fmt.Errorf("both %s and %s exist, remove one", filePaths[0], filePaths[1])
	}
}

// unmarshalYAMLStrict unmarshals the data as YAML with strict field checking.
// If the data length is 0, this is a no-op.
func unmarshalYAMLStrict(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	yamlDecoder := yaml.NewDecoder(bytes.NewReader(data))
	// Reject unknown fields.
	yamlDecoder.KnownFields(true)
	if err := yamlDecoder.Decode(v); err != nil {
		return fmt.Errorf("could not unmarshal as YAML: %w", err)
	}
	return nil
}

// unmarshalTOMLStrict unmarshals the data as TOML with strict field checking.
func unmarshalTOMLStrict(data []byte, v any) error {
	tomlDecoder := toml.NewDecoder(bytes.NewReader(data))
	tomlDecoder.DisallowUnknownFields()
	if err := tomlDecoder.Decode(v); err != nil {
		var strictMissingError *toml.StrictMissingError
		if errors.As(err, &strictMissingError) {
			return fmt.Errorf("could not unmarshal as TOML: %s", strictMissingError.String())
		}
		return fmt.Errorf("could not unmarshal as TOML: %w", err)
	}
	return nil
}
