// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	ConfigFile   string `yaml:"config_file"`
	TemplatesDir string `yaml:"templates_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "schemagen",
			DisplayName:  "schemagen",
			Description:  "Scaffold Sanity schemas, loaders, hooks, and contexts for a feature",
			ConfigFile:   ".schemagen.yaml",
			TemplatesDir: ".schemagen/templates",
			EnvPrefix:    "SCHEMAGEN",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "schemagen").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// ConfigFile returns the project config file name (e.g., ".schemagen.yaml").
func ConfigFile() string { load(); return defaults.ConfigFile }

// TemplatesDir returns the default project-relative template override directory.
func TemplatesDir() string { load(); return defaults.TemplatesDir }

// EnvPrefix returns the environment variable prefix (e.g., "SCHEMAGEN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("log.level") returns "SCHEMAGEN_LOG_LEVEL".
func EnvVar(suffix string) string {
	load()
	suffix = strings.ReplaceAll(suffix, ".", "_")
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
