package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/schemagen/schemagen/internal/branding"
)

const fileType = "yaml"

// Config keys.
const (
	KeyFeaturesDir  = "features_dir"
	KeyTemplatesDir = "templates_dir"
	KeyDedupe       = "dedupe"
	KeyLogLevel     = "log.level"
	KeyLogFile      = "log.file"
	KeyNoColor      = "no_color"
	KeyRequires     = "requires"
)

// Key describes one configuration key.
type Key struct {
	Name    string
	Default any
	Help    string
}

// Keys lists every supported key.
func Keys() []Key {
	return []Key{
		{KeyFeaturesDir, "features", "directory holding feature folders"},
		{KeyTemplatesDir, branding.TemplatesDir(), "template override directory"},
		{KeyDedupe, true, "skip insertions that are already present"},
		{KeyLogLevel, "warn", "log level: debug, info, warn, error"},
		{KeyLogFile, "", "also write JSON logs to this file"},
		{KeyNoColor, false, "disable colored output"},
		{KeyRequires, "", "semver constraint on the CLI version"},
	}
}

func lookupKey(name string) (Key, bool) {
	for _, k := range Keys() {
		if k.Name == name {
			return k, true
		}
	}
	return Key{}, false
}

// ErrUnknownKey is returned for keys not listed in Keys.
var ErrUnknownKey = errors.New("unknown config key")

// Config is the resolved configuration of one project.
type Config struct {
	Root string
	File string
	// Found reports whether File existed when the config was loaded.
	Found bool

	v *viper.Viper
}

// FilePath returns the default config file of the project at root.
func FilePath(root string) string {
	return filepath.Join(root, branding.ConfigFile())
}

// Load resolves the configuration of the project at root. file overrides the
// default config file location; a missing file is not an error.
func Load(root, file string) (*Config, error) {
	if file == "" {
		file = FilePath(root)
	}

	if err := loadDotEnv(filepath.Join(root, ".env")); err != nil {
		return nil, err
	}

	v := newViper(file)
	c := &Config{Root: root, File: file, v: v}

	if _, err := os.Stat(file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c.Found = true

	result, err := ValidateFile(file)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &InvalidError{File: file, Issues: result.Issues}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", file, err)
	}
	return c, nil
}

func newViper(file string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range Keys() {
		v.SetDefault(k.Name, k.Default)
	}
	return v
}

// loadDotEnv exports the variables of path without overriding the
// environment. A missing file is ignored.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Viper exposes the underlying instance for flag binding.
func (c *Config) Viper() *viper.Viper { return c.v }

func (c *Config) FeaturesDir() string  { return c.v.GetString(KeyFeaturesDir) }
func (c *Config) TemplatesDir() string { return c.v.GetString(KeyTemplatesDir) }
func (c *Config) Dedupe() bool         { return c.v.GetBool(KeyDedupe) }
func (c *Config) LogLevel() string     { return c.v.GetString(KeyLogLevel) }
func (c *Config) LogFile() string      { return c.v.GetString(KeyLogFile) }
func (c *Config) NoColor() bool        { return c.v.GetBool(KeyNoColor) }
func (c *Config) Requires() string     { return c.v.GetString(KeyRequires) }

// Get returns the resolved value of key as a string.
func (c *Config) Get(key string) (string, error) {
	if _, ok := lookupKey(key); !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	return c.v.GetString(key), nil
}

// Settings returns every key with its resolved value, sorted by key.
func (c *Config) Settings() []Setting {
	keys := Keys()
	out := make([]Setting, 0, len(keys))
	for _, k := range keys {
		out = append(out, Setting{Key: k.Name, Value: c.v.GetString(k.Name)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Setting is a resolved key/value pair.
type Setting struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Set writes key to the config file, creating it if needed. Only the file is
// consulted, so values coming from the environment are never persisted.
func Set(file, key, value string) error {
	k, ok := lookupKey(key)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}

	var typed any = value
	if _, isBool := k.Default.(bool); isBool {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		typed = b
	}

	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType(fileType)
	if _, err := os.Stat(file); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", file, err)
		}
	}
	v.Set(key, typed)

	data, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	result, err := Validate(data)
	if err != nil {
		return err
	}
	if !result.Valid {
		return &InvalidError{File: file, Issues: result.Issues}
	}

	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := v.WriteConfigAs(file); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
