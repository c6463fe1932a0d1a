// Package config loads asyncgen tool configuration via Viper.
//
// Precedence, lowest to highest: built-in defaults, an optional
// asyncgen.toml (current directory, then ~/.asyncgen/), environment
// variables prefixed ASYNCGEN_, CLI flags (applied by the commands).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/signalwork/asyncgen/errors"
)

// Config is the asyncgen tool configuration.
type Config struct {
	Generate GenerateConfig `mapstructure:"generate"`
	Parser   ParserConfig   `mapstructure:"parser"`
}

// GenerateConfig holds the compiler defaults the CLI starts from.
type GenerateConfig struct {
	// EnumStyle is "union" or "enum"
	EnumStyle string `mapstructure:"enum_style"`
	// Fallback is "unknown" or "any"
	Fallback string `mapstructure:"fallback"`
	// Export controls the export keyword on declarations
	Export bool `mapstructure:"export"`
}

// ParserConfig bounds spec ingestion.
type ParserConfig struct {
	// MaxSpecBytes is the input size ceiling in bytes
	MaxSpecBytes int64 `mapstructure:"max_spec_bytes"`
}

var (
	globalConfig  *Config
	viperInstance *viper.Viper
)

// Load reads the tool configuration, caching it for the process lifetime.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	var config Config
	if err := initViper().Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// LoadFromFile loads configuration from a specific file path, bypassing the
// search path and cache.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}
	return &config, nil
}

// Reset clears the cached configuration (useful for testing).
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// SetDefaults applies the built-in defaults to a Viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generate.enum_style", "union")
	v.SetDefault("generate.fallback", "unknown")
	v.SetDefault("generate.export", true)
	v.SetDefault("parser.max_spec_bytes", int64(3<<20))
}

func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix("ASYNCGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	v.SetConfigName("asyncgen")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".asyncgen"))
	}
	// A missing config file is fine; defaults and env cover everything.
	_ = v.ReadInConfig()

	viperInstance = v
	return v
}
