// Package config loads the configuration of the sqlcell command.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "SQLCELL_"

// Config is the configuration of the sqlcell command.
type Config struct {
	Log  LogConfig  `mapstructure:"log"`
	Dump DumpConfig `mapstructure:"dump"`
}

// LogConfig configures internal/logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // DEBUG, INFO, WARN, ERROR
	Format string `mapstructure:"format"` // text, json
}

// DumpConfig holds the defaults of commands that write row sets.
type DumpConfig struct {
	Format      string `mapstructure:"format"`
	Compression string `mapstructure:"compression"`
	Dialect     string `mapstructure:"dialect"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Log:  LogConfig{Level: "WARN", Format: "text"},
		Dump: DumpConfig{Format: "csv", Compression: "none", Dialect: "generic"},
	}
}

var defaults = map[string]string{
	"log.level":        Default().Log.Level,
	"log.format":       Default().Log.Format,
	"dump.format":      Default().Dump.Format,
	"dump.compression": Default().Dump.Compression,
	"dump.dialect":     Default().Dump.Dialect,
}

// Load reads the configuration from, in increasing priority: the defaults,
// the config file at path (skipped when empty), environment variables with
// prefix and the flags changed on the command line.
//
// SQLCELL_LOG_LEVEL sets log.level, and so does the flag --log-level.
func Load(prefix, path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// viper's AutomaticEnv does not feed Unmarshal, so copy the variables in.
	prefixUpper := strings.ToUpper(prefix)
	for _, envStr := range os.Environ() {
		key, value, ok := strings.Cut(envStr, "=")
		if !ok || !strings.HasPrefix(key, prefixUpper) {
			continue
		}
		propKey := strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(key, prefixUpper), "_", "."))
		propKey = strings.TrimPrefix(propKey, ".")
		if _, known := defaults[propKey]; known {
			v.Set(propKey, value)
		}
	}

	if flags != nil {
		flags.VisitAll(func(f *pflag.Flag) {
			propKey := strings.ReplaceAll(f.Name, "-", ".")
			if _, known := defaults[propKey]; known && f.Changed {
				v.Set(propKey, f.Value.String())
			}
		})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
