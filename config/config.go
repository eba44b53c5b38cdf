// Package config loads settings for og from (in increasing order of
// precedence) defaults, an optional config file, OG_* environment variables
// and command-line flags.
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigMaxDepth      = "max-depth"
	ConfigThreads       = "threads"
	ConfigDebug         = "debug"
	ConfigSearchLog     = "search-log"
	ConfigAutoplayGames = "autoplay-games"
	ConfigCPUProfile    = "cpu-profile"
	ConfigFile          = "config"
)

const (
	DefaultMaxDepth      = 4
	DefaultThreads       = 1
	DefaultAutoplayGames = 10
)

type Config struct {
	sync.Mutex
	viper.Viper
}

// DefaultConfig returns a config holding only the defaults. It is mostly
// useful for tests.
func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigMaxDepth, DefaultMaxDepth)
	c.SetDefault(ConfigThreads, DefaultThreads)
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigSearchLog, "")
	c.SetDefault(ConfigAutoplayGames, DefaultAutoplayGames)
	c.SetDefault(ConfigCPUProfile, "")
}

// Load parses args and fills in the config. Arguments that are not flags
// are left in Args for the caller.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("og", pflag.ContinueOnError)
	// flags after the first argument belong to the shell command
	fs.SetInterspersed(false)
	fs.Int(ConfigMaxDepth, DefaultMaxDepth, "how many plies to search ahead")
	fs.Int(ConfigThreads, DefaultThreads, "threads for searching the root position; 1 searches sequentially")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigSearchLog, "", "write a YAML log of every search to this file")
	fs.Int(ConfigAutoplayGames, DefaultAutoplayGames, "number of games for the autoplay command")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigFile, "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c.SetEnvPrefix("og")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	if cfgFile := c.GetString(ConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}
	c.Set("args", fs.Args())
	return c.Validate()
}

// Validate checks that numeric settings make sense.
func (c *Config) Validate() error {
	if d := c.GetInt(ConfigMaxDepth); d < 0 {
		return fmt.Errorf("%s must not be negative, got %d", ConfigMaxDepth, d)
	}
	if t := c.GetInt(ConfigThreads); t < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", ConfigThreads, t)
	}
	if n := c.GetInt(ConfigAutoplayGames); n < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", ConfigAutoplayGames, n)
	}
	return nil
}

// Args returns the positional arguments left over after Load.
func (c *Config) Args() []string {
	return c.GetStringSlice("args")
}

// SanitizedSettings returns the settings that are safe to log.
func (c *Config) SanitizedSettings() map[string]any {
	return map[string]any{
		ConfigMaxDepth:      c.GetInt(ConfigMaxDepth),
		ConfigThreads:       c.GetInt(ConfigThreads),
		ConfigDebug:         c.GetBool(ConfigDebug),
		ConfigSearchLog:     c.GetString(ConfigSearchLog),
		ConfigAutoplayGames: c.GetInt(ConfigAutoplayGames),
	}
}
