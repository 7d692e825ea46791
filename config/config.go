// Package config loads engine limits and CLI defaults from flags,
// environment variables, and an optional config file, in that order
// of precedence.
//
// The discovery/precedence scheme (env override, named config file in
// cwd/home/etc, dash-to-underscore env key folding) is grounded on
// the teacher's nanostore/cmd viper_cli.go; the yaml default-file shape
// is new (this repo has no SQL store to configure).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// Config is the resolved set of runtime settings for the engine and CLI.
type Config struct {
	Limits       ucm.Limits
	LogLevel     string `mapstructure:"log_level"`
	LogFormat    string `mapstructure:"log_format"`
	TxTimeoutSec int    `mapstructure:"tx_timeout_seconds"`
	SnapshotCap  int    `mapstructure:"snapshot_capacity"`
}

// Default returns generous settings suitable for interactive use.
func Default() Config {
	return Config{
		Limits:       ucm.DefaultLimits(),
		LogLevel:     "info",
		LogFormat:    "console",
		TxTimeoutSec: 30,
		SnapshotCap:  20,
	}
}

// Load resolves configuration from (in ascending precedence) a config
// file, environment variables prefixed UCP_, and already-bound flags.
func Load(flags *pflag.FlagSet, configFile string) (Config, error) {
	v := viper.New()
	cfg := Default()
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)
	v.SetDefault("tx_timeout_seconds", cfg.TxTimeoutSec)
	v.SetDefault("snapshot_capacity", cfg.SnapshotCap)
	v.SetDefault("max_blocks", cfg.Limits.MaxBlocks)
	v.SetDefault("max_block_size", cfg.Limits.MaxBlockSize)
	v.SetDefault("max_depth", cfg.Limits.MaxDepth)
	v.SetDefault("max_edges_per_block", cfg.Limits.MaxEdgesPerBlock)
	v.SetDefault("max_document_size", cfg.Limits.MaxDocumentSize)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("ucp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ucp")
		v.AddConfigPath("/etc/ucp")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && configFile != "" {
			return Config{}, fmt.Errorf("config: reading %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix("UCP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("config: binding flags: %w", err)
		}
	}

	cfg.LogLevel = v.GetString("log_level")
	cfg.LogFormat = v.GetString("log_format")
	cfg.TxTimeoutSec = v.GetInt("tx_timeout_seconds")
	cfg.SnapshotCap = v.GetInt("snapshot_capacity")
	cfg.Limits = ucm.Limits{
		MaxBlocks:        v.GetInt("max_blocks"),
		MaxBlockSize:     v.GetInt("max_block_size"),
		MaxDepth:         v.GetInt("max_depth"),
		MaxEdgesPerBlock: v.GetInt("max_edges_per_block"),
		MaxDocumentSize:  v.GetInt("max_document_size"),
	}
	return cfg, nil
}
