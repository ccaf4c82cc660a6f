// Package config loads cmd/obbench's run parameters, generalizing the
// teacher's hardcoded connStr/batchSize/replayCount constants (main.go)
// into a loadable file, the way a real service in this corpus does it.
// Grounded on Aidin1998-finalex's generic
// services/marketfeeds/common/cfg/config.go `MustLoad[T any]()`, adapted to
// return an error instead of panicking, since a benchmark CLI should be
// able to report a bad config file without a crash.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is cmd/obbench's full set of run parameters.
type Config struct {
	MaxPrice  int64 `mapstructure:"max_price"`
	Capacity  int   `mapstructure:"capacity"`
	Ops       int   `mapstructure:"ops"`
	BatchSize int   `mapstructure:"batch_size"`
	Seed      int64 `mapstructure:"seed"`

	Mix struct {
		Add    float64 `mapstructure:"add"`
		Cancel float64 `mapstructure:"cancel"`
		Match  float64 `mapstructure:"match"`
	} `mapstructure:"mix"`

	// ReplayDSN, when set, enables the optional internal/store persistence
	// path; cmd/obbench never requires it.
	ReplayDSN string `mapstructure:"replay_dsn"`
}

// Default returns the parameters a run uses when no config file is found,
// mirroring spec.md §6's default construction parameters at a scale small
// enough to run quickly from the CLI.
func Default() Config {
	var c Config
	c.MaxPrice = 10_000
	c.Capacity = 100_000
	c.Ops = 200_000
	c.BatchSize = 1_000
	c.Seed = 42
	c.Mix.Add = 0.75
	c.Mix.Cancel = 0.20
	c.Mix.Match = 0.05
	return c
}

// Load reads obbench.yaml from configPath (a directory), falling back to
// Default if no file is present.
func Load(configPath string) (Config, error) {
	v := viper.New()
	v.SetConfigName("obbench")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	cfg := Default()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
