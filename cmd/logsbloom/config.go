package main

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"
)

// Config holds every setting of the tool. TOML keys match the field names.
type Config struct {
	Log    LogConfig
	Verify VerifyConfig
	Cache  CacheConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type VerifyConfig struct {
	Input   string
	Output  string
	Summary string
	Workers int
}

type CacheConfig struct {
	Size   int
	Shards uint64
}

func defaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  LogLevelFlag.Value,
			Format: LogFormatFlag.Value,
		},
		Verify: VerifyConfig{
			Input:   InputFlag.Value,
			Output:  OutputFlag.Value,
			Workers: runtime.NumCPU(),
		},
		Cache: CacheConfig{
			Size: CacheSizeFlag.Value,
		},
	}
}

// buildConfig layers defaults, the config file and explicitly set flags, in
// that order, and validates the result.
func buildConfig(ctx *cli.Context) (*Config, error) {
	cfg := defaultConfig()
	if err := configFileOverride(cfg, ctx); err != nil {
		return nil, err
	}
	cmdLineOverride(cfg, ctx)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configFileOverride decodes the --config file into cfg. Keys absent from the
// file keep their current value; unknown keys are an error.
func configFileOverride(cfg *Config, ctx *cli.Context) error {
	if !ctx.IsSet(ConfigFileFlag.Name) {
		return nil
	}
	path := ctx.String(ConfigFileFlag.Name)
	if path == "" {
		return errors.New("config file flag provided with empty path")
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func cmdLineOverride(cfg *Config, ctx *cli.Context) {
	if ctx.IsSet(LogLevelFlag.Name) {
		cfg.Log.Level = ctx.String(LogLevelFlag.Name)
	}
	if ctx.IsSet(LogFormatFlag.Name) {
		cfg.Log.Format = ctx.String(LogFormatFlag.Name)
	}
	if ctx.IsSet(InputFlag.Name) {
		cfg.Verify.Input = ctx.String(InputFlag.Name)
	}
	if ctx.IsSet(OutputFlag.Name) {
		cfg.Verify.Output = ctx.String(OutputFlag.Name)
	}
	if ctx.IsSet(SummaryFlag.Name) {
		cfg.Verify.Summary = ctx.String(SummaryFlag.Name)
	}
	if ctx.IsSet(WorkersFlag.Name) {
		cfg.Verify.Workers = ctx.Int(WorkersFlag.Name)
	}
	if ctx.IsSet(CacheSizeFlag.Name) {
		cfg.Cache.Size = ctx.Int(CacheSizeFlag.Name)
	}
	if ctx.IsSet(CacheShardsFlag.Name) {
		cfg.Cache.Shards = ctx.Uint64(CacheShardsFlag.Name)
	}

	// Positional <input> <output> override the flags
	if ctx.NArg() == 2 {
		cfg.Verify.Input = ctx.Args().Get(0)
		cfg.Verify.Output = ctx.Args().Get(1)
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Verify.Workers < 1 {
		return fmt.Errorf("invalid worker count %d", cfg.Verify.Workers)
	}
	if cfg.Cache.Size < 0 {
		return fmt.Errorf("invalid digest cache size %d", cfg.Cache.Size)
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return err
	}
	switch cfg.Log.Format {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", cfg.Log.Format)
	}
	return nil
}
