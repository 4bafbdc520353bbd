// Package config loads the forwarder core's tunables from a YAML file,
// mirroring the teacher's fw/cmd.run → toolutils.ReadYaml(config,
// configfile) pattern: a single struct literal decoded in place with
// goccy/go-yaml, rather than a flag per knob.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/named-data/ndncore/log"
	"github.com/named-data/ndncore/table"
)

// Config is the top-level document a config file decodes into.
type Config struct {
	CS     CSConfig   `yaml:"cs"`
	PIT    PITConfig  `yaml:"pit"`
	Sign   SignConfig `yaml:"sign"`
	LogLvl string     `yaml:"log_level"`
}

// CSConfig mirrors table.CSConfig, in the units a human writes in YAML.
type CSConfig struct {
	// Capacity bounds the number of cached Data packets; 0 means unbounded.
	Capacity int `yaml:"capacity"`
	// HonorFreshness gates whether FreshnessPeriod is enforced at all.
	HonorFreshness bool `yaml:"honor_freshness"`
	// DefaultFreshness is applied to cached Data that carries no
	// FreshnessPeriod of its own, when HonorFreshness is set. Zero means
	// such Data stays non-fresh from the moment it's cached (spec.md's
	// default CS freshness semantics).
	DefaultFreshness time.Duration `yaml:"default_freshness"`
}

// PITConfig mirrors table.PIT's lifetime ceiling.
type PITConfig struct {
	// MaxLifetime caps the Interest lifetime the PIT will honor; 0 means
	// fall back to table.MaxLifetime (2^22 ms).
	MaxLifetime time.Duration `yaml:"max_lifetime"`
}

// SignConfig names the signing key material handed to cmd/ndncore. Key is
// a path to a PEM-encoded ECDSA private key; HmacKeyHex is a hex-encoded
// shared secret. At most one is meaningful per invocation.
type SignConfig struct {
	EcdsaKeyFile string `yaml:"ecdsa_key_file"`
	HmacKeyHex   string `yaml:"hmac_key_hex"`
}

// Default returns the zero-value configuration a freshly started instance
// uses absent a config file: an unbounded, freshness-ignorant CS and the
// PIT's built-in lifetime ceiling.
func Default() *Config {
	return &Config{
		LogLvl: "INFO",
	}
}

// ReadYaml decodes the YAML document at path into cfg in place, the same
// shape as the teacher's toolutils.ReadYaml(config, configfile) call site:
// callers build a Default() and overwrite it with whatever the file sets,
// rather than requiring every field to be present.
func ReadYaml(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

// Level parses cfg's configured log level, falling back to log.LevelInfo
// and logging a warning if it's invalid rather than failing startup over
// a cosmetic setting.
func (cfg *Config) Level() log.Level {
	if cfg.LogLvl == "" {
		return log.LevelInfo
	}
	lvl, err := log.ParseLevel(cfg.LogLvl)
	if err != nil {
		log.Warn(cfg, "invalid log_level in config, defaulting to INFO", "value", cfg.LogLvl)
		return log.LevelInfo
	}
	return lvl
}

// String names this module for log.* calls.
func (cfg *Config) String() string { return "config.Config" }

// ToTable converts the YAML-facing CSConfig into the table package's
// runtime CSConfig.
func (c CSConfig) ToTable() table.CSConfig {
	return table.CSConfig{
		Capacity:       c.Capacity,
		HonorFreshness: c.HonorFreshness,
	}
}

// ToTable converts the YAML-facing PITConfig into the table package's
// runtime PITConfig.
func (c PITConfig) ToTable() table.PITConfig {
	return table.PITConfig{MaxLifetime: c.MaxLifetime}
}
