package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NativeTokenConfig fixes the native token's display identity at startup.
// The decimal count is read-only for the lifetime of the process.
type NativeTokenConfig struct {
	Symbol   string `yaml:"symbol"`
	Decimals uint8  `yaml:"decimals"`
}

type NATSConfig struct {
	URL string `yaml:"url"`
	// BlockSubject carries decoded block documents published by the
	// connectivity collaborator.
	BlockSubject string `yaml:"block_subject"`
	// TransferSubject is where extracted transfer arrays are re-published.
	// Empty disables publishing.
	TransferSubject string `yaml:"transfer_subject"`
}

type StorageConfig struct {
	// DataDir holds the badger cursor database.
	DataDir string `yaml:"data_dir"`
}

type OutputConfig struct {
	// Path of the file transfer arrays are written to. Empty prints to
	// stdout.
	Path string `yaml:"path"`
}

type Config struct {
	NativeToken NativeTokenConfig `yaml:"native_token"`
	NATS        NATSConfig        `yaml:"nats"`
	Storage     StorageConfig     `yaml:"storage"`
	Output      OutputConfig      `yaml:"output"`
}

// Load reads a yaml config file and applies defaults for anything unset.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.NativeToken.Symbol == "" {
		c.NativeToken.Symbol = "DOT"
		c.NativeToken.Decimals = 10
	}
	if c.NATS.URL == "" {
		c.NATS.URL = "nats://127.0.0.1:4222"
	}
	if c.NATS.BlockSubject == "" {
		c.NATS.BlockSubject = "xcm.blocks"
	}
	// TransferSubject gets no default: empty means publishing is disabled.
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
}
