// Package config reads and writes the izvod.yaml configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/izvod-dev/izvod/internal/bex"
	"github.com/izvod-dev/izvod/internal/classify"
	"github.com/izvod-dev/izvod/internal/minimax"
)

// Filename is the default configuration file name.
const Filename = "izvod.yaml"

// Config is the top-level izvod.yaml configuration.
type Config struct {
	Owner   OwnerConfig   `yaml:"owner"`
	Courier CourierConfig `yaml:"courier"`
	Rules   RulesConfig   `yaml:"rules"`
	Export  ExportConfig  `yaml:"export"`
	Model   ModelConfig   `yaml:"model"`
	Workers int           `yaml:"workers"`
}

// OwnerConfig identifies the statement owner.
type OwnerConfig struct {
	Name string `yaml:"name"`
}

// CourierConfig describes the courier settlement documents.
type CourierConfig struct {
	Tag             string   `yaml:"tag"`
	Marker          string   `yaml:"marker"`
	SkipPhrases     []string `yaml:"skip_phrases,omitempty"`
	ReferencePrefix string   `yaml:"reference_prefix"`
}

// Options maps the courier settings onto specification parsing options.
func (c CourierConfig) Options() bex.Options {
	return bex.Options{
		Marker:          c.Marker,
		SkipPhrases:     c.SkipPhrases,
		ReferencePrefix: c.ReferencePrefix,
	}
}

// RulesConfig holds the direction-classification cascade.
type RulesConfig struct {
	Default classify.Direction `yaml:"default"`
	Cascade []classify.Rule    `yaml:"cascade"`
}

// ExportConfig carries the fixed attributes of the XML import header and
// the fallback currency.
type ExportConfig struct {
	StatementKind string `yaml:"statement_kind"`
	RegistryID    string `yaml:"registry_id"`
	City          string `yaml:"city"`
	AccountType   string `yaml:"account_type"`
	Currency      string `yaml:"currency"`
}

// Meta maps the export settings onto the XML header attributes.
func (e ExportConfig) Meta() minimax.Meta {
	return minimax.Meta{
		StatementKind: e.StatementKind,
		RegistryID:    e.RegistryID,
		City:          e.City,
		AccountType:   e.AccountType,
	}
}

// ModelConfig selects the text-understanding model.
type ModelConfig struct {
	Name       string `yaml:"name"`
	MaxRetries int    `yaml:"max_retries"`
}

// Load reads an izvod.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration for the reference operator setup.
func Default(ownerName string) *Config {
	opts := bex.DefaultOptions()
	return &Config{
		Owner: OwnerConfig{Name: ownerName},
		Courier: CourierConfig{
			Tag:             bex.Tag,
			Marker:          opts.Marker,
			SkipPhrases:     opts.SkipPhrases,
			ReferencePrefix: opts.ReferencePrefix,
		},
		Rules: RulesConfig{
			Default: classify.Incoming,
			Cascade: classify.DefaultRules(),
		},
		Export: ExportConfig{
			StatementKind: "R",
			RegistryID:    "4167520394",
			City:          "11010 BEOGRAD-VOŽDOVAC",
			AccountType:   "Transakcioni depoziti preduzetnika",
			Currency:      "RSD",
		},
		Model: ModelConfig{
			Name:       "",
			MaxRetries: 3,
		},
		Workers: 4,
	}
}
