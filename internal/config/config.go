//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for i94etl.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for i94etl.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Inputs holds the locations of the raw datasets.
	Inputs InputsConfig `mapstructure:"inputs"`

	// Output holds configuration for the persisted star schema.
	Output OutputConfig `mapstructure:"output"`

	// Pipeline holds transformation parameters.
	Pipeline PipelineConfig `mapstructure:"pipeline"`

	// Stage holds configuration for the stage subcommand.
	Stage StageConfig `mapstructure:"stage"`
}

// InputsConfig holds the paths of the raw input datasets.
type InputsConfig struct {
	// Immigration is the path of the I94 travel-record dataset.
	Immigration string `mapstructure:"immigration"`

	// ImmigrationFormat is the format of the travel-record dataset.
	// Options: csv, parquet
	ImmigrationFormat string `mapstructure:"immigration_format"`

	// Countries is the path of the country-code dictionary CSV.
	Countries string `mapstructure:"countries"`

	// Ports is the path of the I94 port-code dictionary CSV.
	Ports string `mapstructure:"ports"`

	// Airports is the path of the airport-codes CSV.
	Airports string `mapstructure:"airports"`

	// Demographics is the path of the US city demographics CSV
	// (semicolon-delimited).
	Demographics string `mapstructure:"demographics"`

	// Temperature is the path of the global land temperatures CSV.
	Temperature string `mapstructure:"temperature"`
}

// OutputConfig holds configuration for Parquet persistence.
type OutputConfig struct {
	// Dir is the directory the output tables are written to.
	Dir string `mapstructure:"dir"`

	// Compression is the Parquet compression codec.
	// Options: snappy, gzip, zstd, uncompressed
	Compression string `mapstructure:"compression"`
}

// PipelineConfig holds transformation parameters.
type PipelineConfig struct {
	// ReferenceYear is the year traveler ages are computed against.
	// The I94 dataset was collected in 2016, hence the default.
	ReferenceYear int `mapstructure:"reference_year"`
}

// StageConfig holds configuration for staging a table from object
// storage into the warehouse.
type StageConfig struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// Table is the destination warehouse table.
	Table string `mapstructure:"table"`

	// Bucket is the S3 bucket holding the Parquet files.
	Bucket string `mapstructure:"bucket"`

	// Region is the AWS region of the bucket.
	Region string `mapstructure:"region"`

	// Endpoint overrides the S3 endpoint (for S3-compatible stores).
	Endpoint string `mapstructure:"endpoint"`

	// KeyTemplate renders the object key from the table name and run
	// date, e.g. "i94/{{.Date}}/{{.Table}}.parquet".
	KeyTemplate string `mapstructure:"key_template"`

	// Truncate empties the destination table before loading.
	Truncate bool `mapstructure:"truncate"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Inputs: InputsConfig{
			ImmigrationFormat: "csv",
		},
		Output: OutputConfig{
			Dir:         "warehouse",
			Compression: "snappy",
		},
		Pipeline: PipelineConfig{
			ReferenceYear: 2016,
		},
		Stage: StageConfig{
			Region:      "us-east-1",
			KeyTemplate: "i94/{{.Date}}/{{.Table}}.parquet",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./i94etl.yaml
// 3. ~/.config/i94etl/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("i94etl")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "i94etl"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	inputs := map[string]string{
		"inputs.immigration":  c.Inputs.Immigration,
		"inputs.countries":    c.Inputs.Countries,
		"inputs.ports":        c.Inputs.Ports,
		"inputs.airports":     c.Inputs.Airports,
		"inputs.demographics": c.Inputs.Demographics,
		"inputs.temperature":  c.Inputs.Temperature,
	}
	for _, key := range []string{
		"inputs.immigration", "inputs.countries", "inputs.ports",
		"inputs.airports", "inputs.demographics", "inputs.temperature",
	} {
		if inputs[key] == "" {
			return fmt.Errorf("%s is required", key)
		}
	}
	if c.Inputs.ImmigrationFormat != "csv" && c.Inputs.ImmigrationFormat != "parquet" {
		return fmt.Errorf("inputs.immigration_format must be 'csv' or 'parquet'")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	switch c.Output.Compression {
	case "snappy", "gzip", "zstd", "uncompressed":
	default:
		return fmt.Errorf(
			"output.compression must be one of snappy, gzip, zstd, uncompressed")
	}
	if c.Pipeline.ReferenceYear < 1900 {
		return fmt.Errorf("pipeline.reference_year must be a four-digit year")
	}
	return nil
}

// ValidateStage checks configuration required for the stage command.
func (c *Config) ValidateStage() error {
	if c.Stage.Connection == "" {
		return fmt.Errorf("stage.connection is required")
	}
	if c.Stage.Table == "" {
		return fmt.Errorf("stage.table is required")
	}
	if c.Stage.Bucket == "" {
		return fmt.Errorf("stage.bucket is required")
	}
	if c.Stage.KeyTemplate == "" {
		return fmt.Errorf("stage.key_template is required")
	}
	return nil
}

// ValidateSchema checks configuration required for the schema command,
// which only needs a warehouse connection.
func (c *Config) ValidateSchema() error {
	if c.Stage.Connection == "" {
		return fmt.Errorf("stage.connection is required")
	}
	return nil
}
