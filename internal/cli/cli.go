//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for i94etl.
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arrivedata/i94etl/internal/config"
	"github.com/arrivedata/i94etl/internal/logging"
	"github.com/arrivedata/i94etl/internal/warehouse"
	"github.com/arrivedata/i94etl/pkg/version"
)

var (
	// Global flags
	cfgFile  string
	logLevel string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "i94etl",
		Short: "Batch ETL for the I94 immigration warehouse",
		Long: `i94etl reads the raw I94 immigration feed and its companion
datasets (country and port dictionaries, airports, US city demographics,
city temperatures), builds a star schema around arrival events, validates
it, and writes each table as a Parquet file.

Every run is a full refresh: the output directory always reflects exactly
one complete pass over the inputs. A separate 'stage' command copies a
produced table from S3 into a PostgreSQL warehouse.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./i94etl.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(stageCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(tablesCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the warehouse tables a run produces",
	Long: `List the tables of the star schema in the order they are written,
along with the columns the data quality check requires to be non-null.`,
	Run: func(cmd *cobra.Command, args []string) {
		checked := warehouse.CheckedColumns()
		cmd.Println("Warehouse tables:")
		cmd.Println()
		for _, name := range warehouse.TableNames {
			cmd.Printf("  %s\n", name)
			cmd.Printf("    non-null columns: %s\n", strings.Join(checked[name], ", "))
		}
	},
}
