//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package pipeline runs the full-refresh ETL: read inputs, build the
// star schema, validate it, and persist every table as Parquet. A failed
// step aborts the whole run; either all five tables are written or the
// run is considered failed.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arrivedata/i94etl/internal/config"
	"github.com/arrivedata/i94etl/internal/dataset"
	"github.com/arrivedata/i94etl/internal/logging"
	"github.com/arrivedata/i94etl/internal/quality"
	"github.com/arrivedata/i94etl/internal/transform"
	"github.com/arrivedata/i94etl/internal/warehouse"
)

// Result summarizes a completed run.
type Result struct {
	RowCounts map[string]int64
	OutputDir string
	Elapsed   time.Duration
}

// Run executes one full-refresh pipeline run.
func Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	start := time.Now()

	star, err := Build(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mem := memory.NewGoAllocator()
	tables := star.Tables(mem)
	defer func() {
		for _, nt := range tables {
			nt.Table.Release()
		}
	}()

	if err := quality.CheckNulls(tables, warehouse.CheckedColumns()); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	counts := make(map[string]int64, len(tables))
	for _, nt := range tables {
		path := filepath.Join(cfg.Output.Dir, nt.Name+".parquet")
		if err := warehouse.WriteParquet(path, nt.Table, cfg.Output.Compression); err != nil {
			return nil, err
		}
		counts[nt.Name] = nt.Table.NumRows()
		logging.Info().
			Str("table", nt.Name).
			Int64("rows", nt.Table.NumRows()).
			Str("path", path).
			Msg("Wrote table")
	}

	return &Result{
		RowCounts: counts,
		OutputDir: cfg.Output.Dir,
		Elapsed:   time.Since(start),
	}, nil
}

// Build reads the raw inputs and produces the star schema in memory.
// It is an explicit chain of pure transformations; nothing is mutated
// in place between steps.
func Build(ctx context.Context, cfg *config.Config) (*warehouse.Star, error) {
	countries, err := dataset.LoadCountryCodes(cfg.Inputs.Countries)
	if err != nil {
		return nil, err
	}
	ports, err := dataset.LoadPortCodes(cfg.Inputs.Ports)
	if err != nil {
		return nil, err
	}
	logging.Debug().
		Int("countries", len(countries)).
		Int("ports", len(ports)).
		Msg("Loaded reference tables")

	records, err := loadTravelRecords(ctx, cfg)
	if err != nil {
		return nil, err
	}
	airports, err := dataset.LoadAirports(cfg.Inputs.Airports)
	if err != nil {
		return nil, err
	}
	demographics, err := dataset.LoadDemographics(cfg.Inputs.Demographics)
	if err != nil {
		return nil, err
	}
	temperatures, err := dataset.LoadTemperatures(cfg.Inputs.Temperature)
	if err != nil {
		return nil, err
	}
	logging.Info().
		Int("travel_records", len(records)).
		Int("airports", len(airports)).
		Int("demographics", len(demographics)).
		Int("temperature_readings", len(temperatures)).
		Msg("Loaded raw datasets")

	facts := transform.NormalizeImmigration(
		records, countries, ports, cfg.Pipeline.ReferenceYear)
	logging.Info().
		Int("raw", len(records)).
		Int("kept", len(facts)).
		Msg("Normalized immigration records")

	return &warehouse.Star{
		Fact:         facts,
		Time:         transform.BuildTimeDimension(facts),
		Airports:     transform.CleanAirports(airports),
		Demographics: transform.CleanDemographics(demographics),
		Temperature:  transform.CleanTemperature(temperatures),
	}, nil
}

func loadTravelRecords(ctx context.Context, cfg *config.Config) ([]dataset.TravelRecord, error) {
	switch cfg.Inputs.ImmigrationFormat {
	case "parquet":
		return dataset.LoadTravelRecordsParquet(ctx, cfg.Inputs.Immigration)
	case "csv":
		return dataset.LoadTravelRecords(cfg.Inputs.Immigration)
	default:
		return nil, fmt.Errorf("unsupported immigration format: %s", cfg.Inputs.ImmigrationFormat)
	}
}
