//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arrivedata/i94etl/internal/logging"
)

// Schema SQL for the I94 star schema. Column types mirror the Parquet
// tables the pipeline produces so that staged loads need no casting.
const createSchemaSQL = `
-- Fact: one row per air arrival event
CREATE TABLE IF NOT EXISTS fact_immigration (
    cicid               BIGINT PRIMARY KEY,
    citizenship_country TEXT NOT NULL,
    residence_country   TEXT NOT NULL,
    city                TEXT NOT NULL,
    state               TEXT NOT NULL,
    arrival_date        DATE NOT NULL,
    departure_date      DATE,
    age                 BIGINT,
    visa_type           TEXT NOT NULL,
    detailed_visa_type  TEXT NOT NULL
);

-- Time dimension: calendar breakdown of every date the fact references
CREATE TABLE IF NOT EXISTS dim_time (
    date        DATE PRIMARY KEY,
    year        INTEGER NOT NULL,
    month       INTEGER NOT NULL,
    day         INTEGER NOT NULL,
    week        INTEGER NOT NULL,
    weekday     INTEGER NOT NULL,
    day_of_year INTEGER NOT NULL
);

-- Airport dimension: open US land airports
CREATE TABLE IF NOT EXISTS dim_airports (
    ident        TEXT PRIMARY KEY,
    type         TEXT NOT NULL,
    name         TEXT NOT NULL,
    elevation_ft DOUBLE PRECISION,
    state        TEXT NOT NULL,
    municipality TEXT NOT NULL,
    iata_code    TEXT
);

-- Demographics dimension: one row per (city, state, race)
CREATE TABLE IF NOT EXISTS dim_demographics (
    city                   TEXT NOT NULL,
    state                  TEXT NOT NULL,
    median_age             DOUBLE PRECISION,
    male_population        BIGINT,
    female_population      BIGINT,
    total_population       BIGINT,
    foreign_born           BIGINT,
    average_household_size DOUBLE PRECISION,
    state_code             TEXT NOT NULL,
    race                   TEXT NOT NULL,
    count                  BIGINT NOT NULL,
    PRIMARY KEY (city, state_code, race)
);

-- Temperature dimension: average US city temperature per month
CREATE TABLE IF NOT EXISTS dim_temperature (
    date                            DATE NOT NULL,
    city                            TEXT NOT NULL,
    average_temperature             DOUBLE PRECISION,
    average_temperature_uncertainty DOUBLE PRECISION,
    PRIMARY KEY (date, city)
);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS fact_immigration;
DROP TABLE IF EXISTS dim_time;
DROP TABLE IF EXISTS dim_airports;
DROP TABLE IF EXISTS dim_demographics;
DROP TABLE IF EXISTS dim_temperature;
DROP TABLE IF EXISTS i94etl_stage_runs;
`

// CreateSchema creates the warehouse tables if they do not exist.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("failed to create warehouse schema: %w", err)
	}
	logging.Info().Msg("Warehouse schema ready")
	return nil
}

// DropSchema drops the warehouse tables and the staging audit table.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, dropSchemaSQL); err != nil {
		return fmt.Errorf("failed to drop warehouse schema: %w", err)
	}
	logging.Info().Msg("Warehouse schema dropped")
	return nil
}
