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
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arrivedata/i94etl/internal/logging"
	"github.com/arrivedata/i94etl/pkg/version"
)

const metadataTable = "i94etl_stage_runs"

// createMetadataTableSQL creates the staging audit table if it doesn't exist.
const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS i94etl_stage_runs (
    id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    table_name   TEXT NOT NULL,
    object_key   TEXT NOT NULL,
    row_count    BIGINT NOT NULL,
    tool_version TEXT NOT NULL,
    staged_at    TIMESTAMPTZ NOT NULL
)`

// RecordStageRun appends one audit row for a completed staging load.
func RecordStageRun(ctx context.Context, pool *pgxpool.Pool, table, objectKey string, rows int64) error {
	if _, err := pool.Exec(ctx, createMetadataTableSQL); err != nil {
		return fmt.Errorf("failed to create stage audit table: %w", err)
	}

	_, err := pool.Exec(ctx, `
        INSERT INTO i94etl_stage_runs (table_name, object_key, row_count, tool_version, staged_at)
        VALUES ($1, $2, $3, $4, $5)
    `, table, objectKey, rows, version.Short(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record stage run: %w", err)
	}

	logging.Debug().
		Str("table", table).
		Int64("rows", rows).
		Msg("Recorded stage run")

	return nil
}

// LastStageRun returns the most recent staging time for a table, or the
// zero time when the table has never been staged.
func LastStageRun(ctx context.Context, pool *pgxpool.Pool, table string) (time.Time, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_name = $1
        )
    `, metadataTable).Scan(&exists)
	if err != nil {
		return time.Time{}, err
	}
	if !exists {
		return time.Time{}, nil
	}

	var stagedAt time.Time
	err = pool.QueryRow(ctx, `
        SELECT staged_at FROM i94etl_stage_runs
        WHERE table_name = $1
        ORDER BY staged_at DESC LIMIT 1
    `, table).Scan(&stagedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return stagedAt, nil
}
