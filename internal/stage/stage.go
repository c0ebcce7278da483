//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package stage copies a Parquet table from object storage into a
// warehouse table: render the object key, download the file, decode it,
// optionally truncate the destination, then bulk-load with COPY.
package stage

import (
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/arrivedata/i94etl/internal/config"
	"github.com/arrivedata/i94etl/internal/logging"
	"github.com/arrivedata/i94etl/internal/warehouse"
)

// ObjectFetcher downloads one object from a bucket.
type ObjectFetcher interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

// Database is the slice of pgx needed for staging. Both *pgxpool.Pool
// and pgx.Tx satisfy it.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Stager loads Parquet tables from object storage into the warehouse.
type Stager struct {
	fetcher ObjectFetcher
	db      Database
}

// New creates a Stager over the given object store and warehouse.
func New(fetcher ObjectFetcher, db Database) *Stager {
	return &Stager{fetcher: fetcher, db: db}
}

// Result describes one completed staging load.
type Result struct {
	Key  string
	Rows int64
}

// Run stages one table. The run date parameterizes the object key
// template, so schedulers can re-run past dates.
func (s *Stager) Run(ctx context.Context, cfg config.StageConfig, runDate time.Time) (*Result, error) {
	key, err := RenderKey(cfg.KeyTemplate, cfg.Table, runDate)
	if err != nil {
		return nil, err
	}

	logging.Info().
		Str("bucket", cfg.Bucket).
		Str("key", key).
		Str("table", cfg.Table).
		Msg("Staging table from object storage")

	data, err := s.fetcher.Fetch(ctx, cfg.Bucket, key)
	if err != nil {
		return nil, fmt.Errorf("downloading s3://%s/%s: %w", cfg.Bucket, key, err)
	}

	table, err := warehouse.ReadParquetBytes(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("decoding s3://%s/%s: %w", cfg.Bucket, key, err)
	}
	defer table.Release()

	if cfg.Truncate {
		logging.Info().Str("table", cfg.Table).Msg("Truncating destination table")
		if _, err := s.db.Exec(ctx, fmt.Sprintf("TRUNCATE %s", pgx.Identifier{cfg.Table}.Sanitize())); err != nil {
			return nil, fmt.Errorf("truncating %s: %w", cfg.Table, err)
		}
	}

	columns, rows, err := RowsFromTable(table)
	if err != nil {
		return nil, fmt.Errorf("converting s3://%s/%s: %w", cfg.Bucket, key, err)
	}

	copied, err := s.db.CopyFrom(ctx,
		pgx.Identifier{cfg.Table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return nil, fmt.Errorf("copying into %s: %w", cfg.Table, err)
	}

	logging.Info().
		Str("table", cfg.Table).
		Int64("rows", copied).
		Msg("Staged table")

	return &Result{Key: key, Rows: copied}, nil
}

// keyParams are the values available to the object key template.
type keyParams struct {
	Table string
	Date  string
}

// RenderKey renders the object key template against the table name and
// the run date (formatted YYYY-MM-DD).
func RenderKey(tmpl, table string, runDate time.Time) (string, error) {
	t, err := template.New("key").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parsing key template %q: %w", tmpl, err)
	}

	var sb strings.Builder
	err = t.Execute(&sb, keyParams{
		Table: table,
		Date:  runDate.UTC().Format("2006-01-02"),
	})
	if err != nil {
		return "", fmt.Errorf("rendering key template %q: %w", tmpl, err)
	}
	return sb.String(), nil
}

// RowsFromTable flattens an arrow table into column names and row values
// suitable for pgx CopyFrom. Nulls become nil.
func RowsFromTable(table arrow.Table) ([]string, [][]any, error) {
	schema := table.Schema()
	columns := make([]string, schema.NumFields())
	for i := range columns {
		columns[i] = schema.Field(i).Name
	}

	rows := make([][]any, table.NumRows())
	for i := range rows {
		rows[i] = make([]any, len(columns))
	}

	for c := 0; c < int(table.NumCols()); c++ {
		r := 0
		for _, chunk := range table.Column(c).Data().Chunks() {
			for i := 0; i < chunk.Len(); i++ {
				if chunk.IsNull(i) {
					rows[r][c] = nil
					r++
					continue
				}
				v, err := arrowValue(chunk, i)
				if err != nil {
					return nil, nil, fmt.Errorf("column %q: %w", columns[c], err)
				}
				rows[r][c] = v
				r++
			}
		}
	}
	return columns, rows, nil
}

func arrowValue(arr arrow.Array, i int) (any, error) {
	switch a := arr.(type) {
	case *array.Int64:
		return a.Value(i), nil
	case *array.Int32:
		return a.Value(i), nil
	case *array.Float64:
		return a.Value(i), nil
	case *array.Float32:
		return a.Value(i), nil
	case *array.String:
		return a.Value(i), nil
	case *array.Boolean:
		return a.Value(i), nil
	case *array.Date32:
		return a.Value(i).ToTime(), nil
	default:
		return nil, fmt.Errorf("unsupported arrow type %s", arr.DataType())
	}
}
