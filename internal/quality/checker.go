//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package quality validates the produced tables before persistence.
package quality

import (
	"fmt"

	"github.com/arrivedata/i94etl/internal/logging"
	"github.com/arrivedata/i94etl/internal/warehouse"
)

// ValidationError reports a table column that failed the null check.
type ValidationError struct {
	Table  string
	Column string
	Nulls  int64
}

func (e *ValidationError) Error() string {
	if e.Nulls < 0 {
		return fmt.Sprintf(
			"data quality check failed: table %s has no column %q", e.Table, e.Column)
	}
	return fmt.Sprintf(
		"data quality check failed: found %d NULL values in column %q of table %s",
		e.Nulls, e.Column, e.Table)
}

// CheckNulls verifies that none of the named columns contain nulls.
// Tables are visited in the order given; the first violation aborts the
// check immediately and no further tables are examined. A column absent
// from a table's schema is the same failure as a column holding nulls.
func CheckNulls(tables []warehouse.NamedTable, columns map[string][]string) error {
	for _, nt := range tables {
		logging.Debug().Str("table", nt.Name).Msg("Running data quality check")

		for _, column := range columns[nt.Name] {
			indices := nt.Table.Schema().FieldIndices(column)
			if len(indices) == 0 {
				return &ValidationError{Table: nt.Name, Column: column, Nulls: -1}
			}

			var nulls int64
			for _, chunk := range nt.Table.Column(indices[0]).Data().Chunks() {
				nulls += int64(chunk.NullN())
			}
			if nulls > 0 {
				return &ValidationError{Table: nt.Name, Column: column, Nulls: nulls}
			}
		}

		logging.Info().
			Str("table", nt.Name).
			Int64("rows", nt.Table.NumRows()).
			Msg("Data quality check passed")
	}
	return nil
}
