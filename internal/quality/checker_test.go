//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package quality

import (
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arrivedata/i94etl/internal/warehouse"
)

// testTable builds a single-column arrow table. A nil entry in values
// becomes a null.
func testTable(t *testing.T, column string, values []*int64) arrow.Table {
	t.Helper()
	mem := memory.NewGoAllocator()

	b := array.NewInt64Builder(mem)
	defer b.Release()
	for _, v := range values {
		if v == nil {
			b.AppendNull()
		} else {
			b.Append(*v)
		}
	}
	arr := b.NewArray()
	defer arr.Release()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: column, Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	}, nil)
	chunked := arrow.NewChunked(arr.DataType(), []arrow.Array{arr})
	defer chunked.Release()
	col := arrow.NewColumn(schema.Field(0), chunked)
	defer col.Release()
	return array.NewTable(schema, []arrow.Column{*col}, int64(len(values)))
}

func ptr(v int64) *int64 { return &v }

func TestCheckNullsPasses(t *testing.T) {
	tbl := testTable(t, "cicid", []*int64{ptr(1), ptr(2), ptr(3)})
	defer tbl.Release()

	tables := []warehouse.NamedTable{{Name: "fact_immigration", Table: tbl}}
	columns := map[string][]string{"fact_immigration": {"cicid"}}

	if err := CheckNulls(tables, columns); err != nil {
		t.Fatalf("CheckNulls: %v", err)
	}
}

func TestCheckNullsFindsNulls(t *testing.T) {
	tbl := testTable(t, "cicid", []*int64{ptr(1), nil, nil})
	defer tbl.Release()

	tables := []warehouse.NamedTable{{Name: "fact_immigration", Table: tbl}}
	columns := map[string][]string{"fact_immigration": {"cicid"}}

	err := CheckNulls(tables, columns)
	if err == nil {
		t.Fatal("expected an error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Table != "fact_immigration" || verr.Column != "cicid" || verr.Nulls != 2 {
		t.Errorf("got %+v, want fact_immigration/cicid/2", verr)
	}
}

func TestCheckNullsMissingColumn(t *testing.T) {
	tbl := testTable(t, "cicid", []*int64{ptr(1)})
	defer tbl.Release()

	tables := []warehouse.NamedTable{{Name: "fact_immigration", Table: tbl}}
	columns := map[string][]string{"fact_immigration": {"missing"}}

	err := CheckNulls(tables, columns)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Nulls != -1 {
		t.Errorf("Nulls = %d, want -1 for a missing column", verr.Nulls)
	}
}

func TestCheckNullsFailsFast(t *testing.T) {
	bad := testTable(t, "date", []*int64{nil})
	defer bad.Release()
	alsoBad := testTable(t, "ident", []*int64{nil})
	defer alsoBad.Release()

	tables := []warehouse.NamedTable{
		{Name: "dim_time", Table: bad},
		{Name: "dim_airports", Table: alsoBad},
	}
	columns := map[string][]string{
		"dim_time":     {"date"},
		"dim_airports": {"ident"},
	}

	err := CheckNulls(tables, columns)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	// The first table in order reports; the second is never reached.
	if verr.Table != "dim_time" {
		t.Errorf("Table = %q, want dim_time", verr.Table)
	}
}

func TestCheckNullsUncheckedTable(t *testing.T) {
	tbl := testTable(t, "anything", []*int64{nil, nil})
	defer tbl.Release()

	tables := []warehouse.NamedTable{{Name: "scratch", Table: tbl}}
	if err := CheckNulls(tables, map[string][]string{}); err != nil {
		t.Fatalf("tables without checked columns must pass, got %v", err)
	}
}
