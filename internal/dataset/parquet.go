//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// LoadTravelRecordsParquet reads the raw I94 travel records from a
// Parquet file, the format the full dataset is distributed in. SAS
// numeric columns may surface as either float64 or int64 depending on
// the converter that produced the file; both are accepted.
func LoadTravelRecordsParquet(ctx context.Context, path string) ([]TravelRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening travel records: %w", err)
	}
	defer f.Close()

	pqReader, err := file.NewParquetReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: creating parquet reader: %w", path, err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(
		pqReader, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return nil, fmt.Errorf("%s: creating arrow reader: %w", path, err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: reading table: %w", path, err)
	}
	defer table.Release()

	return travelRecordsFromTable(path, table)
}

func travelRecordsFromTable(path string, table arrow.Table) ([]TravelRecord, error) {
	cicid, err := intColumn(table, "cicid")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	arrdate, err := intColumn(table, "arrdate")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	optInts := map[string][]*int64{}
	for _, name := range []string{"i94cit", "i94res", "depdate", "i94mode", "biryear", "i94visa"} {
		col, err := intColumn(table, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		optInts[name] = col
	}

	strs := map[string][]*string{}
	for _, name := range []string{"i94port", "visatype", "gender", "i94addr"} {
		col, err := stringColumn(table, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		strs[name] = col
	}

	records := make([]TravelRecord, 0, len(cicid))
	for i := range cicid {
		if cicid[i] == nil {
			return nil, fmt.Errorf("%s: row %d: null cicid", path, i)
		}
		if arrdate[i] == nil {
			return nil, fmt.Errorf("%s: row %d: null arrdate", path, i)
		}
		records = append(records, TravelRecord{
			CICID:            *cicid[i],
			CitizenshipCode:  optInts["i94cit"][i],
			ResidenceCode:    optInts["i94res"][i],
			PortCode:         stringOrEmpty(strs["i94port"][i]),
			ArrivalOffset:    *arrdate[i],
			DepartureOffset:  optInts["depdate"][i],
			Mode:             optInts["i94mode"][i],
			BirthYear:        optInts["biryear"][i],
			VisaCode:         optInts["i94visa"][i],
			DetailedVisaType: stringOrEmpty(strs["visatype"][i]),
			Gender:           strs["gender"][i],
			ReportedState:    strs["i94addr"][i],
		})
	}
	return records, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// intColumn flattens a numeric column into nullable int64 values.
func intColumn(table arrow.Table, name string) ([]*int64, error) {
	col, err := tableColumn(table, name)
	if err != nil {
		return nil, err
	}

	out := make([]*int64, 0, table.NumRows())
	for _, chunk := range col.Data().Chunks() {
		switch arr := chunk.(type) {
		case *array.Int64:
			for i := 0; i < arr.Len(); i++ {
				if arr.IsNull(i) {
					out = append(out, nil)
					continue
				}
				v := arr.Value(i)
				out = append(out, &v)
			}
		case *array.Int32:
			for i := 0; i < arr.Len(); i++ {
				if arr.IsNull(i) {
					out = append(out, nil)
					continue
				}
				v := int64(arr.Value(i))
				out = append(out, &v)
			}
		case *array.Float64:
			for i := 0; i < arr.Len(); i++ {
				if arr.IsNull(i) {
					out = append(out, nil)
					continue
				}
				v := int64(arr.Value(i))
				out = append(out, &v)
			}
		default:
			return nil, fmt.Errorf("column %q: unsupported type %s", name, chunk.DataType())
		}
	}
	return out, nil
}

// stringColumn flattens a string column into nullable values. Empty
// strings are treated as nulls, matching the CSV loaders.
func stringColumn(table arrow.Table, name string) ([]*string, error) {
	col, err := tableColumn(table, name)
	if err != nil {
		return nil, err
	}

	out := make([]*string, 0, table.NumRows())
	for _, chunk := range col.Data().Chunks() {
		arr, ok := chunk.(*array.String)
		if !ok {
			return nil, fmt.Errorf("column %q: unsupported type %s", name, chunk.DataType())
		}
		for i := 0; i < arr.Len(); i++ {
			if arr.IsNull(i) || arr.Value(i) == "" {
				out = append(out, nil)
				continue
			}
			v := arr.Value(i)
			out = append(out, &v)
		}
	}
	return out, nil
}

func tableColumn(table arrow.Table, name string) (*arrow.Column, error) {
	indices := table.Schema().FieldIndices(name)
	if len(indices) == 0 {
		return nil, fmt.Errorf("missing column %q", name)
	}
	return table.Column(indices[0]), nil
}
