//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// compressionCodec maps a config compression name to a parquet codec.
// Unknown names fall back to snappy.
func compressionCodec(name string) compress.Compression {
	switch name {
	case "snappy":
		return compress.Codecs.Snappy
	case "gzip":
		return compress.Codecs.Gzip
	case "zstd":
		return compress.Codecs.Zstd
	case "uncompressed":
		return compress.Codecs.Uncompressed
	default:
		return compress.Codecs.Snappy
	}
}

// WriteParquet writes an arrow table to a Parquet file, replacing any
// existing file (full refresh).
func WriteParquet(path string, table arrow.Table, compression string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	props := parquet.NewWriterProperties(
		parquet.WithCompression(compressionCodec(compression)),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(
		pqarrow.WithAllocator(memory.NewGoAllocator()),
	)

	// The writer owns f from here on; Close closes the underlying file.
	writer, err := pqarrow.NewFileWriter(table.Schema(), f, props, arrowProps)
	if err != nil {
		f.Close()
		return fmt.Errorf("creating parquet writer for %s: %w", path, err)
	}

	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		writer.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing parquet writer for %s: %w", path, err)
	}
	return nil
}

// ReadParquet reads a Parquet file into an arrow table. The caller must
// Release the table.
func ReadParquet(ctx context.Context, path string) (arrow.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// The reader owns f from here on; Close closes the underlying file.
	pqReader, err := file.NewParquetReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating parquet reader for %s: %w", path, err)
	}
	defer pqReader.Close()

	return readTable(ctx, pqReader, path)
}

// ReadParquetBytes reads an in-memory Parquet file into an arrow table.
// The caller must Release the table.
func ReadParquetBytes(ctx context.Context, data []byte) (arrow.Table, error) {
	pqReader, err := file.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating parquet reader: %w", err)
	}
	defer pqReader.Close()

	return readTable(ctx, pqReader, "<memory>")
}

func readTable(ctx context.Context, pqReader *file.Reader, name string) (arrow.Table, error) {
	arrowReader, err := pqarrow.NewFileReader(
		pqReader, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return nil, fmt.Errorf("creating arrow reader for %s: %w", name, err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading table from %s: %w", name, err)
	}
	return table, nil
}
