//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package main

import (
	"fmt"
	"os"

	"github.com/arrivedata/i94etl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
