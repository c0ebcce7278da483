//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package transform

import (
	"strings"

	"github.com/arrivedata/i94etl/internal/dataset"
	"github.com/arrivedata/i94etl/internal/warehouse"
)

// excludedAirportTypes are facilities that take no commercial arrivals.
var excludedAirportTypes = map[string]struct{}{
	"closed":        {},
	"heliport":      {},
	"seaplane_base": {},
	"balloonport":   {},
}

// CleanAirports filters the airport dataset down to open US airports
// with a usable municipality and a well-formed region code, and derives
// the 2-letter state from the region. A region code is well-formed only
// when it has exactly 5 characters ("US-NY"); anything else is a known
// data error ("US-U-A") and drops the row.
func CleanAirports(airports []dataset.Airport) []warehouse.DimAirport {
	rows := make([]warehouse.DimAirport, 0, len(airports))
	for _, a := range airports {
		if strings.ToUpper(strings.TrimSpace(a.ISOCountry)) != "US" {
			continue
		}
		if _, excluded := excludedAirportTypes[strings.ToLower(strings.TrimSpace(a.Type))]; excluded {
			continue
		}
		if a.Municipality == nil {
			continue
		}
		region := strings.TrimSpace(a.ISORegion)
		if len(region) != 5 {
			continue
		}
		_, state, found := strings.Cut(region, "-")
		if !found {
			continue
		}

		rows = append(rows, warehouse.DimAirport{
			Ident:        strings.TrimSpace(a.Ident),
			Type:         a.Type,
			Name:         a.Name,
			ElevationFt:  a.ElevationFt,
			State:        state,
			Municipality: strings.ToUpper(strings.TrimSpace(*a.Municipality)),
			IATACode:     a.IATACode,
		})
	}
	return rows
}
