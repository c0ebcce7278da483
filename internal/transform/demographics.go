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

type demoKey struct {
	city      string
	stateCode string
	race      string
}

// CleanDemographics uppercases and trims the city, state code and race
// columns and passes the numeric fields through unchanged. Uniqueness is
// enforced on (city, state code, race); the first occurrence of a key
// wins.
func CleanDemographics(demos []dataset.Demographic) []warehouse.DimDemographic {
	seen := make(map[demoKey]struct{}, len(demos))
	rows := make([]warehouse.DimDemographic, 0, len(demos))
	for _, d := range demos {
		row := warehouse.DimDemographic{
			City:             strings.ToUpper(strings.TrimSpace(d.City)),
			State:            strings.TrimSpace(d.State),
			MedianAge:        d.MedianAge,
			MalePopulation:   d.MalePopulation,
			FemalePopulation: d.FemalePopulation,
			TotalPopulation:  d.TotalPopulation,
			ForeignBorn:      d.ForeignBorn,
			AvgHouseholdSize: d.AvgHouseholdSize,
			StateCode:        strings.ToUpper(strings.TrimSpace(d.StateCode)),
			Race:             strings.ToUpper(strings.TrimSpace(d.Race)),
			Count:            d.Count,
		}

		key := demoKey{city: row.City, stateCode: row.StateCode, race: row.Race}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, row)
	}
	return rows
}
