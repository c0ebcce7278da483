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
	"sort"
	"strings"
	"time"

	"github.com/arrivedata/i94etl/internal/dataset"
	"github.com/arrivedata/i94etl/internal/warehouse"
)

// temperatureCutoff excludes readings predating commercial air travel.
var temperatureCutoff = time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC)

type tempKey struct {
	date time.Time
	city string
}

type tempAgg struct {
	tempSum float64
	tempN   int
	uncSum  float64
	uncN    int
}

// CleanTemperature filters the station readings to US cities dated after
// 1950-01-01 and averages temperature and uncertainty over all stations
// sharing a (date, city) pair, so the pair is unique in the output.
// Rows are ordered by date, then city.
func CleanTemperature(readings []dataset.TemperatureReading) []warehouse.DimTemperature {
	groups := make(map[tempKey]*tempAgg)
	for _, r := range readings {
		if r.Country != "United States" {
			continue
		}
		if !r.Date.After(temperatureCutoff) {
			continue
		}

		key := tempKey{date: r.Date, city: strings.ToUpper(strings.TrimSpace(r.City))}
		agg, ok := groups[key]
		if !ok {
			agg = &tempAgg{}
			groups[key] = agg
		}
		if r.Temperature != nil {
			agg.tempSum += *r.Temperature
			agg.tempN++
		}
		if r.Uncertainty != nil {
			agg.uncSum += *r.Uncertainty
			agg.uncN++
		}
	}

	rows := make([]warehouse.DimTemperature, 0, len(groups))
	for key, agg := range groups {
		row := warehouse.DimTemperature{Date: key.date, City: key.city}
		if agg.tempN > 0 {
			avg := agg.tempSum / float64(agg.tempN)
			row.AvgTemperature = &avg
		}
		if agg.uncN > 0 {
			avg := agg.uncSum / float64(agg.uncN)
			row.AvgUncertainty = &avg
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].City < rows[j].City
	})
	return rows
}
