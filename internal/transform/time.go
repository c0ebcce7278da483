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
	"time"

	"github.com/arrivedata/i94etl/internal/warehouse"
)

// BuildTimeDimension derives one row per distinct date appearing as an
// arrival or departure in the fact rows, ordered by date. A date with no
// immigration activity gets no row.
func BuildTimeDimension(facts []warehouse.FactImmigration) []warehouse.DimTime {
	seen := make(map[time.Time]struct{})
	for _, f := range facts {
		seen[f.ArrivalDate] = struct{}{}
		if f.DepartureDate != nil {
			seen[*f.DepartureDate] = struct{}{}
		}
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]warehouse.DimTime, 0, len(dates))
	for _, d := range dates {
		_, week := d.ISOWeek()
		rows = append(rows, warehouse.DimTime{
			Date:      d,
			Year:      int32(d.Year()),
			Month:     int32(d.Month()),
			Day:       int32(d.Day()),
			Week:      int32(week),
			Weekday:   int32(d.Weekday()) + 1,
			DayOfYear: int32(d.YearDay()),
		})
	}
	return rows
}
