//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse defines the star-schema output tables and their
// columnar persistence. One fact table records one border crossing per
// row; four dimension tables describe the axes the facts are analyzed
// along (time, airports, demographics, temperature).
package warehouse

import "time"

// Output table names.
const (
	TableFact         = "fact_immigration"
	TableTime         = "dim_time"
	TableAirports     = "dim_airports"
	TableDemographics = "dim_demographics"
	TableTemperature  = "dim_temperature"
)

// TableNames lists the output tables in their canonical order. The
// quality checker visits tables in this order.
var TableNames = []string{
	TableFact,
	TableTime,
	TableAirports,
	TableDemographics,
	TableTemperature,
}

// CheckedColumns maps each table to the columns that must not contain
// nulls after a run. These are the primary-key columns of each table.
func CheckedColumns() map[string][]string {
	return map[string][]string{
		TableFact:         {"cicid"},
		TableTime:         {"date"},
		TableAirports:     {"ident"},
		TableDemographics: {"city", "state_code"},
		TableTemperature:  {"date", "city"},
	}
}

// FactImmigration is one border crossing. Key: CICID.
type FactImmigration struct {
	CICID              int64
	CitizenshipCountry string
	ResidenceCountry   string
	City               string
	State              string
	ArrivalDate        time.Time
	DepartureDate      *time.Time
	Age                *int64
	VisaType           string
	DetailedVisaType   string
}

// DimTime is one calendar date with derived attributes. Key: Date.
// Week is the ISO week number; Weekday is Sunday=1 .. Saturday=7.
type DimTime struct {
	Date      time.Time
	Year      int32
	Month     int32
	Day       int32
	Week      int32
	Weekday   int32
	DayOfYear int32
}

// DimAirport is one retained US airport. Key: Ident.
type DimAirport struct {
	Ident        string
	Type         string
	Name         string
	ElevationFt  *float64
	State        string
	Municipality string
	IATACode     *string
}

// DimDemographic is one census row. Key: (City, StateCode, Race).
type DimDemographic struct {
	City             string
	State            string
	MedianAge        *float64
	MalePopulation   *int64
	FemalePopulation *int64
	TotalPopulation  *int64
	ForeignBorn      *int64
	AvgHouseholdSize *float64
	StateCode        string
	Race             string
	Count            int64
}

// DimTemperature is the averaged station readings for one (date, city)
// pair. Key: (Date, City).
type DimTemperature struct {
	Date           time.Time
	City           string
	AvgTemperature *float64
	AvgUncertainty *float64
}

// Star holds a complete output of one pipeline run.
type Star struct {
	Fact         []FactImmigration
	Time         []DimTime
	Airports     []DimAirport
	Demographics []DimDemographic
	Temperature  []DimTemperature
}
