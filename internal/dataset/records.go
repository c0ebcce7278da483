//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package dataset loads the raw I94 input datasets and the reference
// dictionaries into typed records. Loaders coerce types and represent
// missing values as nil pointers; all filtering beyond that belongs to
// the transform package.
package dataset

import "time"

// TravelRecord is one raw I94 border-crossing record. Field names follow
// the I94 SAS data dictionary. Day offsets count days since the SAS
// epoch, 1960-01-01.
type TravelRecord struct {
	CICID            int64
	CitizenshipCode  *int64
	ResidenceCode    *int64
	PortCode         string
	ArrivalOffset    int64
	DepartureOffset  *int64
	Mode             *int64
	BirthYear        *int64
	VisaCode         *int64
	DetailedVisaType string
	Gender           *string
	ReportedState    *string
}

// CountryCode maps a numeric I94 country code to a country name.
type CountryCode struct {
	Code    int64
	Country string
}

// PortCode maps a 3-letter I94 port code to its location and state.
// State is empty for unreported ports; those rows are filtered out by
// the transform package before use.
type PortCode struct {
	Code     string
	Location string
	State    string
}

// TemperatureReading is one raw station reading from the global land
// temperatures dataset. Temperature fields are nil when the station
// reported no value.
type TemperatureReading struct {
	Date        time.Time
	City        string
	Country     string
	Temperature *float64
	Uncertainty *float64
}

// Airport is one raw row from the airport-codes dataset.
type Airport struct {
	Ident        string
	Type         string
	Name         string
	ElevationFt  *float64
	ISOCountry   string
	ISORegion    string
	Municipality *string
	IATACode     *string
}

// Demographic is one raw row from the US city demographics dataset.
// The key is (City, State, Race).
type Demographic struct {
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
