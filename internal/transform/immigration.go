//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package transform contains the pure transformation functions that
// reshape the raw datasets into the star schema. Each function takes
// immutable inputs and returns a fresh slice; rows failing a filter or
// join are silently excluded, never repaired.
package transform

import (
	"strings"
	"time"

	"github.com/arrivedata/i94etl/internal/dataset"
	"github.com/arrivedata/i94etl/internal/warehouse"
)

// SASEpoch is the zero date of SAS day offsets.
var SASEpoch = time.Date(1960, time.January, 1, 0, 0, 0, 0, time.UTC)

// modeAir is the I94 mode-of-arrival code for air travel.
const modeAir = 1

// nonUSStates are labels that appear in the port dictionary's state
// column for ports of entry outside the United States.
var nonUSStates = map[string]struct{}{
	"CANADA": {}, "Canada": {}, "NETHERLANDS": {}, "NETH ANTILLES": {},
	"THAILAND": {}, "ETHIOPIA": {}, "PRC": {}, "BERMUDA": {},
	"COLOMBIA": {}, "ARGENTINA": {}, "MEXICO": {}, "BRAZIL": {},
	"URUGUAY": {}, "IRELAND": {}, "GABON": {}, "BAHAMAS": {}, "MX": {},
	"CAYMAN ISLAND": {}, "SEOUL KOREA": {}, "JAPAN": {}, "ROMANIA": {},
	"INDONESIA": {}, "SOUTH AFRICA": {}, "ENGLAND": {}, "KENYA": {},
	"TURK & CAIMAN": {}, "PANAMA": {}, "NEW GUINEA": {}, "ECUADOR": {},
	"ITALY": {}, "EL SALVADOR": {},
}

// FilterPortCodes drops dictionary rows that cannot identify a US port
// of entry: ports with no state and ports whose state column carries a
// foreign-country label.
func FilterPortCodes(ports []dataset.PortCode) []dataset.PortCode {
	kept := make([]dataset.PortCode, 0, len(ports))
	for _, p := range ports {
		if p.State == "" {
			continue
		}
		if _, foreign := nonUSStates[p.State]; foreign {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// visaLabel maps the I94 visa category code to its label.
func visaLabel(code *int64) string {
	if code == nil {
		return "N/A"
	}
	switch *code {
	case 1:
		return "Business"
	case 2:
		return "Pleasure"
	case 3:
		return "Student"
	default:
		return "N/A"
	}
}

// sasDate converts a SAS day offset to a UTC date.
func sasDate(offset int64) time.Time {
	return SASEpoch.AddDate(0, 0, int(offset))
}

// NormalizeImmigration converts raw travel records into fact rows.
//
// The chain mirrors the cleaning rules of the I94 dataset: only air
// arrivals with a reported F/M gender are kept; arrival and departure
// day offsets are decoded against the SAS epoch (departure offsets
// below 1 mean no recorded departure); records whose departure does not
// fall strictly after their arrival are considered corrupt and dropped;
// citizenship, residence and port codes are resolved with inner-join
// semantics against the dictionaries, dropping non-matches; the visa
// category code becomes its label; age is computed against
// referenceYear, the collection year of the dataset.
func NormalizeImmigration(
	records []dataset.TravelRecord,
	countries []dataset.CountryCode,
	ports []dataset.PortCode,
	referenceYear int,
) []warehouse.FactImmigration {
	countryByCode := make(map[int64]string, len(countries))
	for _, c := range countries {
		countryByCode[c.Code] = c.Country
	}
	portByCode := make(map[string]dataset.PortCode)
	for _, p := range FilterPortCodes(ports) {
		portByCode[p.Code] = p
	}

	facts := make([]warehouse.FactImmigration, 0, len(records))
	for _, rec := range records {
		if rec.Mode == nil || *rec.Mode != modeAir {
			continue
		}
		if rec.Gender == nil || (*rec.Gender != "F" && *rec.Gender != "M") {
			continue
		}

		arrival := sasDate(rec.ArrivalOffset)
		var departure *time.Time
		if rec.DepartureOffset != nil && *rec.DepartureOffset >= 1 {
			d := sasDate(*rec.DepartureOffset)
			departure = &d
		}
		if departure != nil && !departure.After(arrival) {
			continue
		}

		if rec.CitizenshipCode == nil || rec.ResidenceCode == nil {
			continue
		}
		citizenship, ok := countryByCode[*rec.CitizenshipCode]
		if !ok {
			continue
		}
		residence, ok := countryByCode[*rec.ResidenceCode]
		if !ok {
			continue
		}
		port, ok := portByCode[rec.PortCode]
		if !ok {
			continue
		}

		var age *int64
		if rec.BirthYear != nil {
			a := int64(referenceYear) - *rec.BirthYear
			age = &a
		}

		facts = append(facts, warehouse.FactImmigration{
			CICID:              rec.CICID,
			CitizenshipCountry: citizenship,
			ResidenceCountry:   residence,
			City:               strings.ToUpper(strings.TrimSpace(port.Location)),
			State:              strings.ToUpper(strings.TrimSpace(port.State)),
			ArrivalDate:        arrival,
			DepartureDate:      departure,
			Age:                age,
			VisaType:           visaLabel(rec.VisaCode),
			DetailedVisaType:   rec.DetailedVisaType,
		})
	}
	return facts
}
