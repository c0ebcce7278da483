//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen generates synthetic input datasets shaped like the
// real I94 feeds, so the pipeline can be exercised end to end without
// access to the restricted source data.
package datagen

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/arrivedata/i94etl/internal/dataset"
)

// Faker generates fake I94 records using gofakeit.
type Faker struct {
	faker *gofakeit.Faker

	countries []dataset.CountryCode
	ports     []dataset.PortCode
}

// NewFaker creates a new Faker with a random seed.
func NewFaker() *Faker {
	return newFaker(gofakeit.New(uint64(time.Now().UnixNano())))
}

// NewFakerWithSeed creates a new Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return newFaker(gofakeit.New(seed))
}

func newFaker(f *gofakeit.Faker) *Faker {
	fk := &Faker{faker: f}
	fk.countries = fk.buildCountryCodes()
	fk.ports = fk.buildPortCodes()
	return fk
}

// CountryCodes returns the reference country table used by the generated
// travel records. Codes are stable for a given seed.
func (f *Faker) CountryCodes() []dataset.CountryCode {
	return f.countries
}

// PortCodes returns the reference port table used by the generated
// travel records.
func (f *Faker) PortCodes() []dataset.PortCode {
	return f.ports
}

func (f *Faker) buildCountryCodes() []dataset.CountryCode {
	n := 40
	out := make([]dataset.CountryCode, 0, n)
	seen := make(map[string]bool, n)
	for len(out) < n {
		name := strings.ToUpper(f.faker.Country())
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, dataset.CountryCode{
			Code:    int64(100 + len(out)),
			Country: name,
		})
	}
	return out
}

func (f *Faker) buildPortCodes() []dataset.PortCode {
	n := 25
	out := make([]dataset.PortCode, 0, n)
	seen := make(map[string]bool, n)
	for len(out) < n {
		code := strings.ToUpper(f.faker.LetterN(3))
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, dataset.PortCode{
			Code:     code,
			Location: strings.ToUpper(f.faker.City()),
			State:    f.faker.StateAbr(),
		})
	}
	return out
}

// TravelRecord generates one immigration record. Roughly a tenth of the
// records carry a defect (missing gender, sea or land arrival, unknown
// port) so that downstream filtering has something to drop.
func (f *Faker) TravelRecord(cicid int64) dataset.TravelRecord {
	arrival := int64(f.faker.Number(20000, 21000))
	departure := arrival + int64(f.faker.Number(1, 90))
	country := f.countries[f.faker.Number(0, len(f.countries)-1)]
	port := f.ports[f.faker.Number(0, len(f.ports)-1)]

	rec := dataset.TravelRecord{
		CICID:            cicid,
		CitizenshipCode:  ptrInt(country.Code),
		ResidenceCode:    ptrInt(country.Code),
		PortCode:         port.Code,
		ArrivalOffset:    arrival,
		DepartureOffset:  ptrInt(departure),
		Mode:             ptrInt(1),
		BirthYear:        ptrInt(int64(f.faker.Number(1940, 2005))),
		VisaCode:         ptrInt(int64(f.faker.Number(1, 3))),
		DetailedVisaType: f.faker.RandomString([]string{"B1", "B2", "F1", "WT", "WB"}),
		Gender:           ptrStr(f.faker.RandomString([]string{"F", "M"})),
		ReportedState:    ptrStr(f.faker.StateAbr()),
	}

	switch f.faker.Number(0, 9) {
	case 0:
		rec.Gender = nil
	case 1:
		rec.Mode = ptrInt(int64(f.faker.Number(2, 9)))
	case 2:
		rec.PortCode = "XXX"
	case 3:
		rec.DepartureOffset = nil
	case 4:
		rec.BirthYear = nil
	}
	return rec
}

// Airport generates one airport row.
func (f *Faker) Airport(i int) dataset.Airport {
	state := f.faker.StateAbr()
	airportType := f.faker.RandomString([]string{
		"small_airport", "medium_airport", "large_airport",
		"heliport", "closed", "seaplane_base",
	})
	return dataset.Airport{
		Ident:        fmt.Sprintf("K%s%d", f.faker.LetterN(2), i),
		Type:         airportType,
		Name:         f.faker.City() + " Airport",
		ElevationFt:  ptrFloat(float64(f.faker.Number(-10, 9000))),
		ISOCountry:   "US",
		ISORegion:    "US-" + state,
		Municipality: ptrStr(f.faker.City()),
		IATACode:     ptrStr(strings.ToUpper(f.faker.LetterN(3))),
	}
}

// Demographic generates one city demographics row.
func (f *Faker) Demographic() dataset.Demographic {
	male := int64(f.faker.Number(10000, 4000000))
	female := int64(f.faker.Number(10000, 4000000))
	return dataset.Demographic{
		City:             f.faker.City(),
		State:            f.faker.State(),
		MedianAge:        ptrFloat(f.faker.Float64Range(20, 55)),
		MalePopulation:   ptrInt(male),
		FemalePopulation: ptrInt(female),
		TotalPopulation:  ptrInt(male + female),
		ForeignBorn:      ptrInt(int64(f.faker.Number(100, 900000))),
		AvgHouseholdSize: ptrFloat(f.faker.Float64Range(1.8, 4.2)),
		StateCode:        f.faker.StateAbr(),
		Race: f.faker.RandomString([]string{
			"White", "Black or African-American", "Asian",
			"Hispanic or Latino", "American Indian and Alaska Native",
		}),
		Count: int64(f.faker.Number(1000, 2000000)),
	}
}

// TemperatureReading generates one city temperature reading.
func (f *Faker) TemperatureReading() dataset.TemperatureReading {
	year := f.faker.Number(1951, 2013)
	month := time.Month(f.faker.Number(1, 12))
	country := "United States"
	if f.faker.Number(0, 4) == 0 {
		country = f.faker.Country()
	}
	return dataset.TemperatureReading{
		Date:        time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		City:        f.faker.City(),
		Country:     country,
		Temperature: ptrFloat(f.faker.Float64Range(-20, 40)),
		Uncertainty: ptrFloat(f.faker.Float64Range(0.05, 2.5)),
	}
}

func ptrInt(v int64) *int64       { return &v }
func ptrFloat(v float64) *float64 { return &v }
func ptrStr(v string) *string     { return &v }
