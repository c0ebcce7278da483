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
	"testing"
	"time"

	"github.com/arrivedata/i94etl/internal/dataset"
)

func ptrInt(v int64) *int64   { return &v }
func ptrStr(v string) *string { return &v }

var testCountries = []dataset.CountryCode{
	{Code: 111, Country: "CANADA"},
	{Code: 245, Country: "CHINA"},
}

var testPorts = []dataset.PortCode{
	{Code: "NYC", Location: "New York", State: "NY"},
	{Code: "LOS", Location: "Los Angeles", State: "CA"},
	{Code: "MON", Location: "Montreal", State: "CANADA"},
	{Code: "UNK", Location: "Unknown", State: ""},
}

// baseRecord returns a record that passes every filter.
func baseRecord() dataset.TravelRecord {
	return dataset.TravelRecord{
		CICID:            1,
		CitizenshipCode:  ptrInt(111),
		ResidenceCode:    ptrInt(245),
		PortCode:         "NYC",
		ArrivalOffset:    30,
		DepartureOffset:  ptrInt(45),
		Mode:             ptrInt(1),
		BirthYear:        ptrInt(1980),
		VisaCode:         ptrInt(2),
		DetailedVisaType: "B2",
		Gender:           ptrStr("F"),
	}
}

func TestNormalizeImmigration(t *testing.T) {
	facts := NormalizeImmigration(
		[]dataset.TravelRecord{baseRecord()}, testCountries, testPorts, 2016)
	if len(facts) != 1 {
		t.Fatalf("expected 1 fact row, got %d", len(facts))
	}

	f := facts[0]
	if f.CICID != 1 {
		t.Errorf("CICID = %d, want 1", f.CICID)
	}
	if f.CitizenshipCountry != "CANADA" {
		t.Errorf("CitizenshipCountry = %q, want CANADA", f.CitizenshipCountry)
	}
	if f.ResidenceCountry != "CHINA" {
		t.Errorf("ResidenceCountry = %q, want CHINA", f.ResidenceCountry)
	}
	if f.City != "NEW YORK" || f.State != "NY" {
		t.Errorf("City/State = %q/%q, want NEW YORK/NY", f.City, f.State)
	}

	wantArrival := time.Date(1960, time.January, 31, 0, 0, 0, 0, time.UTC)
	if !f.ArrivalDate.Equal(wantArrival) {
		t.Errorf("ArrivalDate = %v, want %v", f.ArrivalDate, wantArrival)
	}
	wantDeparture := time.Date(1960, time.February, 15, 0, 0, 0, 0, time.UTC)
	if f.DepartureDate == nil || !f.DepartureDate.Equal(wantDeparture) {
		t.Errorf("DepartureDate = %v, want %v", f.DepartureDate, wantDeparture)
	}

	if f.Age == nil || *f.Age != 36 {
		t.Errorf("Age = %v, want 36", f.Age)
	}
	if f.VisaType != "Pleasure" {
		t.Errorf("VisaType = %q, want Pleasure", f.VisaType)
	}
	if f.DetailedVisaType != "B2" {
		t.Errorf("DetailedVisaType = %q, want B2", f.DetailedVisaType)
	}
}

func TestNormalizeImmigrationFilters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dataset.TravelRecord)
		kept   bool
	}{
		{"clean record", func(r *dataset.TravelRecord) {}, true},
		{"sea arrival", func(r *dataset.TravelRecord) { r.Mode = ptrInt(2) }, false},
		{"missing mode", func(r *dataset.TravelRecord) { r.Mode = nil }, false},
		{"missing gender", func(r *dataset.TravelRecord) { r.Gender = nil }, false},
		{"unreported gender", func(r *dataset.TravelRecord) { r.Gender = ptrStr("X") }, false},
		{"male traveler", func(r *dataset.TravelRecord) { r.Gender = ptrStr("M") }, true},
		{"departure equals arrival", func(r *dataset.TravelRecord) {
			r.DepartureOffset = ptrInt(r.ArrivalOffset)
		}, false},
		{"departure before arrival", func(r *dataset.TravelRecord) {
			r.DepartureOffset = ptrInt(r.ArrivalOffset - 1)
		}, false},
		{"no departure", func(r *dataset.TravelRecord) { r.DepartureOffset = nil }, true},
		{"departure offset zero", func(r *dataset.TravelRecord) { r.DepartureOffset = ptrInt(0) }, true},
		{"missing citizenship", func(r *dataset.TravelRecord) { r.CitizenshipCode = nil }, false},
		{"unknown citizenship", func(r *dataset.TravelRecord) { r.CitizenshipCode = ptrInt(999) }, false},
		{"unknown residence", func(r *dataset.TravelRecord) { r.ResidenceCode = ptrInt(999) }, false},
		{"unknown port", func(r *dataset.TravelRecord) { r.PortCode = "XXX" }, false},
		{"foreign port", func(r *dataset.TravelRecord) { r.PortCode = "MON" }, false},
		{"stateless port", func(r *dataset.TravelRecord) { r.PortCode = "UNK" }, false},
		{"missing birth year", func(r *dataset.TravelRecord) { r.BirthYear = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := baseRecord()
			tt.mutate(&rec)
			facts := NormalizeImmigration(
				[]dataset.TravelRecord{rec}, testCountries, testPorts, 2016)
			if kept := len(facts) == 1; kept != tt.kept {
				t.Errorf("kept = %v, want %v", kept, tt.kept)
			}
		})
	}
}

func TestNormalizeImmigrationNullableFields(t *testing.T) {
	rec := baseRecord()
	rec.BirthYear = nil
	rec.DepartureOffset = nil
	rec.VisaCode = nil

	facts := NormalizeImmigration(
		[]dataset.TravelRecord{rec}, testCountries, testPorts, 2016)
	if len(facts) != 1 {
		t.Fatalf("expected 1 fact row, got %d", len(facts))
	}
	f := facts[0]
	if f.Age != nil {
		t.Errorf("Age = %v, want nil", *f.Age)
	}
	if f.DepartureDate != nil {
		t.Errorf("DepartureDate = %v, want nil", *f.DepartureDate)
	}
	if f.VisaType != "N/A" {
		t.Errorf("VisaType = %q, want N/A", f.VisaType)
	}
}

func TestFilterPortCodes(t *testing.T) {
	kept := FilterPortCodes(testPorts)
	if len(kept) != 2 {
		t.Fatalf("expected 2 ports, got %d", len(kept))
	}
	for _, p := range kept {
		if p.Code != "NYC" && p.Code != "LOS" {
			t.Errorf("unexpected port kept: %q", p.Code)
		}
	}
}
