//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"path/filepath"
	"testing"

	"github.com/arrivedata/i94etl/internal/dataset"
)

func TestFakerSeedReproducible(t *testing.T) {
	a := NewFakerWithSeed(7)
	b := NewFakerWithSeed(7)

	for i := 0; i < 50; i++ {
		ra := a.TravelRecord(int64(i))
		rb := b.TravelRecord(int64(i))
		if ra.PortCode != rb.PortCode || ra.ArrivalOffset != rb.ArrivalOffset {
			t.Fatalf("record %d differs between same-seed fakers: %+v vs %+v", i, ra, rb)
		}
	}
}

func TestFakerReferenceTablesConsistent(t *testing.T) {
	f := NewFakerWithSeed(7)

	countries := map[int64]bool{}
	for _, c := range f.CountryCodes() {
		countries[c.Code] = true
	}
	ports := map[string]bool{}
	for _, p := range f.PortCodes() {
		ports[p.Code] = true
		if p.State == "" {
			t.Errorf("port %s has no state", p.Code)
		}
	}

	// Clean records must resolve against the reference tables.
	for i := 0; i < 200; i++ {
		r := f.TravelRecord(int64(i))
		if r.CitizenshipCode != nil && !countries[*r.CitizenshipCode] {
			t.Errorf("record %d cites unknown country %d", i, *r.CitizenshipCode)
		}
		if r.PortCode != "XXX" && !ports[r.PortCode] {
			t.Errorf("record %d uses unknown port %q", i, r.PortCode)
		}
	}
}

func TestWriteAllLoadable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mock")
	f := NewFakerWithSeed(11)
	if err := f.WriteAll(dir, 100); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	records, err := dataset.LoadTravelRecords(filepath.Join(dir, InputFiles.Immigration))
	if err != nil {
		t.Fatalf("LoadTravelRecords: %v", err)
	}
	if len(records) != 100 {
		t.Errorf("loaded %d travel records, want 100", len(records))
	}

	if _, err := dataset.LoadCountryCodes(filepath.Join(dir, InputFiles.Countries)); err != nil {
		t.Errorf("LoadCountryCodes: %v", err)
	}
	if _, err := dataset.LoadPortCodes(filepath.Join(dir, InputFiles.Ports)); err != nil {
		t.Errorf("LoadPortCodes: %v", err)
	}
	if _, err := dataset.LoadAirports(filepath.Join(dir, InputFiles.Airports)); err != nil {
		t.Errorf("LoadAirports: %v", err)
	}
	if _, err := dataset.LoadDemographics(filepath.Join(dir, InputFiles.Demographics)); err != nil {
		t.Errorf("LoadDemographics: %v", err)
	}
	temps, err := dataset.LoadTemperatures(filepath.Join(dir, InputFiles.Temperature))
	if err != nil {
		t.Fatalf("LoadTemperatures: %v", err)
	}
	if len(temps) == 0 {
		t.Error("no temperature readings generated")
	}
}
