//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTravelRecords(t *testing.T) {
	path := writeFile(t, "immigration.csv",
		`cicid,i94cit,i94res,i94port,arrdate,depdate,i94mode,biryear,i94visa,visatype,gender,i94addr
1.0,111.0,245.0,NYC,20566.0,20581.0,1.0,1980.0,2.0,B2,F,NY
2,111,,LOS,20566,,,,,WT,,
`)

	records, err := LoadTravelRecords(path)
	if err != nil {
		t.Fatalf("LoadTravelRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	r := records[0]
	if r.CICID != 1 || r.ArrivalOffset != 20566 {
		t.Errorf("record 0: got CICID=%d arrdate=%d", r.CICID, r.ArrivalOffset)
	}
	if r.CitizenshipCode == nil || *r.CitizenshipCode != 111 {
		t.Errorf("record 0: CitizenshipCode = %v, want 111", r.CitizenshipCode)
	}
	if r.DepartureOffset == nil || *r.DepartureOffset != 20581 {
		t.Errorf("record 0: DepartureOffset = %v, want 20581", r.DepartureOffset)
	}
	if r.Gender == nil || *r.Gender != "F" {
		t.Errorf("record 0: Gender = %v, want F", r.Gender)
	}
	if r.ReportedState == nil || *r.ReportedState != "NY" {
		t.Errorf("record 0: ReportedState = %v, want NY", r.ReportedState)
	}

	r = records[1]
	if r.ResidenceCode != nil || r.DepartureOffset != nil || r.Mode != nil ||
		r.BirthYear != nil || r.VisaCode != nil || r.Gender != nil || r.ReportedState != nil {
		t.Errorf("record 1: empty fields should be nil: %+v", r)
	}
}

func TestLoadTravelRecordsMissingColumn(t *testing.T) {
	path := writeFile(t, "immigration.csv", "cicid,arrdate\n1,20566\n")
	if _, err := LoadTravelRecords(path); err == nil {
		t.Fatal("expected an error for a missing required column")
	}
}

func TestLoadCountryCodes(t *testing.T) {
	path := writeFile(t, "countries.csv", "code,country\n111,CANADA\n245,CHINA\n")

	codes, err := LoadCountryCodes(path)
	if err != nil {
		t.Fatalf("LoadCountryCodes: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("expected 2 codes, got %d", len(codes))
	}
	if codes[0].Code != 111 || codes[0].Country != "CANADA" {
		t.Errorf("got %+v, want 111/CANADA", codes[0])
	}
}

func TestLoadPortCodes(t *testing.T) {
	path := writeFile(t, "ports.csv",
		"code,location,state\nNYC,New York,NY\nMON,Montreal,CANADA\nUNK,Unknown,\n")

	ports, err := LoadPortCodes(path)
	if err != nil {
		t.Fatalf("LoadPortCodes: %v", err)
	}
	// The loader keeps everything; filtering is a transform concern.
	if len(ports) != 3 {
		t.Fatalf("expected 3 ports, got %d", len(ports))
	}
	if ports[2].State != "" {
		t.Errorf("ports[2].State = %q, want empty", ports[2].State)
	}
}

func TestLoadTemperatures(t *testing.T) {
	path := writeFile(t, "temperature.csv",
		`dt,AverageTemperature,AverageTemperatureUncertainty,City,Country
1995-07-01,20.5,0.25,Chicago,United States
1995-08-01,,,Chicago,United States
`)

	readings, err := LoadTemperatures(path)
	if err != nil {
		t.Fatalf("LoadTemperatures: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}

	r := readings[0]
	if !r.Date.Equal(time.Date(1995, time.July, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want 1995-07-01", r.Date)
	}
	if r.Temperature == nil || *r.Temperature != 20.5 {
		t.Errorf("Temperature = %v, want 20.5", r.Temperature)
	}
	if readings[1].Temperature != nil || readings[1].Uncertainty != nil {
		t.Errorf("empty readings should be nil: %+v", readings[1])
	}
}

func TestLoadAirports(t *testing.T) {
	path := writeFile(t, "airports.csv",
		`ident,type,name,elevation_ft,iso_country,iso_region,municipality,iata_code
KJFK,large_airport,John F Kennedy Intl,13,US,US-NY,New York,JFK
00AA,small_airport,Aero B Ranch,3435,US,US-KS,,
`)

	airports, err := LoadAirports(path)
	if err != nil {
		t.Fatalf("LoadAirports: %v", err)
	}
	if len(airports) != 2 {
		t.Fatalf("expected 2 airports, got %d", len(airports))
	}

	a := airports[0]
	if a.Ident != "KJFK" || a.ISORegion != "US-NY" {
		t.Errorf("got %+v", a)
	}
	if a.ElevationFt == nil || *a.ElevationFt != 13 {
		t.Errorf("ElevationFt = %v, want 13", a.ElevationFt)
	}
	if airports[1].Municipality != nil || airports[1].IATACode != nil {
		t.Errorf("empty optional fields should be nil: %+v", airports[1])
	}
}

func TestLoadDemographics(t *testing.T) {
	path := writeFile(t, "demographics.csv",
		`City;State;Median Age;Male Population;Female Population;Total Population;Foreign-born;Average Household Size;State Code;Race;Count
Silver Spring;Maryland;33.8;40601;41862;82463;30908;2.6;MD;Hispanic or Latino;25924
Quincy;Massachusetts;41.0;44129;49500;93629;32935;2.39;MA;White;58723
`)

	demos, err := LoadDemographics(path)
	if err != nil {
		t.Fatalf("LoadDemographics: %v", err)
	}
	if len(demos) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(demos))
	}

	d := demos[0]
	if d.City != "Silver Spring" || d.StateCode != "MD" {
		t.Errorf("got %+v", d)
	}
	if d.MedianAge == nil || *d.MedianAge != 33.8 {
		t.Errorf("MedianAge = %v, want 33.8", d.MedianAge)
	}
	if d.TotalPopulation == nil || *d.TotalPopulation != 82463 {
		t.Errorf("TotalPopulation = %v, want 82463", d.TotalPopulation)
	}
	if d.Count != 25924 {
		t.Errorf("Count = %d, want 25924", d.Count)
	}
}
