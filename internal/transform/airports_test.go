package transform

import (
	"testing"

	"github.com/arrivedata/i94etl/internal/dataset"
)

func baseAirport() dataset.Airport {
	return dataset.Airport{
		Ident:        "KJFK",
		Type:         "large_airport",
		Name:         "John F Kennedy International Airport",
		ElevationFt:  ptrFloat(13),
		ISOCountry:   "US",
		ISORegion:    "US-NY",
		Municipality: ptrStr("New York"),
		IATACode:     ptrStr("JFK"),
	}
}

func TestCleanAirports(t *testing.T) {
	rows := CleanAirports([]dataset.Airport{baseAirport()})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	r := rows[0]
	if r.Ident != "KJFK" {
		t.Errorf("Ident = %q, want KJFK", r.Ident)
	}
	if r.State != "NY" {
		t.Errorf("State = %q, want NY", r.State)
	}
	if r.Municipality != "NEW YORK" {
		t.Errorf("Municipality = %q, want NEW YORK", r.Municipality)
	}
}

func TestCleanAirportsFilters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dataset.Airport)
		kept   bool
	}{
		{"open us airport", func(a *dataset.Airport) {}, true},
		{"foreign airport", func(a *dataset.Airport) { a.ISOCountry = "CA"; a.ISORegion = "CA-ON" }, false},
		{"lowercase country kept", func(a *dataset.Airport) { a.ISOCountry = "us" }, true},
		{"closed", func(a *dataset.Airport) { a.Type = "closed" }, false},
		{"heliport", func(a *dataset.Airport) { a.Type = "heliport" }, false},
		{"seaplane base", func(a *dataset.Airport) { a.Type = "seaplane_base" }, false},
		{"balloonport", func(a *dataset.Airport) { a.Type = "balloonport" }, false},
		{"small airport kept", func(a *dataset.Airport) { a.Type = "small_airport" }, true},
		{"no municipality", func(a *dataset.Airport) { a.Municipality = nil }, false},
		{"malformed region", func(a *dataset.Airport) { a.ISORegion = "US-U-A" }, false},
		{"empty region", func(a *dataset.Airport) { a.ISORegion = "" }, false},
		{"missing elevation kept", func(a *dataset.Airport) { a.ElevationFt = nil }, true},
		{"missing iata kept", func(a *dataset.Airport) { a.IATACode = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := baseAirport()
			tt.mutate(&a)
			rows := CleanAirports([]dataset.Airport{a})
			if kept := len(rows) == 1; kept != tt.kept {
				t.Errorf("kept = %v, want %v", kept, tt.kept)
			}
		})
	}
}
