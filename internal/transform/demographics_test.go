package transform

import (
	"testing"

	"github.com/arrivedata/i94etl/internal/dataset"
)

func TestCleanDemographics(t *testing.T) {
	demos := []dataset.Demographic{
		{City: " Silver Spring ", State: "Maryland", StateCode: "md",
			Race: "White", Count: 100, MedianAge: ptrFloat(33.8)},
	}
	rows := CleanDemographics(demos)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	r := rows[0]
	if r.City != "SILVER SPRING" {
		t.Errorf("City = %q, want SILVER SPRING", r.City)
	}
	if r.State != "Maryland" {
		t.Errorf("State = %q, want Maryland", r.State)
	}
	if r.StateCode != "MD" {
		t.Errorf("StateCode = %q, want MD", r.StateCode)
	}
	if r.Race != "WHITE" {
		t.Errorf("Race = %q, want WHITE", r.Race)
	}
	if r.MedianAge == nil || *r.MedianAge != 33.8 {
		t.Errorf("MedianAge = %v, want 33.8", r.MedianAge)
	}
}

func TestCleanDemographicsDedupe(t *testing.T) {
	demos := []dataset.Demographic{
		{City: "Boston", StateCode: "MA", Race: "Asian", Count: 1},
		{City: "boston", StateCode: "ma", Race: "ASIAN", Count: 2}, // same key after normalization
		{City: "Boston", StateCode: "MA", Race: "White", Count: 3},
	}
	rows := CleanDemographics(demos)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after dedupe, got %d", len(rows))
	}
	// First occurrence wins.
	if rows[0].Count != 1 {
		t.Errorf("Count = %d, want 1 (first occurrence)", rows[0].Count)
	}
}
