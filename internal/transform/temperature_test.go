package transform

import (
	"math"
	"testing"
	"time"

	"github.com/arrivedata/i94etl/internal/dataset"
)

func ptrFloat(v float64) *float64 { return &v }

func TestCleanTemperature(t *testing.T) {
	d := date(1995, time.July, 1)
	readings := []dataset.TemperatureReading{
		{Date: d, City: "Chicago", Country: "United States",
			Temperature: ptrFloat(20), Uncertainty: ptrFloat(0.5)},
		{Date: d, City: " chicago ", Country: "United States",
			Temperature: ptrFloat(22), Uncertainty: ptrFloat(1.5)},
		{Date: d, City: "Toronto", Country: "Canada",
			Temperature: ptrFloat(15), Uncertainty: ptrFloat(0.5)},
		{Date: date(1949, time.July, 1), City: "Chicago", Country: "United States",
			Temperature: ptrFloat(19), Uncertainty: ptrFloat(0.5)},
	}

	rows := CleanTemperature(readings)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	r := rows[0]
	if r.City != "CHICAGO" {
		t.Errorf("City = %q, want CHICAGO", r.City)
	}
	if r.AvgTemperature == nil || math.Abs(*r.AvgTemperature-21) > 1e-9 {
		t.Errorf("AvgTemperature = %v, want 21", r.AvgTemperature)
	}
	if r.AvgUncertainty == nil || math.Abs(*r.AvgUncertainty-1) > 1e-9 {
		t.Errorf("AvgUncertainty = %v, want 1", r.AvgUncertainty)
	}
}

func TestCleanTemperatureCutoffBoundary(t *testing.T) {
	readings := []dataset.TemperatureReading{
		{Date: date(1950, time.January, 1), City: "Boston", Country: "United States",
			Temperature: ptrFloat(1)},
		{Date: date(1950, time.January, 2), City: "Boston", Country: "United States",
			Temperature: ptrFloat(2)},
	}
	rows := CleanTemperature(readings)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row (cutoff date itself excluded), got %d", len(rows))
	}
	if !rows[0].Date.Equal(date(1950, time.January, 2)) {
		t.Errorf("Date = %v, want 1950-01-02", rows[0].Date)
	}
}

func TestCleanTemperatureAllNullReadings(t *testing.T) {
	readings := []dataset.TemperatureReading{
		{Date: date(2000, time.March, 1), City: "Denver", Country: "United States"},
	}
	rows := CleanTemperature(readings)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].AvgTemperature != nil || rows[0].AvgUncertainty != nil {
		t.Errorf("averages over no readings should stay nil, got %v / %v",
			rows[0].AvgTemperature, rows[0].AvgUncertainty)
	}
}

func TestCleanTemperatureOrdering(t *testing.T) {
	readings := []dataset.TemperatureReading{
		{Date: date(2000, time.February, 1), City: "B", Country: "United States"},
		{Date: date(2000, time.January, 1), City: "B", Country: "United States"},
		{Date: date(2000, time.January, 1), City: "A", Country: "United States"},
	}
	rows := CleanTemperature(readings)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].City != "A" || rows[1].City != "B" || !rows[2].Date.Equal(date(2000, time.February, 1)) {
		t.Errorf("rows out of order: %+v", rows)
	}
}
