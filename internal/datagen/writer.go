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
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/arrivedata/i94etl/internal/logging"
)

// InputFiles names the generated files relative to the output directory.
// The names line up with the default input configuration.
var InputFiles = struct {
	Immigration  string
	Countries    string
	Ports        string
	Airports     string
	Demographics string
	Temperature  string
}{
	Immigration:  "immigration.csv",
	Countries:    "country_codes.csv",
	Ports:        "port_codes.csv",
	Airports:     "airports.csv",
	Demographics: "demographics.csv",
	Temperature:  "temperature.csv",
}

// WriteAll writes a complete set of synthetic input files to dir.
// records controls the size of the immigration feed; the side datasets
// are scaled proportionally.
func (f *Faker) WriteAll(dir string, records int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating mock data directory: %w", err)
	}

	steps := []struct {
		name  string
		write func(path string) (int, error)
	}{
		{InputFiles.Countries, f.writeCountryCodes},
		{InputFiles.Ports, f.writePortCodes},
		{InputFiles.Immigration, func(p string) (int, error) { return f.writeTravelRecords(p, records) }},
		{InputFiles.Airports, func(p string) (int, error) { return f.writeAirports(p, records/20+10) }},
		{InputFiles.Demographics, func(p string) (int, error) { return f.writeDemographics(p, records/20+10) }},
		{InputFiles.Temperature, func(p string) (int, error) { return f.writeTemperatures(p, records/5+20) }},
	}
	for _, step := range steps {
		path := filepath.Join(dir, step.name)
		n, err := step.write(path)
		if err != nil {
			return err
		}
		logging.Info().Str("file", path).Int("rows", n).Msg("Wrote mock dataset")
	}
	return nil
}

func writeCSV(path string, comma rune, header []string, rows [][]string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	w.Comma = comma
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return out.Close()
}

func (f *Faker) writeCountryCodes(path string) (int, error) {
	rows := make([][]string, 0, len(f.countries))
	for _, c := range f.countries {
		rows = append(rows, []string{strconv.FormatInt(c.Code, 10), c.Country})
	}
	return len(rows), writeCSV(path, ',', []string{"code", "country"}, rows)
}

func (f *Faker) writePortCodes(path string) (int, error) {
	rows := make([][]string, 0, len(f.ports))
	for _, p := range f.ports {
		rows = append(rows, []string{p.Code, p.Location, p.State})
	}
	return len(rows), writeCSV(path, ',', []string{"code", "location", "state"}, rows)
}

func (f *Faker) writeTravelRecords(path string, n int) (int, error) {
	header := []string{
		"cicid", "i94cit", "i94res", "i94port", "arrdate",
		"depdate", "i94mode", "biryear", "i94visa", "visatype", "gender", "i94addr",
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rec := f.TravelRecord(int64(i + 1))
		rows = append(rows, []string{
			strconv.FormatInt(rec.CICID, 10),
			optIntField(rec.CitizenshipCode),
			optIntField(rec.ResidenceCode),
			rec.PortCode,
			strconv.FormatInt(rec.ArrivalOffset, 10),
			optIntField(rec.DepartureOffset),
			optIntField(rec.Mode),
			optIntField(rec.BirthYear),
			optIntField(rec.VisaCode),
			rec.DetailedVisaType,
			optStrField(rec.Gender),
			optStrField(rec.ReportedState),
		})
	}
	return len(rows), writeCSV(path, ',', header, rows)
}

func (f *Faker) writeAirports(path string, n int) (int, error) {
	header := []string{
		"ident", "type", "name", "elevation_ft", "iso_country",
		"iso_region", "municipality", "iata_code",
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		a := f.Airport(i)
		rows = append(rows, []string{
			a.Ident,
			a.Type,
			a.Name,
			optFloatField(a.ElevationFt),
			a.ISOCountry,
			a.ISORegion,
			optStrField(a.Municipality),
			optStrField(a.IATACode),
		})
	}
	return len(rows), writeCSV(path, ',', header, rows)
}

func (f *Faker) writeDemographics(path string, n int) (int, error) {
	header := []string{
		"City", "State", "Median Age", "Male Population", "Female Population",
		"Total Population", "Foreign-born", "Average Household Size",
		"State Code", "Race", "Count",
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		d := f.Demographic()
		rows = append(rows, []string{
			d.City,
			d.State,
			optFloatField(d.MedianAge),
			optIntField(d.MalePopulation),
			optIntField(d.FemalePopulation),
			optIntField(d.TotalPopulation),
			optIntField(d.ForeignBorn),
			optFloatField(d.AvgHouseholdSize),
			d.StateCode,
			d.Race,
			strconv.FormatInt(d.Count, 10),
		})
	}
	return len(rows), writeCSV(path, ';', header, rows)
}

func (f *Faker) writeTemperatures(path string, n int) (int, error) {
	header := []string{
		"dt", "AverageTemperature", "AverageTemperatureUncertainty", "City", "Country",
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		r := f.TemperatureReading()
		rows = append(rows, []string{
			r.Date.Format("2006-01-02"),
			optFloatField(r.Temperature),
			optFloatField(r.Uncertainty),
			r.City,
			r.Country,
		})
	}
	return len(rows), writeCSV(path, ',', header, rows)
}

func optIntField(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func optFloatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func optStrField(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
