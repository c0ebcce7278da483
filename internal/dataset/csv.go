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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// header maps column names to their positions in a CSV file.
type header map[string]int

func readHeader(r *csv.Reader, path string, required ...string) (header, error) {
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", path, err)
	}
	h := make(header, len(row))
	for i, name := range row {
		h[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := h[name]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, name)
		}
	}
	return h, nil
}

func (h header) field(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseOptFloat parses an optional float column; empty values are nil.
func parseOptFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseOptInt parses an optional integer column. SAS exports encode
// integers as floats ("1.0"), so the value is parsed as a float and
// truncated.
func parseOptInt(s string) (*int64, error) {
	f, err := parseOptFloat(s)
	if err != nil || f == nil {
		return nil, err
	}
	v := int64(*f)
	return &v, nil
}

func parseInt(s string) (int64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// LoadTravelRecords reads the raw I94 travel records from a CSV export.
func LoadTravelRecords(path string) ([]TravelRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening travel records: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	h, err := readHeader(r, path,
		"cicid", "i94cit", "i94res", "i94port", "arrdate",
		"depdate", "i94mode", "biryear", "i94visa", "visatype", "gender")
	if err != nil {
		return nil, err
	}

	var records []TravelRecord
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", path, line+1, err)
		}
		line++

		rec, err := parseTravelRecord(h, row)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", path, line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseTravelRecord(h header, row []string) (TravelRecord, error) {
	cicid, err := parseInt(h.field(row, "cicid"))
	if err != nil {
		return TravelRecord{}, fmt.Errorf("cicid: %w", err)
	}
	arrdate, err := parseInt(h.field(row, "arrdate"))
	if err != nil {
		return TravelRecord{}, fmt.Errorf("arrdate: %w", err)
	}

	rec := TravelRecord{
		CICID:            cicid,
		PortCode:         h.field(row, "i94port"),
		ArrivalOffset:    arrdate,
		DetailedVisaType: h.field(row, "visatype"),
		Gender:           optString(h.field(row, "gender")),
		ReportedState:    optString(h.field(row, "i94addr")),
	}

	for _, col := range []struct {
		name string
		dst  **int64
	}{
		{"i94cit", &rec.CitizenshipCode},
		{"i94res", &rec.ResidenceCode},
		{"depdate", &rec.DepartureOffset},
		{"i94mode", &rec.Mode},
		{"biryear", &rec.BirthYear},
		{"i94visa", &rec.VisaCode},
	} {
		v, err := parseOptInt(h.field(row, col.name))
		if err != nil {
			return TravelRecord{}, fmt.Errorf("%s: %w", col.name, err)
		}
		*col.dst = v
	}
	return rec, nil
}

// LoadCountryCodes reads the I94 country-code dictionary.
func LoadCountryCodes(path string) ([]CountryCode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening country codes: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	h, err := readHeader(r, path, "code", "country")
	if err != nil {
		return nil, err
	}

	var codes []CountryCode
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		code, err := parseInt(h.field(row, "code"))
		if err != nil {
			return nil, fmt.Errorf("%s: code: %w", path, err)
		}
		codes = append(codes, CountryCode{Code: code, Country: h.field(row, "country")})
	}
	return codes, nil
}

// LoadPortCodes reads the I94 port-code dictionary. Rows are returned as
// found, including ports with no state.
func LoadPortCodes(path string) ([]PortCode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening port codes: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	h, err := readHeader(r, path, "code", "location")
	if err != nil {
		return nil, err
	}

	var ports []PortCode
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		ports = append(ports, PortCode{
			Code:     h.field(row, "code"),
			Location: h.field(row, "location"),
			State:    h.field(row, "state"),
		})
	}
	return ports, nil
}

// LoadTemperatures reads the global land temperatures dataset.
func LoadTemperatures(path string) ([]TemperatureReading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening temperatures: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	h, err := readHeader(r, path,
		"dt", "AverageTemperature", "AverageTemperatureUncertainty", "City", "Country")
	if err != nil {
		return nil, err
	}

	var readings []TemperatureReading
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", path, line+1, err)
		}
		line++

		date, err := time.ParseInLocation(dateLayout, h.field(row, "dt"), time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: dt: %w", path, line, err)
		}
		temp, err := parseOptFloat(h.field(row, "AverageTemperature"))
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: AverageTemperature: %w", path, line, err)
		}
		unc, err := parseOptFloat(h.field(row, "AverageTemperatureUncertainty"))
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: AverageTemperatureUncertainty: %w", path, line, err)
		}

		readings = append(readings, TemperatureReading{
			Date:        date,
			City:        h.field(row, "City"),
			Country:     h.field(row, "Country"),
			Temperature: temp,
			Uncertainty: unc,
		})
	}
	return readings, nil
}

// LoadAirports reads the airport-codes dataset.
func LoadAirports(path string) ([]Airport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening airports: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	h, err := readHeader(r, path,
		"ident", "type", "name", "elevation_ft", "iso_country",
		"iso_region", "municipality", "iata_code")
	if err != nil {
		return nil, err
	}

	var airports []Airport
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", path, line+1, err)
		}
		line++

		elevation, err := parseOptFloat(h.field(row, "elevation_ft"))
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: elevation_ft: %w", path, line, err)
		}

		airports = append(airports, Airport{
			Ident:        h.field(row, "ident"),
			Type:         h.field(row, "type"),
			Name:         h.field(row, "name"),
			ElevationFt:  elevation,
			ISOCountry:   h.field(row, "iso_country"),
			ISORegion:    h.field(row, "iso_region"),
			Municipality: optString(h.field(row, "municipality")),
			IATACode:     optString(h.field(row, "iata_code")),
		})
	}
	return airports, nil
}

// LoadDemographics reads the US city demographics dataset. The source
// file is semicolon-delimited.
func LoadDemographics(path string) ([]Demographic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening demographics: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1
	h, err := readHeader(r, path,
		"City", "State", "Median Age", "Male Population", "Female Population",
		"Total Population", "Foreign-born", "Average Household Size",
		"State Code", "Race", "Count")
	if err != nil {
		return nil, err
	}

	var demos []Demographic
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", path, line+1, err)
		}
		line++

		d := Demographic{
			City:      h.field(row, "City"),
			State:     h.field(row, "State"),
			StateCode: h.field(row, "State Code"),
			Race:      h.field(row, "Race"),
		}
		d.Count, err = parseInt(h.field(row, "Count"))
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: Count: %w", path, line, err)
		}
		if d.MedianAge, err = parseOptFloat(h.field(row, "Median Age")); err != nil {
			return nil, fmt.Errorf("%s: line %d: Median Age: %w", path, line, err)
		}
		if d.AvgHouseholdSize, err = parseOptFloat(h.field(row, "Average Household Size")); err != nil {
			return nil, fmt.Errorf("%s: line %d: Average Household Size: %w", path, line, err)
		}
		for _, col := range []struct {
			name string
			dst  **int64
		}{
			{"Male Population", &d.MalePopulation},
			{"Female Population", &d.FemalePopulation},
			{"Total Population", &d.TotalPopulation},
			{"Foreign-born", &d.ForeignBorn},
		} {
			v, err := parseOptInt(h.field(row, col.name))
			if err != nil {
				return nil, fmt.Errorf("%s: line %d: %s: %w", path, line, col.name, err)
			}
			*col.dst = v
		}
		demos = append(demos, d)
	}
	return demos, nil
}
