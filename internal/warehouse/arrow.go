//-------------------------------------------------------------------------
//
// I94 Warehouse ETL
//
// Copyright (c) 2025 - 2026, Arrive Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// NamedTable pairs an output table name with its arrow representation.
type NamedTable struct {
	Name  string
	Table arrow.Table
}

// Tables converts the star schema to arrow tables in canonical order.
// The caller must Release each table.
func (s *Star) Tables(mem memory.Allocator) []NamedTable {
	return []NamedTable{
		{TableFact, NewFactTable(s.Fact, mem)},
		{TableTime, NewTimeTable(s.Time, mem)},
		{TableAirports, NewAirportTable(s.Airports, mem)},
		{TableDemographics, NewDemographicsTable(s.Demographics, mem)},
		{TableTemperature, NewTemperatureTable(s.Temperature, mem)},
	}
}

// NewFactTable converts fact rows to an arrow table.
func NewFactTable(rows []FactImmigration, mem memory.Allocator) arrow.Table {
	cicid := array.NewInt64Builder(mem)
	defer cicid.Release()
	citizenship := array.NewStringBuilder(mem)
	defer citizenship.Release()
	residence := array.NewStringBuilder(mem)
	defer residence.Release()
	city := array.NewStringBuilder(mem)
	defer city.Release()
	state := array.NewStringBuilder(mem)
	defer state.Release()
	arrival := array.NewDate32Builder(mem)
	defer arrival.Release()
	departure := array.NewDate32Builder(mem)
	defer departure.Release()
	age := array.NewInt64Builder(mem)
	defer age.Release()
	visa := array.NewStringBuilder(mem)
	defer visa.Release()
	detailedVisa := array.NewStringBuilder(mem)
	defer detailedVisa.Release()

	for _, r := range rows {
		cicid.Append(r.CICID)
		citizenship.Append(r.CitizenshipCountry)
		residence.Append(r.ResidenceCountry)
		city.Append(r.City)
		state.Append(r.State)
		arrival.Append(arrow.Date32FromTime(r.ArrivalDate))
		appendOptDate(departure, r.DepartureDate)
		appendOptInt(age, r.Age)
		visa.Append(r.VisaType)
		detailedVisa.Append(r.DetailedVisaType)
	}

	return buildTable(
		[]arrow.Field{
			{Name: "cicid", Type: arrow.PrimitiveTypes.Int64},
			{Name: "citizenship_country", Type: arrow.BinaryTypes.String},
			{Name: "residence_country", Type: arrow.BinaryTypes.String},
			{Name: "city", Type: arrow.BinaryTypes.String},
			{Name: "state", Type: arrow.BinaryTypes.String},
			{Name: "arrival_date", Type: arrow.FixedWidthTypes.Date32},
			{Name: "departure_date", Type: arrow.FixedWidthTypes.Date32, Nullable: true},
			{Name: "age", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
			{Name: "visa_type", Type: arrow.BinaryTypes.String},
			{Name: "detailed_visa_type", Type: arrow.BinaryTypes.String},
		},
		[]arrow.Array{
			cicid.NewArray(), citizenship.NewArray(), residence.NewArray(),
			city.NewArray(), state.NewArray(), arrival.NewArray(),
			departure.NewArray(), age.NewArray(), visa.NewArray(),
			detailedVisa.NewArray(),
		},
		int64(len(rows)),
	)
}

// NewTimeTable converts time-dimension rows to an arrow table.
func NewTimeTable(rows []DimTime, mem memory.Allocator) arrow.Table {
	date := array.NewDate32Builder(mem)
	defer date.Release()
	intBuilders := make([]*array.Int32Builder, 6)
	for i := range intBuilders {
		intBuilders[i] = array.NewInt32Builder(mem)
		defer intBuilders[i].Release()
	}

	for _, r := range rows {
		date.Append(arrow.Date32FromTime(r.Date))
		for i, v := range []int32{r.Year, r.Month, r.Day, r.Week, r.Weekday, r.DayOfYear} {
			intBuilders[i].Append(v)
		}
	}

	fields := []arrow.Field{
		{Name: "date", Type: arrow.FixedWidthTypes.Date32},
		{Name: "year", Type: arrow.PrimitiveTypes.Int32},
		{Name: "month", Type: arrow.PrimitiveTypes.Int32},
		{Name: "day", Type: arrow.PrimitiveTypes.Int32},
		{Name: "week", Type: arrow.PrimitiveTypes.Int32},
		{Name: "weekday", Type: arrow.PrimitiveTypes.Int32},
		{Name: "day_of_year", Type: arrow.PrimitiveTypes.Int32},
	}
	arrays := []arrow.Array{date.NewArray()}
	for _, b := range intBuilders {
		arrays = append(arrays, b.NewArray())
	}
	return buildTable(fields, arrays, int64(len(rows)))
}

// NewAirportTable converts airport rows to an arrow table.
func NewAirportTable(rows []DimAirport, mem memory.Allocator) arrow.Table {
	ident := array.NewStringBuilder(mem)
	defer ident.Release()
	typ := array.NewStringBuilder(mem)
	defer typ.Release()
	name := array.NewStringBuilder(mem)
	defer name.Release()
	elevation := array.NewFloat64Builder(mem)
	defer elevation.Release()
	state := array.NewStringBuilder(mem)
	defer state.Release()
	municipality := array.NewStringBuilder(mem)
	defer municipality.Release()
	iata := array.NewStringBuilder(mem)
	defer iata.Release()

	for _, r := range rows {
		ident.Append(r.Ident)
		typ.Append(r.Type)
		name.Append(r.Name)
		appendOptFloat(elevation, r.ElevationFt)
		state.Append(r.State)
		municipality.Append(r.Municipality)
		appendOptString(iata, r.IATACode)
	}

	return buildTable(
		[]arrow.Field{
			{Name: "ident", Type: arrow.BinaryTypes.String},
			{Name: "type", Type: arrow.BinaryTypes.String},
			{Name: "name", Type: arrow.BinaryTypes.String},
			{Name: "elevation_ft", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
			{Name: "state", Type: arrow.BinaryTypes.String},
			{Name: "municipality", Type: arrow.BinaryTypes.String},
			{Name: "iata_code", Type: arrow.BinaryTypes.String, Nullable: true},
		},
		[]arrow.Array{
			ident.NewArray(), typ.NewArray(), name.NewArray(),
			elevation.NewArray(), state.NewArray(), municipality.NewArray(),
			iata.NewArray(),
		},
		int64(len(rows)),
	)
}

// NewDemographicsTable converts demographics rows to an arrow table.
func NewDemographicsTable(rows []DimDemographic, mem memory.Allocator) arrow.Table {
	city := array.NewStringBuilder(mem)
	defer city.Release()
	state := array.NewStringBuilder(mem)
	defer state.Release()
	medianAge := array.NewFloat64Builder(mem)
	defer medianAge.Release()
	malePop := array.NewInt64Builder(mem)
	defer malePop.Release()
	femalePop := array.NewInt64Builder(mem)
	defer femalePop.Release()
	totalPop := array.NewInt64Builder(mem)
	defer totalPop.Release()
	foreignBorn := array.NewInt64Builder(mem)
	defer foreignBorn.Release()
	household := array.NewFloat64Builder(mem)
	defer household.Release()
	stateCode := array.NewStringBuilder(mem)
	defer stateCode.Release()
	race := array.NewStringBuilder(mem)
	defer race.Release()
	count := array.NewInt64Builder(mem)
	defer count.Release()

	for _, r := range rows {
		city.Append(r.City)
		state.Append(r.State)
		appendOptFloat(medianAge, r.MedianAge)
		appendOptInt(malePop, r.MalePopulation)
		appendOptInt(femalePop, r.FemalePopulation)
		appendOptInt(totalPop, r.TotalPopulation)
		appendOptInt(foreignBorn, r.ForeignBorn)
		appendOptFloat(household, r.AvgHouseholdSize)
		stateCode.Append(r.StateCode)
		race.Append(r.Race)
		count.Append(r.Count)
	}

	return buildTable(
		[]arrow.Field{
			{Name: "city", Type: arrow.BinaryTypes.String},
			{Name: "state", Type: arrow.BinaryTypes.String},
			{Name: "median_age", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
			{Name: "male_population", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
			{Name: "female_population", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
			{Name: "total_population", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
			{Name: "foreign_born", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
			{Name: "average_household_size", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
			{Name: "state_code", Type: arrow.BinaryTypes.String},
			{Name: "race", Type: arrow.BinaryTypes.String},
			{Name: "count", Type: arrow.PrimitiveTypes.Int64},
		},
		[]arrow.Array{
			city.NewArray(), state.NewArray(), medianAge.NewArray(),
			malePop.NewArray(), femalePop.NewArray(), totalPop.NewArray(),
			foreignBorn.NewArray(), household.NewArray(), stateCode.NewArray(),
			race.NewArray(), count.NewArray(),
		},
		int64(len(rows)),
	)
}

// NewTemperatureTable converts temperature rows to an arrow table.
func NewTemperatureTable(rows []DimTemperature, mem memory.Allocator) arrow.Table {
	date := array.NewDate32Builder(mem)
	defer date.Release()
	city := array.NewStringBuilder(mem)
	defer city.Release()
	temp := array.NewFloat64Builder(mem)
	defer temp.Release()
	uncertainty := array.NewFloat64Builder(mem)
	defer uncertainty.Release()

	for _, r := range rows {
		date.Append(arrow.Date32FromTime(r.Date))
		city.Append(r.City)
		appendOptFloat(temp, r.AvgTemperature)
		appendOptFloat(uncertainty, r.AvgUncertainty)
	}

	return buildTable(
		[]arrow.Field{
			{Name: "date", Type: arrow.FixedWidthTypes.Date32},
			{Name: "city", Type: arrow.BinaryTypes.String},
			{Name: "average_temperature", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
			{Name: "average_temperature_uncertainty", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		},
		[]arrow.Array{
			date.NewArray(), city.NewArray(), temp.NewArray(),
			uncertainty.NewArray(),
		},
		int64(len(rows)),
	)
}

func buildTable(fields []arrow.Field, arrays []arrow.Array, numRows int64) arrow.Table {
	columns := make([]arrow.Column, 0, len(fields))
	for i, field := range fields {
		chunked := arrow.NewChunked(arrays[i].DataType(), []arrow.Array{arrays[i]})
		columns = append(columns, *arrow.NewColumn(field, chunked))
	}
	schema := arrow.NewSchema(fields, nil)
	return array.NewTable(schema, columns, numRows)
}

func appendOptDate(b *array.Date32Builder, t *time.Time) {
	if t == nil {
		b.AppendNull()
		return
	}
	b.Append(arrow.Date32FromTime(*t))
}

func appendOptInt(b *array.Int64Builder, v *int64) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.Append(*v)
}

func appendOptFloat(b *array.Float64Builder, v *float64) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.Append(*v)
}

func appendOptString(b *array.StringBuilder, v *string) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.Append(*v)
}
