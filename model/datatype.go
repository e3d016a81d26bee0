// Package model contains the canonical, format-agnostic SDMX information
// model every wire-format decoder converges on: components and their
// container, data types, facets, codelists, concept schemes, and the
// maintainable wrappers (data structures, dataflows).
//
// Entities are values. They are constructed once during a decode and read
// thereafter; nothing in this package holds mutable shared state.
package model

import "strings"

// DataType tags the primitive SDMX value space of a component or concept.
// The zero value means "unresolved"; derived accessors fall back to String.
type DataType string

const (
	Alpha           DataType = "Alpha"
	AlphaNumeric    DataType = "AlphaNumeric"
	BasicTimePeriod DataType = "BasicTimePeriod"
	BigInteger      DataType = "BigInteger"
	Boolean         DataType = "Boolean"
	Count           DataType = "Count"
	Date            DataType = "GregorianDay"
	DateTime        DataType = "DateTime"
	Day             DataType = "Day"
	Decimal         DataType = "Decimal"
	Double          DataType = "Double"
	Duration        DataType = "Duration"
	Float           DataType = "Float"
	Integer         DataType = "Integer"
	Long            DataType = "Long"
	Month           DataType = "Month"
	MonthDay        DataType = "MonthDay"
	Numeric         DataType = "Numeric"
	ObsTimePeriod   DataType = "ObservationalTimePeriod"
	RepDay          DataType = "ReportingDay"
	RepMonth        DataType = "ReportingMonth"
	RepQuarter      DataType = "ReportingQuarter"
	RepSemester     DataType = "ReportingSemester"
	RepTimePeriod   DataType = "ReportingTimePeriod"
	RepTrimester    DataType = "ReportingTrimester"
	RepWeek         DataType = "ReportingWeek"
	RepYear         DataType = "ReportingYear"
	Short           DataType = "Short"
	StdTimePeriod   DataType = "StandardTimePeriod"
	String          DataType = "String"
	Time            DataType = "Time"
	TimeRange       DataType = "TimeRange"
	URI             DataType = "URI"
	XHTML           DataType = "XHTML"
	Year            DataType = "GregorianYear"
	YearMonth       DataType = "GregorianYearMonth"
)

var dataTypes = map[string]DataType{}

func init() {
	for _, dt := range []DataType{
		Alpha, AlphaNumeric, BasicTimePeriod, BigInteger, Boolean, Count,
		Date, DateTime, Day, Decimal, Double, Duration, Float, Integer,
		Long, Month, MonthDay, Numeric, ObsTimePeriod, RepDay, RepMonth,
		RepQuarter, RepSemester, RepTimePeriod, RepTrimester, RepWeek,
		RepYear, Short, StdTimePeriod, String, Time, TimeRange, URI,
		XHTML, Year, YearMonth,
	} {
		dataTypes[strings.ToLower(string(dt))] = dt
	}
	// Aliases that appear on the wire but are not the canonical spelling.
	dataTypes["date"] = Date
	dataTypes["year"] = Year
	dataTypes["yearmonth"] = YearMonth
	dataTypes["anyuri"] = URI
}

// ParseDataType maps a wire spelling to a DataType, case-insensitively.
// Unknown or empty spellings resolve to String, the documented default.
func ParseDataType(s string) DataType {
	if dt, ok := dataTypes[strings.ToLower(s)]; ok {
		return dt
	}
	return String
}
