package types

import (
	"fmt"
	"strconv"
)

// DateField selects which date the POs paid search ranges over
type DateField int

const (
	DateFieldAll         DateField = -1
	DateFieldPODate      DateField = 0
	DateFieldETD         DateField = 1
	DateFieldETA         DateField = 2
	DateFieldOnBoard     DateField = 3
	DateFieldPmtApproved DateField = 4
	DateFieldVendorPaid  DateField = 5
)

var dateFieldLabels = map[DateField]string{
	DateFieldAll:         "All Dates",
	DateFieldPODate:      "PO Date",
	DateFieldETD:         "ETD",
	DateFieldETA:         "ETA",
	DateFieldOnBoard:     "On Board",
	DateFieldPmtApproved: "Pmt Approved",
	DateFieldVendorPaid:  "Vendor Paid",
}

// AllDateFields returns every date field option in display order
func AllDateFields() []DateField {
	return []DateField{
		DateFieldAll,
		DateFieldPODate,
		DateFieldETD,
		DateFieldETA,
		DateFieldOnBoard,
		DateFieldPmtApproved,
		DateFieldVendorPaid,
	}
}

// IsValid checks if the date field is known
func (d DateField) IsValid() bool {
	_, ok := dateFieldLabels[d]
	return ok
}

// Label returns the display label
func (d DateField) Label() string {
	return dateFieldLabels[d]
}

// ParseDateField parses the numeric form. Empty and unparsable input mean all dates.
func ParseDateField(s string) DateField {
	if s == "" {
		return DateFieldAll
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return DateFieldAll
	}
	d := DateField(n)
	if !d.IsValid() {
		return DateFieldAll
	}
	return d
}

// String returns the numeric form
func (d DateField) String() string {
	return fmt.Sprintf("%d", int(d))
}
