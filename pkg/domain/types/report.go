package types

import "fmt"

// ReportType is the delivery channel chosen when submitting a search
type ReportType string

const (
	ReportTypeBrowser ReportType = "browser"
	ReportTypeExcel   ReportType = "excel"
	ReportTypeEmail   ReportType = "email"
)

// IsValid checks if the report type is valid
func (r ReportType) IsValid() bool {
	switch r {
	case ReportTypeBrowser, ReportTypeExcel, ReportTypeEmail:
		return true
	default:
		return false
	}
}

// String returns the string representation of the report type
func (r ReportType) String() string {
	return string(r)
}

// ParseReportType parses a string into a ReportType. Empty means browser.
func ParseReportType(s string) (ReportType, error) {
	if s == "" {
		return ReportTypeBrowser, nil
	}
	// POs paid screen labels its mail option "emailExcel"
	if s == "emailExcel" {
		return ReportTypeEmail, nil
	}
	r := ReportType(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid report type: %s", s)
	}
	return r, nil
}

// ReportBy is the time bucket of the production schedule report
type ReportBy string

const (
	ReportByDaily   ReportBy = "daily"
	ReportByWeekly  ReportBy = "weekly"
	ReportByMonthly ReportBy = "monthly"
)

// DefaultReportBy is used when the caller leaves the bucket unset
const DefaultReportBy = ReportByWeekly

// Code returns the numeric value the production schedule gateway expects.
// Unknown values map to weekly.
func (r ReportBy) Code() int {
	switch r {
	case ReportByDaily:
		return 1
	case ReportByMonthly:
		return 3
	default:
		return 2
	}
}

// IsValid checks if the bucket is known
func (r ReportBy) IsValid() bool {
	switch r {
	case ReportByDaily, ReportByWeekly, ReportByMonthly:
		return true
	default:
		return false
	}
}

// String returns the string representation of the bucket
func (r ReportBy) String() string {
	return string(r)
}
