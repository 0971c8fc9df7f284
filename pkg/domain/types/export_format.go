package types

import "fmt"

// ExportFormat is the file format of a result export
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// IsValid checks if the format is valid
func (f ExportFormat) IsValid() bool {
	return f == ExportFormatCSV || f == ExportFormatXLSX
}

// ContentType returns the MIME type of the format
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatCSV:
		return "text/csv; charset=utf-8"
	case ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// String returns the string representation of the format
func (f ExportFormat) String() string {
	return string(f)
}

// ParseExportFormat parses a string into an ExportFormat
func ParseExportFormat(s string) (ExportFormat, error) {
	f := ExportFormat(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid export format: %s", s)
	}
	return f, nil
}
