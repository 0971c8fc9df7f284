package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

// ExportRecordID identifies an archived export
type ExportRecordID string

// NewExportRecordID returns a fresh identifier
func NewExportRecordID() ExportRecordID {
	return ExportRecordID(uuid.NewString())
}

func (id ExportRecordID) String() string {
	return string(id)
}

// ExportFile is a rendered result export
type ExportFile struct {
	Screen   types.Screen
	Format   types.ExportFormat
	FileName string
	Rows     int
	Data     []byte
}

// ContentType returns the MIME type of the file
func (f *ExportFile) ContentType() string {
	return f.Format.ContentType()
}

// ExportRecord records an export that was archived or shared
type ExportRecord struct {
	ID        ExportRecordID     `json:"id" firestore:"id"`
	Screen    types.Screen       `json:"screen" firestore:"screen"`
	Format    types.ExportFormat `json:"format" firestore:"format"`
	FileName  string             `json:"fileName" firestore:"file_name"`
	Rows      int                `json:"rows" firestore:"rows"`
	Location  string             `json:"location,omitempty" firestore:"location"`
	SharedTo  string             `json:"sharedTo,omitempty" firestore:"shared_to"`
	CreatedAt time.Time          `json:"createdAt" firestore:"created_at"`
}
