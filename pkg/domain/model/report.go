package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

// ReportXMLStyleSheet is the style sheet of the production schedule report
const ReportXMLStyleSheet = "ProductionSched.xml"

// ReportObject is the payload handed to the legacy report generator
type ReportObject struct {
	Criteria        string `json:"criteria" firestore:"criteria"`
	EnvironmentCode string `json:"environmentCode" firestore:"environment_code"`
	XMLStyleSheet   string `json:"xmlStyleSheet" firestore:"xml_style_sheet"`
	Params          string `json:"prms" firestore:"prms"`
	CallMode        string `json:"callMode" firestore:"call_mode"`
}

// NewReportObject builds the report payload from criteria
func NewReportObject(c *ProductionSchedCriteria, environmentCode, vhsName, user string) *ReportObject {
	return &ReportObject{
		Criteria:        strings.ReplaceAll(c.Summary(), "_", "-"),
		EnvironmentCode: environmentCode,
		XMLStyleSheet:   ReportXMLStyleSheet,
		Params:          c.ReportParameters(vhsName, user),
		CallMode:        "",
	}
}

// ReportRequestID identifies a submitted report
type ReportRequestID string

// NewReportRequestID returns a fresh identifier
func NewReportRequestID() ReportRequestID {
	return ReportRequestID(uuid.NewString())
}

func (id ReportRequestID) String() string {
	return string(id)
}

// ReportRequest records a report submitted to the generator
type ReportRequest struct {
	ID         ReportRequestID  `json:"id" firestore:"id"`
	Screen     types.Screen     `json:"screen" firestore:"screen"`
	ReportType types.ReportType `json:"reportType" firestore:"report_type"`
	Object     ReportObject     `json:"report" firestore:"report"`
	User       string           `json:"user" firestore:"user"`
	URL        string           `json:"url" firestore:"url"`
	CreatedAt  time.Time        `json:"createdAt" firestore:"created_at"`
}
