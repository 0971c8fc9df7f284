package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

// POItem is one row of the PO item inquiry
type POItem struct {
	PONumber         string  `json:"poNumber"`
	Vendor           string  `json:"vendor"`
	ItemNumber       string  `json:"itemNumber"`
	Whse             string  `json:"whse"`
	OrderQty         float64 `json:"orderQty"`
	OrderQtyOpen     float64 `json:"orderQtyOpen"`
	Due              string  `json:"due"`
	Status           string  `json:"status"`
	BuyerFirstName   string  `json:"buyerFirstName"`
	BuyerLastName    string  `json:"buyerLastName"`
	BuyerNum         string  `json:"buyerNum"`
	ProcStatus       string  `json:"procStatus"`
	ProcStatusDesc   string  `json:"procStatusDesc"`
	VName            string  `json:"vname"`
	StatusCode       string  `json:"statusCode"`
	IntransitQty     float64 `json:"intransitQty"`
	InspectionQty    float64 `json:"inspectionQty"`
	OrderDate        string  `json:"orderDate"`
	ShipDate         string  `json:"shipDate"`
	StockQty         float64 `json:"stockQty"`
	ReturnedQty      float64 `json:"returnedQty"`
	ExpectedDelivery string  `json:"xpectedDelivery"`
	ItemDesc         string  `json:"itemDesc"`
}

// Field returns the value of a column addressed by its JSON name
func (x *POItem) Field(name string) any {
	switch name {
	case "poNumber":
		return x.PONumber
	case "vendor":
		return x.Vendor
	case "itemNumber":
		return x.ItemNumber
	case "whse":
		return x.Whse
	case "orderQty":
		return x.OrderQty
	case "orderQtyOpen":
		return x.OrderQtyOpen
	case "due":
		return x.Due
	case "status":
		return x.Status
	case "buyerNum":
		return x.BuyerNum
	case "procStatusDesc":
		return x.ProcStatusDesc
	case "vname":
		return x.VName
	case "orderDate":
		return x.OrderDate
	case "shipDate":
		return x.ShipDate
	case "itemDesc":
		return x.ItemDesc
	default:
		return nil
	}
}

// BuyerName returns the buyer's display name
func (x *POItem) BuyerName() string {
	return strings.TrimSpace(x.BuyerFirstName + " " + x.BuyerLastName)
}

// POItemCriteria is the search form of the PO item inquiry. Dates are
// ISO formatted (YYYY-MM-DD).
type POItemCriteria struct {
	ItemNumber  string           `json:"itemNumber" toml:"item_number"`
	DueDateFrom string           `json:"dueDateFrom,omitempty" toml:"due_date_from"`
	DueDateTo   string           `json:"dueDateTo,omitempty" toml:"due_date_to"`
	Buyer       string           `json:"buyerValue,omitempty" toml:"buyer"`
	Vendor      string           `json:"vendorValue,omitempty" toml:"vendor"`
	Status      string           `json:"statusValue,omitempty" toml:"status"`
	Warehouse   string           `json:"warehouseValue,omitempty" toml:"warehouse"`
	ReportType  types.ReportType `json:"reportType,omitempty" toml:"report_type"`
}

// ISODate is the date layout used in criteria and export file names
const ISODate = "2006-01-02"

// GatewayDate is the date layout the search gateways expect
const GatewayDate = "01/02/2006"

var itemDateLayouts = []string{ISODate, GatewayDate, time.RFC3339, "2006-01-02T15:04:05"}

// ParseItemDate parses a date as it appears in gateway records
func ParseItemDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range itemDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseCriteriaDate(name, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse(ISODate, strings.TrimSpace(s))
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidCriteria, "invalid date", goerr.V(CriteriaFieldKey, name), goerr.V("value", s))
	}
	return &t, nil
}

// DueDateRange returns the parsed due date bounds; nil means unbounded
func (c *POItemCriteria) DueDateRange() (from, to *time.Time, err error) {
	if from, err = parseCriteriaDate("dueDateFrom", c.DueDateFrom); err != nil {
		return nil, nil, err
	}
	if to, err = parseCriteriaDate("dueDateTo", c.DueDateTo); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// Validate checks the criteria can be sent to the gateway
func (c *POItemCriteria) Validate() error {
	from, to, err := c.DueDateRange()
	if err != nil {
		return err
	}
	if from != nil && to != nil && to.Before(*from) {
		return goerr.Wrap(ErrInvalidCriteria, "due date range is reversed",
			goerr.V("from", c.DueDateFrom), goerr.V("to", c.DueDateTo))
	}
	if c.ReportType != "" && !c.ReportType.IsValid() {
		return goerr.Wrap(ErrInvalidCriteria, "invalid report type", goerr.V(CriteriaFieldKey, "reportType"))
	}
	return nil
}

// Matches reports whether item satisfies the criteria. Item number is a
// case-insensitive substring match; dropdown selections match by code.
func (c *POItemCriteria) Matches(item *POItem) bool {
	if c.ItemNumber != "" && !containsFold(item.ItemNumber, strings.TrimSpace(c.ItemNumber)) {
		return false
	}
	if v := filterOrBlank(c.Buyer); v != "" && !strings.Contains(item.BuyerNum, v) {
		return false
	}
	if v := filterOrBlank(c.Vendor); v != "" && !strings.Contains(item.Vendor, v) && item.VName != v {
		return false
	}
	if v := filterOrBlank(c.Status); v != "" && item.StatusCode != v && !strings.Contains(item.Status, v) {
		return false
	}
	if v := filterOrBlank(c.Warehouse); v != "" && !strings.Contains(item.Whse, v) {
		return false
	}

	from, to, err := c.DueDateRange()
	if err != nil {
		return false
	}
	if from != nil || to != nil {
		due, ok := ParseItemDate(item.Due)
		if !ok {
			return false
		}
		if from != nil && due.Before(*from) {
			return false
		}
		if to != nil && due.After(*to) {
			return false
		}
	}
	return true
}

// Summary returns the criteria as label/value pairs for export headers
func (c *POItemCriteria) Summary() []CriteriaLine {
	lines := []CriteriaLine{
		{Label: "Item Number", Value: c.ItemNumber},
		{Label: "Due Date From", Value: c.DueDateFrom},
		{Label: "Due Date To", Value: c.DueDateTo},
		{Label: types.FieldBuyer.Desc(), Value: filterOrBlank(c.Buyer)},
		{Label: types.FieldPOItemVendor.Desc(), Value: filterOrBlank(c.Vendor)},
		{Label: types.FieldPOItemStatus.Desc(), Value: filterOrBlank(c.Status)},
		{Label: types.FieldPOItemWhse.Desc(), Value: filterOrBlank(c.Warehouse)},
	}
	return compactLines(lines)
}

// CriteriaLine is one label/value pair of a criteria header
type CriteriaLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func (l CriteriaLine) String() string {
	return fmt.Sprintf("%s: %s", l.Label, l.Value)
}

func compactLines(lines []CriteriaLine) []CriteriaLine {
	out := make([]CriteriaLine, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l.Value) != "" {
			out = append(out, l)
		}
	}
	return out
}
