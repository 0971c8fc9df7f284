package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/shopspring/decimal"
)

// POPayment is one row of the POs paid inquiry
type POPayment struct {
	Vendor           string          `json:"vendor"`
	VendorNum        string          `json:"vendorNum"`
	Warehouse        string          `json:"warehouse"`
	BuyingEntity     string          `json:"buyingEntity"`
	PomOrderNum      string          `json:"pomOrderNum"`
	PomDatePaid      string          `json:"pomDatePaid"`
	CurrencyCode     string          `json:"currencyCode"`
	OrderAmount      decimal.Decimal `json:"orderAmount"`
	TotalAdjustments decimal.Decimal `json:"totalAdjustments"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	POStatus         string          `json:"poStatus"`
	ETDDate          string          `json:"etdDate"`
	ETADate          string          `json:"etaDate"`
	Onboard          string          `json:"onboard"`
	PaymentTerms     string          `json:"paymentTerms"`
	PmtApproveDate   string          `json:"pmtApproveDate"`
}

// Field returns the value of a column addressed by its JSON name
func (x *POPayment) Field(name string) any {
	switch name {
	case "vendor":
		return x.Vendor
	case "vendorNum":
		return x.VendorNum
	case "warehouse":
		return x.Warehouse
	case "buyingEntity":
		return x.BuyingEntity
	case "pomOrderNum":
		return x.PomOrderNum
	case "pomDatePaid":
		return x.PomDatePaid
	case "currencyCode":
		return x.CurrencyCode
	case "orderAmount":
		return x.OrderAmount
	case "totalAdjustments":
		return x.TotalAdjustments
	case "totalPaid":
		return x.TotalPaid
	case "poStatus":
		return x.POStatus
	case "etdDate":
		return x.ETDDate
	case "etaDate":
		return x.ETADate
	case "onboard":
		return x.Onboard
	case "paymentTerms":
		return x.PaymentTerms
	case "pmtApproveDate":
		return x.PmtApproveDate
	default:
		return nil
	}
}

// dateOf returns the record date selected by a date field
func (x *POPayment) dateOf(f types.DateField) string {
	switch f {
	case types.DateFieldETD:
		return x.ETDDate
	case types.DateFieldETA:
		return x.ETADate
	case types.DateFieldOnBoard:
		return x.Onboard
	case types.DateFieldPmtApproved:
		return x.PmtApproveDate
	case types.DateFieldVendorPaid:
		return x.PomDatePaid
	default:
		return ""
	}
}

// PaymentTotals sums the monetary columns of a result set per currency
type PaymentTotals struct {
	CurrencyCode     string          `json:"currencyCode"`
	OrderAmount      decimal.Decimal `json:"orderAmount"`
	TotalAdjustments decimal.Decimal `json:"totalAdjustments"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	Count            int             `json:"count"`
}

// SumPayments totals payments per currency, in first-seen currency order
func SumPayments(payments []*POPayment) []PaymentTotals {
	idx := map[string]int{}
	var totals []PaymentTotals
	for _, p := range payments {
		i, ok := idx[p.CurrencyCode]
		if !ok {
			i = len(totals)
			idx[p.CurrencyCode] = i
			totals = append(totals, PaymentTotals{CurrencyCode: p.CurrencyCode})
		}
		t := &totals[i]
		t.OrderAmount = t.OrderAmount.Add(p.OrderAmount)
		t.TotalAdjustments = t.TotalAdjustments.Add(p.TotalAdjustments)
		t.TotalPaid = t.TotalPaid.Add(p.TotalPaid)
		t.Count++
	}
	return totals
}

// POsPaidCriteria is the search form of the POs paid inquiry
type POsPaidCriteria struct {
	ItemNumber string           `json:"itemNumber" toml:"item_number"`
	Warehouse  string           `json:"warehouse,omitempty" toml:"warehouse"`
	Status     string           `json:"status,omitempty" toml:"status"`
	Vendor     string           `json:"vendor,omitempty" toml:"vendor"`
	DateField  string           `json:"dateField,omitempty" toml:"date_field"`
	DateFrom   string           `json:"dateFrom,omitempty" toml:"date_from"`
	DateTo     string           `json:"dateTo,omitempty" toml:"date_to"`
	ReportType types.ReportType `json:"reportType,omitempty" toml:"report_type"`
}

// DateRange returns the parsed date bounds; nil means unbounded
func (c *POsPaidCriteria) DateRange() (from, to *time.Time, err error) {
	if from, err = parseCriteriaDate("dateFrom", c.DateFrom); err != nil {
		return nil, nil, err
	}
	if to, err = parseCriteriaDate("dateTo", c.DateTo); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// Validate checks the criteria can be sent to the gateway
func (c *POsPaidCriteria) Validate() error {
	from, to, err := c.DateRange()
	if err != nil {
		return err
	}
	if from != nil && to != nil && to.Before(*from) {
		return goerr.Wrap(ErrInvalidCriteria, "date range is reversed",
			goerr.V("from", c.DateFrom), goerr.V("to", c.DateTo))
	}
	return nil
}

// Matches reports whether a payment satisfies the dropdown and date
// selections of the criteria
func (c *POsPaidCriteria) Matches(p *POPayment) bool {
	if v := filterOrBlank(c.Warehouse); v != "" && p.Warehouse != v {
		return false
	}
	if v := filterOrBlank(c.Vendor); v != "" && p.VendorNum != v {
		return false
	}
	if v := filterOrBlank(c.Status); v != "" && !strings.HasPrefix(p.POStatus, v) {
		return false
	}

	df := types.ParseDateField(c.DateField)
	if df == types.DateFieldAll || df == types.DateFieldPODate {
		return true
	}
	from, to, err := c.DateRange()
	if err != nil {
		return false
	}
	if from == nil && to == nil {
		return true
	}
	d, ok := ParseItemDate(p.dateOf(df))
	if !ok {
		return false
	}
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}

// Summary returns the criteria as label/value pairs for export headers
func (c *POsPaidCriteria) Summary() []CriteriaLine {
	lines := []CriteriaLine{
		{Label: "Item Number", Value: c.ItemNumber},
		{Label: types.FieldWarehouse.Desc(), Value: filterOrBlank(c.Warehouse)},
		{Label: types.FieldPOStatus.Desc(), Value: filterOrBlank(c.Status)},
		{Label: types.FieldVendor.Desc(), Value: filterOrBlank(c.Vendor)},
	}
	if df := types.ParseDateField(c.DateField); df != types.DateFieldAll {
		lines = append(lines, CriteriaLine{Label: "Date Field", Value: df.Label()})
	}
	lines = append(lines,
		CriteriaLine{Label: "Date From", Value: c.DateFrom},
		CriteriaLine{Label: "Date To", Value: c.DateTo},
	)
	return compactLines(lines)
}
