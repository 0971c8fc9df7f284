package model

import (
	"sort"
	"strconv"
	"strings"

	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

// MaxScheduleWeeks bounds both past and future week counts
const MaxScheduleWeeks = 52

// FilterRow is one condition row of the production schedule search
type FilterRow struct {
	ID                 string                   `json:"id" toml:"id"`
	FieldType          types.FieldID            `json:"fieldType" toml:"field"`
	LogicalOperator    types.LogicalOperator    `json:"logicalOperator,omitempty" toml:"logical_operator"`
	ComparisonOperator types.ComparisonOperator `json:"comparisonOperator" toml:"comparison_operator"`
	FilterValue        string                   `json:"filterValue" toml:"value"`
	IsActive           bool                     `json:"isActive" toml:"active"`
}

// OrderTypeFilters selects which order states are reported
type OrderTypeFilters struct {
	PlannedOrders bool `json:"plannedOrders" toml:"planned"`
	FirmedOrders  bool `json:"firmedOrders" toml:"firmed"`
	ShippedOrders bool `json:"shippedOrders" toml:"shipped"`
}

// Any reports whether at least one order type is selected
func (o OrderTypeFilters) Any() bool {
	return o.PlannedOrders || o.FirmedOrders || o.ShippedOrders
}

// TimePeriod is the reporting window around the current week
type TimePeriod struct {
	PastWeeks   int `json:"pastWeeks" toml:"past_weeks"`
	FutureWeeks int `json:"futureWeeks" toml:"future_weeks"`
}

// ReportOptions holds the remaining report switches
type ReportOptions struct {
	ReportBy              types.ReportBy `json:"reportBy" toml:"report_by"`
	ContainerDirectFilter bool           `json:"containerDirectFilter" toml:"container_direct"`
	RPFilter              bool           `json:"rpFilter" toml:"rp_filter"`
	GroupByWarehouse      bool           `json:"groupByWarehouse" toml:"group_by_warehouse"`
}

// ProductionSchedCriteria is the search form of the production schedule
type ProductionSchedCriteria struct {
	FilterRows       []FilterRow      `json:"filterRows" toml:"filter"`
	OrderTypeFilters OrderTypeFilters `json:"orderTypeFilters" toml:"order_types"`
	TimePeriod       TimePeriod       `json:"timePeriod" toml:"time_period"`
	ReportOptions    ReportOptions    `json:"reportOptions" toml:"report_options"`
	ReportType       types.ReportType `json:"reportType,omitempty" toml:"report_type"`
}

// Validation messages of the production schedule search
const (
	MsgNoFilterCriteria = "At least one filter criteria must be specified"
	MsgNoOrderType      = "At least one order type must be selected"
	MsgPastWeeksRange   = "Past weeks must be between 0 and 52"
	MsgFutureWeeksRange = "Future weeks must be between 0 and 52"
)

// Validate collects every reason the criteria cannot be submitted.
// It returns nil or a ValidationErrors value.
func (c *ProductionSchedCriteria) Validate() error {
	var errs ValidationErrors

	hasActive := false
	for _, row := range c.FilterRows {
		if row.IsActive && strings.TrimSpace(row.FilterValue) != "" {
			hasActive = true
			break
		}
	}
	if !hasActive {
		errs = append(errs, MsgNoFilterCriteria)
	}
	if !c.OrderTypeFilters.Any() {
		errs = append(errs, MsgNoOrderType)
	}
	if c.TimePeriod.PastWeeks < 0 || c.TimePeriod.PastWeeks > MaxScheduleWeeks {
		errs = append(errs, MsgPastWeeksRange)
	}
	if c.TimePeriod.FutureWeeks < 0 || c.TimePeriod.FutureWeeks > MaxScheduleWeeks {
		errs = append(errs, MsgFutureWeeksRange)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FilterValue returns the value of the first active row for field, which is
// what the search gateway receives.
func (c *ProductionSchedCriteria) FilterValue(field types.FieldID) string {
	for _, row := range c.FilterRows {
		if row.FieldType == field && row.IsActive {
			return strings.TrimSpace(row.FilterValue)
		}
	}
	return ""
}

// reportValue returns the value of the last row for field regardless of
// its active flag. The report generator has always been fed this way.
func (c *ProductionSchedCriteria) reportValue(field types.FieldID) string {
	v := ""
	for _, row := range c.FilterRows {
		if row.FieldType == field {
			v = row.FilterValue
		}
	}
	return v
}

// ReportBy returns the configured bucket, defaulting to weekly
func (c *ProductionSchedCriteria) ReportBy() types.ReportBy {
	if c.ReportOptions.ReportBy == "" {
		return types.DefaultReportBy
	}
	return c.ReportOptions.ReportBy
}

// Summary renders the human readable criteria line
func (c *ProductionSchedCriteria) Summary() string {
	const sep = ", "
	var b strings.Builder

	for i, row := range c.FilterRows {
		if i > 0 && row.LogicalOperator != "" {
			b.WriteString(" " + row.LogicalOperator.String() + " ")
		}
		b.WriteString(row.FieldType.String() + " " + row.ComparisonOperator.String() + ` "` + row.FilterValue + `"`)
	}

	var orderTypes []string
	if c.OrderTypeFilters.PlannedOrders {
		orderTypes = append(orderTypes, types.OrderTypePlanned.String())
	}
	if c.OrderTypeFilters.FirmedOrders {
		orderTypes = append(orderTypes, types.OrderTypeFirmed.String())
	}
	if c.OrderTypeFilters.ShippedOrders {
		orderTypes = append(orderTypes, types.OrderTypeShipped.String())
	}
	if len(orderTypes) > 0 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString("Order Types: " + strings.Join(orderTypes, sep))
	}

	if b.Len() > 0 {
		b.WriteString(sep)
	}
	b.WriteString("Past Weeks: " + strconv.Itoa(c.TimePeriod.PastWeeks))
	b.WriteString(sep + "Future Weeks: " + strconv.Itoa(c.TimePeriod.FutureWeeks))
	b.WriteString(sep + "Report By: " + c.ReportBy().String())

	if c.ReportOptions.ContainerDirectFilter {
		b.WriteString(sep + "Container Direct Filter")
	}
	return b.String()
}

// ReportParameterCount is the number of positional report parameters
const ReportParameterCount = 19

// ReportParameters encodes the criteria into the pipe-delimited positional
// string consumed by the report generator:
//
//	item|vendor|warehouse|drp|fc|pastWeeks|futureWeeks|vhsName|user|
//	groupByWarehouse|rpFilter|planned|firmed|shipped|ProductionSched.asp|
//	reportBy|containerDirect|productionResource|itemClass
func (c *ProductionSchedCriteria) ReportParameters(vhsName, user string) string {
	params := [ReportParameterCount]string{
		c.reportValue(types.FieldItem),
		c.reportValue(types.FieldVendor),
		c.reportValue(types.FieldWarehouse),
		c.reportValue(types.FieldDRP),
		c.reportValue(types.FieldFC),
		strconv.Itoa(c.TimePeriod.PastWeeks),
		strconv.Itoa(c.TimePeriod.FutureWeeks),
		vhsName,
		user,
		"false",
		strconv.FormatBool(c.ReportOptions.RPFilter),
		flag(c.OrderTypeFilters.PlannedOrders),
		flag(c.OrderTypeFilters.FirmedOrders),
		flag(c.OrderTypeFilters.ShippedOrders),
		"ProductionSched.asp",
		c.ReportBy().String(),
		flag(c.ReportOptions.ContainerDirectFilter),
		c.reportValue(types.FieldProductionResource),
		c.reportValue(types.FieldItemClass),
	}
	return strings.Join(params[:], "|")
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// ProductionSchedRecord is one order line of the production schedule
type ProductionSchedRecord struct {
	OrderNum           string  `json:"orderNum"`
	PQty               float64 `json:"pQty"`
	FQty               float64 `json:"fQty"`
	SQty               float64 `json:"sQty"`
	WkNum              int     `json:"wkNum"`
	ItemNum            string  `json:"itemNum"`
	ItemClass          string  `json:"itemClass"`
	ItemDesc           string  `json:"itemDesc"`
	ReplaceableFlag    string  `json:"replaceableFlag"`
	Whse               string  `json:"whse"`
	VendorNum          string  `json:"vendorNum"`
	VendorName         string  `json:"vendorName"`
	ProductionResource string  `json:"productionResource"`
}

// Field returns the value of a column addressed by its JSON name
func (x *ProductionSchedRecord) Field(name string) any {
	switch name {
	case "orderNum":
		return x.OrderNum
	case "pQty":
		return x.PQty
	case "fQty":
		return x.FQty
	case "sQty":
		return x.SQty
	case "wkNum":
		return x.WkNum
	case "itemNum":
		return x.ItemNum
	case "itemClass":
		return x.ItemClass
	case "itemDesc":
		return x.ItemDesc
	case "whse":
		return x.Whse
	case "vendorNum":
		return x.VendorNum
	case "vendorName":
		return x.VendorName
	case "productionResource":
		return x.ProductionResource
	default:
		return nil
	}
}

// Qty returns the quantity of an order type
func (x *ProductionSchedRecord) Qty(t types.OrderType) float64 {
	switch t {
	case types.OrderTypeFirmed:
		return x.FQty
	case types.OrderTypeShipped:
		return x.SQty
	case types.OrderTypePlanned:
		return x.PQty
	default:
		return 0
	}
}

// WeeklyRow is one item/order-type line of the weekly pivot
type WeeklyRow struct {
	ItemNum   string          `json:"itemNum"`
	ItemDesc  string          `json:"itemDesc"`
	ItemClass string          `json:"itemClass"`
	OrderType types.OrderType `json:"orderType"`
	Weekly    map[int]float64 `json:"weeklyData"`
	Total     float64         `json:"total"`
}

// WeeklySchedule is the production schedule pivoted by week number
type WeeklySchedule struct {
	Weeks []int       `json:"weeks"`
	Rows  []WeeklyRow `json:"rows"`
}

// PivotProductionSchedule groups records by item and spreads quantities
// across week columns. Rows are sorted by item number, and each item yields
// one row per order type in Firmed, Shipped, Planned order.
func PivotProductionSchedule(records []*ProductionSchedRecord) *WeeklySchedule {
	weekSet := map[int]struct{}{}
	byItem := map[string][]*ProductionSchedRecord{}
	var items []string

	for _, r := range records {
		weekSet[r.WkNum] = struct{}{}
		if _, ok := byItem[r.ItemNum]; !ok {
			items = append(items, r.ItemNum)
		}
		byItem[r.ItemNum] = append(byItem[r.ItemNum], r)
	}
	sort.Strings(items)

	weeks := make([]int, 0, len(weekSet))
	for w := range weekSet {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	result := &WeeklySchedule{Weeks: weeks, Rows: []WeeklyRow{}}
	for _, item := range items {
		recs := byItem[item]
		for _, ot := range types.PivotOrderTypes() {
			row := WeeklyRow{
				ItemNum:   item,
				ItemDesc:  recs[0].ItemDesc,
				ItemClass: recs[0].ItemClass,
				OrderType: ot,
				Weekly:    map[int]float64{},
			}
			for _, r := range recs {
				q := r.Qty(ot)
				row.Weekly[r.WkNum] += q
				row.Total += q
			}
			result.Rows = append(result.Rows, row)
		}
	}
	return result
}
