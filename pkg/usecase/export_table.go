package usecase

import (
	"strconv"

	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/shopspring/decimal"
)

// exportColumn maps a record onto one spreadsheet column
type exportColumn[R any] struct {
	header string
	value  func(R) any
}

// exportTable is a rendered-agnostic view of a result set
type exportTable struct {
	title    string
	criteria []model.CriteriaLine
	headers  []string
	rows     [][]any
	// footer rows are appended after a blank line
	footer [][]any
	// weekly is the pivot sheet of the production schedule
	weekly *model.WeeklySchedule
}

func buildRows[R any](records []R, cols []exportColumn[R]) ([]string, [][]any) {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		row := make([]any, len(cols))
		for i, c := range cols {
			row[i] = c.value(r)
		}
		rows = append(rows, row)
	}
	return headers, rows
}

var poItemColumns = []exportColumn[*model.POItem]{
	{"PO Number", func(x *model.POItem) any { return x.PONumber }},
	{"Item Number", func(x *model.POItem) any { return x.ItemNumber }},
	{"Description", func(x *model.POItem) any { return x.ItemDesc }},
	{"Vendor", func(x *model.POItem) any { return x.Vendor }},
	{"Vendor Name", func(x *model.POItem) any { return x.VName }},
	{"Warehouse", func(x *model.POItem) any { return x.Whse }},
	{"Order Qty", func(x *model.POItem) any { return x.OrderQty }},
	{"Open Qty", func(x *model.POItem) any { return x.OrderQtyOpen }},
	{"Due Date", func(x *model.POItem) any { return x.Due }},
	{"Status", func(x *model.POItem) any { return x.ProcStatusDesc }},
	{"Buyer", func(x *model.POItem) any { return x.BuyerName() }},
	{"Order Date", func(x *model.POItem) any { return x.OrderDate }},
	{"Ship Date", func(x *model.POItem) any { return x.ShipDate }},
	{"Expected Delivery", func(x *model.POItem) any { return x.ExpectedDelivery }},
}

var scheduleColumns = []exportColumn[*model.ProductionSchedRecord]{
	{"Order Number", func(x *model.ProductionSchedRecord) any { return x.OrderNum }},
	{"Item Number", func(x *model.ProductionSchedRecord) any { return x.ItemNum }},
	{"Description", func(x *model.ProductionSchedRecord) any { return x.ItemDesc }},
	{"Item Class", func(x *model.ProductionSchedRecord) any { return x.ItemClass }},
	{"Vendor Number", func(x *model.ProductionSchedRecord) any { return x.VendorNum }},
	{"Vendor Name", func(x *model.ProductionSchedRecord) any { return x.VendorName }},
	{"Warehouse", func(x *model.ProductionSchedRecord) any { return x.Whse }},
	{"Production Resource", func(x *model.ProductionSchedRecord) any { return x.ProductionResource }},
	{"Week Number", func(x *model.ProductionSchedRecord) any { return x.WkNum }},
	{"Planned Qty", func(x *model.ProductionSchedRecord) any { return x.PQty }},
	{"Firmed Qty", func(x *model.ProductionSchedRecord) any { return x.FQty }},
	{"Shipped Qty", func(x *model.ProductionSchedRecord) any { return x.SQty }},
	{"Replaceable Flag", func(x *model.ProductionSchedRecord) any { return x.ReplaceableFlag }},
}

var paymentColumns = []exportColumn[*model.POPayment]{
	{"Vendor", func(x *model.POPayment) any { return x.Vendor }},
	{"Vendor Number", func(x *model.POPayment) any { return x.VendorNum }},
	{"Warehouse", func(x *model.POPayment) any { return x.Warehouse }},
	{"Buying Entity", func(x *model.POPayment) any { return x.BuyingEntity }},
	{"PO Number", func(x *model.POPayment) any { return x.PomOrderNum }},
	{"Date Paid", func(x *model.POPayment) any { return x.PomDatePaid }},
	{"Currency", func(x *model.POPayment) any { return x.CurrencyCode }},
	{"Order Amount", func(x *model.POPayment) any { return x.OrderAmount }},
	{"Total Adjustments", func(x *model.POPayment) any { return x.TotalAdjustments }},
	{"Total Paid", func(x *model.POPayment) any { return x.TotalPaid }},
	{"PO Status", func(x *model.POPayment) any { return x.POStatus }},
	{"ETD", func(x *model.POPayment) any { return x.ETDDate }},
	{"ETA", func(x *model.POPayment) any { return x.ETADate }},
	{"On Board", func(x *model.POPayment) any { return x.Onboard }},
	{"Payment Terms", func(x *model.POPayment) any { return x.PaymentTerms }},
	{"Pmt Approved", func(x *model.POPayment) any { return x.PmtApproveDate }},
}

// newExportTable lays out a stored result for rendering
func newExportTable(res *StoredResult) *exportTable {
	t := &exportTable{title: res.Screen.Title()}

	switch res.Screen {
	case types.ScreenPOItems:
		t.criteria = res.POItemCriteria.Summary()
		t.headers, t.rows = buildRows(res.POItems, poItemColumns)

	case types.ScreenProductionSchedule:
		t.criteria = []model.CriteriaLine{{Label: "Criteria", Value: res.ScheduleCriteria.Summary()}}
		t.headers, t.rows = buildRows(res.Schedule, scheduleColumns)
		t.weekly = model.PivotProductionSchedule(res.Schedule)

	case types.ScreenPOsPaid:
		t.criteria = res.POsPaidCriteria.Summary()
		t.headers, t.rows = buildRows(res.Payments, paymentColumns)
		for _, tot := range model.SumPayments(res.Payments) {
			row := make([]any, len(paymentColumns))
			row[0] = "Total (" + strconv.Itoa(tot.Count) + ")"
			row[6] = tot.CurrencyCode
			row[7] = tot.OrderAmount
			row[8] = tot.TotalAdjustments
			row[9] = tot.TotalPaid
			t.footer = append(t.footer, row)
		}
	}
	return t
}

// cellText renders a cell for text formats
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case decimal.Decimal:
		return x.StringFixed(2)
	default:
		return ""
	}
}
