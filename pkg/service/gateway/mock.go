package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/shopspring/decimal"
)

// Mock serves a deterministic fixture data set with the same envelope
// shapes the real gateway uses. It backs --gateway-backend=mock.
type Mock struct {
	poItems   []*model.POItem
	schedule  []*model.ProductionSchedRecord
	payments  []*model.POPayment
	responses map[types.FieldID]any
}

type mockBuyer struct {
	BuyerNum  string `json:"buyerNum"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type mockCode struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var (
	mockBuyers = []mockBuyer{
		{"B01", "Alex", "Morgan"},
		{"B02", "Sam", "Lee"},
		{"B03", "Jordan", "Patel"},
		{"B04", "Casey", "Nguyen"},
		{"B05", "Riley", "Garcia"},
	}
	mockVendors = []mockCode{
		{"V100", "Northwind Timber"},
		{"V200", "Pacific Fabrics"},
		{"V300", "Lakeside Metals"},
		{"V400", "Summit Foam"},
	}
	mockWarehouses = []mockCode{
		{"W01", "Arcadia"},
		{"W02", "Ecru"},
		{"W03", "Leesport"},
	}
	mockStatuses = []mockCode{
		{"10", "Cfm Required"},
		{"20", "On-Order"},
		{"30", "In-Transit"},
		{"35", "Partial RcToStk"},
		{"40", "Rc. to Stk."},
		{"50", "Paid"},
	}
	mockItemClasses = []string{"CASE", "UPH", "BED", "OUTD"}
	mockPlanners    = []mockCode{{"P01", "Planner Alpha"}, {"P02", "Planner Beta"}, {"P03", "Planner Gamma"}}
)

// NewMock builds the fixture data set
func NewMock() *Mock {
	m := &Mock{}
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= 500; i++ {
		b := mockBuyers[i%len(mockBuyers)]
		v := mockVendors[i%len(mockVendors)]
		w := mockWarehouses[i%len(mockWarehouses)]
		s := mockStatuses[i%len(mockStatuses)]
		due := base.AddDate(0, 0, (i*7)%120)
		qty := float64(10 + (i*13)%90)
		m.poItems = append(m.poItems, &model.POItem{
			PONumber:         fmt.Sprintf("PO%06d", 100000+i),
			Vendor:           v.Code,
			VName:            v.Name,
			ItemNumber:       fmt.Sprintf("ITM%03d", i),
			ItemDesc:         fmt.Sprintf("Item %03d", i),
			Whse:             w.Code,
			OrderQty:         qty,
			OrderQtyOpen:     float64(int(qty) / 2),
			Due:              due.Format(model.ISODate),
			Status:           s.Name,
			StatusCode:       s.Code,
			ProcStatus:       s.Code,
			ProcStatusDesc:   s.Name,
			BuyerNum:         b.BuyerNum,
			BuyerFirstName:   b.FirstName,
			BuyerLastName:    b.LastName,
			OrderDate:        due.AddDate(0, 0, -30).Format(model.ISODate),
			ShipDate:         due.AddDate(0, 0, -7).Format(model.ISODate),
			ExpectedDelivery: due.AddDate(0, 0, 3).Format(model.ISODate),
		})
	}

	for i := 1; i <= 40; i++ {
		v := mockVendors[i%len(mockVendors)]
		for wk := 1; wk <= 12; wk++ {
			m.schedule = append(m.schedule, &model.ProductionSchedRecord{
				OrderNum:           fmt.Sprintf("ORD%05d", i*100+wk),
				PQty:               float64((i * wk) % 17),
				FQty:               float64((i + wk) % 11),
				SQty:               float64((i * 3 * wk) % 7),
				WkNum:              wk,
				ItemNum:            fmt.Sprintf("ITM%03d", i),
				ItemClass:          mockItemClasses[i%len(mockItemClasses)],
				ItemDesc:           fmt.Sprintf("Item %03d", i),
				ReplaceableFlag:    map[bool]string{true: "Y", false: "N"}[i%5 == 0],
				Whse:               mockWarehouses[i%len(mockWarehouses)].Code,
				VendorNum:          v.Code,
				VendorName:         v.Name,
				ProductionResource: fmt.Sprintf("PR%02d", i%6),
			})
		}
	}

	for i := 1; i <= 120; i++ {
		v := mockVendors[i%len(mockVendors)]
		paid := base.AddDate(0, 0, (i*5)%150)
		amount := decimal.New(int64(100000+i*7919%50000), -2)
		adj := decimal.New(int64(-(i%4)*250), -2)
		m.payments = append(m.payments, &model.POPayment{
			Vendor:           v.Name,
			VendorNum:        v.Code,
			Warehouse:        mockWarehouses[i%len(mockWarehouses)].Code,
			BuyingEntity:     "AFI",
			PomOrderNum:      fmt.Sprintf("PO%06d", 200000+i),
			PomDatePaid:      paid.Format(model.ISODate),
			CurrencyCode:     []string{"USD", "USD", "CNY"}[i%3],
			OrderAmount:      amount,
			TotalAdjustments: adj,
			TotalPaid:        amount.Add(adj),
			POStatus:         mockStatuses[i%len(mockStatuses)].Code,
			ETDDate:          paid.AddDate(0, 0, -40).Format(model.ISODate),
			ETADate:          paid.AddDate(0, 0, -10).Format(model.ISODate),
			Onboard:          paid.AddDate(0, 0, -38).Format(model.ISODate),
			PaymentTerms:     "NET30",
			PmtApproveDate:   paid.AddDate(0, 0, -2).Format(model.ISODate),
		})
	}

	m.responses = mockResponses()
	return m
}

// mockResponses mirrors the envelope variety of the real lookups
func mockResponses() map[types.FieldID]any {
	var vendorsActive []map[string]any
	for i, v := range mockVendors {
		vendorsActive = append(vendorsActive, map[string]any{
			"vendorNumber": v.Code, "vendorName": v.Name, "isActive": i != len(mockVendors)-1,
		})
	}
	var whse []map[string]string
	for _, w := range mockWarehouses {
		whse = append(whse, map[string]string{"whseCode": w.Code, "whseDescription": w.Name})
	}
	var statuses []map[string]string
	for _, s := range mockStatuses {
		statuses = append(statuses, map[string]string{"statusCode": s.Code, "statusDescription": s.Name})
	}
	var domVendors []map[string]string
	for _, v := range mockVendors {
		domVendors = append(domVendors, map[string]string{"vendorNum": v.Code, "vendorName": v.Name})
	}
	var classes []map[string]string
	for _, c := range mockItemClasses {
		classes = append(classes, map[string]string{"itemClass": c})
	}
	var planners []map[string]string
	for _, p := range mockPlanners {
		planners = append(planners, map[string]string{"plannerCode": p.Code, "plannerName": p.Name})
	}

	return map[types.FieldID]any{
		types.FieldBuyer:        map[string]any{"data": mockBuyers, "success": true},
		types.FieldPOItemVendor: domVendors,
		types.FieldPOItemStatus: map[string]any{"statuses": statuses},
		types.FieldPOItemWhse:   map[string]any{"items": whse},
		types.FieldWarehouse:    map[string]any{"items": whse},
		types.FieldVendor:       map[string]any{"data": vendorsActive},
		types.FieldItemClass:    map[string]any{"data": classes, "message": "ok"},
		types.FieldDRP:          map[string]any{"data": planners},
		types.FieldFC:           map[string]any{"data": planners},
		types.FieldOffice: map[string]any{"data": []map[string]string{
			{"officeCode": "AFI", "officeName": "Ashley Furniture Industries"},
			{"officeCode": "HOM", "officeName": "Home Office"},
		}},
		types.FieldPOStatus: statuses,
	}
}

// FetchFilterSource returns the fixture lookup response of a field
func (m *Mock) FetchFilterSource(ctx context.Context, field types.FieldID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "context done")
	}
	resp, ok := m.responses[field]
	if !ok {
		return nil, goerr.Wrap(ErrNoEndpoint, "no lookup endpoint", goerr.V(FieldKey, field))
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal fixture", goerr.V(FieldKey, field))
	}
	return raw, nil
}

// SearchPOItems filters the fixture PO items with the criteria
func (m *Mock) SearchPOItems(ctx context.Context, c *model.POItemCriteria) ([]*model.POItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "context done")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := []*model.POItem{}
	for _, it := range m.poItems {
		if c.Matches(it) {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

// SearchProductionSchedule filters the fixture schedule with the active rows
func (m *Mock) SearchProductionSchedule(ctx context.Context, c *model.ProductionSchedCriteria) ([]*model.ProductionSchedRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "context done")
	}
	item := strings.ToLower(c.FilterValue(types.FieldItem))
	vendor := c.FilterValue(types.FieldVendor)
	whse := c.FilterValue(types.FieldWarehouse)
	class := c.FilterValue(types.FieldItemClass)
	limit := c.TimePeriod.FutureWeeks
	if limit == 0 {
		limit = 12
	}

	out := []*model.ProductionSchedRecord{}
	for _, r := range m.schedule {
		if item != "" && !strings.Contains(strings.ToLower(r.ItemNum), item) {
			continue
		}
		if vendor != "" && r.VendorNum != vendor {
			continue
		}
		if whse != "" && r.Whse != whse {
			continue
		}
		if class != "" && class != "ALL" && r.ItemClass != class {
			continue
		}
		if r.WkNum > limit {
			continue
		}
		cp := *r
		if !c.OrderTypeFilters.PlannedOrders {
			cp.PQty = 0
		}
		if !c.OrderTypeFilters.FirmedOrders {
			cp.FQty = 0
		}
		if !c.OrderTypeFilters.ShippedOrders {
			cp.SQty = 0
		}
		out = append(out, &cp)
	}
	return out, nil
}

// SearchPOsPaid filters the fixture payments with the criteria
func (m *Mock) SearchPOsPaid(ctx context.Context, c *model.POsPaidCriteria) ([]*model.POPayment, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "context done")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := []*model.POPayment{}
	for _, p := range m.payments {
		if c.Matches(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}
