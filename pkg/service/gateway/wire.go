package gateway

import (
	"strings"
	"time"

	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

type poItemRequest struct {
	VHSName      string `json:"vhsName"`
	ItemNumber   string `json:"itemNumber"`
	VendorNumber string `json:"vendorNumber"`
	Warehouse    string `json:"warehouse"`
	StatusCode   string `json:"statusCode"`
	BuyerNumber  string `json:"buyerNumber"`
	DueDateFrom  string `json:"dueDateFrom"`
	DueDateTo    string `json:"dueDateTo"`
	UserID       string `json:"userId"`
	Application  string `json:"application"`
}

type poItemResponse struct {
	Data         []*model.POItem `json:"data"`
	TotalRecords int             `json:"totalRecords"`
}

type productionScheduleRequest struct {
	ItemNum                string `json:"itemNum"`
	VendorNum              string `json:"vendorNum"`
	Warehouse              string `json:"warehouse"`
	DRPPlanner             string `json:"drpPlanner"`
	ForecastPlanner        string `json:"forecastPlanner"`
	PastWeeks              int    `json:"pastWeeks"`
	ForecastWeeks          int    `json:"forecastWeeks"`
	VHSName                string `json:"vhsName"`
	User                   string `json:"user"`
	GroupByWhse            string `json:"groupByWhse"`
	RPFilter               bool   `json:"rpFilter"`
	PlannedOrders          int    `json:"plannedOrders"`
	FirmedOrders           int    `json:"firmedOrders"`
	ShippedOrders          int    `json:"shippedOrders"`
	App                    string `json:"app"`
	ReportBy               int    `json:"reportBy"`
	ExcludeContainerDirect int    `json:"excludeContainerDirect"`
	ProductionResource     string `json:"productionResource"`
	ItemClass              string `json:"itemClass"`
}

type productionScheduleResponse struct {
	Items        []*model.ProductionSchedRecord `json:"items"`
	Success      bool                           `json:"success"`
	ErrorMessage string                         `json:"errorMessage"`
	TotalCount   int                            `json:"totalCount"`
	RequestID    string                         `json:"requestId"`
}

type posPaidRequest struct {
	ItemNumber string `json:"itemNumber"`
	Warehouse  string `json:"warehouse"`
	Status     string `json:"status"`
	Vendor     string `json:"vendor"`
	DateField  int    `json:"dateField"`
	DateFrom   string `json:"dateFrom"`
	DateTo     string `json:"dateTo"`
	OrderBy    int    `json:"orderBy"`
	VHSName    string `json:"vhsName"`
	User       string `json:"user"`
	App        string `json:"app"`
}

type posPaidResponse struct {
	Success    bool               `json:"success"`
	Data       []*model.POPayment `json:"data"`
	Message    string             `json:"message"`
	TotalCount int                `json:"totalCount"`
	RequestID  string             `json:"requestId"`
}

func gatewayDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(model.GatewayDate)
}

func selection(v string) string {
	if !model.IsFilterSet(v) {
		return ""
	}
	return strings.TrimSpace(v)
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

func newPOItemRequest(c *model.POItemCriteria, user string) (*poItemRequest, error) {
	from, to, err := c.DueDateRange()
	if err != nil {
		return nil, err
	}
	return &poItemRequest{
		VHSName:      "MASTERYY",
		ItemNumber:   strings.TrimSpace(c.ItemNumber),
		VendorNumber: selection(c.Vendor),
		Warehouse:    selection(c.Warehouse),
		StatusCode:   selection(c.Status),
		BuyerNumber:  selection(c.Buyer),
		DueDateFrom:  gatewayDate(from),
		DueDateTo:    gatewayDate(to),
		UserID:       user,
		Application:  "DOM_INQUIRY",
	}, nil
}

func newProductionScheduleRequest(c *model.ProductionSchedCriteria, user string) *productionScheduleRequest {
	return &productionScheduleRequest{
		ItemNum:                c.FilterValue(types.FieldItem),
		VendorNum:              c.FilterValue(types.FieldVendor),
		Warehouse:              c.FilterValue(types.FieldWarehouse),
		DRPPlanner:             c.FilterValue(types.FieldDRP),
		ForecastPlanner:        c.FilterValue(types.FieldFC),
		PastWeeks:              c.TimePeriod.PastWeeks,
		ForecastWeeks:          c.TimePeriod.FutureWeeks,
		VHSName:                "masteryy",
		User:                   user,
		GroupByWhse:            "false",
		RPFilter:               c.ReportOptions.RPFilter,
		PlannedOrders:          bit(c.OrderTypeFilters.PlannedOrders),
		FirmedOrders:           bit(c.OrderTypeFilters.FirmedOrders),
		ShippedOrders:          bit(c.OrderTypeFilters.ShippedOrders),
		App:                    "ProductionSchedule",
		ReportBy:               c.ReportBy().Code(),
		ExcludeContainerDirect: 1 - bit(c.ReportOptions.ContainerDirectFilter),
		ProductionResource:     c.FilterValue(types.FieldProductionResource),
		ItemClass:              c.FilterValue(types.FieldItemClass),
	}
}

func newPOsPaidRequest(c *model.POsPaidCriteria) *posPaidRequest {
	return &posPaidRequest{
		ItemNumber: strings.TrimSpace(c.ItemNumber),
		Warehouse:  selection(c.Warehouse),
		Status:     selection(c.Status),
		Vendor:     selection(c.Vendor),
		DateField:  int(types.ParseDateField(c.DateField)),
		DateFrom:   c.DateFrom,
		DateTo:     c.DateTo,
		OrderBy:    1,
		VHSName:    "MASTERYY",
		User:       "system",
		App:        "POsPaidInq.asp",
	}
}
