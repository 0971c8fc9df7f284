package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/shopspring/decimal"
)

func TestPOsPaidCriteria_Matches(t *testing.T) {
	p := &model.POPayment{
		VendorNum:   "V100",
		Warehouse:   "W01",
		POStatus:    "50 Paid",
		ETADate:     "2025-03-10",
		PomDatePaid: "04/01/2025",
	}

	gt.Bool(t, (&model.POsPaidCriteria{}).Matches(p)).True()
	gt.Bool(t, (&model.POsPaidCriteria{Vendor: "V100", Warehouse: "Empty"}).Matches(p)).True()
	gt.Bool(t, (&model.POsPaidCriteria{Vendor: "V200"}).Matches(p)).False()
	gt.Bool(t, (&model.POsPaidCriteria{Status: "50"}).Matches(p)).True()
	gt.Bool(t, (&model.POsPaidCriteria{Status: "40"}).Matches(p)).False()

	// ETA in range, vendor paid out of range
	gt.Bool(t, (&model.POsPaidCriteria{DateField: "2", DateFrom: "2025-03-01", DateTo: "2025-03-31"}).Matches(p)).True()
	gt.Bool(t, (&model.POsPaidCriteria{DateField: "5", DateFrom: "2025-03-01", DateTo: "2025-03-31"}).Matches(p)).False()
	// all dates ignores the range
	gt.Bool(t, (&model.POsPaidCriteria{DateField: "-1", DateFrom: "2030-01-01"}).Matches(p)).True()
}

func TestSumPayments(t *testing.T) {
	payments := []*model.POPayment{
		{CurrencyCode: "USD", OrderAmount: decimal.RequireFromString("100.10"), TotalPaid: decimal.RequireFromString("100.10")},
		{CurrencyCode: "CNY", OrderAmount: decimal.RequireFromString("5"), TotalAdjustments: decimal.RequireFromString("-1")},
		{CurrencyCode: "USD", OrderAmount: decimal.RequireFromString("0.20"), TotalPaid: decimal.RequireFromString("0.20")},
	}

	totals := model.SumPayments(payments)
	gt.Array(t, totals).Length(2)
	gt.Value(t, totals[0].CurrencyCode).Equal("USD")
	gt.Value(t, totals[0].OrderAmount.String()).Equal("100.3")
	gt.Number(t, totals[0].Count).Equal(2)
	gt.Value(t, totals[1].TotalAdjustments.String()).Equal("-1")
}

func TestPOsPaidCriteria_Summary(t *testing.T) {
	c := &model.POsPaidCriteria{Vendor: "V100", DateField: "1", DateFrom: "2025-01-01"}
	lines := c.Summary()
	gt.Array(t, lines).Length(3)
	gt.Value(t, lines[1].String()).Equal("Date Field: ETD")
}
