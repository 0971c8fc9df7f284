package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
)

func TestPOItemCriteria_Matches(t *testing.T) {
	items := []*model.POItem{
		{ItemNumber: "ITM001", BuyerNum: "B01", Vendor: "V100", Whse: "W01", StatusCode: "20", Due: "2025-01-15"},
		{ItemNumber: "itm0015", BuyerNum: "B02", Vendor: "V200", Whse: "W02", StatusCode: "30", Due: "2025-02-15"},
		{ItemNumber: "ITM002", BuyerNum: "B01", Vendor: "V100", Whse: "W01", StatusCode: "20", Due: "03/01/2025"},
		{ItemNumber: "XYZ001", BuyerNum: "B01", Vendor: "V100", Whse: "W01", StatusCode: "20", Due: ""},
	}

	filter := func(c *model.POItemCriteria) []string {
		var out []string
		for _, it := range items {
			if c.Matches(it) {
				out = append(out, it.ItemNumber)
			}
		}
		return out
	}

	t.Run("item number substring is case insensitive", func(t *testing.T) {
		got := filter(&model.POItemCriteria{ItemNumber: "ITM001"})
		gt.Array(t, got).Equal([]string{"ITM001", "itm0015"})
	})

	t.Run("empty sentinel does not filter", func(t *testing.T) {
		got := filter(&model.POItemCriteria{Buyer: model.EmptyFilterID, Vendor: model.EmptyFilterID})
		gt.Array(t, got).Length(4)
	})

	t.Run("dropdown selections", func(t *testing.T) {
		gt.Array(t, filter(&model.POItemCriteria{Buyer: "B02"})).Equal([]string{"itm0015"})
		gt.Array(t, filter(&model.POItemCriteria{Warehouse: "W01", Status: "20"})).Equal([]string{"ITM001", "ITM002", "XYZ001"})
		gt.Array(t, filter(&model.POItemCriteria{Vendor: "V200"})).Equal([]string{"itm0015"})
	})

	t.Run("due date range excludes undated rows", func(t *testing.T) {
		got := filter(&model.POItemCriteria{DueDateFrom: "2025-02-01", DueDateTo: "2025-03-31"})
		gt.Array(t, got).Equal([]string{"itm0015", "ITM002"})
	})
}

func TestPOItemCriteria_Validate(t *testing.T) {
	gt.NoError(t, (&model.POItemCriteria{DueDateFrom: "2025-01-01", DueDateTo: "2025-01-31"}).Validate())

	err := (&model.POItemCriteria{DueDateFrom: "01/01/2025"}).Validate()
	gt.Error(t, err).Is(model.ErrInvalidCriteria)

	err = (&model.POItemCriteria{DueDateFrom: "2025-02-01", DueDateTo: "2025-01-01"}).Validate()
	gt.Error(t, err).Is(model.ErrInvalidCriteria)
}

func TestPOItemCriteria_Summary(t *testing.T) {
	c := &model.POItemCriteria{ItemNumber: "ITM001", Buyer: model.EmptyFilterID, Warehouse: "W01"}
	lines := c.Summary()
	gt.Array(t, lines).Length(2)
	gt.Value(t, lines[0].String()).Equal("Item Number: ITM001")
	gt.Value(t, lines[1].String()).Equal("Warehouse: W01")
}
