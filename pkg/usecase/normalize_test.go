package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/secmon-lab/inquiry/pkg/usecase"
)

func TestNormalizeFilterValues_Unexpected(t *testing.T) {
	inputs := map[string]string{
		"null":                 `null`,
		"empty":                ``,
		"whitespace":           "  \n ",
		"string":               `"warehouses"`,
		"number":               `42`,
		"empty object":         `{}`,
		"object without array": `{"success":true,"errorMessage":"none"}`,
		"nested arrays only":   `{"result":{"data":{"items":[{"whseCode":"W01"}]}}}`,
		"array of scalars":     `[1,"two",null,true]`,
		"array of arrays":      `[[{"whseCode":"W01"}]]`,
		"truncated":            `{"items":[{"whseCode":"W01"`,
		"elements without id":  `[{"whseDescription":"Arcadia"},{"whseCode":""}]`,
	}

	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			got := usecase.NormalizeFilterValues(types.FieldWarehouse, []byte(raw))
			gt.Bool(t, got != nil).True()
			gt.A(t, got).Length(0)
		})
	}

	t.Run("field without schema", func(t *testing.T) {
		got := usecase.NormalizeFilterValues(types.FieldItem, []byte(`[{"id":"x"}]`))
		gt.Bool(t, got != nil).True()
		gt.A(t, got).Length(0)
	})
}

func TestNormalizeFilterValues_Envelopes(t *testing.T) {
	testCases := []struct {
		name  string
		field types.FieldID
		raw   string
		want  []model.FilterValue
	}{
		{
			name:  "bare array",
			field: types.FieldPOItemVendor,
			raw:   `[{"vendorNum":"V100","vendorName":"Northwind"}]`,
			want:  []model.FilterValue{{FieldID: types.FieldPOItemVendor, FilterID: "V100", FilterDesc: "Northwind"}},
		},
		{
			name:  "data envelope with composed buyer name",
			field: types.FieldBuyer,
			raw:   `{"success":true,"data":[{"buyerNum":"B01","firstName":"Alex","lastName":"Morgan"},{"BUYER_ID":"B02","BUYER_NAME":"Sam Lee"}]}`,
			want: []model.FilterValue{
				{FieldID: types.FieldBuyer, FilterID: "B01", FilterDesc: "Alex Morgan"},
				{FieldID: types.FieldBuyer, FilterID: "B02", FilterDesc: "Sam Lee"},
			},
		},
		{
			name:  "items envelope with description falling back to id",
			field: types.FieldWarehouse,
			raw:   `{"items":[{"whseCode":"W01","whseDescription":"Arcadia"},{"WAREHOUSE_CODE":"W02"}],"success":true,"errorMessage":null}`,
			want: []model.FilterValue{
				{FieldID: types.FieldWarehouse, FilterID: "W01", FilterDesc: "Arcadia"},
				{FieldID: types.FieldWarehouse, FilterID: "W02", FilterDesc: "W02"},
			},
		},
		{
			name:  "first array in document order",
			field: types.FieldWarehouse,
			raw:   `{"meta":{"count":2},"payload":[{"code":"W1"}],"extra":[{"code":"W2"}]}`,
			want:  []model.FilterValue{{FieldID: types.FieldWarehouse, FilterID: "W1", FilterDesc: "W1"}},
		},
		{
			name:  "declared array key wins over document order",
			field: types.FieldPOItemStatus,
			raw:   `{"other":[{"statusCode":"X"}],"statuses":[{"statusCode":10,"statusDescription":"Cfm Required"}]}`,
			want:  []model.FilterValue{{FieldID: types.FieldPOItemStatus, FilterID: "10", FilterDesc: "Cfm Required"}},
		},
		{
			name:  "inactive and nameless production vendors are dropped",
			field: types.FieldVendor,
			raw:   `{"data":[{"vendorNumber":"V1","vendorName":"One"},{"vendorNumber":"V2","vendorName":"Two","isActive":false},{"vendorNumber":"V3"}]}`,
			want:  []model.FilterValue{{FieldID: types.FieldVendor, FilterID: "V1", FilterDesc: "One"}},
		},
		{
			name:  "item class uses the class as description",
			field: types.FieldItemClass,
			raw:   `{"data":[{"itemClass":"UPH"}]}`,
			want:  []model.FilterValue{{FieldID: types.FieldItemClass, FilterID: "UPH", FilterDesc: "UPH"}},
		},
		{
			name:  "planner falls back to code",
			field: types.FieldDRP,
			raw:   `[{"plannerCode":"P01"}]`,
			want:  []model.FilterValue{{FieldID: types.FieldDRP, FilterID: "P01", FilterDesc: "P01"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := usecase.NormalizeFilterValues(tc.field, []byte(tc.raw))
			gt.Value(t, got).Equal(tc.want)
		})
	}
}

func TestValidateSchemas(t *testing.T) {
	gt.NoError(t, usecase.ValidateSchemas())
}
