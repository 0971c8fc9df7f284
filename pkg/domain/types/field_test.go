package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

func TestParseFieldID(t *testing.T) {
	for _, id := range types.AllFieldIDs() {
		t.Run(id.String(), func(t *testing.T) {
			got, err := types.ParseFieldID(id.String())
			gt.NoError(t, err).Required()
			gt.Value(t, got).Equal(id)
			gt.String(t, got.Desc()).NotEqual("")
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := types.ParseFieldID("buyno")
		gt.Value(t, err).NotNil()
	})
}

func TestFieldID_HasValues(t *testing.T) {
	gt.Bool(t, types.FieldBuyer.HasValues()).True()
	gt.Bool(t, types.FieldProductionResource.HasValues()).True()
	gt.Bool(t, types.FieldItem.HasValues()).False()
	gt.Bool(t, types.FieldID("nope").HasValues()).False()
}

func TestScreen_Fields(t *testing.T) {
	for _, s := range types.AllScreens() {
		t.Run(s.String(), func(t *testing.T) {
			fields := s.Fields()
			gt.Bool(t, len(fields) > 0).True()
			for _, f := range fields {
				gt.Bool(t, f.HasValues()).True()
			}
		})
	}

	gt.Array(t, types.ScreenPOItems.Fields()).Equal([]types.FieldID{
		types.FieldBuyer,
		types.FieldPOItemVendor,
		types.FieldPOItemStatus,
		types.FieldPOItemWhse,
	})
	gt.Value(t, types.Screen("unknown").Fields()).Nil()
}

func TestReportBy_Code(t *testing.T) {
	gt.Number(t, types.ReportByDaily.Code()).Equal(1)
	gt.Number(t, types.ReportByWeekly.Code()).Equal(2)
	gt.Number(t, types.ReportByMonthly.Code()).Equal(3)
	gt.Number(t, types.ReportBy("").Code()).Equal(2)
	gt.Number(t, types.ReportBy("yearly").Code()).Equal(2)
}

func TestParseReportType(t *testing.T) {
	tests := []struct {
		in      string
		want    types.ReportType
		wantErr bool
	}{
		{"", types.ReportTypeBrowser, false},
		{"excel", types.ReportTypeExcel, false},
		{"emailExcel", types.ReportTypeEmail, false},
		{"fax", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := types.ParseReportType(tt.in)
			if tt.wantErr {
				gt.Value(t, err).NotNil()
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestParseDateField(t *testing.T) {
	gt.Value(t, types.ParseDateField("")).Equal(types.DateFieldAll)
	gt.Value(t, types.ParseDateField("abc")).Equal(types.DateFieldAll)
	gt.Value(t, types.ParseDateField("9")).Equal(types.DateFieldAll)
	gt.Value(t, types.ParseDateField("2")).Equal(types.DateFieldETA)
	gt.Value(t, types.ParseDateField("5").Label()).Equal("Vendor Paid")
}

func TestParseComparisonOperator(t *testing.T) {
	op, err := types.ParseComparisonOperator("")
	gt.NoError(t, err).Required()
	gt.Value(t, op).Equal(types.CompareEquals)

	_, err = types.ParseComparisonOperator("like")
	gt.Value(t, err).NotNil()

	gt.Bool(t, types.LogicalOperator("").IsValid()).True()
	gt.Bool(t, types.LogicalOperator("XOR").IsValid()).False()
}

func TestParseExportFormat(t *testing.T) {
	f, err := types.ParseExportFormat("xlsx")
	gt.NoError(t, err).Required()
	gt.String(t, f.ContentType()).Contains("spreadsheetml")

	_, err = types.ParseExportFormat("pdf")
	gt.Value(t, err).NotNil()
}
