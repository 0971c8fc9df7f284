package usecase

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	resultsSheet = "Results"
	weeklySheet  = "Weekly"
)

// renderCSV writes the table as RFC 4180 CSV: fields holding commas,
// quotes or line breaks are quoted, quotes are doubled, lines end in CRLF
func renderCSV(t *exportTable, exportedAt string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	records := [][]string{{t.title}, {"Exported", exportedAt}}
	for _, c := range t.criteria {
		records = append(records, []string{c.Label, c.Value})
	}
	records = append(records, []string{}, t.headers)
	for _, row := range t.rows {
		records = append(records, textRow(row))
	}
	if len(t.footer) > 0 {
		records = append(records, []string{})
		for _, row := range t.footer {
			records = append(records, textRow(row))
		}
	}

	if err := w.WriteAll(records); err != nil {
		return nil, goerr.Wrap(err, "failed to write CSV")
	}
	return buf.Bytes(), nil
}

func textRow(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = cellText(v)
	}
	return out
}

// renderXLSX writes the table to a workbook with a results sheet and, for
// the production schedule, a weekly pivot sheet
func renderXLSX(t *exportTable, exportedAt string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, goerr.Wrap(err, "failed to name sheet")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create style")
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create style")
	}

	sw := &sheetWriter{f: f, sheet: resultsSheet}
	sw.row([]any{t.title}, bold)
	sw.row([]any{"Exported", exportedAt}, 0)
	for _, c := range t.criteria {
		sw.row([]any{c.Label, c.Value}, 0)
	}
	sw.skip()
	sw.row(toAny(t.headers), header)
	for _, row := range t.rows {
		sw.row(cellValues(row), 0)
	}
	if len(t.footer) > 0 {
		sw.skip()
		for _, row := range t.footer {
			sw.row(cellValues(row), bold)
		}
	}
	if sw.err != nil {
		return nil, sw.err
	}
	if len(t.headers) > 0 {
		last, _ := excelize.ColumnNumberToName(len(t.headers))
		if err := f.SetColWidth(resultsSheet, "A", last, 16); err != nil {
			return nil, goerr.Wrap(err, "failed to set column width")
		}
	}

	if t.weekly != nil {
		if _, err := f.NewSheet(weeklySheet); err != nil {
			return nil, goerr.Wrap(err, "failed to create weekly sheet")
		}
		ws := &sheetWriter{f: f, sheet: weeklySheet}
		head := []any{"Item Number", "Description", "Order Type"}
		for _, wk := range t.weekly.Weeks {
			head = append(head, "Wk "+strconv.Itoa(wk))
		}
		head = append(head, "Total")
		ws.row(head, header)
		for _, r := range t.weekly.Rows {
			line := []any{r.ItemNum, r.ItemDesc, r.OrderType.String()}
			for _, wk := range t.weekly.Weeks {
				line = append(line, r.Weekly[wk])
			}
			line = append(line, r.Total)
			ws.row(line, 0)
		}
		if ws.err != nil {
			return nil, ws.err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to write workbook")
	}
	return buf.Bytes(), nil
}

// sheetWriter appends rows to a sheet and keeps the first error
type sheetWriter struct {
	f     *excelize.File
	sheet string
	next  int
	err   error
}

func (w *sheetWriter) skip() {
	w.next++
}

func (w *sheetWriter) row(values []any, style int) {
	if w.err != nil {
		return
	}
	w.next++
	cell, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		w.err = goerr.Wrap(err, "invalid cell", goerr.V("row", w.next))
		return
	}
	if err := w.f.SetSheetRow(w.sheet, cell, &values); err != nil {
		w.err = goerr.Wrap(err, "failed to write row", goerr.V("sheet", w.sheet), goerr.V("row", w.next))
		return
	}
	if style != 0 {
		if err := w.f.SetRowStyle(w.sheet, w.next, w.next, style); err != nil {
			w.err = goerr.Wrap(err, "failed to style row", goerr.V("row", w.next))
		}
	}
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// cellValues keeps numbers numeric; decimals become fixed two-place numbers
func cellValues(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		switch x := v.(type) {
		case decimal.Decimal:
			out[i] = x.Round(2).InexactFloat64()
		case nil:
			out[i] = ""
		default:
			out[i] = v
		}
	}
	return out
}
