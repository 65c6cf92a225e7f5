// Package report persists vendor batches as formatted XLSX workbooks.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/vendor-cli/internal/model"
)

const (
	// VendorsSheet is the primary tabular sheet, one row per record.
	VendorsSheet = "All Vendors"
	// SummarySheet holds the per-category aggregates.
	SummarySheet = "Summary"

	totalLabel      = "TOTAL VENDORS"
	grandTotalLabel = "GRAND TOTAL"
)

var vendorHeaders = []string{
	"Category",
	"Business Name",
	"Phone Number (E.164)",
	"Phone Valid",
	"Address",
	"Rating",
	"Total Reviews",
	"Website",
	"Google Maps Link",
	"Date Collected",
}

var summaryHeaders = []string{
	"Category",
	"Total Vendors",
	"Valid Phones",
	"Avg Rating",
	"Total Reviews",
}

// Load reads a previously saved workbook's vendors sheet. A missing file is
// not an error and yields an empty batch; an unreadable or malformed file
// returns an error the caller may treat as "no history".
func Load(path string) (model.VendorBatch, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "report: open workbook")
	}

	sheet, ok := f.Sheet[VendorsSheet]
	if !ok {
		return nil, eris.Errorf("report: sheet %q not found in %s", VendorsSheet, path)
	}

	var batch model.VendorBatch
	for i, row := range sheet.Rows {
		if i == 0 {
			continue
		}

		category := cellString(row, 0)
		if category == totalLabel {
			break
		}
		name := cellString(row, 1)
		if category == "" && name == "" {
			continue
		}

		batch = append(batch, model.VendorRecord{
			Category:   category,
			Name:       name,
			Phone:      cellString(row, 2),
			PhoneValid: cellString(row, 3) == "Yes",
			Address:    cellString(row, 4),
			Rating:     cellRating(row, 5),
			Reviews:    cellInt(row, 6),
			Website:    cellString(row, 7),
			MapsLink:   cellString(row, 8),
			Collected:  cellString(row, 9),
		})
	}

	return batch, nil
}

// Save writes the batch and its per-category summary to path as a styled
// two-sheet workbook. Saving an empty batch is an error; callers decide
// whether to skip instead.
func Save(batch model.VendorBatch, summary []model.CategorySummary, path string) error {
	if len(batch) == 0 {
		return eris.New("report: nothing to save")
	}

	f := xlsx.NewFile()

	if err := writeVendorsSheet(f, batch); err != nil {
		return err
	}
	if err := writeSummarySheet(f, summary); err != nil {
		return err
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "report: save workbook")
	}
	return nil
}

func writeVendorsSheet(f *xlsx.File, batch model.VendorBatch) error {
	sheet, err := f.AddSheet(VendorsSheet)
	if err != nil {
		return eris.Wrap(err, "report: add vendors sheet")
	}

	widths := []float64{22, 35, 20, 12, 45, 9, 14, 32, 35, 16}
	for i, w := range widths {
		sheet.SetColWidth(i, i, w)
	}

	writeHeaderRow(sheet, vendorHeaders)

	for i, rec := range batch {
		row := sheet.AddRow()
		row.SetHeight(20)
		data := dataStyle(i)

		setString(row, rec.Category, data)
		setString(row, rec.Name, data)
		setString(row, rec.Phone, data)

		validity := row.AddCell()
		if rec.PhoneValid {
			validity.SetString("Yes")
			validity.SetStyle(phoneStyle(i, "FF006100", "FFC6EFCE"))
		} else {
			validity.SetString("No")
			validity.SetStyle(phoneStyle(i, "FF9C0006", "FFFFC7CE"))
		}

		setString(row, rec.Address, data)

		rating := row.AddCell()
		if rec.Rating != nil {
			rating.SetFloatWithFormat(*rec.Rating, "0.0")
		} else {
			rating.SetString(model.NotAvailable)
		}
		rating.SetStyle(data)

		reviews := row.AddCell()
		reviews.SetInt(rec.Reviews)
		reviews.SetStyle(data)

		setString(row, rec.Website, data)
		setString(row, rec.MapsLink, data)
		setString(row, rec.Collected, data)
	}

	// One blank row, then a formula total over the name column.
	sheet.AddRow()
	total := sheet.AddRow()
	label := total.AddCell()
	label.SetString(totalLabel)
	label.SetStyle(footerStyle("FF1F3864"))
	count := total.AddCell()
	count.SetFormula(fmt.Sprintf("COUNTA(B2:B%d)", len(batch)+1))
	count.SetStyle(footerStyle("FF1F3864"))

	return nil
}

func writeSummarySheet(f *xlsx.File, summary []model.CategorySummary) error {
	sheet, err := f.AddSheet(SummarySheet)
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}

	widths := []float64{28, 16, 14, 12, 16}
	for i, w := range widths {
		sheet.SetColWidth(i, i, w)
	}

	writeHeaderRow(sheet, summaryHeaders)

	for i, cs := range summary {
		row := sheet.AddRow()
		row.SetHeight(20)
		data := dataStyle(i)

		setString(row, cs.Category, data)

		vendors := row.AddCell()
		vendors.SetInt(cs.Vendors)
		vendors.SetStyle(data)

		phones := row.AddCell()
		phones.SetInt(cs.ValidPhones)
		phones.SetStyle(data)

		avg := row.AddCell()
		if cs.Rated > 0 {
			avg.SetFloatWithFormat(cs.AvgRating, "0.00")
		} else {
			avg.SetString(model.NotAvailable)
		}
		avg.SetStyle(data)

		reviews := row.AddCell()
		reviews.SetInt(cs.Reviews)
		reviews.SetStyle(data)
	}

	end := len(summary) + 1
	sheet.AddRow()
	total := sheet.AddRow()

	formulas := []string{
		"",
		fmt.Sprintf("SUM(B2:B%d)", end),
		fmt.Sprintf("SUM(C2:C%d)", end),
		fmt.Sprintf("IFERROR(AVERAGE(D2:D%d),0)", end),
		fmt.Sprintf("SUM(E2:E%d)", end),
	}
	for i, formula := range formulas {
		cell := total.AddCell()
		if i == 0 {
			cell.SetString(grandTotalLabel)
		} else {
			cell.SetFormula(formula)
		}
		cell.SetStyle(footerStyle("FF2E75B6"))
	}

	return nil
}

func writeHeaderRow(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	row.SetHeight(30)
	style := headerStyle()
	for _, h := range headers {
		cell := row.AddCell()
		cell.SetString(h)
		cell.SetStyle(style)
	}
}

func setString(row *xlsx.Row, value string, style *xlsx.Style) {
	cell := row.AddCell()
	cell.SetString(value)
	cell.SetStyle(style)
}

func headerStyle() *xlsx.Style {
	s := xlsx.NewStyle()
	s.Font = *xlsx.NewFont(11, "Arial")
	s.Font.Bold = true
	s.Font.Color = "FFFFFFFF"
	s.Fill = *xlsx.NewFill("solid", "FF1F3864", "FF1F3864")
	s.Border = *xlsx.NewBorder("thin", "thin", "thin", "thin")
	s.Alignment = xlsx.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	s.ApplyFont = true
	s.ApplyFill = true
	s.ApplyBorder = true
	s.ApplyAlignment = true
	return s
}

// dataStyle alternates row fills for readability.
func dataStyle(rowIdx int) *xlsx.Style {
	fill := "FFFFFFFF"
	if rowIdx%2 == 0 {
		fill = "FFEBF0FA"
	}
	s := xlsx.NewStyle()
	s.Font = *xlsx.NewFont(10, "Arial")
	s.Fill = *xlsx.NewFill("solid", fill, fill)
	s.Border = *xlsx.NewBorder("thin", "thin", "thin", "thin")
	s.Alignment = xlsx.Alignment{Vertical: "center", WrapText: true}
	s.ApplyFont = true
	s.ApplyFill = true
	s.ApplyBorder = true
	s.ApplyAlignment = true
	return s
}

func phoneStyle(rowIdx int, fontColor, fill string) *xlsx.Style {
	s := dataStyle(rowIdx)
	s.Font.Bold = true
	s.Font.Color = fontColor
	s.Fill = *xlsx.NewFill("solid", fill, fill)
	return s
}

func footerStyle(fill string) *xlsx.Style {
	s := xlsx.NewStyle()
	s.Font = *xlsx.NewFont(11, "Arial")
	s.Font.Bold = true
	s.Font.Color = "FFFFFFFF"
	s.Fill = *xlsx.NewFill("solid", fill, fill)
	s.Alignment = xlsx.Alignment{Horizontal: "center"}
	s.ApplyFont = true
	s.ApplyFill = true
	s.ApplyAlignment = true
	return s
}

func cellString(row *xlsx.Row, i int) string {
	if i >= len(row.Cells) {
		return ""
	}
	return strings.TrimSpace(row.Cells[i].String())
}

func cellRating(row *xlsx.Row, i int) *float64 {
	raw := cellString(row, i)
	if raw == "" || raw == model.NotAvailable {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func cellInt(row *xlsx.Row, i int) int {
	v, err := strconv.Atoi(cellString(row, i))
	if err != nil {
		return 0
	}
	return v
}
