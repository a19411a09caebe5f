// Package export renders reports as downloadable spreadsheet workbooks.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"apparel-ledger/internal/core"
)

const (
	summarySheet = "Summary"
	topSheet     = "Top Products"
	sizeSheet    = "By Size"
	dailySheet   = "Daily"
)

// SalesReportWorkbook builds an xlsx workbook with one sheet per report
// section. Monetary cells are written as display-rounded strings; the report
// itself keeps full precision. The caller owns closing the returned file.
func SalesReportWorkbook(report *core.SalesReport) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeSummary(f, report); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeTopProducts(f, report.TopProducts); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeBySize(f, report.BySize); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeDaily(f, report.Daily); err != nil {
		f.Close()
		return nil, err
	}

	// excelize creates "Sheet1" by default; rename it to the summary sheet.
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(summarySheet); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeSummary(f *excelize.File, report *core.SalesReport) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	rows := [][]any{
		{"Generated at", report.GeneratedAt.Format("2006-01-02 15:04")},
		{"Window (days)", report.Days},
		{"Total sales", report.TotalSales},
		{"Total revenue", report.TotalRevenue.StringFixed(2)},
		{"Total royalties", report.TotalRoyalties.StringFixed(2)},
		{"Average ticket", report.AverageTicket.StringFixed(2)},
	}
	return writeRows(f, summarySheet, rows)
}

func writeTopProducts(f *excelize.File, top []core.ProductSalesTotal) error {
	if _, err := f.NewSheet(topSheet); err != nil {
		return fmt.Errorf("failed to create top-products sheet: %w", err)
	}
	rows := [][]any{{"Product", "Units sold", "Revenue"}}
	for _, p := range top {
		rows = append(rows, []any{p.ProductName, p.Quantity, p.Revenue.StringFixed(2)})
	}
	return writeRows(f, topSheet, rows)
}

func writeBySize(f *excelize.File, bySize []core.SizeSalesTotal) error {
	if _, err := f.NewSheet(sizeSheet); err != nil {
		return fmt.Errorf("failed to create by-size sheet: %w", err)
	}
	rows := [][]any{{"Size", "Units sold", "Revenue", "Share %"}}
	for _, s := range bySize {
		rows = append(rows, []any{string(s.Size), s.Quantity, s.Revenue.StringFixed(2), fmt.Sprintf("%.1f", s.Percent)})
	}
	return writeRows(f, sizeSheet, rows)
}

func writeDaily(f *excelize.File, daily []core.DaySalesTotal) error {
	if _, err := f.NewSheet(dailySheet); err != nil {
		return fmt.Errorf("failed to create daily sheet: %w", err)
	}
	rows := [][]any{{"Date", "Units sold", "Revenue"}}
	for _, d := range daily {
		rows = append(rows, []any{d.Date, d.Quantity, d.Revenue.StringFixed(2)})
	}
	return writeRows(f, dailySheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
