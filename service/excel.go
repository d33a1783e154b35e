package service

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseLinkSheet reads food-to-inventory links from the first sheet of a workbook. The
// first row is a header; the columns are food, inventory item and an optional serving size.
// Malformed rows are kept so the caller can report them.
func ParseLinkSheet(r io.Reader) ([]LinkInput, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, validationf("failed to parse Excel file: %v", err)
	}
	defer xl.Close()

	sheets := xl.GetSheetList()
	if len(sheets) == 0 {
		return nil, validationf("workbook has no sheets")
	}
	rows, err := xl.GetRows(sheets[0])
	if err != nil {
		return nil, validationf("failed to read sheet %q: %v", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, validationf("Excel must have a header and at least one row of data")
	}

	var links []LinkInput
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		link := LinkInput{Row: i + 2, ServingSize: 1}
		if len(row) > 0 {
			link.Food = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			link.Inventory = strings.TrimSpace(row[1])
		}
		if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
			n, err := strconv.Atoi(strings.TrimSpace(row[2]))
			if err != nil || n < 1 {
				n = -1
			}
			link.ServingSize = n
		}
		links = append(links, link)
	}
	if len(links) == 0 {
		return nil, validationf("no data rows found")
	}
	return links, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

const (
	summarySheet = "Summary"
	hourlySheet  = "Hourly"
)

// SalesWorkbook renders a sales report as a two-sheet workbook.
func SalesWorkbook(report *SalesReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	summary := [][]any{
		{"Start", report.Start.Format("2006-01-02 15:04:05")},
		{"End", report.End.Format("2006-01-02 15:04:05")},
		{"Orders", report.Orders},
		{"Total sales", report.TotalSales.InexactFloat64()},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(hourlySheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(hourlySheet, "A1", &[]any{"Hour", "Sales"}); err != nil {
		return nil, err
	}
	for i, b := range report.Series {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(hourlySheet, cell, &[]any{b.Hour, b.Sales.InexactFloat64()}); err != nil {
			return nil, err
		}
	}
	return f, nil
}
