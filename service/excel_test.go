package service

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestParseLinkSheet(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Food", "Inventory", "Serving Size"},
		{"Orange Chicken", "Chicken", 2},
		{"", "", ""},
		{" Fried Rice ", "Rice"},
		{"Chow Mein", "Noodles", "lots"},
	})

	links, err := ParseLinkSheet(buf)
	if err != nil {
		t.Fatal(err)
	}
	want := []LinkInput{
		{Row: 2, Food: "Orange Chicken", Inventory: "Chicken", ServingSize: 2},
		{Row: 4, Food: "Fried Rice", Inventory: "Rice", ServingSize: 1},
		{Row: 5, Food: "Chow Mein", Inventory: "Noodles", ServingSize: -1},
	}
	if len(links) != len(want) {
		t.Fatalf("links = %+v", links)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("link %d = %+v, want %+v", i, links[i], want[i])
		}
	}
}

func TestParseLinkSheetRejectsEmptySheets(t *testing.T) {
	if _, err := ParseLinkSheet(workbook(t, [][]any{{"Food", "Inventory"}})); !errors.Is(err, ErrValidation) {
		t.Errorf("header only err = %v", err)
	}
	if _, err := ParseLinkSheet(bytes.NewBufferString("not a workbook")); !errors.Is(err, ErrValidation) {
		t.Errorf("garbage err = %v", err)
	}
}

func TestSalesWorkbook(t *testing.T) {
	report := &SalesReport{
		Start:      at(9, 0),
		End:        at(11, 0),
		Orders:     3,
		TotalSales: dec("35.50"),
		Series: []HourlyBucket{
			{Hour: "2024-03-01 09:00", Sales: dec("15.50")},
			{Hour: "2024-03-01 10:00", Sales: dec("20")},
		},
	}
	f, err := SalesWorkbook(report)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != "Summary" || got[1] != "Hourly" {
		t.Fatalf("sheets = %v", got)
	}
	if v, _ := f.GetCellValue("Summary", "B3"); v != "3" {
		t.Errorf("orders cell = %q", v)
	}
	if v, _ := f.GetCellValue("Summary", "B4"); v != "35.5" {
		t.Errorf("total cell = %q", v)
	}
	if v, _ := f.GetCellValue("Hourly", "A3"); v != "2024-03-01 10:00" {
		t.Errorf("hour cell = %q", v)
	}
	if v, _ := f.GetCellValue("Hourly", "B2"); v != "15.5" {
		t.Errorf("sales cell = %q", v)
	}
}
