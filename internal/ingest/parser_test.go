package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
)

const sampleCSV = `Order Date,Sales,Sub-Category
08/11/2023,261.96,Bookcases
09/11/2023,731.94,Chairs
10/11/2023,14.62,Bookcases
10/11/2023,22.37,Chairs
`

func TestParseDatasetCSV(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(sampleCSV), "orders.csv")
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}

	ds, err := ParseDataset(rows, "orders.csv")
	if err != nil {
		t.Fatalf("ParseDataset: %v", err)
	}

	if len(ds.Records) != 4 {
		t.Fatalf("records = %d, want 4", len(ds.Records))
	}
	want := []string{"Bookcases", "Chairs"}
	if len(ds.Subcategories) != len(want) {
		t.Fatalf("subcategories = %v, want %v", ds.Subcategories, want)
	}
	for i, s := range want {
		if ds.Subcategories[i] != s {
			t.Errorf("subcategories[%d] = %q, want %q", i, ds.Subcategories[i], s)
		}
	}

	// Dates are parsed day-first: 08/11/2023 is November 8th.
	first := time.Date(2023, time.November, 8, 0, 0, 0, 0, time.UTC)
	last := time.Date(2023, time.November, 10, 0, 0, 0, 0, time.UTC)
	if !ds.FirstDate.Equal(first) {
		t.Errorf("FirstDate = %v, want %v", ds.FirstDate, first)
	}
	if !ds.LastDate.Equal(last) {
		t.Errorf("LastDate = %v, want %v", ds.LastDate, last)
	}
}

func TestParseDatasetHeaderCaseInsensitive(t *testing.T) {
	csv := "order date,SALES,sub-category\n01/02/2024,10,Tables\n"
	rows, err := ReadRows(strings.NewReader(csv), "orders.csv")
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	ds, err := ParseDataset(rows, "orders.csv")
	if err != nil {
		t.Fatalf("ParseDataset: %v", err)
	}
	if len(ds.Records) != 1 || ds.Records[0].Subcategory != "Tables" {
		t.Fatalf("unexpected records: %+v", ds.Records)
	}
}

func TestParseDatasetMissingColumns(t *testing.T) {
	csv := "Order Date,Amount\n01/02/2024,10\n"
	rows, _ := ReadRows(strings.NewReader(csv), "orders.csv")

	_, err := ParseDataset(rows, "orders.csv")
	var schemaErr *models.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want SchemaError", err)
	}
	if len(schemaErr.MissingColumns) != 2 {
		t.Fatalf("missing = %v, want [Sales Sub-Category]", schemaErr.MissingColumns)
	}
}

func TestParseDatasetBadDateRejectsAll(t *testing.T) {
	csv := "Order Date,Sales,Sub-Category\n01/02/2024,10,Tables\nnot-a-date,20,Tables\n"
	rows, _ := ReadRows(strings.NewReader(csv), "orders.csv")

	_, err := ParseDataset(rows, "orders.csv")
	var dateErr *models.DateParseError
	if !errors.As(err, &dateErr) {
		t.Fatalf("err = %v, want DateParseError", err)
	}
	if dateErr.Row != 3 {
		t.Errorf("row = %d, want 3", dateErr.Row)
	}
	if dateErr.Value != "not-a-date" {
		t.Errorf("value = %q, want %q", dateErr.Value, "not-a-date")
	}
}

func TestParseDatasetBadSalesValue(t *testing.T) {
	csv := "Order Date,Sales,Sub-Category\n01/02/2024,abc,Tables\n"
	rows, _ := ReadRows(strings.NewReader(csv), "orders.csv")

	_, err := ParseDataset(rows, "orders.csv")
	var schemaErr *models.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want SchemaError", err)
	}
	if schemaErr.Row != 2 {
		t.Errorf("row = %d, want 2", schemaErr.Row)
	}
}

func TestParseDatasetSkipsBlankRows(t *testing.T) {
	csv := "Order Date,Sales,Sub-Category\n01/02/2024,10,Tables\n,,\n02/02/2024,20,Tables\n"
	rows, _ := ReadRows(strings.NewReader(csv), "orders.csv")

	ds, err := ParseDataset(rows, "orders.csv")
	if err != nil {
		t.Fatalf("ParseDataset: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(ds.Records))
	}
}

func TestReadRowsUnsupportedFormat(t *testing.T) {
	_, err := ReadRows(strings.NewReader("hello"), "orders.txt")
	var schemaErr *models.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want SchemaError", err)
	}
}

func TestReadRowsXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]interface{}{
		{"Order Date", "Sales", "Sub-Category"},
		{"05/03/2024", 123.45, "Phones"},
		{"06/03/2024", 67.89, "Phones"},
	}
	for i, row := range cells {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	rows, err := ReadRows(bytes.NewReader(buf.Bytes()), "orders.xlsx")
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	ds, err := ParseDataset(rows, "orders.xlsx")
	if err != nil {
		t.Fatalf("ParseDataset: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(ds.Records))
	}
	// 05/03/2024 is March 5th, day-first.
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !ds.Records[0].OrderDate.Equal(want) {
		t.Errorf("OrderDate = %v, want %v", ds.Records[0].OrderDate, want)
	}
}
