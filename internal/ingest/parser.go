package ingest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
	"github.com/shashankreddy3k/inventory-forecast-app/pkg/util"
)

// Required columns, matched case-insensitively against the header row.
const (
	ColumnOrderDate   = "Order Date"
	ColumnSales       = "Sales"
	ColumnSubcategory = "Sub-Category"
)

// ParseDataset validates tabular rows and builds the session dataset.
// Validation is all-or-nothing: one bad row rejects the entire upload.
func ParseDataset(rows [][]string, fileName string) (*models.Dataset, error) {
	if len(rows) == 0 {
		return nil, &models.SchemaError{
			MissingColumns: []string{ColumnOrderDate, ColumnSales, ColumnSubcategory},
		}
	}

	header := rows[0]
	dateIdx := findColumn(header, ColumnOrderDate)
	salesIdx := findColumn(header, ColumnSales)
	subIdx := findColumn(header, ColumnSubcategory)

	var missing []string
	if dateIdx < 0 {
		missing = append(missing, ColumnOrderDate)
	}
	if salesIdx < 0 {
		missing = append(missing, ColumnSales)
	}
	if subIdx < 0 {
		missing = append(missing, ColumnSubcategory)
	}
	if len(missing) > 0 {
		return nil, &models.SchemaError{MissingColumns: missing}
	}

	dataRows := rows[1:]
	if len(dataRows) == 0 {
		return nil, &models.SchemaError{Detail: "file has a header but no data rows"}
	}

	records := make([]models.SalesRecord, 0, len(dataRows))
	subcats := make(map[string]struct{})
	var first, last time.Time

	for i, row := range dataRows {
		if isBlank(row) {
			continue
		}
		// Row numbers in errors are 1-based file positions, header included.
		rowNum := i + 2

		dateStr := cell(row, dateIdx)
		date, ok := util.ParseDayFirst(dateStr)
		if !ok {
			return nil, &models.DateParseError{Row: rowNum, Value: dateStr}
		}
		date = util.Day(date)

		salesStr := strings.ReplaceAll(cell(row, salesIdx), ",", "")
		sales, err := strconv.ParseFloat(salesStr, 64)
		if err != nil {
			return nil, &models.SchemaError{
				Row:    rowNum,
				Detail: fmt.Sprintf("unparseable sales value %q", cell(row, salesIdx)),
			}
		}

		sub := cell(row, subIdx)
		if sub == "" {
			return nil, &models.SchemaError{Row: rowNum, Detail: "empty Sub-Category value"}
		}

		records = append(records, models.SalesRecord{
			OrderDate:   date,
			Sales:       sales,
			Subcategory: sub,
		})
		subcats[sub] = struct{}{}

		if first.IsZero() || date.Before(first) {
			first = date
		}
		if last.IsZero() || date.After(last) {
			last = date
		}
	}

	if len(records) == 0 {
		return nil, &models.SchemaError{Detail: "file has a header but no data rows"}
	}

	names := make([]string, 0, len(subcats))
	for s := range subcats {
		names = append(names, s)
	}
	sort.Strings(names)

	return &models.Dataset{
		FileName:      fileName,
		UploadedAt:    time.Now().UTC(),
		Records:       records,
		Subcategories: names,
		FirstDate:     first,
		LastDate:      last,
	}, nil
}

func findColumn(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
