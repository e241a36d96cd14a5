package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/shashankreddy3k/inventory-forecast-app/internal/domain/models"
)

// ReadRows reads tabular rows from an uploaded file. The format is picked by
// file extension: .csv and .xlsx are supported.
func ReadRows(r io.Reader, fileName string) ([][]string, error) {
	name := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(name, ".xlsx"):
		return readXLSX(r)
	case strings.HasSuffix(name, ".csv"):
		return readCSV(r)
	default:
		return nil, &models.SchemaError{
			Detail: fmt.Sprintf("unsupported file format %q, upload .csv or .xlsx", fileName),
		}
	}
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &models.SchemaError{Detail: fmt.Sprintf("cannot parse CSV: %v", err)}
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &models.SchemaError{Detail: fmt.Sprintf("cannot open workbook: %v", err)}
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, &models.SchemaError{Detail: fmt.Sprintf("cannot read worksheet: %v", err)}
	}
	return rows, nil
}
