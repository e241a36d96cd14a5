package models

import (
	"fmt"
	"strings"
)

// Pipeline error taxonomy. Every stage returns one of these; the handler
// boundary maps them to HTTP statuses.

// SchemaError reports a structurally invalid upload: missing required
// columns or an unparseable value. Fatal for the whole dataset.
type SchemaError struct {
	MissingColumns []string
	Row            int
	Detail         string
}

func (e *SchemaError) Error() string {
	if len(e.MissingColumns) > 0 {
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.MissingColumns, ", "))
	}
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, e.Detail)
	}
	return e.Detail
}

// DateParseError reports an order-date value that could not be parsed.
// Fatal for the whole dataset, no partial acceptance.
type DateParseError struct {
	Row   int
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("row %d: unparseable order date %q", e.Row, e.Value)
}

// InsufficientDataError signals that a sub-category has too few daily points
// to forecast. A warning condition: the session stays usable.
type InsufficientDataError struct {
	Subcategory string
	Points      int
	Required    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("sub-category %q has %d daily points, need at least %d",
		e.Subcategory, e.Points, e.Required)
}

// ForecastEngineError wraps a failure of the external forecasting engine,
// including contract violations in its output.
type ForecastEngineError struct {
	Reason string
	Err    error
}

func (e *ForecastEngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("forecast engine: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("forecast engine: %s", e.Reason)
}

func (e *ForecastEngineError) Unwrap() error {
	return e.Err
}
