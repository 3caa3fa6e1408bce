// Package statement defines the canonical transaction model produced by
// bank statement parsers.
package statement

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single canonical bank statement line.
// Amount is positive for inflow and negative for outflow.
// Immutable once created
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// LabeledTransaction is a transaction with a GL account assigned
type LabeledTransaction struct {
	Transaction
	Account string
}

// Format is a source file format hint
type Format string

// Supported statement formats
const (
	FormatPDF         Format = "pdf"
	FormatSpreadsheet Format = "spreadsheet"
)

// Parser extracts canonical transactions from a statement file.
// Output preserves source row order which is not guaranteed chronological
type Parser interface {
	Parse(ctx context.Context, path string) ([]Transaction, error)
}

// DetectFormat resolves a format hint from a file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".xls", ".xlsx":
		return FormatSpreadsheet, nil
	}
	return "", fmt.Errorf("unsupported statement file: %v", filepath.Base(path))
}
