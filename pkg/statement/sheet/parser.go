// Package sheet parses spreadsheet bank statements.
//
// The first three columns are always interpreted as Date, Description and
// Amount regardless of their header text. Extra columns are ignored
package sheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/ledger-labs/statements-processor/pkg/diag"
	"github.com/ledger-labs/statements-processor/pkg/money"
	"github.com/ledger-labs/statements-processor/pkg/statement"
)

var logger = diag.CreateLogger()

// SchemaError indicates a statement with too few columns
type SchemaError struct {
	Columns int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("statement must have Date, Description, Amount columns, got %v", e.Columns)
}

type sheetParser struct {
	openRows func(path string) ([][]string, error)
}

func openFirstSheetRows(path string) ([][]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return file.GetRows(sheets[0])
}

func (p *sheetParser) Parse(ctx context.Context, path string) ([]statement.Transaction, error) {
	logger.Debug(ctx, "Parsing spreadsheet statement: %v", path)

	rows, err := p.openRows(path)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to open spreadsheet")
	}
	return rowsToTransactions(rows)
}

func cellAt(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return row[index]
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func rowsToTransactions(rows [][]string) ([]statement.Transaction, error) {
	if len(rows) == 0 {
		return nil, &SchemaError{Columns: 0}
	}

	// Input rows stay untouched, the header is inspected on a copy
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}
	if len(header) < 3 {
		return nil, &SchemaError{Columns: len(header)}
	}

	transactions := make([]statement.Transaction, 0, len(rows)-1)
	for rowNum, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		date, err := statement.ParseDate(cellAt(row, 0))
		if err != nil {
			return nil, errors.Wrapf(err, "Bad date at row %v", rowNum+2)
		}
		amount, err := money.ParseAmount(cellAt(row, 2))
		if err != nil {
			return nil, errors.Wrapf(err, "Bad amount at row %v", rowNum+2)
		}
		transactions = append(transactions, statement.Transaction{
			Date:        date,
			Description: cellAt(row, 1),
			Amount:      amount,
		})
	}
	return transactions, nil
}

// ParserOpt is a parser specific option
type ParserOpt func(p *sheetParser)

// WithRowsReader sets an explicit rows reader, mostly for tests
func WithRowsReader(reader func(path string) ([][]string, error)) ParserOpt {
	return func(p *sheetParser) {
		p.openRows = reader
	}
}

// NewParser creates a spreadsheet statement parser
func NewParser(opts ...ParserOpt) statement.Parser {
	parser := &sheetParser{openRows: openFirstSheetRows}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}
