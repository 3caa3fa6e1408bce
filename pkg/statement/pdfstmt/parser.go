// Package pdfstmt parses PDF bank statements with a fixed tabular layout.
//
// Column mapping is positional: 0 = date (day/month/year), 2 = description,
// 3 = money in, 4 = money out. Rows with unparsable dates are dropped,
// repeated header rows are skipped
package pdfstmt

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/ledger-labs/statements-processor/pkg/diag"
	"github.com/ledger-labs/statements-processor/pkg/money"
	"github.com/ledger-labs/statements-processor/pkg/statement"
)

var logger = diag.CreateLogger()

type pdfParser struct {
	readTables func(path string) ([][][]string, error)
}

func (p *pdfParser) Parse(ctx context.Context, path string) ([]statement.Transaction, error) {
	logger.Debug(ctx, "Parsing PDF statement: %v", path)

	tables, err := p.readTables(path)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to extract tables")
	}

	var transactions []statement.Transaction
	for _, table := range tables {
		tableTxs, err := tableToTransactions(ctx, table)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tableTxs...)
	}
	return transactions, nil
}

func cellAt(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return row[index]
}

func sameRow(left []string, right []string) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if left[i] != right[i] {
			return false
		}
	}
	return true
}

// tableToTransactions maps one extracted table to transactions. Row 0 is
// the header. A row whose date fails to parse is dropped, this is a policy
// for page decoration artifacts and not an error
func tableToTransactions(ctx context.Context, table [][]string) ([]statement.Transaction, error) {
	if len(table) == 0 {
		return nil, nil
	}

	header := table[0]
	transactions := make([]statement.Transaction, 0, len(table)-1)
	for _, row := range table[1:] {
		if sameRow(row, header) {
			continue
		}
		date, err := statement.ParseDate(strings.TrimSpace(cellAt(row, 0)))
		if err != nil {
			logger.Debug(ctx, "Dropping row with unparsable date: %v", cellAt(row, 0))
			continue
		}
		moneyIn, err := money.ParseAmount(cellAt(row, 3))
		if err != nil {
			return nil, errors.Wrapf(err, "Bad money-in value for %v", date.Format("2006-01-02"))
		}
		moneyOut, err := money.ParseAmount(cellAt(row, 4))
		if err != nil {
			return nil, errors.Wrapf(err, "Bad money-out value for %v", date.Format("2006-01-02"))
		}
		transactions = append(transactions, statement.Transaction{
			Date:        date,
			Description: cellAt(row, 2),
			Amount:      moneyIn.Sub(moneyOut),
		})
	}
	return transactions, nil
}

// ParserOpt is a parser specific option
type ParserOpt func(p *pdfParser)

// WithTablesReader sets an explicit tables reader, mostly for tests
func WithTablesReader(reader func(path string) ([][][]string, error)) ParserOpt {
	return func(p *pdfParser) {
		p.readTables = reader
	}
}

// NewParser creates a PDF statement parser
func NewParser(opts ...ParserOpt) statement.Parser {
	parser := &pdfParser{readTables: extractTables}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}
