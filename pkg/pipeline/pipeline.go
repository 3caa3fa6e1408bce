// Package pipeline wires statement parsing, classification, ledger posting
// and aggregation into one processing flow
package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"

	"github.com/ledger-labs/statements-processor/pkg/classify"
	"github.com/ledger-labs/statements-processor/pkg/dal"
	"github.com/ledger-labs/statements-processor/pkg/diag"
	"github.com/ledger-labs/statements-processor/pkg/ledger"
	"github.com/ledger-labs/statements-processor/pkg/statement"
	"github.com/ledger-labs/statements-processor/pkg/statement/pdfstmt"
	"github.com/ledger-labs/statements-processor/pkg/statement/sheet"
	"github.com/ledger-labs/statements-processor/pkg/vat"
)

var logger = diag.CreateLogger()

// Result is an outcome of processing a single statement file
type Result struct {
	Transactions []statement.LabeledTransaction
	Entries      []ledger.Entry
	TrialBalance []ledger.TrialBalanceRow
	VAT          vat.Result

	// ClassifyErrors are positional: ClassifyErrors[i] is a failure of
	// Transactions[i], nil for items classified fine
	ClassifyErrors []error
}

// Pipeline processes statement files into ledger entries and VAT figures
type Pipeline struct {
	classifier classify.Classifier
	storage    dal.Storage
	parsers    map[statement.Format]statement.Parser
}

// Opt is a pipeline option
type Opt func(p *Pipeline)

// WithClassifier sets a classifier collaborator
func WithClassifier(classifier classify.Classifier) Opt {
	return func(p *Pipeline) {
		p.classifier = classifier
	}
}

// WithStorage sets a ledger entries storage
func WithStorage(storage dal.Storage) Opt {
	return func(p *Pipeline) {
		p.storage = storage
	}
}

// WithParser sets an explicit parser for a format, mostly for tests
func WithParser(format statement.Format, parser statement.Parser) Opt {
	return func(p *Pipeline) {
		p.parsers[format] = parser
	}
}

// New creates a pipeline instance
func New(opts ...Opt) *Pipeline {
	pipeline := &Pipeline{
		parsers: map[statement.Format]statement.Parser{
			statement.FormatPDF:         pdfstmt.NewParser(),
			statement.FormatSpreadsheet: sheet.NewParser(),
		},
	}
	for _, opt := range opts {
		opt(pipeline)
	}
	return pipeline
}

// Run processes one statement file: parse, classify, post, persist,
// aggregate. The format is detected from the file extension
func (p *Pipeline) Run(ctx context.Context, path string) (*Result, error) {
	format, err := statement.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return p.RunAs(ctx, path, format)
}

// RunAs processes one statement file as an explicit format, bypassing
// extension based detection. Parsing failures abort the file with no
// partial result, classification failures are isolated per transaction
func (p *Pipeline) RunAs(ctx context.Context, path string, format statement.Format) (*Result, error) {
	parser, ok := p.parsers[format]
	if !ok {
		return nil, errors.Errorf("no parser for format %v", format)
	}

	if diag.JobIDValue(ctx) == "" {
		ctx = diag.ContextWithJobID(ctx, uuid.NewV4().String())
	}

	logger.Info(ctx, "Processing %v statement: %v", format, path)

	trxs, err := parser.Parse(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to parse statement %v", path)
	}

	labeled, classifyErrs := classify.ClassifyAll(ctx, p.classifier, trxs)

	book := ledger.New()
	for _, trx := range labeled {
		entry := book.PostTransaction(trx)
		if err := p.storage.SaveEntry(ctx, dal.NewEntryDTO(entry)); err != nil {
			return nil, errors.Wrap(err, "Failed to persist ledger entry")
		}
	}

	entries := book.Export()
	trialBalance := ledger.TrialBalance(entries)

	return &Result{
		Transactions:   labeled,
		Entries:        entries,
		TrialBalance:   trialBalance,
		VAT:            vat.FromTrialBalance(trialBalance),
		ClassifyErrors: classifyErrs,
	}, nil
}

// PostAdjustment posts one manual adjusting entry and persists it
func (p *Pipeline) PostAdjustment(
	ctx context.Context,
	date time.Time,
	account string,
	debit decimal.Decimal,
	credit decimal.Decimal,
	narrative string,
) (ledger.Entry, error) {
	entry := ledger.New().Post(date, account, debit, credit, narrative)
	if err := p.storage.SaveEntry(ctx, dal.NewEntryDTO(entry)); err != nil {
		return ledger.Entry{}, errors.Wrap(err, "Failed to persist adjusting entry")
	}
	logger.Info(ctx, "Posted adjusting entry %v to %v", entry.ID, account)
	return entry, nil
}

// StoredTrialBalance recomputes the trial balance and VAT figures from all
// entries persisted so far
func (p *Pipeline) StoredTrialBalance(ctx context.Context) ([]ledger.TrialBalanceRow, vat.Result, error) {
	dtos, err := p.storage.ListEntries(ctx)
	if err != nil {
		return nil, vat.Result{}, errors.Wrap(err, "Failed to list ledger entries")
	}
	entries := make([]ledger.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := dto.ToEntry()
		if err != nil {
			return nil, vat.Result{}, err
		}
		entries = append(entries, entry)
	}
	trialBalance := ledger.TrialBalance(entries)
	return trialBalance, vat.FromTrialBalance(trialBalance), nil
}
