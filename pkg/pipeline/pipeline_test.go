package pipeline

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledger-labs/statements-processor/pkg/dal"
	"github.com/ledger-labs/statements-processor/pkg/diag"
	"github.com/ledger-labs/statements-processor/pkg/money"
	"github.com/ledger-labs/statements-processor/pkg/statement"
)

type staticParser struct {
	trxs []statement.Transaction
	err  error
}

func (p *staticParser) Parse(ctx context.Context, path string) ([]statement.Transaction, error) {
	return p.trxs, p.err
}

type mapClassifier map[string]string

func (c mapClassifier) Classify(ctx context.Context, trx statement.Transaction) (string, error) {
	account, ok := c[trx.Description]
	if !ok {
		return "", errors.New("unknown transaction")
	}
	return account, nil
}

func newTestStorage(t *testing.T) (dal.Storage, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	storage, err := dal.NewSQLStorage(dal.WithSQLDb(db))
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	if !assert.NoError(t, storage.Setup(context.TODO())) {
		t.FailNow()
	}
	return storage, func() { db.Close() }
}

func trx(day int, description string, amount string) statement.Transaction {
	return statement.Transaction{
		Date:        time.Date(2026, 4, day, 0, 0, 0, 0, time.UTC),
		Description: description,
		Amount:      decimal.RequireFromString(amount),
	}
}

func Test_Pipeline_Run(t *testing.T) {
	storage, close := newTestStorage(t)
	defer close()

	parser := &staticParser{trxs: []statement.Transaction{
		trx(1, "Sale A", "1000"),
		trx(2, "Rent", "-500"),
	}}
	classifier := mapClassifier{"Sale A": "Sales", "Rent": "Expenses"}

	p := New(
		WithClassifier(classifier),
		WithStorage(storage),
		WithParser(statement.FormatSpreadsheet, parser),
	)

	result, err := p.Run(context.TODO(), "statement.xlsx")
	if !assert.NoError(t, err) {
		return
	}

	if !assert.Len(t, result.Transactions, 2) {
		return
	}
	assert.Equal(t, "Sales", result.Transactions[0].Account)
	assert.Equal(t, "Expenses", result.Transactions[1].Account)

	if !assert.Len(t, result.Entries, 2) {
		return
	}
	assert.Equal(t, "1000.00", money.FormatAmount(result.Entries[0].Debit))
	assert.Equal(t, "0.00", money.FormatAmount(result.Entries[0].Credit))
	assert.Equal(t, "0.00", money.FormatAmount(result.Entries[1].Debit))
	assert.Equal(t, "500.00", money.FormatAmount(result.Entries[1].Credit))

	if !assert.Len(t, result.TrialBalance, 2) {
		return
	}
	assert.Equal(t, "Expenses", result.TrialBalance[0].Account)
	assert.Equal(t, "-500.00", money.FormatAmount(result.TrialBalance[0].Balance))
	assert.Equal(t, "Sales", result.TrialBalance[1].Account)
	assert.Equal(t, "1000.00", money.FormatAmount(result.TrialBalance[1].Balance))

	assert.Equal(t, "130.43", money.FormatAmount(result.VAT.OutputVAT))
	assert.Equal(t, "-65.22", money.FormatAmount(result.VAT.InputVAT))
	assert.Equal(t, "195.65", money.FormatAmount(result.VAT.NetVATDue))

	// Entries are persisted in posting order
	stored, err := storage.ListEntries(context.TODO())
	if !assert.NoError(t, err) {
		return
	}
	if !assert.Len(t, stored, 2) {
		return
	}
	assert.Equal(t, result.Entries[0].ID, stored[0].ID)
	assert.Equal(t, result.Entries[1].ID, stored[1].ID)
}

func Test_Pipeline_Run_classificationFailureIsolated(t *testing.T) {
	storage, close := newTestStorage(t)
	defer close()

	parser := &staticParser{trxs: []statement.Transaction{
		trx(1, "Sale A", "1000"),
		trx(2, "Mystery", "-10"),
	}}
	classifier := mapClassifier{"Sale A": "Sales"}

	p := New(
		WithClassifier(classifier),
		WithStorage(storage),
		WithParser(statement.FormatSpreadsheet, parser),
	)

	result, err := p.Run(context.TODO(), "statement.xlsx")
	if !assert.NoError(t, err) {
		return
	}

	if !assert.Len(t, result.Transactions, 2) {
		return
	}
	assert.Equal(t, "Sales", result.Transactions[0].Account)
	assert.Equal(t, "Unclassified", result.Transactions[1].Account)
	assert.NoError(t, result.ClassifyErrors[0])
	assert.Error(t, result.ClassifyErrors[1])

	// The failed item is still posted, under the sentinel account
	assert.Len(t, result.Entries, 2)
}

func Test_Pipeline_Run_parseFailureAbortsFile(t *testing.T) {
	storage, close := newTestStorage(t)
	defer close()

	parser := &staticParser{err: errors.New("mangled statement")}
	p := New(
		WithClassifier(mapClassifier{}),
		WithStorage(storage),
		WithParser(statement.FormatSpreadsheet, parser),
	)

	result, err := p.Run(context.TODO(), "statement.xlsx")
	assert.Error(t, err)
	assert.Nil(t, result)

	stored, err := storage.ListEntries(context.TODO())
	if !assert.NoError(t, err) {
		return
	}
	assert.Empty(t, stored)
}

func Test_Pipeline_Run_unsupportedFile(t *testing.T) {
	p := New(WithClassifier(mapClassifier{}))
	result, err := p.Run(context.TODO(), "statement.csv")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func Test_Pipeline_RunAs_explicitFormat(t *testing.T) {
	storage, close := newTestStorage(t)
	defer close()

	// A csv extension would fail detection, the explicit format wins
	parser := &staticParser{trxs: []statement.Transaction{trx(1, "Sale A", "1000")}}
	p := New(
		WithClassifier(mapClassifier{"Sale A": "Sales"}),
		WithStorage(storage),
		WithParser(statement.FormatSpreadsheet, parser),
	)

	result, err := p.RunAs(context.TODO(), "statement.csv", statement.FormatSpreadsheet)
	if !assert.NoError(t, err) {
		return
	}
	assert.Len(t, result.Entries, 1)
}

func Test_Pipeline_RunAs_unknownFormat(t *testing.T) {
	p := New(WithClassifier(mapClassifier{}))
	result, err := p.RunAs(context.TODO(), "statement.csv", statement.Format("csv"))
	assert.Error(t, err)
	assert.Nil(t, result)
}

type jobIDCapturingParser struct {
	jobID string
}

func (p *jobIDCapturingParser) Parse(ctx context.Context, path string) ([]statement.Transaction, error) {
	p.jobID = diag.JobIDValue(ctx)
	return nil, nil
}

func Test_Pipeline_Run_assignsJobID(t *testing.T) {
	storage, close := newTestStorage(t)
	defer close()

	parser := &jobIDCapturingParser{}
	p := New(
		WithClassifier(mapClassifier{}),
		WithStorage(storage),
		WithParser(statement.FormatSpreadsheet, parser),
	)

	if _, err := p.Run(context.TODO(), "statement.xlsx"); !assert.NoError(t, err) {
		return
	}
	assert.NotEmpty(t, parser.jobID)

	// A job id already on the context is kept
	ctx := diag.ContextWithJobID(context.Background(), "job-42")
	if _, err := p.Run(ctx, "statement.xlsx"); !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "job-42", parser.jobID)
}

func Test_Pipeline_PostAdjustment(t *testing.T) {
	storage, close := newTestStorage(t)
	defer close()

	p := New(WithClassifier(mapClassifier{}), WithStorage(storage))

	entry, err := p.PostAdjustment(
		context.TODO(),
		time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		"Expenses",
		decimal.Zero,
		decimal.RequireFromString("120.00"),
		"Accrued rent",
	)
	if !assert.NoError(t, err) {
		return
	}
	assert.NotEmpty(t, entry.ID)

	stored, err := storage.ListEntries(context.TODO())
	if !assert.NoError(t, err) {
		return
	}
	if !assert.Len(t, stored, 1) {
		return
	}
	assert.Equal(t, entry.ID, stored[0].ID)
	assert.Equal(t, "Accrued rent", stored[0].Narrative)
}

func Test_Pipeline_StoredTrialBalance(t *testing.T) {
	storage, close := newTestStorage(t)
	defer close()

	parser := &staticParser{trxs: []statement.Transaction{
		trx(1, "Sale A", "1000"),
		trx(2, "Rent", "-500"),
	}}
	classifier := mapClassifier{"Sale A": "Sales", "Rent": "Expenses"}
	p := New(
		WithClassifier(classifier),
		WithStorage(storage),
		WithParser(statement.FormatSpreadsheet, parser),
	)

	if _, err := p.Run(context.TODO(), "statement.xlsx"); !assert.NoError(t, err) {
		return
	}
	if _, err := p.PostAdjustment(
		context.TODO(),
		time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		"Expenses",
		decimal.Zero,
		decimal.RequireFromString("100"),
		"Accrual",
	); !assert.NoError(t, err) {
		return
	}

	rows, vatResult, err := p.StoredTrialBalance(context.TODO())
	if !assert.NoError(t, err) {
		return
	}
	if !assert.Len(t, rows, 2) {
		return
	}
	assert.Equal(t, "Expenses", rows[0].Account)
	assert.Equal(t, "-600.00", money.FormatAmount(rows[0].Balance))
	assert.Equal(t, "Sales", rows[1].Account)
	assert.Equal(t, "1000.00", money.FormatAmount(rows[1].Balance))

	assert.Equal(t, "130.43", money.FormatAmount(vatResult.OutputVAT))
	assert.Equal(t, "-78.26", money.FormatAmount(vatResult.InputVAT))
	assert.Equal(t, "208.69", money.FormatAmount(vatResult.NetVATDue))
}
