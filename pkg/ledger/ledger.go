// Package ledger implements an append-only store of postings and the
// trial balance derived from it
package ledger

import (
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"

	"github.com/ledger-labs/statements-processor/pkg/statement"
)

// Entry is a single debit-or-credit record against one account.
// Exactly one of Debit/Credit should be non zero, keeping that invariant
// is a caller responsibility. Entries are never mutated after creation
type Entry struct {
	ID        string
	Date      time.Time
	Account   string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Narrative string
}

// Ledger is an append-only collection of entries. Appends are serialized
// so insertion order survives concurrent posting
type Ledger struct {
	mu      sync.Mutex
	entries []Entry
}

// New creates an empty ledger
func New() *Ledger {
	return &Ledger{}
}

// Post appends one entry with the values given. No validation is applied,
// corrections require a new offsetting entry
func (l *Ledger) Post(date time.Time, account string, debit decimal.Decimal, credit decimal.Decimal, narrative string) Entry {
	entry := Entry{
		ID:        uuid.NewV4().String(),
		Date:      date,
		Account:   account,
		Debit:     debit,
		Credit:    credit,
		Narrative: narrative,
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return entry
}

// PostTransaction posts the GL account leg of a labeled transaction:
// a debit for inflows, a credit for outflows. No contra leg to a bank or
// cash account is generated
func (l *Ledger) PostTransaction(trx statement.LabeledTransaction) Entry {
	if trx.Amount.Sign() >= 0 {
		return l.Post(trx.Date, trx.Account, trx.Amount, decimal.Zero, trx.Description)
	}
	return l.Post(trx.Date, trx.Account, decimal.Zero, trx.Amount.Neg(), trx.Description)
}

// Export returns entries in insertion order, never reordered or deduplicated
func (l *Ledger) Export() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	exported := make([]Entry, len(l.entries))
	copy(exported, l.entries)
	return exported
}
