package dal

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/ledger-labs/statements-processor/pkg/ledger"
)

// EntryDTO is a DTO to store a posted ledger entry
type EntryDTO struct {
	ID        string
	Date      string
	Account   string
	Debit     string
	Credit    string
	Narrative string
}

// NewEntryDTO converts a ledger entry to its storage representation
func NewEntryDTO(entry ledger.Entry) *EntryDTO {
	return &EntryDTO{
		ID:        entry.ID,
		Date:      entry.Date.Format(time.RFC3339),
		Account:   entry.Account,
		Debit:     entry.Debit.String(),
		Credit:    entry.Credit.String(),
		Narrative: entry.Narrative,
	}
}

// ToEntry converts a stored DTO back to a ledger entry
func (dto *EntryDTO) ToEntry() (ledger.Entry, error) {
	date, err := time.Parse(time.RFC3339, dto.Date)
	if err != nil {
		return ledger.Entry{}, errors.Wrapf(err, "Bad date of entry %v", dto.ID)
	}
	debit, err := decimal.NewFromString(dto.Debit)
	if err != nil {
		return ledger.Entry{}, errors.Wrapf(err, "Bad debit of entry %v", dto.ID)
	}
	credit, err := decimal.NewFromString(dto.Credit)
	if err != nil {
		return ledger.Entry{}, errors.Wrapf(err, "Bad credit of entry %v", dto.ID)
	}
	return ledger.Entry{
		ID:        dto.ID,
		Date:      date,
		Account:   dto.Account,
		Debit:     debit,
		Credit:    credit,
		Narrative: dto.Narrative,
	}, nil
}

// Storage is a persistence layer for posted ledger entries
type Storage interface {
	Setup(ctx context.Context) error
	SaveEntry(ctx context.Context, entry *EntryDTO) error
	ListEntries(ctx context.Context) ([]*EntryDTO, error)
}
