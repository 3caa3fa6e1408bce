package dal

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	// This has to be here to let go mods work
	_ "github.com/mattn/go-sqlite3"

	"github.com/ledger-labs/statements-processor/pkg/diag"
)

var logger = diag.CreateLogger()

type sqlStorage struct {
	db *sql.DB
}

func (s *sqlStorage) Setup(ctx context.Context) error {
	logger.Info(ctx, "Setup SQL storage")
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS ledger_entries(
	seq       INTEGER PRIMARY KEY AUTOINCREMENT,
	id        nvarchar(255) NOT NULL UNIQUE,
	date      nvarchar(255) NOT NULL,
	account   nvarchar(255) NOT NULL,
	debit     nvarchar(255) NOT NULL,
	credit    nvarchar(255) NOT NULL,
	narrative nvarchar(255) NOT NULL,
	created_at timestamp NOT NULL
);
`)
	return errors.Wrap(err, "Failed to setup storage")
}

func (s *sqlStorage) SaveEntry(ctx context.Context, entry *EntryDTO) error {
	if _, err := s.db.ExecContext(ctx, `
	INSERT INTO ledger_entries(
		id,
		date,
		account,
		debit,
		credit,
		narrative,
		created_at
	)
	VALUES($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, entry.Date, entry.Account, entry.Debit, entry.Credit, entry.Narrative, time.Now()); err != nil {
		return err
	}
	return nil
}

func (s *sqlStorage) ListEntries(ctx context.Context) ([]*EntryDTO, error) {
	res, err := s.db.QueryContext(ctx, `
	SELECT
		id, date, account, debit, credit, narrative
	FROM ledger_entries ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	var entries []*EntryDTO
	for res.Next() {
		entry := &EntryDTO{}
		if err := res.Scan(
			&entry.ID,
			&entry.Date,
			&entry.Account,
			&entry.Debit,
			&entry.Credit,
			&entry.Narrative,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if res.Err() != nil {
		return nil, res.Err()
	}
	return entries, nil
}

// SQLStorageOpt is an option of SQL storage
type SQLStorageOpt func(s *sqlStorage)

// WithSQLDb will set an explicit db instance for a storage
func WithSQLDb(db *sql.DB) SQLStorageOpt {
	return func(s *sqlStorage) {
		s.db = db
	}
}

// NewSQLStorage returns an instance of a local storage
func NewSQLStorage(opts ...SQLStorageOpt) (Storage, error) {
	storage := &sqlStorage{}
	for _, opt := range opts {
		opt(storage)
	}
	return storage, nil
}
