package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is a per-account net of all debits and credits
type TrialBalanceRow struct {
	Account string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
	Balance decimal.Decimal
}

// TrialBalance groups entries by exact account name and sums both sides.
// Rows are sorted by account name so the result is reproducible
func TrialBalance(entries []Entry) []TrialBalanceRow {
	sums := map[string]*TrialBalanceRow{}
	for _, entry := range entries {
		row, ok := sums[entry.Account]
		if !ok {
			row = &TrialBalanceRow{
				Account: entry.Account,
				Debit:   decimal.Zero,
				Credit:  decimal.Zero,
			}
			sums[entry.Account] = row
		}
		row.Debit = row.Debit.Add(entry.Debit)
		row.Credit = row.Credit.Add(entry.Credit)
	}

	accounts := make([]string, 0, len(sums))
	for account := range sums {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)

	rows := make([]TrialBalanceRow, 0, len(accounts))
	for _, account := range accounts {
		row := sums[account]
		row.Balance = row.Debit.Sub(row.Credit)
		rows = append(rows, *row)
	}
	return rows
}
