// Package vat derives a VAT liability from trial balance rows using a
// single fixed-rate, VAT-inclusive model
package vat

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledger-labs/statements-processor/pkg/ledger"
)

// Rate is the fixed VAT rate
var Rate = decimal.New(15, -2)

var one = decimal.New(1, 0)

// Result holds VAT figures derived from a trial balance.
// Negative values are possible and valid
type Result struct {
	OutputVAT decimal.Decimal
	InputVAT  decimal.Decimal
	NetVATDue decimal.Decimal
}

// Calculate extracts the VAT portion already embedded in a gross amount:
// amount * rate / (1 + rate), rounded to 2 decimal places
func Calculate(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(Rate).Div(one.Add(Rate)).Round(2)
}

func matchesAny(account string, patterns ...string) bool {
	account = strings.ToLower(account)
	for _, pattern := range patterns {
		if strings.Contains(account, pattern) {
			return true
		}
	}
	return false
}

// FromTrialBalance sums balances of sales/revenue accounts into output VAT
// and of expenses/purchases accounts into input VAT. Account matching is a
// case-insensitive substring match
func FromTrialBalance(rows []ledger.TrialBalanceRow) Result {
	sales := decimal.Zero
	purchases := decimal.Zero
	for _, row := range rows {
		if matchesAny(row.Account, "sales", "revenue") {
			sales = sales.Add(row.Balance)
		}
		if matchesAny(row.Account, "expenses", "purchases") {
			purchases = purchases.Add(row.Balance)
		}
	}

	outputVAT := Calculate(sales)
	inputVAT := Calculate(purchases)
	return Result{
		OutputVAT: outputVAT,
		InputVAT:  inputVAT,
		NetVATDue: outputVAT.Sub(inputVAT),
	}
}
