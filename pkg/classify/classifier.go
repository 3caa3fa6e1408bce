// Package classify assigns GL accounts to statement transactions using an
// external chat completions API
package classify

import (
	"context"

	"github.com/ledger-labs/statements-processor/pkg/statement"
)

// ClassifierError indicates a failure of the external classification call
type ClassifierError struct {
	cause error
}

func (e *ClassifierError) Error() string {
	return "classification failed: " + e.cause.Error()
}

// Cause returns an underlying error
func (e *ClassifierError) Cause() error {
	return e.cause
}

func newClassifierError(err error) error {
	return &ClassifierError{cause: err}
}

// Classifier maps a transaction to a GL account label
type Classifier interface {
	Classify(ctx context.Context, trx statement.Transaction) (string, error)
}
