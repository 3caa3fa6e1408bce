package classify

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ledger-labs/statements-processor/pkg/statement"
)

// UnclassifiedAccount is a sentinel label assigned when classification of
// a single transaction fails
const UnclassifiedAccount = "Unclassified"

const defaultWorkers = 4

type batchCfg struct {
	workers int
}

// BatchOpt is a batch classification option
type BatchOpt func(cfg *batchCfg)

// WithWorkers sets a number of concurrent classification calls
func WithWorkers(workers int) BatchOpt {
	return func(cfg *batchCfg) {
		cfg.workers = workers
	}
}

// ClassifyAll labels every transaction. Labels are returned in the input
// order. A failure of one item never discards the others: the failed item
// gets the UnclassifiedAccount label and its error is reported at the
// matching position of the errors slice
func ClassifyAll(
	ctx context.Context,
	classifier Classifier,
	trxs []statement.Transaction,
	opts ...BatchOpt,
) ([]statement.LabeledTransaction, []error) {
	cfg := batchCfg{workers: defaultWorkers}
	for _, opt := range opts {
		opt(&cfg)
	}

	labeled := make([]statement.LabeledTransaction, len(trxs))
	errs := make([]error, len(trxs))

	group, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, cfg.workers)
	for i, trx := range trxs {
		i, trx := i, trx
		group.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			account, err := classifier.Classify(ctx, trx)
			if err != nil {
				errs[i] = err
				account = UnclassifiedAccount
			}
			labeled[i] = statement.LabeledTransaction{Transaction: trx, Account: account}
			return nil
		})
	}

	// Workers report failures positionally and never fail the group
	_ = group.Wait()

	return labeled, errs
}
