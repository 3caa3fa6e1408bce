package app

import (
	"database/sql"

	"go.uber.org/dig"

	"github.com/ledger-labs/statements-processor/config"
	"github.com/ledger-labs/statements-processor/pkg/classify"
	"github.com/ledger-labs/statements-processor/pkg/dal"
	"github.com/ledger-labs/statements-processor/pkg/pipeline"
)

// Injector is a function that will inject desired services
// to a target function
type Injector func(function interface{}) error

// BootstrapServices setup di container with all app services
func BootstrapServices(appCfg *config.AppConfig) Injector {
	c := dig.New()

	c.Provide(func() (*sql.DB, error) {
		return sql.Open(appCfg.Storage.Driver, appCfg.Storage.DSN)
	})

	c.Provide(func(db *sql.DB) (dal.Storage, error) {
		return dal.NewSQLStorage(dal.WithSQLDb(db))
	})

	c.Provide(func() classify.Classifier {
		return classify.NewAPIClassifier(
			classify.WithBaseURL(appCfg.Classifier.API),
			classify.WithAPIKey(appCfg.Classifier.APIKey),
			classify.WithModel(appCfg.Classifier.Model),
		)
	})

	c.Provide(func(storage dal.Storage, classifier classify.Classifier) *pipeline.Pipeline {
		return pipeline.New(
			pipeline.WithClassifier(classifier),
			pipeline.WithStorage(storage),
		)
	})

	return func(function interface{}) error {
		return c.Invoke(function)
	}
}
