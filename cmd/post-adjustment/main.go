package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/ledger-labs/statements-processor/config"
	"github.com/ledger-labs/statements-processor/pkg/app"
	"github.com/ledger-labs/statements-processor/pkg/diag"
	"github.com/ledger-labs/statements-processor/pkg/pipeline"
	"github.com/ledger-labs/statements-processor/pkg/statement"
)

var logger = diag.CreateLogger()

var cliArgs struct {
	date      string
	account   string
	debit     string
	credit    string
	narrative string
}

func showHelpAndExit() {
	flag.PrintDefaults()
	os.Exit(1)
}

func init() {
	flag.StringVar(&cliArgs.date, "date", "", "Entry date (day first, e.g. 31/01/2026)")
	flag.StringVar(&cliArgs.account, "account", "", "GL account to post to")
	flag.StringVar(&cliArgs.debit, "debit", "0", "Debit amount")
	flag.StringVar(&cliArgs.credit, "credit", "0", "Credit amount")
	flag.StringVar(&cliArgs.narrative, "narrative", "", "Entry narrative")

	flag.Parse()
}

func main() {
	if cliArgs.date == "" || cliArgs.account == "" {
		showHelpAndExit()
	}

	appCfg, err := config.LoadAppConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	diag.SetupLoggingSystem(func(setup diag.LoggingSystemSetup) {
		setup.SetLogLevel(appCfg.Log.Level)
	})

	injector := app.BootstrapServices(appCfg)
	ctx := context.Background()

	if err := injector(func(p *pipeline.Pipeline) error {
		date, err := statement.ParseDate(cliArgs.date)
		if err != nil {
			return err
		}
		debit, err := decimal.NewFromString(cliArgs.debit)
		if err != nil {
			return err
		}
		credit, err := decimal.NewFromString(cliArgs.credit)
		if err != nil {
			return err
		}
		entry, err := p.PostAdjustment(ctx, date, cliArgs.account, debit, credit, cliArgs.narrative)
		if err != nil {
			return err
		}
		fmt.Println("Posted:", entry.ID)
		return nil
	}); err != nil {
		logger.WithError(err).Error(ctx, "Failed to post adjusting entry")
		os.Exit(1)
	}
}
