package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ledger-labs/statements-processor/config"
	"github.com/ledger-labs/statements-processor/pkg/app"
	"github.com/ledger-labs/statements-processor/pkg/diag"
	"github.com/ledger-labs/statements-processor/pkg/money"
	"github.com/ledger-labs/statements-processor/pkg/pipeline"
)

var logger = diag.CreateLogger()

func main() {
	flag.Parse()

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
		trialBalance, vatResult, err := p.StoredTrialBalance(ctx)
		if err != nil {
			return err
		}
		for _, row := range trialBalance {
			fmt.Printf("%-30v debit %12v credit %12v balance %12v\n",
				row.Account,
				money.FormatAmount(row.Debit),
				money.FormatAmount(row.Credit),
				money.FormatAmount(row.Balance))
		}
		fmt.Println("VAT on Outputs:", money.FormatAmount(vatResult.OutputVAT))
		fmt.Println("VAT on Inputs:", money.FormatAmount(vatResult.InputVAT))
		fmt.Println("Net VAT Due:", money.FormatAmount(vatResult.NetVATDue))
		return nil
	}); err != nil {
		logger.WithError(err).Error(ctx, "Failed to compute trial balance")
		os.Exit(1)
	}
}
