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
	"github.com/ledger-labs/statements-processor/pkg/statement"
)

var logger = diag.CreateLogger()

var cliArgs struct {
	file   string
	format string
}

func showHelpAndExit() {
	flag.PrintDefaults()
	os.Exit(1)
}

func init() {
	flag.StringVar(&cliArgs.file, "file", "", "Bank statement file to process (pdf, xls or xlsx)")
	flag.StringVar(&cliArgs.format, "format", "", "Statement format (pdf or spreadsheet), overrides detection by extension")

	flag.Parse()
}

func main() {
	if cliArgs.file == "" {
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
		var result *pipeline.Result
		var err error
		if cliArgs.format != "" {
			result, err = p.RunAs(ctx, cliArgs.file, statement.Format(cliArgs.format))
		} else {
			result, err = p.Run(ctx, cliArgs.file)
		}
		if err != nil {
			return err
		}

		fmt.Println("Transactions:")
		for i, trx := range result.Transactions {
			fmt.Printf("  %v  %-40v %12v  %v\n",
				trx.Date.Format("2006-01-02"), trx.Description,
				money.FormatAmount(trx.Amount), trx.Account)
			if classifyErr := result.ClassifyErrors[i]; classifyErr != nil {
				fmt.Printf("    classification failed: %v\n", classifyErr)
			}
		}

		fmt.Println("Trial balance:")
		for _, row := range result.TrialBalance {
			fmt.Printf("  %-30v debit %12v credit %12v balance %12v\n",
				row.Account,
				money.FormatAmount(row.Debit),
				money.FormatAmount(row.Credit),
				money.FormatAmount(row.Balance))
		}

		fmt.Println("VAT on Outputs:", money.FormatAmount(result.VAT.OutputVAT))
		fmt.Println("VAT on Inputs:", money.FormatAmount(result.VAT.InputVAT))
		fmt.Println("Net VAT Due:", money.FormatAmount(result.VAT.NetVATDue))
		return nil
	}); err != nil {
		logger.WithError(err).Error(ctx, "Failed to process statement")
		os.Exit(1)
	}
}
