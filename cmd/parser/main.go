// Package main is the invoice parser CLI. It always writes exactly one JSON
// object to stdout and exits 0; diagnostics go to stderr.
package main

import (
	"fmt"
	"os"

	"github.com/redjkee/transport-analytics/internal/api/responses"
	"github.com/redjkee/transport-analytics/internal/config"
	"github.com/redjkee/transport-analytics/internal/core/invoice"
	"github.com/redjkee/transport-analytics/internal/domain"
	"github.com/redjkee/transport-analytics/internal/export"
	"github.com/redjkee/transport-analytics/internal/files"
	"github.com/redjkee/transport-analytics/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cliOptions struct {
	dir      string
	workers  int
	csvPath  string
	pretty   bool
	logLevel string
}

func main() {
	var opts cliOptions

	rootCmd := &cobra.Command{
		Use:   "invoice-parser [files...]",
		Short: "Extract trip records from spreadsheet invoices",
		Long: `invoice-parser locates the goods/amount table in each invoice workbook,
extracts date, route, amount, plate and driver from every trip line and prints
one JSON object with the records and summary statistics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := run(args, opts)
			return responses.Write(cmd.OutOrStdout(), res, opts.pretty)
		},
	}

	rootCmd.Flags().StringVar(&opts.dir, "dir", "", "Directory scanned when no files are given (default: $INVOICE_INPUT_DIR)")
	rootCmd.Flags().IntVar(&opts.workers, "workers", 0, "Files parsed in parallel (default: $INVOICE_WORKERS)")
	rootCmd.Flags().StringVar(&opts.csvPath, "csv", "", "Also write the records as CSV to this path")
	rootCmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		_ = responses.Write(os.Stdout, responses.Failure(err), false)
	}
}

// run never fails: every outcome, including a panic, becomes a Result.
func run(args []string, opts cliOptions) (res responses.Result) {
	defer func() {
		if p := recover(); p != nil {
			res = responses.Failure(fmt.Errorf("%v", p))
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return responses.Failure(err)
	}
	if opts.dir != "" {
		cfg.InputDir = opts.dir
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return responses.Failure(err)
	}

	zl, err := logger.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return responses.Failure(err)
	}
	defer zl.Sync()

	paths := args
	if len(paths) == 0 {
		paths, err = files.FindSpreadsheets(cfg.InputDir)
		if err != nil {
			return responses.Failure(err)
		}
	}
	zl.Info("input files collected", zap.Int("count", len(paths)), zap.Strings("files", paths))

	svc := invoice.NewService(zl, invoice.Options{
		Workers:      cfg.Workers,
		MaxEmptyRows: cfg.MaxEmptyRows,
		MaxScanRows:  cfg.MaxScanRows,
	})
	batch := svc.Process(invoice.FileSources(paths))

	if opts.csvPath != "" && batch.Err() == nil {
		if err := writeCSVFile(opts.csvPath, batch); err != nil {
			zl.Error("csv export failed", zap.String("path", opts.csvPath), zap.Error(err))
		}
	}

	res = responses.FromBatch(batch)
	if res.Success {
		zl.Info("parser finished", zap.String("message", res.Message))
	} else {
		zl.Warn("parser finished without data", zap.String("error", res.Error))
	}
	return res
}

func writeCSVFile(path string, batch domain.Batch) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return export.WriteCSV(f, batch.Records)
}
