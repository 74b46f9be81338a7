// Package cmd wires configuration, logging and the statement pipeline into
// the upi-statement-parser command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/upi-statement-parser/internal/config"
	"github.com/insightdelivered/upi-statement-parser/internal/extractor"
	"github.com/insightdelivered/upi-statement-parser/internal/logger"
	"github.com/insightdelivered/upi-statement-parser/internal/parser"
)

// Version is reported by --version and GET /health.
var Version = "1.0.0"

// app carries what every subcommand needs once the root command has loaded
// configuration.
type app struct {
	cfg  *config.Config
	log  zerolog.Logger
	open extractor.OpenFunc
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(extractor.Open)
}

func newRootCmd(open extractor.OpenFunc) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:   "upi-statement-parser",
		Short: "Extract transactions from password-protected UPI bank statements",
		Long: `Extracts UPI transactions from password-protected bank statement PDFs.

Each transaction gets a date, amount, direction, counterparty, reference
number and spending category. Run "serve" for the HTTP API or "convert"
for one-off conversions to JSON, CSV or XLSX.

Configuration comes from environment variables, optionally loaded from a
.env file in the working directory.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("configuration: %w", err)
			}
			log, err := logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = log
			return nil
		},
	}

	root.AddCommand(newServeCmd(a), newConvertCmd(a))
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newParser builds the pipeline and the date layout from configuration.
func (a *app) newParser() (*parser.Parser, string, error) {
	opts, err := a.cfg.ParserOptions()
	if err != nil {
		return nil, "", err
	}
	layout, err := a.cfg.DateLayout()
	if err != nil {
		return nil, "", err
	}
	return parser.New(nil, opts), layout, nil
}
