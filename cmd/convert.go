package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/upi-statement-parser/internal/logger"
	"github.com/insightdelivered/upi-statement-parser/internal/parser"
	"github.com/insightdelivered/upi-statement-parser/internal/writer"
)

// stdoutPath sends the converted output to standard output.
const stdoutPath = "-"

type convertOptions struct {
	password string
	format   string
	output   string
}

func newConvertCmd(a *app) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [flags] <statement.pdf> [statement2.pdf ...]",
		Short: "Convert statement PDFs to JSON, CSV or XLSX",
		Example: `  # Convert to CSV next to the input
  upi-statement-parser convert --password ABCD1234 statement.pdf

  # Print JSON to stdout
  upi-statement-parser convert --password ABCD1234 --format json --output - statement.pdf

  # Convert several statements sharing a password
  upi-statement-parser convert --password ABCD1234 --format xlsx jan.pdf feb.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" && len(args) > 1 {
				return errors.New("--output can only be used with a single input file")
			}
			p, layout, err := a.newParser()
			if err != nil {
				return err
			}
			w, err := writer.New(opts.format, layout)
			if err != nil {
				return err
			}
			ctx := logger.WithContext(cmd.Context(), a.log)
			for _, inputPath := range args {
				if err := a.convertFile(ctx, cmd.OutOrStdout(), p, w, inputPath, opts); err != nil {
					return fmt.Errorf("processing %s: %w", inputPath, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.password, "password", "p", "", "PDF password")
	cmd.Flags().StringVarP(&opts.format, "format", "f", writer.FormatCSV, "Output format: json, csv or xlsx")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `Output file path (defaults to the input name with the format's extension, "-" for stdout)`)
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (a *app) convertFile(ctx context.Context, out io.Writer, p *parser.Parser, w writer.Writer, inputPath string, opts *convertOptions) error {
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	start := time.Now()
	pages, err := a.open(data, opts.password)
	if err != nil {
		return err
	}

	res := p.Parse(ctx, pages)

	if opts.output == stdoutPath {
		return w.Write(out, res)
	}

	outPath := opts.output
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "." + w.Extension()
	}
	if err := writer.WriteToFile(w, outPath, res); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %d transaction(s) from %d page(s), %d dropped, in %s\n",
		inputPath, res.Count(), res.Pages, res.Dropped, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(out, "  Total debit:  %s\n", res.TotalDebit.StringFixed(2))
	fmt.Fprintf(out, "  Total credit: %s\n", res.TotalCredit.StringFixed(2))
	fmt.Fprintf(out, "  Output: %s\n", outPath)
	if res.Count() == 0 {
		fmt.Fprintln(out, "  Warning: no transactions found. The statement layout may not match a UPI statement.")
	}
	return nil
}
