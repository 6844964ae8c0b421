package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/timesheet-go/pkg/timesheet"
	"github.com/ukaji3/timesheet-go/pkg/timesheet/models"
	"github.com/ukaji3/timesheet-go/pkg/timesheet/output"
)

type checkFlags struct {
	outputPath string
	outDir     string
	sheet      string
	jsonOut    bool
	pretty     bool
	jobs       int
}

// checkResult is the outcome for one input file.
type checkResult struct {
	inPath  string
	outPath string
	report  *models.Report
	err     error
}

func newCheckCmd(root *rootFlags) *cobra.Command {
	var flags checkFlags
	cmd := &cobra.Command{
		Use:   "check [input.xlsx]...",
		Short: "Check timesheets and write annotated copies",
		Long: `check highlights employees with missing entries, adds a Summary sheet and
saves the result as processed_<name>_<timestamp>.xlsx next to each input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, &flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Output workbook path (single input only)")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "Directory for processed workbooks (default: next to each input)")
	cmd.Flags().StringVar(&flags.sheet, "sheet", "", "Data sheet to check (default from config: Sheet1)")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "Print the JSON report instead of metrics")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().IntVar(&flags.jobs, "jobs", runtime.GOMAXPROCS(0), "Number of files checked concurrently")
	return cmd
}

func runCheck(cmd *cobra.Command, root *rootFlags, flags *checkFlags, args []string) error {
	if flags.outputPath != "" && len(args) > 1 {
		return fmt.Errorf("--output accepts a single input, got %d", len(args))
	}
	if flags.jobs < 1 {
		return fmt.Errorf("invalid --jobs: %d (must be at least 1)", flags.jobs)
	}

	cfg, logger, err := root.load(cmd)
	if err != nil {
		return err
	}
	opts := cfg.CheckOptions()
	if flags.sheet != "" {
		opts.SheetName = flags.sheet
	}
	opts.Logger = logger
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	if flags.outDir != "" {
		if err := os.MkdirAll(flags.outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	now := time.Now()
	results := make([]checkResult, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(flags.jobs)
	for i, inPath := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = checkResult{inPath: inPath, err: err}
				return nil
			}
			outPath := flags.outputPath
			if outPath == "" {
				outPath = timesheet.OutputPath(inPath, flags.outDir, now)
			}
			report, err := timesheet.CheckFile(inPath, outPath, opts)
			results[i] = checkResult{inPath: inPath, outPath: outPath, report: report, err: err}
			return nil
		})
	}
	_ = g.Wait()

	w := cmd.OutOrStdout()
	var errs []error
	for _, res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
			continue
		}
		if err := printResult(w, res, flags); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return errors.Join(errs...)
}

func printResult(w io.Writer, res checkResult, flags *checkFlags) error {
	if flags.jsonOut {
		data, err := output.ToJSON(res.report, flags.pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	m := res.report.Metrics
	_, err := fmt.Fprintf(w, "%s -> %s\n"+
		"  Employees with Missing Entries: %d\n"+
		"  Total Billable Hours: %.2f\n"+
		"  Total Non-Billable Hours: %.2f\n",
		res.inPath, res.outPath, m.MissingCount, m.TotalBillableHours, m.TotalNonBillableHours)
	return err
}
