package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/attendance/internal/config"
	"github.com/JonMunkholm/attendance/internal/report"
	"github.com/spf13/cobra"
)

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{}
}

type reportOptions struct {
	threshold int
	output    string
	xlsx      string
	jsonOut   bool
	maxSize   int64
}

func newReportCmd() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Build a presence report from an attendance log",
		Long: `Build a presence report from an attendance log.

The report is written in the encoding of the input file, next to it as
attendance_<name>.csv unless --output is given. Use --output - to write
it to stdout.`,
		Example: `  attendance report "Team Sync.csv" --threshold 600
  attendance report log.csv --xlsx report.xlsx
  attendance report log.csv --output - > report.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				opts.threshold = configFrom(cmd.Context()).Report.DefaultThreshold
			}
			opts.maxSize = configFrom(cmd.Context()).Upload.MaxFileSize
			return runReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.threshold, "threshold", "t", 0, "seconds of attendance needed to be Present")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "report path, or - for stdout")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "also write the report as an Excel workbook")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the report as JSON instead of a summary")
	return cmd
}

func runReport(stdout, stderr io.Writer, path string, opts reportOptions) error {
	// Same limit as uploads. Zero means no limit.
	if opts.maxSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if info.Size() > opts.maxSize {
			return userError(fmt.Errorf("%w: %d bytes exceeds %d", report.ErrFileTooLarge, info.Size(), opts.maxSize))
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	rep, err := report.Build(filepath.Base(path), data, opts.threshold)
	if err != nil {
		slog.Debug("report failed", "file", path, "error", err)
		return userError(err)
	}
	slog.Debug("report built", "file", path, "encoding", rep.Encoding, "participants", len(rep.Results))

	// Human-readable output goes to stderr when the report itself is on stdout.
	summaryOut := stdout
	switch opts.output {
	case "-":
		summaryOut = stderr
		if _, err := stdout.Write(rep.Output); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	case "":
		opts.output = filepath.Join(filepath.Dir(path), rep.DownloadName())
		fallthrough
	default:
		if err := os.WriteFile(opts.output, rep.Output, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if opts.xlsx != "" {
		if err := writeXLSXFile(opts.xlsx, rep); err != nil {
			return err
		}
	}

	if opts.jsonOut {
		enc := json.NewEncoder(summaryOut)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	written := []string{}
	if opts.output != "-" {
		written = append(written, opts.output)
	}
	if opts.xlsx != "" {
		written = append(written, opts.xlsx)
	}
	_, err = fmt.Fprint(summaryOut, renderSummary(rep, written))
	return err
}

func writeXLSXFile(path string, rep *report.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return report.WriteXLSX(f, rep)
}

// userError keeps the technical error for errors.Is while printing the
// coded message.
func userError(err error) error {
	if !report.IsUserFacing(err) {
		return err
	}
	return &codedError{msg: report.FormatUserError(err), err: err}
}

type codedError struct {
	msg string
	err error
}

func (e *codedError) Error() string { return e.msg }
func (e *codedError) Unwrap() error { return e.err }
