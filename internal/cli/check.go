package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"modelmedic/internal/check"
	"modelmedic/internal/compat"
	"modelmedic/internal/config"
	"modelmedic/internal/flags"
	"modelmedic/internal/output"
)

var cfg = config.New()

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check ONNX model files against runtime support ranges",
	Long: `Check a set of local ONNX model files and report their IR and opset
versions against known ONNX Runtime support ranges.

Each model is loaded once, in order. A missing or unparsable model is
reported inline and never blocks the remaining models. After all models,
the known runtime tiers and an aggregate keep-or-upgrade recommendation
are printed.

Model selection:
	Without --model flags the default detector (YOLO) and re-identification
	(OSNet) models under --cache-dir are checked. Explicit models are given
	as NAME=PATH and checked in flag order.

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write an aggregate JSON array or NDJSON stream to a file
	- --report: write a Markdown report
	- --no-console: suppress the console sink (use with --out/--report)

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events
	with a "type" field (run.started, model.result, run.summary,
	run.finished).

Exit codes:
	0 = run completed (missing or unparsable models are reported, not fatal)
	1 = fatal error (invalid flags, output could not be written)

Examples:
  # Check the default model set
  modelmedic check

  # Check explicit models, in order
  modelmedic check --model YOLO=.cache/yolo/yolo12n.onnx --model OSNet=.cache/reid/osnet_x0_25.onnx

  # Machine-readable stream
  modelmedic check --no-console --out results.ndjson
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		descriptors, err := cfg.Descriptors()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		outMgr, err := setupOutputManager(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		code := runCheck(outMgr, descriptors)
		if err := outMgr.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if code == 0 {
				code = 1
			}
		}
		os.Exit(code)
	},
}

// runCheck drives one check run through the sinks and returns the process
// exit code: 0 after any completed run (missing models included), 1 when
// output could not be written.
func runCheck(outMgr *output.Manager, descriptors []check.Descriptor) int {
	if err := outMgr.Write(output.Event{Type: "run.started", Models: len(descriptors)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	results := check.Check(descriptors)
	for _, res := range results {
		if err := outMgr.Write(res); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	summary := output.Summary{
		Runtimes:       compat.Runtimes(),
		Recommendation: check.Recommendation(results),
	}
	if err := outMgr.Write(summary); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := outMgr.Write(output.Event{Type: "run.finished", ExitCode: 0}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()

	// Console Sink
	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(nil, cfg.Output.ConsoleFormat, cfg.Output.ConsoleFilterStatus)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// File Sink
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Report Sink
	if cfg.Output.Report != "" {
		rs, err := output.NewReportSink(cfg.Output.Report)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(rs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Models
	checkCmd.Flags().StringSliceVar(&cfg.Models.Specs, flags.FlagModel, nil, "Model to check as NAME=PATH (repeatable; comma-separated accepted; empty = default set)")
	checkCmd.Flags().StringVar(&cfg.Models.CacheDir, flags.FlagCacheDir, cfg.Models.CacheDir, "Local model cache root for the default model set")

	// Output
	checkCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "text", "Console output format: text|json|ndjson (default: text)")
	checkCmd.Flags().StringSliceVar(&cfg.Output.ConsoleFilterStatus, flags.FlagConsoleFilterStatus, nil, "Filter console output by status (OK, MISSING, ERROR). Comma-separated.")
	checkCmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown report to this path")
	checkCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	checkCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	checkCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --out/--report)")
}
