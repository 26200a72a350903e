package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/zjy-dev/ir-bugpoint/internal/backend"
	"github.com/zjy-dev/ir-bugpoint/internal/config"
	"github.com/zjy-dev/ir-bugpoint/internal/ir"
	"github.com/zjy-dev/ir-bugpoint/internal/logger"
	"github.com/zjy-dev/ir-bugpoint/internal/oracle"
	"github.com/zjy-dev/ir-bugpoint/internal/reduce"
	"github.com/zjy-dev/ir-bugpoint/internal/report"
	"github.com/zjy-dev/ir-bugpoint/internal/target"
)

// NewReduceCommand creates the "reduce" subcommand.
func NewReduceCommand() *cobra.Command {
	var (
		compilerPath string
		targetName   string
		triple       string
		basicBlocks  bool
		output       string
		format       string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "reduce <function.json>",
		Short: "Reduce a crashing function to a minimal reproducer.",
		Long: `reduce loads one or more JSON-encoded IR functions -- a single
function object, or a JSON array of them -- and repeatedly applies the
mutator family to each, keeping any candidate that still crashes the
configured backend, until a full pass makes no further progress. When
given a batch, every function is reduced independently; a function that
does not reproduce a crash does not stop the rest of the batch, and all
such failures are reported together once the batch finishes.

Configuration:
  Default values are loaded from config.yaml.
  Command line flags override the config file values.

Examples:
  # Reduce using an out-of-process code generator
  bugpoint reduce crash.json --compiler ./my-codegen --target x86_64

  # Preserve basic-block structure while reducing
  bugpoint reduce crash.json --compiler ./my-codegen --basic-blocks

  # Emit a markdown report instead of JSON
  bugpoint reduce crash.json --compiler ./my-codegen --format markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if !cmd.Flags().Changed("target") {
				targetName = cfg.Target.Name
			}
			if !cmd.Flags().Changed("triple") {
				triple = cfg.Target.Triple
			}
			if !cmd.Flags().Changed("basic-blocks") {
				basicBlocks = cfg.Features.BasicBlocks
			}

			logLevel := cfg.LogLevel
			if verbose {
				logLevel = "debug"
			}
			if cfg.LogDir != "" {
				if err := logger.InitWithFile(logLevel, cfg.LogDir); err != nil {
					return fmt.Errorf("failed to initialize file logger: %w", err)
				}
			} else {
				logger.Init(logLevel)
			}

			return runReduce(cfg, args[0], compilerPath, targetName, triple, basicBlocks, output, format, verbose)
		},
	}

	cmd.Flags().StringVar(&compilerPath, "compiler", "", "path to the external code generator to drive (required)")
	cmd.Flags().StringVar(&targetName, "target", "", "backend/ISA name, e.g. x86_64")
	cmd.Flags().StringVar(&triple, "triple", "", "optional target-triple string")
	cmd.Flags().BoolVar(&basicBlocks, "basic-blocks", false, "preserve cond/uncond branch pairs when merging blocks")
	cmd.Flags().StringVar(&output, "output", "bugpoint_out", "directory to write the reduction report to")
	cmd.Flags().StringVar(&format, "format", "json", "report format: json or markdown")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log every accepted mutation as it happens")

	cmd.MarkFlagRequired("compiler")

	return cmd
}

// loadFunctions parses data as either a single JSON-encoded ir.Function
// object or a JSON array of them, mirroring original_source's test-file
// format where a single input can carry a batch of functions to reduce.
func loadFunctions(data []byte) ([]*ir.Function, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("input is empty")
	}

	if trimmed[0] != '[' {
		f := ir.New("")
		if err := json.Unmarshal(trimmed, f); err != nil {
			return nil, err
		}
		return []*ir.Function{f}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, err
	}
	functions := make([]*ir.Function, 0, len(raw))
	for _, r := range raw {
		f := ir.New("")
		if err := json.Unmarshal(r, f); err != nil {
			return nil, err
		}
		functions = append(functions, f)
	}
	return functions, nil
}

func runReduce(cfg *config.Config, inputPath, compilerPath, targetName, triple string, basicBlocks bool, output, format string, verbose bool) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input function: %w", err)
	}

	functions, err := loadFunctions(data)
	if err != nil {
		return fmt.Errorf("failed to parse input function(s): %w", err)
	}

	td := target.Descriptor{Name: targetName, Triple: triple}
	features := target.Features{BasicBlocks: basicBlocks}
	limits := reduce.Limits{MaxPasses: cfg.Reduce.MaxPasses, MaxCandidates: cfg.Reduce.MaxCandidates}

	logger.Info("Target: %s", td.Name)
	logger.Info("Input: %s (%d function(s))", inputPath, len(functions))

	b := backend.NewProcessBackend(compilerPath)
	w := oracle.New(b, td)

	var progress reduce.Progress
	if verbose {
		progress = &reduce.LoggerProgress{}
	}

	var errs error
	for _, f := range functions {
		if err := reduceOne(w, features, limits, progress, f, td, output, format); err != nil {
			logger.Info("Warning: %s: %s", f.Name, err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f.Name, err))
		}
	}
	return errs
}

// reduceOne reduces a single function and saves its report and reduced
// IR alongside the rest of a batch; callers aggregate any error across
// the whole batch instead of aborting on the first failure.
func reduceOne(w *oracle.Wrapper, features target.Features, limits reduce.Limits, progress reduce.Progress, f *ir.Function, td target.Descriptor, output, format string) error {
	logger.Info("Reducing %s (%d blocks, %d insts)", f.Name, ir.BlockCount(f), ir.InstCount(f))

	before := report.FunctionStats{Blocks: ir.BlockCount(f), Insts: ir.InstCount(f)}

	result, err := reduce.Reduce(context.Background(), w, features, f, limits, progress)
	if err != nil {
		return fmt.Errorf("reduction failed: %w", err)
	}

	after := report.FunctionStats{Blocks: ir.BlockCount(result.Function), Insts: ir.InstCount(result.Function)}
	logger.Info("Reduced %s: %d/%d blocks, %d/%d insts", result.Function.Name, after.Blocks, before.Blocks, after.Insts, before.Insts)

	rep := &report.CrashReport{
		FunctionName: result.Function.Name,
		Target:       td,
		CrashMessage: result.CrashMessage,
		Before:       before,
		After:        after,
	}

	var reporter report.Reporter
	switch format {
	case "markdown":
		reporter = report.NewMarkdownReporter(output)
	case "json":
		reporter = report.NewJSONReporter(output)
	default:
		return fmt.Errorf("unknown report format: %s", format)
	}
	if err := reporter.Save(rep); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	outPath := filepath.Join(output, result.Function.Name+"_reduced.json")
	outData, err := json.MarshalIndent(result.Function, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reduced function: %w", err)
	}
	if err := os.MkdirAll(output, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, outData, 0644); err != nil {
		return fmt.Errorf("failed to write reduced function: %w", err)
	}

	fmt.Printf("Reduced function written to %s\n", outPath)
	return nil
}
