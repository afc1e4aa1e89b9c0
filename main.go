package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/olehluchkiv/solclass/internal/analyzer"
	"github.com/olehluchkiv/solclass/internal/logging"
	"github.com/olehluchkiv/solclass/internal/resolver"
)

func main() {
	// A missing .env is fine; flags and the process environment still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	logFile  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "solclass",
		Short:        "Build UML class models from Solidity syntax trees",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", os.Getenv("SOLCLASS_LOG_FILE"), "also write logs to this file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", envOr("SOLCLASS_LOG_LEVEL", "warn"), "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newClassesCmd(opts))
	return rootCmd
}

type classesOptions struct {
	output string
	source string
	jobs   int
	filter analyzer.FilterOptions
}

func newClassesCmd(root *rootOptions) *cobra.Command {
	opts := classesOptions{}

	cmd := &cobra.Command{
		Use:   "classes <ast.json|dir>...",
		Short: "Print the class models of one or more parsed Solidity files as JSON",
		Long: `Reads syntax trees produced by solidity-parser-antlr (one JSON document per
file) and prints the contracts, interfaces and libraries they declare.
Directories are searched recursively for *.json files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLogLevel(root.logLevel)
			if err != nil {
				return err
			}
			logger, cleanup, err := logging.Setup(root.logFile, level)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			defer cleanup()

			files, err := resolver.Resolve(args, logger)
			if err != nil {
				return err
			}
			if opts.source != "" && len(files) > 1 {
				return fmt.Errorf("--source can only be used with a single AST file")
			}

			classes, err := analyzeFiles(cmd.Context(), files, opts, logger)
			if err != nil {
				logger.Error("analysis failed", "error", err)
				return err
			}
			classes = analyzer.Filter(classes, opts.filter)

			if err := emitClasses(cmd.OutOrStdout(), opts.output, classes); err != nil {
				return err
			}
			logger.Info("wrote classes", "classes", len(classes), "files", len(files))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write JSON to file instead of stdout")
	cmd.Flags().StringVar(&opts.source, "source", "", "source file name recorded on the models (default: AST file name without .json)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 4, "number of files analyzed in parallel")
	cmd.Flags().StringVar(&opts.filter.Prefix, "filter", "", "only keep classes whose name starts with this prefix")
	cmd.Flags().BoolVar(&opts.filter.HideLibraries, "hide-libraries", false, "drop libraries from the output")
	cmd.Flags().BoolVar(&opts.filter.HideInterfaces, "hide-interfaces", false, "drop interfaces from the output")

	return cmd
}

// analyzeFiles analyzes every AST file independently. The result keeps the
// order of files, then declaration order within each file.
func analyzeFiles(ctx context.Context, files []string, opts classesOptions, logger *slog.Logger) ([]*analyzer.ClassModel, error) {
	results := make([][]*analyzer.ClassModel, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if opts.jobs > 0 {
		g.SetLimit(opts.jobs)
	}
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read ast: %w", err)
			}
			classes, err := analyzer.AnalyzeJSON(data, sourceName(file, opts.source), logger)
			if err != nil {
				return err
			}
			results[i] = classes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]*analyzer.ClassModel, 0)
	for _, classes := range results {
		all = append(all, classes...)
	}
	return all, nil
}

// sourceName maps an AST file such as "Token.sol.json" back to "Token.sol".
func sourceName(astFile, override string) string {
	if override != "" {
		return override
	}
	return strings.TrimSuffix(astFile, ".json")
}

// emitClasses writes to stdout, or to output when it is set. A failed close
// of the output file is reported like a failed write.
func emitClasses(stdout io.Writer, output string, classes []*analyzer.ClassModel) error {
	if output == "" {
		if err := writeClasses(stdout, classes); err != nil {
			return fmt.Errorf("write classes: %w", err)
		}
		return nil
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writeClasses(f, classes); err != nil {
		_ = f.Close()
		return fmt.Errorf("write classes: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

func writeClasses(w io.Writer, classes []*analyzer.ClassModel) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(classes)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// parseLogLevel accepts the --log-level / SOLCLASS_LOG_LEVEL spellings,
// ignoring case and surrounding blanks.
func parseLogLevel(s string) (slog.Level, error) {
	level, ok := logLevels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return slog.LevelWarn, fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", s)
	}
	return level, nil
}
