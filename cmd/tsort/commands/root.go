// Package commands implements the tsort command line.
package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tbarnett/tsort"
	"github.com/tbarnett/tsort/internal/logger"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Execute runs the tsort command line against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds a fresh command tree with its own viper instance, so
// tests can run it repeatedly.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "tsort [flags] <input file> <output file>",
		Short: "tsort - text file sort program",
		Long: `tsort sorts a text file whose records span a fixed number of lines.

Records of --block lines are ordered by the text starting at --column of
line --line within each record. Lines and columns count from 1. The whole
input is read and sorted before the output file is created.

Options can also be set through TSORT_* environment variables
(TSORT_BLOCK=3, TSORT_IGNORE_CASE=true) or a config file.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initViper(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, v, args[0], args[1])
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (yaml or toml)")
	flags.IntP("block", "b", 1, "lines per block")
	flags.IntP("column", "c", 1, "sort start column, from 1")
	flags.IntP("line", "l", 1, "sort line within a block, from 1")
	flags.BoolP("reverse", "r", false, "reverse (descending) sort")
	flags.BoolP("forward", "f", false, "forward (ascending) sort, the default")
	flags.BoolP("ignore-case", "i", false, "case-insensitive sort")
	flags.BoolP("case-sensitive", "s", false, "case-sensitive sort, the default")
	flags.Int("chunk-size", tsort.DefaultChunkSize, "read buffer size in bytes")
	flags.Int64("memory-limit", 0, "maximum bytes held while sorting, 0 for no limit")
	flags.String("log-level", "INFO", "log level: DEBUG, INFO, WARN, ERROR")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("log-output", "stderr", "log output: stdout, stderr or a file path")
	rootCmd.MarkFlagsMutuallyExclusive("reverse", "forward")
	rootCmd.MarkFlagsMutuallyExclusive("ignore-case", "case-sensitive")

	rootCmd.AddCommand(newCheckCmd(v))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd
}

// initViper binds the flags of cmd and the TSORT_ environment to v, then
// reads the config file if one was given.
func initViper(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix("TSORT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
	}
	return nil
}

// sortOptions converts the 1-based command-line settings into library
// options.
func sortOptions(v *viper.Viper, log *slog.Logger) ([]tsort.Option, error) {
	block := v.GetInt("block")
	column := v.GetInt("column")
	line := v.GetInt("line")
	if block < 1 {
		return nil, fmt.Errorf("--block must be at least 1, got %d", block)
	}
	if column < 1 {
		return nil, fmt.Errorf("--column must be at least 1, got %d", column)
	}
	if line < 1 {
		return nil, fmt.Errorf("--line must be at least 1, got %d", line)
	}

	return []tsort.Option{
		tsort.WithLinesPerBlock(block),
		tsort.WithSortColumn(column - 1),
		tsort.WithSortLine(line - 1),
		tsort.WithReverse(v.GetBool("reverse") && !v.GetBool("forward")),
		tsort.WithCaseInsensitive(v.GetBool("ignore-case") && !v.GetBool("case-sensitive")),
		tsort.WithChunkSize(v.GetInt("chunk-size")),
		tsort.WithMemoryLimit(v.GetInt64("memory-limit")),
		tsort.WithLogger(log),
	}, nil
}

func newLogger(v *viper.Viper) (*slog.Logger, func() error, error) {
	return logger.New(logger.Config{
		Level:  v.GetString("log-level"),
		Format: v.GetString("log-format"),
		Output: v.GetString("log-output"),
	})
}

func runSort(cmd *cobra.Command, v *viper.Viper, input, output string) error {
	log, closeLog, err := newLogger(v)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	opts, err := sortOptions(v, log)
	if err != nil {
		return err
	}

	log.Info("sorting file", "input", input, "output", output)
	stats, err := tsort.SortFile(input, output, opts...)
	if err != nil {
		log.Error("sort failed", "error", err)
		return err
	}
	log.Info("operation completed successfully", "stats", stats)
	return nil
}
