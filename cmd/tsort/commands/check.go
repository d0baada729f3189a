package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tbarnett/tsort"
)

// ErrUnsorted is returned by the check command when its input is out of
// order, so the process exits non-zero.
var ErrUnsorted = errors.New("input is not sorted")

func newCheckCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags] <input file>",
		Short: "Report whether a file is already sorted",
		Long: `Check reads the input with the same block, column, line, direction and
case options as a sort and reports the first record that is out of order.
Nothing is written. The exit status is non-zero when the file is unsorted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, v, args[0])
		},
	}
}

func runCheck(cmd *cobra.Command, v *viper.Viper, input string) error {
	log, closeLog, err := newLogger(v)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	opts, err := sortOptions(v, log)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	res, err := tsort.Check(f, opts...)
	if err != nil {
		return err
	}
	if !res.Sorted {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: block %d (line %d) is out of order\n", input, res.FirstDisorder, res.Line)
		return ErrUnsorted
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: sorted (%d blocks)\n", input, res.Blocks)
	return nil
}
