package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/signalsafe/fatal"
)

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "sigdump",
		Short: "Record and decode signal-triggered diagnostic dumps",
		Long: `sigdump appends a diagnostic record to a dump file each time the process
receives one of a configured set of signals, and decodes such files.

Records are formatted and written without allocating, so the same path is
safe to use from code that runs while the process is in a bad state.

Examples:
  sigdump record --out /tmp/app.dump --signal USR1 --rate 5
  kill -USR1 <pid>
  sigdump decode /tmp/app.dump
  sigdump decode --json /tmp/app.dump`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose debug output")

	rootCmd.AddCommand(newDecodeCmd(), newRecordCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// guard converts a fatal failure raised by fn into an error.
func guard(what string, fn func()) error {
	if ferr, failed := fatal.Recover(fn); failed {
		return fmt.Errorf("%s: %w", what, ferr)
	}
	return nil
}
