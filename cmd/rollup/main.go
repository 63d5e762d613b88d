package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rollup",
		Short: "Weekly customer rollup drafts",
		Long: `rollup turns a per-customer form into ready-to-send email drafts.

Run "rollup serve" for the web form, or "rollup generate" to build the
archive from a saved settings file without the server.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCmd(),
		newGenerateCmd(),
		newInspectCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
