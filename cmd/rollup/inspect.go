package main

import (
	"bytes"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rollup/pkg/archive"
	"github.com/dmitrymomot/rollup/pkg/draft"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <archive.zip>",
		Short: "List the drafts inside a generated archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
}

func runInspect(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	zr, err := archive.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSUBJECT\tTO\tCC")
	for _, name := range zr.Names() {
		rc, err := zr.Open(name)
		if err != nil {
			return err
		}
		summary, err := draft.Read(rc)
		_ = rc.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, summary.Subject, summary.To, summary.Cc)
	}
	return tw.Flush()
}
