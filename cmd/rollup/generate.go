package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rollup/pkg/generator"
	"github.com/dmitrymomot/rollup/pkg/logger"
	"github.com/dmitrymomot/rollup/pkg/settings"
	"github.com/dmitrymomot/rollup/web"
)

type generateOptions struct {
	settingsPath string
	templatePath string
	outDir       string
	date         string
	verbose      bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the draft archive from a saved settings file",
		Long: `Reads a settings document (as saved by the form or a backup file),
generates one draft per customer row and writes the zip into --out.

Example:
  rollup generate --settings form_data.json --out ./out --date 2024-01-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.settingsPath, "settings", "form_data.json", "settings document to read")
	flags.StringVar(&opts.templatePath, "template", "", "template file (default: built-in template)")
	flags.StringVar(&opts.outDir, "out", ".", "directory to write the archive into")
	flags.StringVar(&opts.date, "date", "", "rollup date YYYY-MM-DD (default: the saved date, else today)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log each draft")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	data, err := os.ReadFile(opts.settingsPath)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	doc, err := settings.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.settingsPath, err)
	}
	values := settings.ToValues(settings.StripBackupMeta(doc))
	if opts.date != "" {
		values.Set(generator.DateField, opts.date)
	}

	logOpts := []logger.Option{logger.WithFormat(logger.FormatText), logger.WithOutput(cmd.ErrOrStderr())}
	if !opts.verbose {
		logOpts = append(logOpts, logger.WithLevelName("warn"))
	}
	gen := generator.New(generator.Config{
		TemplatePath: opts.templatePath,
		Template:     web.DefaultTemplate,
	}, generator.WithLogger(logger.New(logOpts...)))

	batch, err := gen.Generate(cmd.Context(), values)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out := filepath.Join(opts.outDir, batch.ArchiveName)
	if err := os.WriteFile(out, batch.Archive, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d drafts)\n", out, len(batch.Drafts))
	return nil
}
