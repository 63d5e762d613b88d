package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rollup/handler"
	"github.com/dmitrymomot/rollup/modules"
	"github.com/dmitrymomot/rollup/modules/rollup"
	settingsmod "github.com/dmitrymomot/rollup/modules/settings"
	"github.com/dmitrymomot/rollup/pkg/config"
	"github.com/dmitrymomot/rollup/pkg/file"
	"github.com/dmitrymomot/rollup/pkg/generator"
	"github.com/dmitrymomot/rollup/pkg/httpserver"
	"github.com/dmitrymomot/rollup/pkg/logger"
	"github.com/dmitrymomot/rollup/web"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web form",
		Long: `Serves the input form and the settings endpoints.
Configuration comes from the environment and an optional .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg appConfig
			if err := config.Load(&cfg); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg appConfig) error {
	log := newLogger(cfg)
	logger.SetAsDefault(log)

	storage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	store, err := openSettings(cfg, storage)
	if err != nil {
		return err
	}

	gen, err := newGenerator(cfg, log, storage)
	if err != nil {
		return err
	}

	limiter, err := newLimiter(cfg)
	if err != nil {
		return err
	}

	errorHandler := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage:  web.ErrorPage,
		ErrorToast: web.ErrorToast,
	})

	router := modules.Router(modules.RouterOptions{
		Rollup: rollup.NewService(
			rollup.Config{Title: cfg.Title, MaxMemory: cfg.MaxFormMemory},
			gen, web.Views(), log, errorHandler,
		),
		Settings: settingsmod.NewService(
			settingsmod.Config{MaxMemory: cfg.MaxFormMemory},
			store, log,
		),
		Logger:  log,
		Limiter: limiter,
		Ready:   []httpserver.Check{
			func(ctx context.Context) error {
				_, err := store.Load(ctx)
				return err
			},
		},
	})

	srv := httpserver.New(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("rollup ready",
				slog.String("template", templateSource(cfg.Generator)),
				slog.String("settings_driver", cfg.SettingsDriver),
				slog.String("storage_driver", cfg.StorageDriver),
				slog.Bool("archive_retention", cfg.ArchiveRetention),
			)
		}),
	)
	return srv.Run(ctx, router)
}

// newGenerator builds the generator for serve. Without ROLLUP_TEMPLATE_PATH
// the embedded template is used.
func newGenerator(cfg appConfig, log *slog.Logger, storage file.Storage) (*generator.Generator, error) {
	genCfg := cfg.Generator
	if genCfg.Template == "" {
		genCfg.Template = web.DefaultTemplate
	}
	opts := []generator.Option{generator.WithLogger(log)}
	if cfg.ArchiveRetention {
		if storage == nil {
			return nil, fmt.Errorf("%w: ARCHIVE_RETENTION needs STORAGE_DRIVER", ErrStorageRequired)
		}
		opts = append(opts, generator.WithRetention(storage))
	}
	return generator.New(genCfg, opts...), nil
}

func templateSource(cfg generator.Config) string {
	if cfg.TemplatePath == "" {
		return "embedded"
	}
	return cfg.TemplatePath
}
