package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/rollup/pkg/file"
	"github.com/dmitrymomot/rollup/pkg/generator"
	"github.com/dmitrymomot/rollup/pkg/httpserver"
	"github.com/dmitrymomot/rollup/pkg/logger"
	"github.com/dmitrymomot/rollup/pkg/ratelimit"
	"github.com/dmitrymomot/rollup/pkg/requestid"
	"github.com/dmitrymomot/rollup/pkg/settings"
)

// Settings and storage drivers.
const (
	settingsDriverFile    = "file"
	settingsDriverStorage = "storage"

	storageDriverNone  = ""
	storageDriverLocal = "local"
	storageDriverS3    = "s3"
)

var (
	ErrUnknownDriver   = errors.New("unknown driver")
	ErrStorageRequired = errors.New("object storage is not configured")
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"rollup"`
	Title    string `env:"APP_TITLE" envDefault:"Weekly Rollup"`
	LogLevel string `env:"LOG_LEVEL"`

	MaxFormMemory int64 `env:"ROLLUP_MAX_FORM_MEMORY" envDefault:"10485760"`

	SettingsDriver string `env:"SETTINGS_DRIVER" envDefault:"file"`
	SettingsPath   string `env:"SETTINGS_PATH" envDefault:"form_data.json"`

	StorageDriver    string `env:"STORAGE_DRIVER"`
	StorageLocalDir  string `env:"STORAGE_LOCAL_DIR" envDefault:"data"`
	ArchiveRetention bool   `env:"ARCHIVE_RETENTION" envDefault:"false"`

	// GenerateRate is the number of generations allowed per client per
	// minute. Zero disables the limiter.
	GenerateRate  int `env:"RATE_LIMIT_GENERATE" envDefault:"30"`
	GenerateBurst int `env:"RATE_LIMIT_BURST" envDefault:"10"`

	HTTP      httpserver.Config
	Generator generator.Config
	S3        file.S3Config
}

// newLimiter returns nil when rate limiting is disabled.
func newLimiter(cfg appConfig) (ratelimit.Limiter, error) {
	if cfg.GenerateRate <= 0 {
		return nil, nil
	}
	return ratelimit.NewTokenBucket(cfg.GenerateRate, time.Minute, ratelimit.WithBurst(cfg.GenerateBurst))
}

func newLogger(cfg appConfig) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
}

// openStorage returns nil when no object storage is configured.
func openStorage(ctx context.Context, cfg appConfig) (file.Storage, error) {
	switch cfg.StorageDriver {
	case storageDriverNone:
		return nil, nil
	case storageDriverLocal:
		return file.NewLocalStorage(cfg.StorageLocalDir, "")
	case storageDriverS3:
		return file.NewS3Storage(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("%w: STORAGE_DRIVER=%q", ErrUnknownDriver, cfg.StorageDriver)
	}
}

func openSettings(cfg appConfig, storage file.Storage) (settings.Store, error) {
	switch cfg.SettingsDriver {
	case settingsDriverFile, "":
		return settings.NewFileStore(cfg.SettingsPath), nil
	case settingsDriverStorage:
		if storage == nil {
			return nil, fmt.Errorf("%w: SETTINGS_DRIVER=storage needs STORAGE_DRIVER", ErrStorageRequired)
		}
		return settings.NewObjectStore(storage, cfg.SettingsPath), nil
	default:
		return nil, fmt.Errorf("%w: SETTINGS_DRIVER=%q", ErrUnknownDriver, cfg.SettingsDriver)
	}
}
