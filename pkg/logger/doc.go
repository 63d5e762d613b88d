// Package logger builds *slog.Logger values with environment presets,
// context-driven attributes and a small set of attribute helpers.
//
// New wraps the text or JSON slog handler in a LogHandlerDecorator that runs
// registered ContextExtractor callbacks on every record, so request-scoped
// values such as the request ID are attached without passing them around:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.Name),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "rollup batch generated",
//		logger.Archive(batch.ArchiveName),
//		logger.Rows(len(batch.Drafts)),
//	)
//
// Helpers such as Error and RequestID return an empty attribute for empty
// input, which slog skips, so callers need no nil checks.
//
// Middleware logs one record per HTTP request with method, path, status and
// duration.
package logger
