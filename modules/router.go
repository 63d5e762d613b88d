// Package modules mounts the rollup and settings services on one router.
package modules

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/rollup/pkg/httpserver"
	"github.com/dmitrymomot/rollup/pkg/logger"
	"github.com/dmitrymomot/rollup/pkg/ratelimit"
	"github.com/dmitrymomot/rollup/pkg/requestid"
)

// Routable registers its routes on a shared router.
type Routable interface {
	Routes(r chi.Router)
}

// RouterOptions configures which services to mount. Each service is
// optional and is only mounted if provided.
type RouterOptions struct {
	Rollup   Routable
	Settings Routable
	Logger   *slog.Logger
	// Limiter throttles non-GET rollup requests per client IP. Nil disables.
	Limiter ratelimit.Limiter
	// Ready checks back GET /health/ready.
	Ready []httpserver.Check
}

// Router creates the application router.
//
// Example:
//
//	r := modules.Router(modules.RouterOptions{
//	    Rollup:   rollup.NewService(rollupCfg, gen, web.Views(), log, errorHandler),
//	    Settings: settings.NewService(settingsCfg, store, log),
//	    Logger:   log,
//	})
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		requestid.Middleware,
		logger.Middleware(log),
		middleware.Recoverer,
	)

	r.Route("/health", func(h chi.Router) {
		h.Get("/live", httpserver.Liveness())
		h.Get("/ready", httpserver.Readiness(log, opts.Ready...))
	})

	if opts.Rollup != nil {
		r.Group(func(g chi.Router) {
			if opts.Limiter != nil {
				g.Use(ratelimit.Middleware(opts.Limiter, ratelimit.ClientIP,
					ratelimit.WithSkipFunc(ratelimit.SafeMethods),
					ratelimit.WithErrorCallback(func(r *http.Request, err error) {
						log.WarnContext(r.Context(), "rate limiter failed", logger.Error(err))
					}),
				))
			}
			opts.Rollup.Routes(g)
		})
	}
	if opts.Settings != nil {
		opts.Settings.Routes(r)
	}
	return r
}
