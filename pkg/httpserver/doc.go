// Package httpserver runs an http.Server with graceful shutdown and provides
// liveness and readiness handlers.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run returns after ctx is canceled or the process receives SIGINT or
// SIGTERM and in-flight requests finish, bounded by Config.ShutdownTimeout.
package httpserver
