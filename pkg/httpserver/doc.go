// Package httpserver runs the storefront HTTP API with graceful shutdown and
// health probes.
//
// Run blocks until the context is cancelled or the process receives SIGINT or
// SIGTERM, then drains in-flight requests within the shutdown timeout:
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Liveness and Readiness return handlers for orchestrator probes. Readiness
// runs every registered Probe with a per-request timeout and reports which
// dependency failed.
package httpserver
