// Package logger builds the storefront's *slog.Logger and keeps attribute
// names consistent across packages.
//
// New applies functional options (format, level, output, static attributes,
// context extractors) and wraps the resulting handler with a decorator that
// pulls request-scoped values such as the request ID out of the context on
// every record.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "storefront"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "access link sent", logger.SessionID(id), logger.Component("delivery"))
//
// Email addresses are personal data; use EmailHash rather than logging them
// verbatim.
package logger
