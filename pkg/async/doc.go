// Package async runs fire-and-forget work outside the request that started
// it, with a concurrency cap and a graceful drain on shutdown.
//
//	runner := async.NewRunner(async.WithLimit(16), async.WithLogger(log))
//	defer runner.Close(context.Background())
//
//	_ = runner.Go(r.Context(), "resend_link", func(ctx context.Context) error {
//		return svc.ResendLink(ctx, sessionID, email)
//	})
//
// Tasks get a context detached from the caller's cancellation but keeping its
// values, so request IDs still reach the logs.
package async
