// Package ratelimiter implements a token bucket limiter with a pluggable
// store and an HTTP middleware.
//
// Each key owns a bucket holding up to Capacity tokens. Every RefillInterval
// RefillRate tokens are added back. A request consumes one token and is denied
// once the bucket is empty.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.ByClientIP)).Post("/access/resend", h)
package ratelimiter
