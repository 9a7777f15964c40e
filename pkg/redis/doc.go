// Package redis connects to Redis with retries. It backs state that must be
// shared between storefront instances, such as rate limit buckets.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
package redis
