// Package ratelimit throttles expensive endpoints with an in-memory token
// bucket per client.
//
//	limiter, err := ratelimit.NewTokenBucket(10, time.Minute, ratelimit.WithBurst(5))
//	if err != nil {
//		return err
//	}
//	r.Use(ratelimit.Middleware(limiter, ratelimit.ClientIP,
//		ratelimit.WithSkipFunc(ratelimit.SafeMethods),
//	))
package ratelimit
