// Package throttle provides a [transport.Transport] decorator that
// rate-limits outbound exchanges using a token-bucket algorithm from
// [golang.org/x/time/rate].
//
// # Usage
//
// Wrap an existing transport with [New]:
//
//	t, err := throttle.New(
//		10, // requests per second
//		5,  // burst capacity
//		func() *slog.Logger { return slog.Default() },
//		transport.Default(),
//	)
//
// When the rate limit is exceeded, calls block until a token becomes
// available or the call's context is cancelled.
package throttle
