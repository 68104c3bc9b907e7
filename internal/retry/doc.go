// Package retry retries database operations that fail for transient
// reasons, waiting with exponential backoff between attempts.
//
//	err := retry.Do(ctx, retry.DefaultPolicy(), func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
//
// IsTransient decides which failures are worth another attempt: PostgreSQL
// connection, resource and operator-intervention errors, serialization
// failures, and network errors such as a refused connection.
package retry
