// Package retry provides exponential backoff for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max retries,
// initial delay, maximum delay and a retry predicate. The Atlas client uses it
// for read requests that hit rate limits or server errors; writes are never
// retried.
package retry
