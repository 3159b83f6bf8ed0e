// Package atlas provides a small client for the MongoDB Atlas Admin API (v1.0).
//
// It covers exactly the calls needed to reconcile clusters and database users:
//
//   - cluster.go: GET, POST and DELETE on /groups/{groupId}/clusters
//   - user.go: GET, POST, PATCH and DELETE on /groups/{groupId}/databaseUsers
//   - errors.go: classification of Atlas error responses
//   - mock_client.go: func-field mock used by reconciler tests
//
// # Absence
//
// Get methods return (nil, nil) when Atlas answers with a not-found error. Every
// other error response is returned as an *APIError carrying the HTTP status, the
// Atlas error code and the raw response body, so callers can echo the control
// plane's own payload.
//
// # Authentication and retries
//
// Requests are authenticated with HTTP digest auth using the programmatic API key
// pair. Reads that fail with a rate-limit or server error are retried with
// exponential backoff; writes are attempted exactly once.
package atlas
