package atlas

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is an error-class response from the Atlas API.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	// ErrorCode is Atlas' symbolic code, e.g. CLUSTER_NOT_FOUND.
	ErrorCode string
	Detail    string
	Reason    string
	// Body is the raw response body, kept verbatim for diagnostics.
	Body []byte
}

// errorBody is the JSON error document returned by Atlas.
type errorBody struct {
	Detail    string `json:"detail"`
	Error     int    `json:"error"`
	ErrorCode string `json:"errorCode"`
	Reason    string `json:"reason"`
}

func newAPIError(method, url string, status int, body []byte) *APIError {
	e := &APIError{
		Method:     method,
		URL:        url,
		StatusCode: status,
		Body:       body,
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		e.ErrorCode = eb.ErrorCode
		e.Detail = eb.Detail
		e.Reason = eb.Reason
		// Atlas repeats the status in the body; trust it when the two disagree.
		if eb.Error != 0 {
			e.StatusCode = eb.Error
		}
	}
	return e
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: API error (status %d): %s", e.Method, e.URL, e.StatusCode, string(e.Body))
}

// IsNotFound checks if an error indicates the resource does not exist.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsRateLimited checks if an error indicates rate limiting.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

// IsServerError checks if an error is a 5xx response.
func IsServerError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return false
}

// isRetryable reports whether a read can safely be attempted again.
// Transport failures without a response are retried as well.
func isRetryable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return true
	}
	return IsRateLimited(err) || IsServerError(err)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}
