package atlas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mongodb-forks/digest"

	"github.com/imamik/atlasctl/internal/util/retry"
)

// DefaultBaseURL is the root of the Atlas Admin API v1.0.
const DefaultBaseURL = "https://cloud.mongodb.com/api/atlas/v1.0"

// ClusterManager defines the remote operations available for clusters.
// Clusters are only created and deleted; there is no update call.
type ClusterManager interface {
	// GetCluster returns the cluster, or nil if it does not exist.
	GetCluster(ctx context.Context, groupID, name string) (*Cluster, error)
	CreateCluster(ctx context.Context, groupID string, cluster *Cluster) (*Cluster, error)
	DeleteCluster(ctx context.Context, groupID, name string) error
}

// DatabaseUserManager defines the remote operations available for database users.
type DatabaseUserManager interface {
	// GetDatabaseUser returns the user, or nil if it does not exist.
	GetDatabaseUser(ctx context.Context, groupID, username string) (*DatabaseUser, error)
	CreateDatabaseUser(ctx context.Context, groupID string, user *DatabaseUser) (*DatabaseUser, error)
	UpdateDatabaseUser(ctx context.Context, groupID, username string, user *DatabaseUser) (*DatabaseUser, error)
	DeleteDatabaseUser(ctx context.Context, groupID, username string) error
}

// Manager combines all resource interfaces.
type Manager interface {
	ClusterManager
	DatabaseUserManager
}

// RequestObserver is notified once per HTTP round trip. status is 0 when the
// request failed before a response was received.
type RequestObserver func(method string, status int, elapsed time.Duration)

// Client implements Manager against the Atlas Admin API.
type Client struct {
	baseURL           string
	httpClient        *http.Client
	observer          RequestObserver
	retryMaxAttempts  int
	retryInitialDelay time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API root (useful for testing).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client. The caller is responsible for authentication.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetry configures retries of read requests.
func WithRetry(maxAttempts int, initialDelay time.Duration) ClientOption {
	return func(c *Client) {
		c.retryMaxAttempts = maxAttempts
		c.retryInitialDelay = initialDelay
	}
}

// WithRequestObserver registers a callback invoked after every round trip.
func WithRequestObserver(o RequestObserver) ClientOption {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a client authenticating with the given programmatic API key pair.
func NewClient(publicKey, privateKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Transport: digest.NewTransport(publicKey, privateKey),
			Timeout:   30 * time.Second,
		},
		retryMaxAttempts:  3,
		retryInitialDelay: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Manager = (*Client)(nil)

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do sends the request once and decodes a successful response into out (if non-nil).
// Non-2xx responses are returned as *APIError.
func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(req.Method, 0, start)
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.observe(req.Method, resp.StatusCode, start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(req.Method, req.URL.String(), resp.StatusCode, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w (status %d)", err, resp.StatusCode)
	}
	return nil
}

// get performs a GET request, retrying rate-limited and server-side failures.
// The request is rebuilt on each attempt.
func (c *Client) get(ctx context.Context, path string, out any) error {
	err := retry.WithExponentialBackoff(ctx, func() error {
		req, err := c.newRequest(ctx, http.MethodGet, path, nil)
		if err != nil {
			return retry.Fatal(err)
		}
		return c.do(req, out)
	},
		retry.WithMaxRetries(c.retryMaxAttempts),
		retry.WithInitialDelay(c.retryInitialDelay),
		retry.WithRetryIf(isRetryable))

	// Hand API errors back unwrapped so callers see the response as Atlas sent it.
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return err
}

// send performs a single write request.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) observe(method string, status int, start time.Time) {
	if c.observer != nil {
		c.observer(method, status, time.Since(start))
	}
}

func groupPath(groupID string, elems ...string) string {
	var b strings.Builder
	b.WriteString("/groups/")
	b.WriteString(url.PathEscape(groupID))
	for _, e := range elems {
		b.WriteString("/")
		b.WriteString(url.PathEscape(e))
	}
	return b.String()
}
