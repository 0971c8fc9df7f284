package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
	"github.com/secmon-lab/inquiry/pkg/utils/safe"
)

const (
	// DefaultTimeout bounds every gateway round trip
	DefaultTimeout = 10 * time.Second
	// DefaultEnvironment is sent as the environment query parameter and path segment
	DefaultEnvironment = "afi"
	// DefaultUser is the user id sent with searches
	DefaultUser = "SYSTEM"
	// DefaultVHSName is the data set name sent to the office lookup
	DefaultVHSName = "MASTERYY"

	maxErrorBody = 512
)

// Client talks to the backend inquiry REST gateway
type Client struct {
	baseURL     *url.URL
	environment string
	vhsName     string
	user        string
	httpClient  *http.Client
	attempts    uint
	retryDelay  time.Duration
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithEnvironment sets the environment code
func WithEnvironment(env string) Option {
	return func(c *Client) {
		c.environment = env
	}
}

// WithVHSName sets the data set name used by the office lookup
func WithVHSName(name string) Option {
	return func(c *Client) {
		c.vhsName = name
	}
}

// WithUser sets the user id sent with searches
func WithUser(user string) Option {
	return func(c *Client) {
		c.user = user
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetry sets the total number of attempts of lookup (GET) requests.
// Searches are never retried.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = max(attempts, 1)
		c.retryDelay = delay
	}
}

// New creates a gateway client for baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("gateway base URL is required")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, goerr.New("invalid gateway base URL", goerr.V(URLKey, baseURL))
	}

	c := &Client{
		baseURL:     u,
		environment: DefaultEnvironment,
		vhsName:     DefaultVHSName,
		user:        DefaultUser,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		attempts:    1,
		retryDelay:  500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchFilterSource returns the raw lookup response of a filter field
func (c *Client) FetchFilterSource(ctx context.Context, field types.FieldID) ([]byte, error) {
	ep, ok := endpoints[field]
	if !ok {
		return nil, goerr.Wrap(ErrNoEndpoint, "no lookup endpoint", goerr.V(FieldKey, field))
	}

	query := url.Values{}
	if ep.params != nil {
		query = ep.params(c)
	}
	query.Set("environment", c.environment)

	body, err := retry.DoWithData(
		func() ([]byte, error) {
			return c.do(ctx, http.MethodGet, ep.path, query, nil)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			logging.From(ctx).Warn("retrying gateway lookup",
				"field", field, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch filter source", goerr.V(FieldKey, field))
	}
	return body, nil
}

// SearchPOItems runs the PO item inquiry
func (c *Client) SearchPOItems(ctx context.Context, criteria *model.POItemCriteria) ([]*model.POItem, error) {
	req, err := newPOItemRequest(criteria, c.user)
	if err != nil {
		return nil, err
	}

	var resp poItemResponse
	if err := c.post(ctx, poItemSearchPath(c.environment), req, &resp); err != nil {
		return nil, err
	}
	return compactRows(resp.Data), nil
}

// SearchProductionSchedule runs the production schedule search
func (c *Client) SearchProductionSchedule(ctx context.Context, criteria *model.ProductionSchedCriteria) ([]*model.ProductionSchedRecord, error) {
	var resp productionScheduleResponse
	if err := c.post(ctx, productionScheduleSearchPath(c.environment), newProductionScheduleRequest(criteria, c.user), &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, goerr.Wrap(ErrSearchFailed, "production schedule search failed",
			goerr.V("message", resp.ErrorMessage), goerr.V("request_id", resp.RequestID))
	}
	return compactRows(resp.Items), nil
}

// SearchPOsPaid runs the POs paid inquiry
func (c *Client) SearchPOsPaid(ctx context.Context, criteria *model.POsPaidCriteria) ([]*model.POPayment, error) {
	var resp posPaidResponse
	if err := c.post(ctx, posPaidSearchPath(c.environment), newPOsPaidRequest(criteria), &resp); err != nil {
		return nil, err
	}
	if !resp.Success && resp.Message != "" {
		return nil, goerr.Wrap(ErrSearchFailed, "POs paid search failed",
			goerr.V("message", resp.Message), goerr.V("request_id", resp.RequestID))
	}
	return compactRows(resp.Data), nil
}

// compactRows drops null elements of a result array and never returns nil
func compactRows[T any](rows []*T) []*T {
	out := make([]*T, 0, len(rows))
	for _, r := range rows {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (c *Client) post(ctx context.Context, path string, req, resp any) error {
	raw, err := json.Marshal(req)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal search request")
	}
	body, err := c.do(ctx, http.MethodPost, path, nil, raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, resp); err != nil {
		return goerr.Wrap(err, "failed to decode search response", goerr.V(URLKey, path), goerr.V(BodyKey, truncate(body)))
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	target := u.String()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create gateway request", goerr.V(URLKey, target))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := logging.From(ctx)
	started := time.Now()
	logger.Debug("gateway request", slog.String("method", method), slog.String("url", target))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "gateway request failed", goerr.V(URLKey, target))
	}
	defer safe.Close(ctx, resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read gateway response", goerr.V(URLKey, target))
	}

	logger.Debug("gateway response",
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.Wrap(ErrUnexpectedStatus, "gateway returned error status",
			goerr.V(URLKey, target), goerr.V(StatusKey, resp.StatusCode), goerr.V(BodyKey, truncate(body)))
	}
	if IsHTML(body) {
		return nil, goerr.Wrap(ErrHTMLResponse, "gateway returned HTML",
			goerr.V(URLKey, target), goerr.V(BodyKey, truncate(body)))
	}
	return body, nil
}

// IsHTML reports whether a response body is an HTML document
func IsHTML(body []byte) bool {
	head := bytes.TrimSpace(body)
	if len(head) > 64 {
		head = head[:64]
	}
	lower := bytes.ToLower(head)
	return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html"))
}

// isRetryable retries transport failures and 5xx responses only
func isRetryable(err error) bool {
	if errors.Is(err, ErrHTMLResponse) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrUnexpectedStatus) {
		var gerr *goerr.Error
		if errors.As(err, &gerr) {
			if status, ok := gerr.Values()[StatusKey].(int); ok {
				return status >= 500
			}
		}
		return false
	}
	return true
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
