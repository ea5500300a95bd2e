package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
)

// TokenHeader carries the authentication token of the session.
const TokenHeader = "authentication-token"

const (
	defaultTimeout  = 10 * time.Second
	defaultAttempts = 3
	defaultDelay    = 100 * time.Millisecond
	maxRetryDelay   = 5 * time.Second

	maxErrorBody = 4 << 10
)

var (
	_ port.BasketService     = (*Client)(nil)
	_ port.OrderService      = (*Client)(nil)
	_ port.CategoriesService = (*Client)(nil)
	_ port.ProductsService   = (*Client)(nil)
	_ port.SuggestService    = (*Client)(nil)
)

var ErrInvalidBaseURL = errors.New("invalid base URL")

type ClientOpt func(*Client)

func HTTPClientOpt(hc *http.Client) ClientOpt {
	return func(c *Client) {
		c.hc = hc
	}
}

func TimeoutOpt(d time.Duration) ClientOpt {
	return func(c *Client) {
		c.hc.Timeout = d
	}
}

// RetryOpt sets how idempotent reads are retried. Mutations are sent once.
// Non-positive values keep the defaults.
func RetryOpt(attempts int, delay time.Duration) ClientOpt {
	return func(c *Client) {
		if attempts > 0 {
			c.retry.MaxAttempts = attempts
		}
		if delay > 0 {
			c.retry.Backoff = retry.ExponentialBackoff(delay)
		}
	}
}

// A Client talks to the commerce REST API.
type Client struct {
	base   *url.URL
	hc     *http.Client
	tokens port.TokenSource
	retry  retry.RetryConfig
}

// NewClient returns a client for the API rooted at baseURL.
// A nil token source makes every call anonymous.
func NewClient(baseURL string, tokens port.TokenSource, opts ...ClientOpt) (*Client, error) {
	const op = "NewClient"

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, opErr(err, op)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, opErr(fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL), op)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	c := &Client{
		base:   base,
		hc:     &http.Client{Timeout: defaultTimeout},
		tokens: tokens,
		retry: retry.RetryConfig{
			MaxAttempts: defaultAttempts,
			Backoff:     retry.ExponentialBackoff(defaultDelay),
			ShouldRetry: domain.IsTransient,
			MaxDelay:    maxRetryDelay,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// get reads a resource. Transient failures are retried.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return retry.Do(ctx, c.retry, func() error {
		_, err := c.do(ctx, http.MethodGet, path, query, nil, out)
		return err
	})
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	_, err := c.do(ctx, method, path, nil, body, out)
	return err
}

func (c *Client) do(
	ctx context.Context, method, path string, query url.Values, body, out any,
) (http.Header, error) {
	const op = "Client.do"
	log := slog.With("op", op, "method", method, "path", path)

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	res, err := c.hc.Do(req)
	if err != nil {
		log.Debug("request failed", "err", err)
		return nil, domain.NewCommunicationError(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		rerr := domain.NewStatusError(res.StatusCode, errorMessage(res))
		rerr.RetryAfter = retryAfter(res.Header)
		log.Debug("request rejected", "err", rerr)
		return nil, rerr
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, res.Body)
		return res.Header, nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return nil, domain.NewCommunicationError(fmt.Errorf("decode response: %w", err))
	}
	return res.Header, nil
}

func (c *Client) newRequest(
	ctx context.Context, method, path string, query url.Values, body any,
) (*http.Request, error) {
	const op = "Client.newRequest"

	u := c.base.JoinPath(path)
	if len(query) != 0 {
		u.RawQuery = query.Encode()
	}

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, opErr(err, op)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return nil, opErr(err, op)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, domain.NewCommunicationError(opErr(err, op))
		}
		if token != "" {
			req.Header.Set(TokenHeader, token)
		}
	}
	return req, nil
}

// errorMessage extracts a readable message from a failed response.
func errorMessage(res *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))

	var e errorData
	if json.Unmarshal(b, &e) == nil {
		if e.Message != "" {
			return e.Message
		}
		if len(e.Errors) != 0 && e.Errors[0].Message != "" {
			return e.Errors[0].Message
		}
	}
	if msg := strings.TrimSpace(string(b)); msg != "" && !json.Valid(b) {
		return msg
	}
	if msg := res.Header.Get("error-key"); msg != "" {
		return msg
	}
	return http.StatusText(res.StatusCode)
}

// retryAfter reads a Retry-After header given in seconds or as an HTTP date.
func retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		return max(time.Until(at), 0)
	}
	return 0
}

// pathOf joins escaped path segments.
func pathOf(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}
