// Package apiclient is the authenticated HTTP client of the inventory backend.
// Every call reads the access token from the TokenStore right before dispatch
// and attaches it as a bearer credential. Failures are returned as
// *domain.APIError; there is no retry and no token refresh.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stockmanager/admin-console/internal/core/domain"
	"github.com/stockmanager/admin-console/internal/core/ports"
	"github.com/stockmanager/admin-console/internal/metrics"
)

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
	maxErrorBody        = 64 << 10
)

// Options configures a Client.
type Options struct {
	// BaseURL is the versioned API root, e.g. http://localhost:8000/products/api/v1/.
	BaseURL string
	// Timeout bounds each request; zero means no timeout.
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the inventory backend.
type Client struct {
	base   string
	http   *http.Client
	tokens ports.TokenStore
	log    zerolog.Logger

	mu            sync.RWMutex
	onAuthFailure func(ctx context.Context, rejected string)
}

// New builds a Client. The token store is consulted on every request.
func New(opts Options, tokens ports.TokenStore, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("apiclient: invalid base url %q", opts.BaseURL)
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		base:   strings.TrimRight(u.String(), "/") + "/",
		http:   hc,
		tokens: tokens,
		log:    log,
	}, nil
}

// OnAuthFailure registers fn to run whenever a request that carried a bearer
// token is rejected with 401. fn receives the rejected access token. The error
// is still returned to the caller.
func (c *Client) OnAuthFailure(fn func(ctx context.Context, rejected string)) {
	c.mu.Lock()
	c.onAuthFailure = fn
	c.mu.Unlock()
}

// classifier maps a non-2xx status to a taxonomy sentinel.
type classifier func(status int) error

// call describes one backend request.
type call struct {
	op       string
	resource string
	method   string
	path     string
	body     any
	out      any
	classify classifier
	// credentialExchange marks login/register/refresh: a 401 there means bad
	// input, not an expired session.
	credentialExchange bool
}

func (c *Client) do(ctx context.Context, in call) error {
	var body io.Reader
	if in.body != nil {
		raw, err := json.Marshal(in.body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", in.op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, c.base+strings.TrimLeft(in.path, "/"), body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", in.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)

	bearer := c.attachToken(ctx, req)

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.APIRequestDuration.WithLabelValues(in.resource, in.method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(in.resource, in.method, "error").Inc()
		c.log.Warn().Err(err).Str("op", in.op).Str("request_id", requestID).Msg("backend request failed")
		return &domain.APIError{Op: in.op, Kind: domain.ErrNetwork, Err: err}
	}
	defer resp.Body.Close()
	metrics.APIRequestsTotal.WithLabelValues(in.resource, in.method, strconv.Itoa(resp.StatusCode)).Inc()

	c.log.Debug().
		Str("op", in.op).
		Str("method", in.method).
		Str("path", in.path).
		Int("status", resp.StatusCode).
		Bool("bearer", bearer != "").
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &domain.APIError{Op: in.op, Kind: in.classify(resp.StatusCode), Status: resp.StatusCode, Body: raw}
		if resp.StatusCode == http.StatusUnauthorized && bearer != "" && !in.credentialExchange {
			c.authFailed(ctx, bearer)
		}
		return apiErr
	}

	if in.out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(in.out); err != nil && !errors.Is(err, io.EOF) {
		return &domain.APIError{Op: in.op, Kind: domain.ErrServer, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// attachToken sets the bearer header when an access token is stored and
// returns the token sent. A store failure is logged and the request goes out
// unauthenticated.
func (c *Client) attachToken(ctx context.Context, req *http.Request) string {
	if c.tokens == nil {
		return ""
	}
	pair, err := c.tokens.Get(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("token store read failed, sending request unauthenticated")
		return ""
	}
	if pair.Access == "" {
		return ""
	}
	req.Header.Set(headerAuthorization, "Bearer "+pair.Access)
	return pair.Access
}

func (c *Client) authFailed(ctx context.Context, rejected string) {
	c.mu.RLock()
	fn := c.onAuthFailure
	c.mu.RUnlock()
	if fn != nil {
		fn(context.WithoutCancel(ctx), rejected)
	}
}

// credentialFailure: any 4xx is an auth failure (login, me).
func credentialFailure(status int) error {
	if status >= 400 && status < 500 {
		return domain.ErrAuth
	}
	return domain.ErrServer
}

// inputFailure: any 4xx is a validation failure (register).
func inputFailure(status int) error {
	if status >= 400 && status < 500 {
		return domain.ErrValidation
	}
	return domain.ErrServer
}

// profileFailure: 401 means the session is gone, other 4xx are rejected fields.
func profileFailure(status int) error {
	if status == http.StatusUnauthorized {
		return domain.ErrAuth
	}
	return inputFailure(status)
}

// resourceFailure is the mapping used by the product, category and stats calls.
func resourceFailure(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrAuth
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return domain.ErrValidation
	default:
		return domain.ErrServer
	}
}

// Ping reports whether the backend answers at all; any HTTP status counts as
// reachable. It never carries the bearer token.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.base, nil)
	if err != nil {
		return fmt.Errorf("ping: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.APIError{Op: "ping", Kind: domain.ErrNetwork, Err: err}
	}
	_ = resp.Body.Close()
	return nil
}
