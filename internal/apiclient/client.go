// Package apiclient talks to the order backend REST API.
//
// Every response is expected in the envelope
//
//	{"success": true, "data": ..., "message": "..."}
//
// and every failure comes back as *apperr.AppError so callers handle
// transport errors, non-2xx statuses and success:false bodies the same way.
package apiclient

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
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"pehlione.com/admin/internal/shared/apperr"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderAdminName = "X-Admin-Name"
)

type Client struct {
	base   *url.URL
	tokens TokenSource
	http   *http.Client
	log    *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("apiclient: base url %q must be absolute", baseURL)
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	c := &Client{
		base:   u,
		tokens: tokens,
		http:   &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		log:    slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (e envelope) msg() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Do performs exactly one request and decodes envelope.data into out (if non-nil).
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return apperr.Wrap(err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.log.LogAttrs(ctx, slog.LevelWarn, "api_transport_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("err", err),
		)
		return apperr.UnavailableErr(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return apperr.UnavailableErr(err)
	}

	var env envelope
	decodeErr := decodeEnvelope(raw, &env)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.log.LogAttrs(ctx, slog.LevelWarn, "api_status_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", res.StatusCode),
			slog.String("message", env.msg()),
		)
		return apperr.FromStatus(res.StatusCode, env.msg())
	}
	if decodeErr != nil {
		return malformed(res.StatusCode, fmt.Errorf("apiclient: decode %s %s: %w", method, path, decodeErr))
	}
	if env.Success != nil && !*env.Success {
		return apperr.RejectedErr(res.StatusCode, env.msg())
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return malformed(res.StatusCode, fmt.Errorf("apiclient: decode data of %s %s: %w", method, path, err))
	}
	return nil
}

// malformed is a response that arrived but could not be read. The status is
// kept so the failure counts as an HTTP one, not a transport one.
func malformed(status int, err error) *apperr.AppError {
	ae := apperr.Wrap(err)
	ae.Status = status
	return ae
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("apiclient: token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if rid := requestIDFrom(ctx); rid != "" {
		req.Header.Set(HeaderRequestID, rid)
	}
	if name := adminNameFrom(ctx); name != "" {
		req.Header.Set(HeaderAdminName, name)
	}
	return req, nil
}

// an empty body is a valid (data-less) envelope
func decodeEnvelope(raw []byte, env *envelope) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, env); err != nil {
		return errors.Join(errors.New("response is not a JSON envelope"), err)
	}
	return nil
}
