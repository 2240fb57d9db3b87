// Package api is the REST transport to the social backend. Every call is
// traced and metered, carries a request id, and is never retried.
package api

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/octabyte/bm-social/errs"
	"github.com/octabyte/bm-social/otel"
	otellogger "github.com/octabyte/bm-social/otel/logger"
	"github.com/octabyte/bm-social/otel/metrics"
	"github.com/octabyte/bm-social/utils"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

const (
	RequestIDHeader = "X-Request-ID"

	clientName         = "backend"
	defaultServiceName = "bm-social"
)

// TokenSource yields the bearer token of the current session, or
// errs.ErrNoSession when nobody is signed in.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Client struct {
	http        *resty.Client
	tokens      TokenSource
	baseURL     string
	serviceName string
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

func WithServiceName(name string) Option {
	return func(c *Client) {
		c.serviceName = name
	}
}

// New builds a client for baseURL. tokens may be nil for a client that only
// performs anonymous calls.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	httpClient := otel.NewTracedRestyClient(baseURL).
		SetCookieJar(jar).
		SetRetryCount(0).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		OnBeforeRequest(setRequestID)

	c := &Client{
		http:        httpClient,
		tokens:      tokens,
		baseURL:     baseURL,
		serviceName: defaultServiceName,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func setRequestID(_ *resty.Client, req *resty.Request) error {
	if req.Header.Get(RequestIDHeader) == "" {
		req.SetHeader(RequestIDHeader, uuid.NewString())
	}
	return nil
}

// authorized returns a request carrying the bearer token. No request is
// built when there is no session.
func (c *Client) authorized(ctx context.Context) (*resty.Request, error) {
	if c.tokens == nil {
		return nil, errs.ErrNoSession
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, errs.ErrNoSession
	}
	return c.http.R().SetAuthToken(token), nil
}

// do executes req and returns the body of a 2xx response. Non-2xx responses
// become *errs.ServerRejected carrying the envelope message.
func (c *Client) do(ctx context.Context, operation, method, path string, req *resty.Request) ([]byte, error) {
	ctx, finish := otel.StartHTTPSpan(ctx, c.serviceName, clientName, operation, method, c.baseURL, path)
	metrics.IncrementInFlightRequests(ctx, operation)
	start := time.Now()

	resp, err := req.SetContext(ctx).Execute(method, path)

	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}
	metrics.DecrementInFlightRequests(ctx, operation)
	metrics.RecordBackendCall(ctx, operation, method, status, time.Since(start))

	if err != nil {
		finish(status, err)
		otellogger.ErrorCtx(ctx, "backend request failed", err, zap.String("operation", operation))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	if !resp.IsSuccess() {
		rejected := &errs.ServerRejected{Status: status, Message: utils.ErrorMessage(resp.Body())}
		finish(status, nil)
		otellogger.WarnCtx(ctx, "backend rejected request",
			zap.String("operation", operation),
			zap.Int("status", status),
			zap.String("message", rejected.Message),
		)
		return nil, rejected
	}

	finish(status, nil)
	otellogger.DebugCtx(ctx, "backend request completed",
		zap.String("operation", operation),
		zap.Int("status", status),
		zap.Duration("duration", resp.Time()),
	)
	return resp.Body(), nil
}

func decode(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &errs.DecodeError{Err: err}
	}
	return nil
}
