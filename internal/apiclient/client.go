package apiclient

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// Client presents one calling convention for the job postings API whether the
// target is a remote deployment or this same process. When the configured
// base URL is absent, or resolves to the application's own origin, calls are
// dispatched in-process through the handler pipeline instead of over a
// socket.
type Client struct {
	baseURL string
	remote  transport
	local   transport
	log     *slog.Logger

	appOrigin *origin
}

func New(baseURL, appURL string, handler http.Handler, log *slog.Logger) *Client {
	c := &Client{
		baseURL:   baseURL,
		local:     newLocalTransport(handler),
		log:       log,
		appOrigin: parseOrigin(appURL),
	}
	if baseURL != "" {
		c.remote = newHTTPTransport(baseURL)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, token string) *Response {
	return c.Request(ctx, http.MethodGet, path, nil, query, token)
}

func (c *Client) Post(ctx context.Context, path string, payload map[string]any, token string) *Response {
	return c.Request(ctx, http.MethodPost, path, payload, nil, token)
}

func (c *Client) Put(ctx context.Context, path string, payload map[string]any, token string) *Response {
	return c.Request(ctx, http.MethodPut, path, payload, nil, token)
}

func (c *Client) Request(ctx context.Context, method, path string, payload map[string]any, query url.Values, token string) *Response {
	req := apiRequest{
		method:  strings.ToUpper(method),
		path:    path,
		payload: payload,
		query:   query,
		token:   token,
	}

	if c.shouldUseRemote(ctx) {
		resp, err := c.remote.do(ctx, req)
		if err == nil {
			return resp
		}
		// Degrading to in-process dispatch keeps a collocated deployment
		// working when its own base URL is unreachable, but it can also hide
		// a genuine remote outage. Logged loudly for that reason.
		c.log.Warn("Outbound API call failed, degrading to in-process dispatch",
			slog.String("method", req.method),
			slog.String("path", req.path),
			slog.String("error", err.Error()))
	}

	resp, err := c.local.do(ctx, req)
	if err != nil {
		c.log.Error("In-process API dispatch failed",
			slog.String("method", req.method),
			slog.String("path", req.path),
			slog.String("error", err.Error()))
		return NewResponse(http.StatusInternalServerError, nil, "")
	}
	return resp
}

// shouldUseRemote decides the transport once per call: a base URL must be
// configured and must point somewhere other than the inbound request's origin
// and the application's own configured URL.
func (c *Client) shouldUseRemote(ctx context.Context) bool {
	if c.remote == nil {
		return false
	}

	target := parseOrigin(c.baseURL)
	if target == nil {
		return false
	}

	if current := originFromContext(ctx); current != nil && *current == *target {
		return false
	}

	if c.appOrigin != nil && *c.appOrigin == *target {
		return false
	}

	return true
}

type origin struct {
	scheme string
	host   string
	port   string
}

func parseOrigin(raw string) *origin {
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return nil
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme == "" {
		scheme = "http"
	}
	port := parsed.Port()
	if port == "" {
		if scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	return &origin{scheme: scheme, host: strings.ToLower(parsed.Hostname()), port: port}
}

type originContextKey struct{}

// WithRequestOrigin records the inbound request's origin on the context so a
// base URL pointing back at the currently served host is recognized as
// "self".
func WithRequestOrigin(ctx context.Context, r *http.Request) context.Context {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if o := parseOrigin(scheme + "://" + r.Host); o != nil {
		return context.WithValue(ctx, originContextKey{}, o)
	}
	return ctx
}

func originFromContext(ctx context.Context) *origin {
	o, _ := ctx.Value(originContextKey{}).(*origin)
	return o
}
