package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const requestTimeout = 15 * time.Second

type apiRequest struct {
	method  string
	path    string
	payload map[string]any
	query   url.Values
	token   string
}

// transport carries one API request and produces a normalized response. The
// two implementations are a real outbound HTTP call and an in-process
// dispatch through the application's own handler.
type transport interface {
	do(ctx context.Context, req apiRequest) (*Response, error)
}

type httpTransport struct {
	baseURL string
	client  *http.Client
}

func newHTTPTransport(baseURL string) *httpTransport {
	return &httpTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (t *httpTransport) do(ctx context.Context, req apiRequest) (*Response, error) {
	target := t.baseURL + ensureLeadingSlash(req.path)
	if req.method == http.MethodGet && len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.method != http.MethodGet && req.payload != nil {
		encoded, err := json.Marshal(req.payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, err
	}
	setHeaders(httpReq, req)

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	return decodeResponse(httpResp.StatusCode, raw), nil
}

// localTransport routes a synthesized request straight into the application's
// handler pipeline, no socket hop. Status codes, headers and JSON error
// bodies come out exactly as an external caller would see them.
type localTransport struct {
	handler http.Handler
}

func newLocalTransport(handler http.Handler) *localTransport {
	return &localTransport{handler: handler}
}

func (t *localTransport) do(ctx context.Context, req apiRequest) (*Response, error) {
	target := ensureLeadingSlash(req.path)
	if req.method == http.MethodGet && len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.method != http.MethodGet && req.payload != nil {
		encoded, err := json.Marshal(req.payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, err
	}
	setHeaders(httpReq, req)

	rec := &responseRecorder{status: http.StatusOK, header: make(http.Header)}
	t.handler.ServeHTTP(rec, httpReq)

	return decodeResponse(rec.status, rec.body.Bytes()), nil
}

func setHeaders(httpReq *http.Request, req apiRequest) {
	httpReq.Header.Set("Accept", "application/json")
	if req.method != http.MethodGet {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
}

func decodeResponse(status int, raw []byte) *Response {
	var data any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			data = nil
		}
	}
	return NewResponse(status, data, string(raw))
}

func ensureLeadingSlash(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// responseRecorder captures the handler's output for in-process dispatch.
type responseRecorder struct {
	status      int
	header      http.Header
	body        bytes.Buffer
	wroteHeader bool
}

func (r *responseRecorder) Header() http.Header {
	return r.header
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	return r.body.Write(b)
}

func (r *responseRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
}
