package apiclient

import "strings"

// Response is the normalized result of an API call, whichever transport
// carried it. The decoded body is nil when the payload was empty or not valid
// JSON; callers treat that as "no structured data".
type Response struct {
	status  int
	data    any
	rawBody string
}

func NewResponse(status int, data any, rawBody string) *Response {
	return &Response{status: status, data: data, rawBody: rawBody}
}

func (r *Response) Status() int {
	return r.status
}

func (r *Response) Successful() bool {
	return r.status >= 200 && r.status < 300
}

func (r *Response) Failed() bool {
	return !r.Successful()
}

func (r *Response) NotFound() bool {
	return r.status == 404
}

func (r *Response) Unauthorized() bool {
	return r.status == 401
}

func (r *Response) Body() string {
	return r.rawBody
}

// JSON returns the decoded body, or the value under a dotted key path
// ("data.title"), or def when the path is absent or the body never decoded.
// Pass "" for the whole document.
func (r *Response) JSON(key string, def any) any {
	if r.data == nil {
		return def
	}
	if key == "" {
		return r.data
	}

	current := r.data
	for _, part := range strings.Split(key, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return def
		}
		current, ok = obj[part]
		if !ok {
			return def
		}
	}
	return current
}
