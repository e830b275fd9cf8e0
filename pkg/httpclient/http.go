package httpclient

import (
	"context"
	"net/http"
)

// Response carries the raw outcome of a request. The body is fully read
// and the connection released by the time it is returned.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// HTTPClient is the outbound surface the connectivity monitor probes
// through. result, when non-nil, receives the decoded JSON body.
type HTTPClient interface {
	Get(ctx context.Context, endpoint string, query map[string]string, result interface{}) (*Response, error)
}
