package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

type restyClient struct {
	client *resty.Client
}

// New builds a client rooted at baseURL. Every request carries the
// probe user agent and gives up after timeout.
func New(baseURL string, timeout time.Duration) HTTPClient {
	return &restyClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", "market-analyzer-monitor"),
	}
}

func (rc *restyClient) Get(ctx context.Context, endpoint string, query map[string]string, result interface{}) (*Response, error) {
	req := rc.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Get(endpoint)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Headers:    resp.Header(),
	}, nil
}
