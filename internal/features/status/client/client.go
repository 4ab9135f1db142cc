package client

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	OpRequest = "request"
	OpDecode  = "decode"
)

// RequestFailure covers every way the single read can fail: building the
// request, the round trip (refused, timeout) and reading the body.
type RequestFailure struct {
	Op  string
	URL string
	Err error
}

func (e *RequestFailure) Error() string {
	return e.Err.Error()
}

func (e *RequestFailure) Unwrap() error {
	return e.Err
}

// Client reads the configured endpoint as text. The response status is not
// inspected: any readable body is a result.
type Client struct {
	url        string
	httpClient *http.Client
}

func New(url string, timeout time.Duration) *Client {
	return NewWithHTTPClient(url, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(url string, httpClient *http.Client) *Client {
	return &Client{
		url:        url,
		httpClient: httpClient,
	}
}

func (c *Client) URL() string {
	return c.url
}

func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", &RequestFailure{Op: OpRequest, URL: c.url, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RequestFailure{Op: OpRequest, URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestFailure{Op: OpDecode, URL: c.url, Err: err}
	}

	return strings.ToValidUTF8(string(body), "�"), nil
}
