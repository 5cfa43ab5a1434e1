package backend

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/guonaihong/gout/dataflow"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Client talks to the content backend that owns jobs, news, cases,
// techniques and products.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. A zero timeout leaves requests
// bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the upstream root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do issues method against path and returns the raw response body. Non-2xx
// answers are reported as *StatusError.
func (c *Client) Do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	url := c.baseURL + path

	var df *dataflow.DataFlow
	g := gout.New(c.httpClient)
	switch method {
	case http.MethodGet:
		df = g.GET(url)
	case http.MethodPost:
		df = g.POST(url)
	case http.MethodPut:
		df = g.PUT(url)
	case http.MethodDelete:
		df = g.DELETE(url)
	default:
		return nil, errors.Errorf("unsupported method %s", method)
	}

	var (
		body []byte
		code int
	)
	df = df.WithContext(ctx).SetHeader(gout.H{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	})
	if payload != nil {
		df = df.SetJSON(payload)
	}
	if err := df.BindBody(&body).Code(&code).Do(); err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, url)
	}
	if code < 200 || code > 299 {
		zap.L().Debug("backend non-success status",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", code))
		return nil, &StatusError{Method: method, URL: url, Code: code, Body: string(body)}
	}
	return body, nil
}

// Fetch GETs path and returns the body when it is well-formed JSON.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	body, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, errors.Wrapf(ErrMalformed, "GET %s%s: body is not JSON", c.baseURL, path)
	}
	return body, nil
}

// TagSuggestions returns the job tags already in use upstream.
func (c *Client) TagSuggestions(ctx context.Context) ([]string, error) {
	body, err := c.Fetch(ctx, TagsPath)
	if err != nil {
		return nil, err
	}
	return parseStringList(body), nil
}

func splitArray(body []byte) ([]jsoniter.RawMessage, error) {
	var items []jsoniter.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, malformed(err)
	}
	return items, nil
}
