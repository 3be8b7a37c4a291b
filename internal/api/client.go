package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"arcade-leaderboard/internal/domain"

	"github.com/valyala/fasthttp"
)

// Client talks to a running leaderboard server over its REST surface.
type Client struct {
	baseURL string
	client  *fasthttp.Client
}

type Envelope[T any] struct {
	Data      T         `json:"data"`
	Message   string    `json:"message"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

// APIError is the decoded error envelope of a non-2xx response.
type APIError struct {
	StatusCode int                 `json:"status"`
	Code       string              `json:"code"`
	Message    string              `json:"message"`
	Details    map[string][]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("API error: %d", e.StatusCode)
	}
	return fmt.Sprintf("API error: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	res, err := doRequest[Envelope[Health]](ctx, c, c.baseURL+"/api/health")
	if err != nil {
		return nil, err
	}
	if res.Data.Status != "healthy" {
		return nil, fmt.Errorf("server reports status %q", res.Data.Status)
	}
	return &res.Data, nil
}

// Top fetches the best entries for game. An empty game spans every game; limit <= 0 leaves the
// server default in place.
func (c *Client) Top(ctx context.Context, game string, limit int) ([]domain.Entry, error) {
	q := url.Values{}
	if game != "" {
		q.Set("game", game)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	target := c.baseURL + "/api/leaderboard"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	res, err := doRequest[Envelope[[]domain.Entry]](ctx, c, target)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func doRequest[T any](ctx context.Context, client *Client, endpoint string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(endpoint)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("GET %s: %w", endpoint, err)
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, fmt.Errorf("GET %s: %w", endpoint, err)
		}
	}

	if code := resp.StatusCode(); code < 200 || code >= 300 {
		apiErr := &APIError{}
		if err := json.Unmarshal(resp.Body(), apiErr); err != nil {
			apiErr = &APIError{}
		}
		apiErr.StatusCode = code
		return nil, apiErr
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return &result, nil
}
