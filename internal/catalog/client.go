package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// Remote catalog API paths.
const (
	servicesPath     = "/api/v1/services"
	latestPricesPath = "/api/v1/prices/latest"
	historyPath      = "/api/v1/prices/history"
)

// Client implements Provider by calling a remote catalog API.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimit caps outgoing requests to perSecond with the given burst.
func WithRateLimit(perSecond float64, burst int) ClientOption {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
		}
	}
}

// NewClient creates a catalog API client for baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ServicesResponse is the wire shape of the service listing.
type ServicesResponse struct {
	Response []domain.Service `json:"response"`
}

// PricesRequest names the services to price.
type PricesRequest struct {
	ServiceIDs []int `json:"service_ids"`
}

// PricesResponse is the wire shape of the latest price listing.
type PricesResponse struct {
	Response []domain.PricePoint `json:"response"`
}

// HistoryRequest selects the services whose history is returned.
type HistoryRequest struct {
	ServiceIDs        []int `json:"service_ids"`
	MaxServicesReturn int   `json:"max_services_return,omitempty"`
}

// HistoryResponse is the wire shape of the price history listing.
type HistoryResponse struct {
	Result []domain.PriceHistory `json:"result"`
}

// ListServices fetches the full catalog.
func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	var resp ServicesResponse
	if err := c.do(ctx, http.MethodGet, servicesPath, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Response == nil {
		return []domain.Service{}, nil
	}
	return resp.Response, nil
}

// LatestPrices fetches the latest price for each id.
func (c *Client) LatestPrices(ctx context.Context, serviceIDs []int) ([]domain.PricePoint, error) {
	if len(serviceIDs) == 0 {
		return []domain.PricePoint{}, nil
	}

	var resp PricesResponse
	if err := c.do(ctx, http.MethodPost, latestPricesPath, PricesRequest{ServiceIDs: serviceIDs}, &resp); err != nil {
		return nil, err
	}
	if resp.Response == nil {
		return []domain.PricePoint{}, nil
	}
	return resp.Response, nil
}

// PriceHistory fetches the history of the cheapest services among serviceIDs.
func (c *Client) PriceHistory(
	ctx context.Context,
	serviceIDs []int,
	limit int,
) ([]domain.PriceHistory, error) {
	if len(serviceIDs) == 0 {
		return nil, ErrNoServiceIDs
	}

	req := HistoryRequest{
		ServiceIDs:        serviceIDs,
		MaxServicesReturn: ClampHistoryLimit(limit),
	}
	var resp HistoryResponse
	if err := c.do(ctx, http.MethodPost, historyPath, req, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	var reqBody io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("catalog API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
