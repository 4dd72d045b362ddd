package client

import (
	"context"
	"net/url"
	"strings"

	"github.com/donaldgifford/server-price-alerts/internal/catalog"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// SearchResult lists services matching a catalog search.
type SearchResult struct {
	Services []domain.Service `json:"services"`
	Total    int              `json:"total"`
}

// ListServices returns the full catalog.
func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	var resp catalog.ServicesResponse
	if err := c.get(ctx, "/api/v1/services", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Response, nil
}

// SearchServices filters the catalog by hardware.
func (c *Client) SearchServices(ctx context.Context, f catalog.Filter) (*SearchResult, error) {
	var res SearchResult
	if err := c.get(ctx, "/api/v1/services/search", filterQuery(f), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Suggest lists autocomplete values for field among services matching f.
func (c *Client) Suggest(ctx context.Context, field, query string, f catalog.Filter) ([]catalog.Suggestion, error) {
	q := filterQuery(f)
	q.Set("field", field)
	if query != "" {
		q.Set("q", query)
	}

	var resp struct {
		Suggestions []catalog.Suggestion `json:"suggestions"`
	}
	if err := c.get(ctx, "/api/v1/services/suggest", q, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// LatestPrices returns the newest price of each service.
func (c *Client) LatestPrices(ctx context.Context, serviceIDs []int) ([]domain.PricePoint, error) {
	var resp catalog.PricesResponse
	if err := c.post(ctx, "/api/v1/prices/latest", catalog.PricesRequest{ServiceIDs: serviceIDs}, &resp); err != nil {
		return nil, err
	}
	return resp.Response, nil
}

// PriceHistory returns the history of the limit cheapest services.
func (c *Client) PriceHistory(ctx context.Context, serviceIDs []int, limit int) ([]domain.PriceHistory, error) {
	req := catalog.HistoryRequest{ServiceIDs: serviceIDs, MaxServicesReturn: limit}

	var resp catalog.HistoryResponse
	if err := c.post(ctx, "/api/v1/prices/history", req, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

func filterQuery(f catalog.Filter) url.Values {
	q := url.Values{}
	for key, v := range map[string]string{"cpu": f.CPU, "ram": f.RAM, "region": f.Region, "gpu": f.GPU} {
		if v != "" {
			q.Set(key, v)
		}
	}
	if len(f.Disks) > 0 {
		q.Set("disk", strings.Join(f.Disks, ","))
	}
	return q
}
