package client

import (
	"context"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// PriceCheckResult is the response of a manual price check.
type PriceCheckResult struct {
	Status string             `json:"status"`
	Report domain.CycleReport `json:"report"`
}

// RunPriceCheck triggers a price check cycle and waits for its report.
func (c *Client) RunPriceCheck(ctx context.Context) (*PriceCheckResult, error) {
	var res PriceCheckResult
	if err := c.post(ctx, "/api/v1/price-check", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
