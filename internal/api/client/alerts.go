package client

import (
	"context"
	"fmt"
	"net/url"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

type subscribeRequest struct {
	UserID    string `json:"user_id"`
	ServiceID int    `json:"service_id"`
	Price     int    `json:"price"`
}

// SubscriptionResult is the outcome of a subscribe or unsubscribe call.
type SubscriptionResult struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

// Subscribe registers userID for an alert when serviceID drops to price.
func (c *Client) Subscribe(ctx context.Context, userID string, serviceID, price int) (*SubscriptionResult, error) {
	var res SubscriptionResult
	req := subscribeRequest{UserID: userID, ServiceID: serviceID, Price: price}
	if err := c.post(ctx, "/api/v1/alerts", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Unsubscribe removes userID from the alert tier at price on serviceID.
func (c *Client) Unsubscribe(ctx context.Context, userID string, serviceID, price int) (*SubscriptionResult, error) {
	var res SubscriptionResult
	path := fmt.Sprintf("/api/v1/users/%s/alerts/%d/%d", url.PathEscape(userID), serviceID, price)
	if err := c.del(ctx, path, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListUserAlerts returns the prices userID is subscribed to, per service.
func (c *Client) ListUserAlerts(ctx context.Context, userID string) ([]domain.UserSubscription, error) {
	var resp struct {
		Alerts []domain.UserSubscription `json:"alerts"`
	}
	if err := c.get(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/alerts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}
