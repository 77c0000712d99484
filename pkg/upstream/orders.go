package upstream

import (
	"context"
	"net/url"
)

// CreateOrder submits a new quote request.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderCreated, error) {
	var created OrderCreated
	if err := c.postJSON(ctx, "/orders/create", "", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ConfirmOrder confirms a quoted order by order number and customer email.
func (c *Client) ConfirmOrder(ctx context.Context, orderNumber, email string) (*Order, error) {
	payload := map[string]string{
		"order_number": orderNumber,
		"email":        email,
	}
	var order Order
	if err := c.postJSON(ctx, "/orders/confirm", "", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder fetches a single order for invoice rendering.
func (c *Client) GetOrder(ctx context.Context, token, orderID string) (*Order, error) {
	var order Order
	if err := c.getJSON(ctx, "/orders/"+url.PathEscape(orderID), token, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns every order for the admin dashboard.
func (c *Client) ListOrders(ctx context.Context, token string) ([]Order, error) {
	var orders []Order
	if err := c.getJSON(ctx, "/orders/all", token, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderStats returns the aggregate counters for the admin dashboard.
func (c *Client) OrderStats(ctx context.Context, token string) (*OrderStats, error) {
	var stats OrderStats
	if err := c.getJSON(ctx, "/orders/stats", token, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// QuoteOrder attaches an admin price quote to the order.
func (c *Client) QuoteOrder(ctx context.Context, token, orderID string, req QuoteRequest) (*Order, error) {
	var order Order
	if err := c.postJSON(ctx, "/orders/"+url.PathEscape(orderID)+"/quote", token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder applies admin field updates.
func (c *Client) UpdateOrder(ctx context.Context, token, orderID string, req OrderUpdate) (*Order, error) {
	var order Order
	if err := c.putJSON(ctx, "/orders/"+url.PathEscape(orderID), token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
