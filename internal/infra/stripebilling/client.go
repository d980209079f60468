// Package stripebilling wraps the Stripe product/price object API for the
// catalog engine. No retries here: prices are immutable on Stripe's side, so
// idempotency is the caller's job (it only mints a price when the amount
// actually changed). Provider errors pass through unmodified.
package stripebilling

import (
	"context"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
)

type Client struct {
	api *client.API
}

func New(secretKey string) *Client {
	return &Client{api: client.New(secretKey, nil)}
}

func (c *Client) CreateProduct(ctx context.Context, name, description string) (string, error) {
	params := &stripe.ProductParams{
		Name: stripe.String(name),
	}
	if description != "" {
		params.Description = stripe.String(description)
	}
	params.Context = ctx

	p, err := c.api.Products.New(params)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

func (c *Client) UpdateProduct(ctx context.Context, productID, name, description string) error {
	params := &stripe.ProductParams{
		Name: stripe.String(name),
	}
	if description != "" {
		params.Description = stripe.String(description)
	}
	params.Context = ctx

	_, err := c.api.Products.Update(productID, params)
	return err
}

// CreatePrice creates a new immutable price under the product. recurring
// means a monthly subscription price; otherwise it is a one-time price.
func (c *Client) CreatePrice(ctx context.Context, productID string, amountMinor int64, currency string, recurring bool) (string, error) {
	params := &stripe.PriceParams{
		Product:    stripe.String(productID),
		UnitAmount: stripe.Int64(amountMinor),
		Currency:   stripe.String(currency),
	}
	if recurring {
		params.Recurring = &stripe.PriceRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
		}
	}
	params.Context = ctx

	p, err := c.api.Prices.New(params)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

func (c *Client) SetDefaultPrice(ctx context.Context, productID, priceID string) error {
	params := &stripe.ProductParams{
		DefaultPrice: stripe.String(priceID),
	}
	params.Context = ctx

	_, err := c.api.Products.Update(productID, params)
	return err
}
