package stripebilling

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v75"
)

// The checkout and portal flows are single call-throughs; the catalog
// engine never uses them.

func (c *Client) CreateCustomer(ctx context.Context, email string, userID uint) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Metadata: map[string]string{
			"user_id": fmt.Sprint(userID),
		},
	}
	params.Context = ctx

	cus, err := c.api.Customers.New(params)
	if err != nil {
		return "", err
	}
	return cus.ID, nil
}

type CheckoutInput struct {
	CustomerID   string
	PriceID      string
	Subscription bool
	UserID       uint
	SuccessURL   string
	CancelURL    string
}

func (c *Client) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (string, error) {
	mode := stripe.CheckoutSessionModePayment
	if in.Subscription {
		mode = stripe.CheckoutSessionModeSubscription
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		Mode:       stripe.String(string(mode)),
		Customer:   stripe.String(in.CustomerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(in.PriceID), Quantity: stripe.Int64(1)},
		},
		ClientReferenceID: stripe.String(fmt.Sprint(in.UserID)),
	}
	params.Context = ctx

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", err
	}
	return s.URL, nil
}

func (c *Client) CreateBillingPortal(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	portal, err := c.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", err
	}
	return portal.URL, nil
}
