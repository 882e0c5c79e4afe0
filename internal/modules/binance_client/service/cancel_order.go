package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// CancelOrder is best-effort: the venue answers with an error if the order is
// already filled or gone, and callers treat that as non-fatal.
func (c *Client) CancelOrder(ctx context.Context, symbol, orderID string) error {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("orderId", orderID)

	if _, err := c.signedRequest(ctx, http.MethodDelete, "/api/v3/order", params); err != nil {
		return errors.Wrap(err, "CancelOrder")
	}
	return nil
}
