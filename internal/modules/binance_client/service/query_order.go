package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"spot_executor/internal/models"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// QueryOrder reports status and executed quantity for an open order.
// Callers must tolerate transient failures here and keep polling.
func (c *Client) QueryOrder(ctx context.Context, symbol, orderID string) (models.OrderState, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("orderId", orderID)

	data, err := c.signedRequest(ctx, http.MethodGet, "/api/v3/order", params)
	if err != nil {
		return models.OrderState{}, errors.Wrap(err, "QueryOrder")
	}

	var r orderAckResponse
	if err := sonic.Unmarshal(data, &r); err != nil {
		return models.OrderState{}, fmt.Errorf("QueryOrder decode: %w; body=%s", err, string(data))
	}

	qty, _ := strconv.ParseFloat(r.ExecutedQty, 64)
	return models.OrderState{Status: r.Status, ExecutedQty: qty}, nil
}
