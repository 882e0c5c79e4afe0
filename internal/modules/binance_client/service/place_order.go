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

// PlaceMakerBuy submits a post-only limit buy. The venue rejects the order if
// it would cross the book, so it can only ever rest as a maker.
func (c *Client) PlaceMakerBuy(ctx context.Context, symbol string, qty, price float64, clientTag string) (string, error) {
	if qty <= 0 {
		return "", fmt.Errorf("PlaceMakerBuy: qty <= 0")
	}
	if price <= 0 {
		return "", fmt.Errorf("PlaceMakerBuy: price <= 0")
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("side", models.SideBuy)
	params.Set("type", models.TypeLimitMaker)
	params.Set("quantity", formatDecimal(qty))
	params.Set("price", formatDecimal(price))
	if clientTag != "" {
		params.Set("newClientOrderId", clientTag)
	}

	data, err := c.signedRequest(ctx, http.MethodPost, "/api/v3/order", params)
	if err != nil {
		return "", errors.Wrap(err, "PlaceMakerBuy")
	}

	var r orderAckResponse
	if err := sonic.Unmarshal(data, &r); err != nil {
		return "", fmt.Errorf("PlaceMakerBuy decode: %w; body=%s", err, string(data))
	}
	if r.OrderID == 0 {
		return "", fmt.Errorf("PlaceMakerBuy: empty orderId RAW=%s", string(data))
	}
	return strconv.FormatInt(r.OrderID, 10), nil
}
