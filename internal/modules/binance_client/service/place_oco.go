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

// PlaceExitOCO submits the linked take-profit limit + stop-loss sell pair for
// a filled long entry. Quantity is rounded down to the lot-size precision.
func (c *Client) PlaceExitOCO(ctx context.Context, symbol string, qty, tpPrice, slStopPrice, slLimitPrice float64) (string, error) {
	if qty <= 0 {
		return "", fmt.Errorf("PlaceExitOCO: qty <= 0")
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("side", models.SideSell)
	params.Set("quantity", FormatQty(qty, c.qtyPrec))
	params.Set("price", formatDecimal(tpPrice))
	params.Set("stopPrice", formatDecimal(slStopPrice))
	params.Set("stopLimitPrice", formatDecimal(slLimitPrice))
	params.Set("stopLimitTimeInForce", "GTC")

	data, err := c.signedRequest(ctx, http.MethodPost, "/api/v3/order/oco", params)
	if err != nil {
		return "", errors.Wrap(err, "PlaceExitOCO")
	}

	var r ocoAckResponse
	if err := sonic.Unmarshal(data, &r); err != nil {
		return "", fmt.Errorf("PlaceExitOCO decode: %w; body=%s", err, string(data))
	}
	if r.OrderListID == 0 {
		return "", fmt.Errorf("PlaceExitOCO: empty orderListId RAW=%s", string(data))
	}
	return strconv.FormatInt(r.OrderListID, 10), nil
}
