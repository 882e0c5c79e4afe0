package service

import (
	"context"

	"spot_executor/internal/models"
)

// DefaultClientTag marks orders submitted without an explicit idempotency hint.
const DefaultClientTag = "spot-oco-safe"

// Gateway is the venue boundary the executor depends on. The live strategy
// talks to Binance through it; tests substitute stubs. Implementations must be
// safe for concurrent use by any number of trackers.
type Gateway interface {
	PlaceMakerBuy(ctx context.Context, symbol string, qty, price float64, clientTag string) (string, error)
	QueryOrder(ctx context.Context, symbol, orderID string) (models.OrderState, error)
	CancelOrder(ctx context.Context, symbol, orderID string) error
	PlaceExitOCO(ctx context.Context, symbol string, qty, tpPrice, slStopPrice, slLimitPrice float64) (string, error)
}

// ExecutionStrategy is picked once at startup: live trading or paper dry-run.
type ExecutionStrategy interface {
	Execute(ctx context.Context, req models.OrderRequest) models.OrderResponse
}
