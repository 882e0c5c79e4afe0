package service

import (
	"context"

	"spot_executor/internal/metrics"
	"spot_executor/internal/models"
	"spot_executor/internal/modules/config"
)

// Coordinator validates inbound entry orders and hands them to the configured
// execution strategy. Only the entry placement is synchronous; fill tracking
// and protection run on a detached task the caller never waits for.
type Coordinator struct {
	cfg      *config.Config
	strategy ExecutionStrategy
}

func NewCoordinator(cfg *config.Config, strategy ExecutionStrategy) *Coordinator {
	return &Coordinator{cfg: cfg, strategy: strategy}
}

// DefaultRequest returns a request prefilled with configured defaults. Decode
// the caller's JSON over it: omitted fields keep the defaults while an
// explicit zero still wins (makerMaxWaitSec=0 means a single poll).
func (c *Coordinator) DefaultRequest() models.OrderRequest {
	return models.OrderRequest{
		Symbol:    c.cfg.DefaultSymbol,
		Side:      models.SideBuy,
		Type:      models.TypeLimitMaker,
		ClientTag: DefaultClientTag,
		Risk: models.RiskBlock{
			Mode:            "OCO_TP_SL",
			MakerMaxWaitSec: c.cfg.DefaultMaxWaitSec,
		},
	}
}

func (c *Coordinator) Submit(ctx context.Context, req models.OrderRequest) models.OrderResponse {
	if req.Symbol == "" {
		req.Symbol = c.cfg.DefaultSymbol
	}

	// Rejections short-circuit before any network call.
	if req.Side != models.SideBuy || (req.Type != models.TypeLimitMaker && req.Type != models.TypeLimit) {
		return c.done(models.OrderResponse{
			Status: models.StatusReject,
			Detail: "Only BUY LIMIT_MAKER supported in this executor",
		})
	}
	if req.Quantity <= 0 || req.Price <= 0 {
		return c.done(models.OrderResponse{
			Status: models.StatusReject,
			Detail: "quantity and price must be positive",
		})
	}
	if req.Risk.MakerMaxWaitSec < 0 {
		return c.done(models.OrderResponse{
			Status: models.StatusReject,
			Detail: "makerMaxWaitSec must be non-negative",
		})
	}

	return c.done(c.strategy.Execute(ctx, req))
}

func (c *Coordinator) done(resp models.OrderResponse) models.OrderResponse {
	mode := "live"
	if c.cfg.Paper {
		mode = "paper"
	}
	result := "ok"
	switch resp.Status {
	case models.StatusReject:
		result = "reject"
	case models.StatusError:
		result = "error"
	}
	metrics.Orders.WithLabelValues(mode, result).Inc()
	return resp
}
