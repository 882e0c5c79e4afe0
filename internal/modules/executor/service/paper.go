package service

import (
	"context"

	"spot_executor/internal/models"
	"spot_executor/internal/notify"
	"spot_executor/pkg/logger"
)

// Paper logs the intended entry and protection plan. No network calls, no
// background work.
type Paper struct {
	n notify.Notifier
}

func NewPaper(n notify.Notifier) *Paper {
	return &Paper{n: n}
}

func (p *Paper) Execute(_ context.Context, req models.OrderRequest) models.OrderResponse {
	logger.Info("[PAPER] BUY %s %.8g @ %.8g (%s)", req.Symbol, req.Quantity, req.Price, req.Type)
	logger.Info("[PAPER] Plan OCO -> TP %.8g ; SL %.8g/%.8g",
		req.Risk.TPPrice, req.Risk.SLStopPrice, req.Risk.SLLimitPrice)
	p.n.Sendf("📝 [PAPER] BUY %s %.8g @ %.8g; OCO plan TP=%.8g SL=%.8g/%.8g",
		req.Symbol, req.Quantity, req.Price,
		req.Risk.TPPrice, req.Risk.SLStopPrice, req.Risk.SLLimitPrice)

	return models.OrderResponse{
		Status: models.StatusOK,
		Detail: "Paper order accepted (no live trading)",
	}
}
