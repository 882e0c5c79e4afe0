package service

import (
	"context"

	"spot_executor/internal/models"
)

// protect places the exit OCO for a filled quantity. No retry: a rejection
// leaves the position unprotected and is surfaced through the outcome.
func (s *Live) protect(ctx context.Context, req models.OrderRequest, qty float64) models.ProtectionOutcome {
	ocoID, err := s.gw.PlaceExitOCO(ctx, req.Symbol, qty,
		req.Risk.TPPrice, req.Risk.SLStopPrice, req.Risk.SLLimitPrice)
	if err != nil {
		return models.ProtectionOutcome{
			Kind:   models.ProtectionFailed,
			Detail: err.Error(),
		}
	}
	return models.ProtectionOutcome{
		Kind:            models.ProtectionPlaced,
		ExchangeOrderID: ocoID,
	}
}
