package service

import (
	"context"
	"time"

	"spot_executor/internal/metrics"
	"spot_executor/internal/models"
	"spot_executor/internal/modules/config"
	"spot_executor/internal/notify"
	"spot_executor/pkg/logger"
)

// Live places real orders. The entry is synchronous; after that a detached
// goroutine tracks the fill and arms protection. The goroutine runs on the
// app context so graceful shutdown cancels in-flight trackers.
type Live struct {
	appCtx context.Context
	gw     Gateway
	n      notify.Notifier
	poll   time.Duration
}

func NewLive(appCtx context.Context, cfg *config.Config, gw Gateway, n notify.Notifier) *Live {
	return &Live{
		appCtx: appCtx,
		gw:     gw,
		n:      n,
		poll:   cfg.PollInterval,
	}
}

func (s *Live) Execute(ctx context.Context, req models.OrderRequest) models.OrderResponse {
	orderID, err := s.gw.PlaceMakerBuy(ctx, req.Symbol, req.Quantity, req.Price, req.ClientTag)
	if err != nil {
		logger.Error("[%s] create order failed: %v", req.Symbol, err)
		return models.OrderResponse{
			Status: models.StatusError,
			Detail: "create order failed: " + err.Error(),
		}
	}

	go s.watch(s.appCtx, req, orderID)

	return models.OrderResponse{
		Status:  models.StatusOK,
		Detail:  "Order placed, OCO will be placed after fill",
		OrderID: orderID,
	}
}

// watch is the per-order background task: placement -> polling -> (cancel | protect).
func (s *Live) watch(ctx context.Context, req models.OrderRequest, orderID string) {
	maxWait := time.Duration(req.Risk.MakerMaxWaitSec) * time.Second
	tf, aborted := s.trackFill(ctx, req.Symbol, orderID, maxWait)

	var out models.ProtectionOutcome
	switch {
	case tf.LastQty <= 0 && aborted:
		// shutdown before the deadline; no cancel attempted
		out = models.ProtectionOutcome{
			Kind:   models.ProtectionSkippedUnfilled,
			Detail: "tracking aborted before deadline",
		}
	case tf.LastQty <= 0:
		// The order may fill between the last poll and the cancel; the cancel
		// error is kept in the outcome so an operator can spot that race.
		out = models.ProtectionOutcome{Kind: models.ProtectionCancelledUnfilled}
		if err := s.gw.CancelOrder(ctx, req.Symbol, orderID); err != nil {
			logger.Error("[%s] cancel order %s: %v", req.Symbol, orderID, err)
			out.Detail = "cancel error: " + err.Error()
		}
	default:
		out = s.protect(ctx, req, tf.LastQty)
	}

	s.report(req, orderID, tf, out)
}

func (s *Live) report(req models.OrderRequest, orderID string, tf models.TrackedFill, out models.ProtectionOutcome) {
	metrics.Protection.WithLabelValues(string(out.Kind)).Inc()

	switch out.Kind {
	case models.ProtectionPlaced:
		logger.Info("[%s] OCO placed for order %s: qty=%.8f oco=%s elapsed=%s",
			req.Symbol, orderID, tf.LastQty, out.ExchangeOrderID, tf.Elapsed)
		s.n.Sendf("✅ [%s] Entry %s filled qty=%.8f, OCO %s placed: TP=%.8g SL=%.8g/%.8g",
			req.Symbol, orderID, tf.LastQty, out.ExchangeOrderID,
			req.Risk.TPPrice, req.Risk.SLStopPrice, req.Risk.SLLimitPrice)

	case models.ProtectionCancelledUnfilled:
		logger.Info("[%s] order %s not filled within %ds; cancelled (last status=%q) %s",
			req.Symbol, orderID, req.Risk.MakerMaxWaitSec, tf.LastStatus, out.Detail)
		s.n.Sendf("🕒 [%s] Order %s not filled within %ds; cancelled. %s",
			req.Symbol, orderID, req.Risk.MakerMaxWaitSec, out.Detail)

	case models.ProtectionSkippedUnfilled:
		logger.Info("[%s] order %s: %s", req.Symbol, orderID, out.Detail)

	case models.ProtectionFailed:
		// The single most important failure mode: a filled position with no
		// protection. Never silent.
		logger.Error("[%s] PROTECTION FAILED for order %s qty=%.8f: %s",
			req.Symbol, orderID, tf.LastQty, out.Detail)
		s.n.Sendf("❗️ [%s] PROTECTION FAILED: entry %s filled qty=%.8f but OCO was rejected: %s — position is UNPROTECTED",
			req.Symbol, orderID, tf.LastQty, out.Detail)
	}
}
