package service

import (
	"context"
	"time"

	"spot_executor/internal/metrics"
	"spot_executor/internal/models"
	"spot_executor/pkg/logger"
)

// trackFill polls order status at the configured cadence until the order is
// fully filled or maxWait elapses. A query error is "no new information":
// logged, counted and the loop keeps going. With maxWait=0 exactly one query
// is attempted. aborted reports that ctx was cancelled before the deadline.
func (s *Live) trackFill(ctx context.Context, symbol, orderID string, maxWait time.Duration) (tf models.TrackedFill, aborted bool) {
	tf = models.TrackedFill{OrderID: orderID}
	start := time.Now()

	for {
		st, err := s.gw.QueryOrder(ctx, symbol, orderID)
		if err != nil {
			metrics.PollErrors.Inc()
			logger.Error("[%s] query order %s: %v", symbol, orderID, err)
		} else {
			tf.LastStatus = st.Status
			tf.LastQty = st.ExecutedQty
			if st.Status == models.OrderStatusFilled && st.ExecutedQty > 0 {
				tf.Elapsed = time.Since(start)
				return tf, false
			}
		}

		tf.Elapsed = time.Since(start)
		if tf.Elapsed >= maxWait {
			return tf, false
		}

		select {
		case <-ctx.Done():
			return tf, true
		case <-time.After(s.poll):
		}
	}
}
