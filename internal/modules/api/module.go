package api

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"spot_executor/internal/metrics"
	"spot_executor/internal/modules/api/service"
	healthsvc "spot_executor/internal/modules/health/service"
)

func Module() fx.Option {
	return fx.Module("api",
		fx.Provide(
			service.NewHandler,
		),
		fx.Invoke(func(lc fx.Lifecycle, mux *http.ServeMux, h *service.Handler, state *healthsvc.State) {
			mux.HandleFunc("/order", h.PlaceOrder)
			mux.Handle("/metrics", metrics.Handler())

			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					state.SetReady(true)
					return nil
				},
			})
		}),
	)
}
