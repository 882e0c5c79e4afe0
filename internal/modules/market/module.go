package market

import (
	"context"

	"go.uber.org/fx"

	"spot_executor/internal/modules/config"
	"spot_executor/internal/modules/market/service"
)

func Module() fx.Option {
	return fx.Module("market",
		fx.Provide(
			service.NewWatcher,
		),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, w *service.Watcher, appCtx context.Context) {
			// Paper mode never opens network connections.
			if cfg.Paper || cfg.DefaultSymbol == "" {
				return
			}
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go w.Run(appCtx)
					return nil
				},
			})
		}),
	)
}
