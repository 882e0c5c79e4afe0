package executor

import (
	"context"

	"go.uber.org/fx"

	"spot_executor/internal/modules/config"
	"spot_executor/internal/modules/executor/service"
	"spot_executor/internal/notify"
)

func Module() fx.Option {
	return fx.Module("executor",
		fx.Provide(
			// Strategy is picked once at startup instead of branching on the
			// mode flag inside the flow.
			func(appCtx context.Context, cfg *config.Config, gw service.Gateway, n notify.Notifier) service.ExecutionStrategy {
				if cfg.Paper {
					return service.NewPaper(n)
				}
				return service.NewLive(appCtx, cfg, gw, n)
			},
			service.NewCoordinator,
		),
	)
}
