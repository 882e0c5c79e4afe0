package binance_client

import (
	"go.uber.org/fx"

	binservice "spot_executor/internal/modules/binance_client/service"
	execservice "spot_executor/internal/modules/executor/service"
)

func Module() fx.Option {
	return fx.Module("binance_client",
		fx.Provide(
			binservice.NewClient,
			// Адаптер: *service.Client -> executor Gateway
			func(c *binservice.Client) execservice.Gateway {
				return c
			},
		),
	)
}
