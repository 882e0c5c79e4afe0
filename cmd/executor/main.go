package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"spot_executor/internal/modules/api"
	binance "spot_executor/internal/modules/binance_client"
	"spot_executor/internal/modules/config"
	"spot_executor/internal/modules/executor"
	"spot_executor/internal/modules/health"
	healthsvc "spot_executor/internal/modules/health/service"
	"spot_executor/internal/modules/market"
	marketsvc "spot_executor/internal/modules/market/service"
	"spot_executor/internal/notify"
	"spot_executor/pkg/logger"
	"spot_executor/pkg/tracing"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName("spot-executor")
	tracing.SetServiceName("spot-executor")

	app := fx.New(
		fx.Provide(
			// App context: cancelled on shutdown so in-flight trackers stop.
			func(lc fx.Lifecycle) context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				lc.Append(fx.Hook{
					OnStop: func(_ context.Context) error {
						cancel()
						return nil
					},
				})
				return ctx
			},
			// Notifier: если TELEGRAM_* нет — используем stdout
			func(cfg *config.Config, w *marketsvc.Watcher, st *healthsvc.State) notify.Notifier {
				if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
					tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, w, st, cfg.DefaultSymbol, cfg.Paper)
					if err == nil {
						return tg
					}
					logger.Error("telegram init failed, falling back to stdout notifier: %v", err)
				}
				return notify.NewStdout()
			},
		),
		config.Module(),
		binance.Module(),
		executor.Module(),
		market.Module(),
		health.Module(),
		api.Module(),
		fx.Invoke(
			runNotifier,
			initTracing,
		),
	)
	app.Run()
}

func runNotifier(lc fx.Lifecycle, n notify.Notifier, appCtx context.Context) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if tg, ok := n.(*notify.Telegram); ok {
				return tg.Start(appCtx)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			if tg, ok := n.(*notify.Telegram); ok {
				tg.Stop()
			}
			return nil
		},
	})
}

func initTracing(lc fx.Lifecycle, cfg *config.Config) error {
	if cfg.Jaeger.Host == "" {
		return nil
	}
	_, closeTracer, err := tracing.InitTracer(tracing.Config{
		Host: cfg.Jaeger.Host,
		Port: cfg.Jaeger.Port,
	})
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			closeTracer()
			return nil
		},
	})
	return nil
}
