package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"spot_executor/internal/modules/config"
	healthsvc "spot_executor/internal/modules/health/service"
	"spot_executor/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

// Watcher keeps the last traded price for the default symbol via the Binance
// miniTicker stream. Feeds health state and the telegram /price command.
type Watcher struct {
	cfg   *config.Config
	state *healthsvc.State

	wsDialer *websocket.Dialer

	mu     sync.RWMutex
	prices map[string]float64
}

func NewWatcher(cfg *config.Config, state *healthsvc.State) *Watcher {
	return &Watcher{
		cfg:      cfg,
		state:    state,
		wsDialer: &websocket.Dialer{},
		prices:   make(map[string]float64),
	}
}

func (w *Watcher) SetPrice(symbol string, price float64) {
	w.mu.Lock()
	w.prices[symbol] = price
	w.mu.Unlock()
}

func (w *Watcher) LastPrice(symbol string) float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.prices[symbol]
}

// Run streams miniTicker frames until ctx is cancelled. Reconnects with a
// linear backoff; gives up after 8 consecutive dial failures.
func (w *Watcher) Run(ctx context.Context) {
	sym := strings.ToLower(w.cfg.DefaultSymbol)
	url := w.cfg.Binance.WSURL + "/" + sym + "@miniTicker"

	retry := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, _, err := w.wsDialer.Dial(url, nil)
		if err != nil {
			retry++
			if retry > 8 {
				logger.Error("market stream: giving up after %d dial failures: %v", retry-1, err)
				return
			}
			time.Sleep(time.Duration(300*retry) * time.Millisecond)
			continue
		}
		retry = 0
		w.state.SetStreamConnected(true)

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				_ = conn.Close()
				w.state.SetStreamConnected(false)
				break
			}
			var frame struct {
				Event  string `json:"e"`
				Symbol string `json:"s"`
				Close  string `json:"c"`
			}
			if err := sonic.Unmarshal(msg, &frame); err == nil && frame.Event == "24hrMiniTicker" {
				if px, err := strconv.ParseFloat(frame.Close, 64); err == nil && px != 0 {
					w.SetPrice(frame.Symbol, px)
					w.state.TouchPrice(time.Now())
				}
			}
		}

		select {
		case <-ctx.Done():
			return
		default:
			time.Sleep(1 * time.Second)
		}
	}
}
