package notify

import (
	"context"
	"fmt"

	healthsvc "spot_executor/internal/modules/health/service"
	marketsvc "spot_executor/internal/modules/market/service"
	"spot_executor/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier is the operator-visible channel. Protection failures MUST land
// here: a filled position without its OCO is the worst state this service can
// leave behind.
type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}

// Telegram — пассивный нотифайер + команды /price и /health.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
	market *marketsvc.Watcher
	state  *healthsvc.State
	symbol string
	paper  bool
}

func NewTelegram(token string, chatID int64, market *marketsvc.Watcher, state *healthsvc.State, symbol string, paper bool) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{
		bot:    b,
		chatID: chatID,
		market: market,
		state:  state,
		symbol: symbol,
		paper:  paper,
	}, nil
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	_, _ = t.bot.Send(tgbot.NewMessage(t.chatID, msg))
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

func (t *Telegram) handlePrice() {
	if t.market == nil {
		t.Send("❗️ Market watcher is not running")
		return
	}
	px := t.market.LastPrice(t.symbol)
	if px == 0 {
		t.Sendf("📭 No price seen yet for %s", t.symbol)
		return
	}
	t.Sendf("💹 %s last price: %.8g", t.symbol, px)
}

// healthSummary mirrors the /healthz payload.
func (t *Telegram) healthSummary() string {
	if t.state == nil {
		return "❗️ Health state is not wired"
	}
	mode := "live"
	if t.paper {
		mode = "paper"
	}
	lastTick := "never"
	if at := t.state.LastPriceAt(); !at.IsZero() {
		lastTick = at.UTC().Format("15:04:05")
	}
	return fmt.Sprintf("🩺 mode=%s ready=%v stream=%v uptime=%ds lastTick=%s",
		mode, t.state.Ready(), t.state.StreamConnected(),
		int64(t.state.Uptime().Seconds()), lastTick)
}

func (t *Telegram) handleHealth() { t.Send(t.healthSummary()) }

// Start: long-polling for commands.
func (t *Telegram) Start(ctx context.Context) error {
	if t == nil || t.bot == nil {
		return nil
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd := <-updates:
				if upd.Message != nil && upd.Message.Chat != nil &&
					upd.Message.Chat.ID == t.chatID && upd.Message.IsCommand() {

					switch upd.Message.Command() {
					case "price":
						go t.handlePrice()
					case "health":
						go t.handleHealth()
					}
				}
			}
		}
	}()
	return nil
}

func (t *Telegram) Stop() {}

// Stdout — заглушка, пишет всё в лог.
type Stdout struct{}

func NewStdout() *Stdout                           { return &Stdout{} }
func (s *Stdout) Send(msg string)                  { logger.Info("%s", msg) }
func (s *Stdout) Sendf(format string, args ...any) { logger.Info(format, args...) }
