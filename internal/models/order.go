package models

const (
	SideBuy  = "BUY"
	SideSell = "SELL"

	TypeLimitMaker = "LIMIT_MAKER"
	TypeLimit      = "LIMIT"
)

// Binance order statuses we care about.
const (
	OrderStatusNew             = "NEW"
	OrderStatusPartiallyFilled = "PARTIALLY_FILLED"
	OrderStatusFilled          = "FILLED"
	OrderStatusCanceled        = "CANCELED"
)

const (
	StatusOK     = "OK"
	StatusReject = "REJECT"
	StatusError  = "ERROR"
)

// RiskBlock describes the protective exit to arm once the entry fills.
type RiskBlock struct {
	Mode            string  `json:"mode"`
	TPPrice         float64 `json:"tpPrice"`
	SLStopPrice     float64 `json:"slStopPrice"`
	SLLimitPrice    float64 `json:"slLimitPrice"`
	MakerMaxWaitSec int     `json:"makerMaxWaitSec"`
}

// OrderRequest is the inbound entry order. Immutable once accepted.
type OrderRequest struct {
	Symbol    string    `json:"symbol"`
	Side      string    `json:"side"`
	Type      string    `json:"type"`
	Price     float64   `json:"price"`
	Quantity  float64   `json:"quantity"`
	ClientTag string    `json:"clientTag"`
	Risk      RiskBlock `json:"risk"`
}

// OrderResponse is the synchronous answer to the caller. Everything that
// happens after the entry is placed is only visible via logs/notifier/metrics.
type OrderResponse struct {
	Status  string `json:"status"`
	Detail  string `json:"detail"`
	OrderID string `json:"orderId,omitempty"`
}

// OrderState is what the venue reports for an open order.
type OrderState struct {
	Status      string
	ExecutedQty float64
}
