package service

type apiError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

type orderAckResponse struct {
	Symbol      string `json:"symbol"`
	OrderID     int64  `json:"orderId"`
	Status      string `json:"status"`
	ExecutedQty string `json:"executedQty"`
}

type ocoAckResponse struct {
	OrderListID int64 `json:"orderListId"`
}
