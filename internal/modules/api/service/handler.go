package service

import (
	"io"
	"net/http"

	"spot_executor/internal/models"
	execservice "spot_executor/internal/modules/executor/service"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"
)

// Handler is the request surface: one operation, "submit entry order".
type Handler struct {
	coord *execservice.Coordinator
}

func NewHandler(coord *execservice.Coordinator) *Handler {
	return &Handler{coord: coord}
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	span, ctx := opentracing.StartSpanFromContext(r.Context(), "api.place_order")
	defer span.Finish()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.OrderResponse{
			Status: models.StatusError,
			Detail: "read body: " + err.Error(),
		})
		return
	}

	// Omitted fields keep the configured defaults; explicit zeroes win.
	req := h.coord.DefaultRequest()
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.OrderResponse{
			Status: models.StatusError,
			Detail: "bad request body: " + err.Error(),
		})
		return
	}

	resp := h.coord.Submit(ctx, req)

	span.SetTag("order.symbol", req.Symbol)
	span.SetTag("order.status", resp.Status)

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	b, _ := sonic.Marshal(v)
	_, _ = w.Write(b)
}
