package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"spot_executor/internal/models"
	"spot_executor/internal/modules/config"
	"spot_executor/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type queryStep struct {
	state models.OrderState
	err   error
}

// stubGateway scripts queryOrder answers; the last step repeats forever.
type stubGateway struct {
	mu sync.Mutex

	placeErr error
	orderID  string

	querySteps []queryStep

	cancelErr error
	ocoErr    error
	ocoID     string

	placeCalls  int
	queryCalls  int
	cancelCalls int
	ocoCalls    int

	ocoQty     float64
	ocoTP      float64
	ocoSLStop  float64
	ocoSLLimit float64
}

func (g *stubGateway) PlaceMakerBuy(_ context.Context, _ string, _, _ float64, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.placeCalls++
	if g.placeErr != nil {
		return "", g.placeErr
	}
	return g.orderID, nil
}

func (g *stubGateway) QueryOrder(_ context.Context, _, _ string) (models.OrderState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.queryCalls
	g.queryCalls++
	if len(g.querySteps) == 0 {
		return models.OrderState{Status: models.OrderStatusNew}, nil
	}
	if i >= len(g.querySteps) {
		i = len(g.querySteps) - 1
	}
	return g.querySteps[i].state, g.querySteps[i].err
}

func (g *stubGateway) CancelOrder(_ context.Context, _, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelCalls++
	return g.cancelErr
}

func (g *stubGateway) PlaceExitOCO(_ context.Context, _ string, qty, tp, slStop, slLimit float64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ocoCalls++
	g.ocoQty, g.ocoTP, g.ocoSLStop, g.ocoSLLimit = qty, tp, slStop, slLimit
	if g.ocoErr != nil {
		return "", g.ocoErr
	}
	return g.ocoID, nil
}

func (g *stubGateway) counts() (place, query, cancel, oco int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.placeCalls, g.queryCalls, g.cancelCalls, g.ocoCalls
}

// recordingNotifier collects everything sent to the operator channel.
type recordingNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (n *recordingNotifier) Send(msg string) {
	n.mu.Lock()
	n.msgs = append(n.msgs, msg)
	n.mu.Unlock()
}

func (n *recordingNotifier) Sendf(format string, args ...any) {
	n.Send(fmt.Sprintf(format, args...))
}

func (n *recordingNotifier) contains(sub string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, m := range n.msgs {
		if strings.Contains(m, sub) {
			return true
		}
	}
	return false
}

func testConfig(paper bool) *config.Config {
	cfg := &config.Config{}
	cfg.Paper = paper
	cfg.DefaultSymbol = "BTCUSDT"
	cfg.QtyPrecision = 5
	cfg.PollInterval = 5 * time.Millisecond
	cfg.DefaultMaxWaitSec = 60
	return cfg
}

func liveCoordinator(gw Gateway, n *recordingNotifier) *Coordinator {
	cfg := testConfig(false)
	return NewCoordinator(cfg, NewLive(context.Background(), cfg, gw, n))
}

func validRequest(maxWaitSec int) models.OrderRequest {
	return models.OrderRequest{
		Symbol:   "BTCUSDT",
		Side:     models.SideBuy,
		Type:     models.TypeLimitMaker,
		Price:    50000,
		Quantity: 0.01,
		Risk: models.RiskBlock{
			TPPrice:         51000,
			SLStopPrice:     49000,
			SLLimitPrice:    48900,
			MakerMaxWaitSec: maxWaitSec,
		},
	}
}

func TestSubmitRejectsUnsupportedSideAndType(t *testing.T) {
	gw := &stubGateway{orderID: "1"}
	c := liveCoordinator(gw, &recordingNotifier{})

	req := validRequest(5)
	req.Side = models.SideSell
	resp := c.Submit(context.Background(), req)
	require.Equal(t, models.StatusReject, resp.Status)

	req = validRequest(5)
	req.Type = "MARKET"
	resp = c.Submit(context.Background(), req)
	require.Equal(t, models.StatusReject, resp.Status)

	place, query, cancel, oco := gw.counts()
	assert.Zero(t, place, "rejection must short-circuit before any network call")
	assert.Zero(t, query)
	assert.Zero(t, cancel)
	assert.Zero(t, oco)
}

func TestSubmitRejectsNonPositiveQuantityAndPrice(t *testing.T) {
	gw := &stubGateway{orderID: "1"}
	c := liveCoordinator(gw, &recordingNotifier{})

	req := validRequest(5)
	req.Quantity = 0
	require.Equal(t, models.StatusReject, c.Submit(context.Background(), req).Status)

	req = validRequest(5)
	req.Price = -1
	require.Equal(t, models.StatusReject, c.Submit(context.Background(), req).Status)

	place, _, _, _ := gw.counts()
	assert.Zero(t, place)
}

func TestPaperModeNeverTouchesGateway(t *testing.T) {
	cfg := testConfig(true)
	n := &recordingNotifier{}
	c := NewCoordinator(cfg, NewPaper(n))

	resp := c.Submit(context.Background(), validRequest(5))
	require.Equal(t, models.StatusOK, resp.Status)
	assert.Equal(t, "Paper order accepted (no live trading)", resp.Detail)
	assert.Empty(t, resp.OrderID)
}

func TestLiveEntryPlacementErrorIsSynchronous(t *testing.T) {
	gw := &stubGateway{placeErr: errors.New("venue says no")}
	c := liveCoordinator(gw, &recordingNotifier{})

	resp := c.Submit(context.Background(), validRequest(5))
	require.Equal(t, models.StatusError, resp.Status)
	assert.Contains(t, resp.Detail, "venue says no")
}

func TestLiveFillLeadsToProtection(t *testing.T) {
	gw := &stubGateway{
		orderID: "42",
		ocoID:   "777",
		querySteps: []queryStep{
			{state: models.OrderState{Status: models.OrderStatusNew}},
			{state: models.OrderState{Status: models.OrderStatusFilled, ExecutedQty: 0.01}},
		},
	}
	n := &recordingNotifier{}
	c := liveCoordinator(gw, n)

	resp := c.Submit(context.Background(), validRequest(5))
	require.Equal(t, models.StatusOK, resp.Status)
	require.Equal(t, "42", resp.OrderID)

	require.Eventually(t, func() bool {
		_, _, _, oco := gw.counts()
		return oco == 1
	}, time.Second, 2*time.Millisecond)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Equal(t, 0.01, gw.ocoQty)
	assert.Equal(t, 51000.0, gw.ocoTP)
	assert.Equal(t, 49000.0, gw.ocoSLStop)
	assert.Equal(t, 48900.0, gw.ocoSLLimit)
	assert.Zero(t, gw.cancelCalls, "a filled order must not be cancelled")
}

func TestLiveTimeoutCancelsExactlyOnce(t *testing.T) {
	gw := &stubGateway{
		orderID: "42",
		querySteps: []queryStep{
			{state: models.OrderState{Status: models.OrderStatusNew}},
		},
	}
	n := &recordingNotifier{}
	c := liveCoordinator(gw, n)

	// makerMaxWaitSec=0: at most one query
	resp := c.Submit(context.Background(), validRequest(0))
	require.Equal(t, models.StatusOK, resp.Status)

	require.Eventually(t, func() bool {
		_, _, cancel, _ := gw.counts()
		return cancel == 1
	}, time.Second, 2*time.Millisecond)

	// settle: still exactly one cancel, one query, zero OCO calls
	time.Sleep(30 * time.Millisecond)
	_, query, cancel, oco := gw.counts()
	assert.Equal(t, 1, cancel)
	assert.Equal(t, 1, query)
	assert.Zero(t, oco)
}

func TestTransientQueryErrorsDoNotAbortTracking(t *testing.T) {
	boom := errors.New("gateway timeout")
	gw := &stubGateway{
		orderID: "42",
		ocoID:   "777",
		querySteps: []queryStep{
			{err: boom},
			{err: boom},
			{err: boom},
			{state: models.OrderState{Status: models.OrderStatusFilled, ExecutedQty: 0.25}},
		},
	}
	c := liveCoordinator(gw, &recordingNotifier{})

	resp := c.Submit(context.Background(), validRequest(5))
	require.Equal(t, models.StatusOK, resp.Status)

	require.Eventually(t, func() bool {
		_, _, _, oco := gw.counts()
		return oco == 1
	}, time.Second, 2*time.Millisecond)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Equal(t, 0.25, gw.ocoQty)
	assert.Zero(t, gw.cancelCalls)
}

func TestPartialFillAtDeadlineStillProtected(t *testing.T) {
	gw := &stubGateway{
		orderID: "42",
		ocoID:   "777",
		querySteps: []queryStep{
			{state: models.OrderState{Status: models.OrderStatusPartiallyFilled, ExecutedQty: 0.005}},
		},
	}
	c := liveCoordinator(gw, &recordingNotifier{})

	resp := c.Submit(context.Background(), validRequest(0))
	require.Equal(t, models.StatusOK, resp.Status)

	require.Eventually(t, func() bool {
		_, _, _, oco := gw.counts()
		return oco == 1
	}, time.Second, 2*time.Millisecond)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Equal(t, 0.005, gw.ocoQty)
	assert.Zero(t, gw.cancelCalls, "partially filled order keeps its remainder live")
}

func TestCancelErrorIsNonFatal(t *testing.T) {
	gw := &stubGateway{
		orderID:   "42",
		cancelErr: errors.New("order already filled"),
		querySteps: []queryStep{
			{state: models.OrderState{Status: models.OrderStatusNew}},
		},
	}
	n := &recordingNotifier{}
	c := liveCoordinator(gw, n)

	resp := c.Submit(context.Background(), validRequest(0))
	require.Equal(t, models.StatusOK, resp.Status)

	require.Eventually(t, func() bool {
		_, _, cancel, _ := gw.counts()
		return cancel == 1
	}, time.Second, 2*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	_, _, _, oco := gw.counts()
	assert.Zero(t, oco)
}

func TestProtectionFailureIsSurfaced(t *testing.T) {
	gw := &stubGateway{
		orderID: "42",
		ocoErr:  errors.New("MIN_NOTIONAL"),
		querySteps: []queryStep{
			{state: models.OrderState{Status: models.OrderStatusFilled, ExecutedQty: 0.00001}},
		},
	}
	n := &recordingNotifier{}
	c := liveCoordinator(gw, n)

	resp := c.Submit(context.Background(), validRequest(5))
	require.Equal(t, models.StatusOK, resp.Status)

	require.Eventually(t, func() bool {
		return n.contains("PROTECTION FAILED")
	}, time.Second, 2*time.Millisecond)
}

func TestDefaultRequestDecodeSemantics(t *testing.T) {
	c := liveCoordinator(&stubGateway{orderID: "1"}, &recordingNotifier{})

	// omitted makerMaxWaitSec keeps the configured default
	req := c.DefaultRequest()
	body := []byte(`{"price":50000,"quantity":0.01,"risk":{"tpPrice":51000,"slStopPrice":49000,"slLimitPrice":48900}}`)
	require.NoError(t, sonic.Unmarshal(body, &req))
	assert.Equal(t, 60, req.Risk.MakerMaxWaitSec)
	assert.Equal(t, "BTCUSDT", req.Symbol)
	assert.Equal(t, models.SideBuy, req.Side)
	assert.Equal(t, models.TypeLimitMaker, req.Type)
	assert.Equal(t, DefaultClientTag, req.ClientTag)

	// explicit zero wins: single-poll tracking
	req = c.DefaultRequest()
	body = []byte(`{"price":50000,"quantity":0.01,"risk":{"tpPrice":51000,"slStopPrice":49000,"slLimitPrice":48900,"makerMaxWaitSec":0}}`)
	require.NoError(t, sonic.Unmarshal(body, &req))
	assert.Equal(t, 0, req.Risk.MakerMaxWaitSec)
}
