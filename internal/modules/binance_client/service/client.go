package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"spot_executor/internal/modules/config"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// Client is a thin signed-REST client for the Binance spot API. Stateless per
// call, safe for concurrent use by any number of trackers.
type Client struct {
	http      *http.Client
	baseURL   string
	apiKey    string
	apiSecret string
	qtyPrec   int32
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:      &http.Client{Timeout: 10 * time.Second},
		baseURL:   cfg.Binance.BaseURL,
		apiKey:    cfg.Binance.APIKey,
		apiSecret: cfg.Binance.APISecret,
		qtyPrec:   cfg.QtyPrecision,
	}
}

func (c *Client) sign(query string) string {
	h := hmac.New(sha256.New, []byte(c.apiSecret))
	h.Write([]byte(query))
	return hex.EncodeToString(h.Sum(nil))
}

// signedRequest выполняет подписанный запрос и возвращает сырой body.
// The signature covers the exact encoded query string.
func (c *Client) signedRequest(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	params.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))
	params.Set("recvWindow", "5000")
	query := params.Encode()
	query += "&signature=" + c.sign(query)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+query, nil)
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}
	req.Header.Set("X-MBX-APIKEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		var apiErr apiError
		if err := sonic.Unmarshal(data, &apiErr); err == nil && apiErr.Msg != "" {
			return nil, fmt.Errorf("binance http %d: code=%d msg=%s", resp.StatusCode, apiErr.Code, apiErr.Msg)
		}
		return nil, fmt.Errorf("binance http %d: %s", resp.StatusCode, string(data))
	}
	return data, nil
}
