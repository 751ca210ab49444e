package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gitlab.com/open-soft/go-invest-bot/src/model"
)

func newTestClient(handler http.HandlerFunc) (*TinkoffClient, *httptest.Server) {
	server := httptest.NewServer(handler)

	return &TinkoffClient{
		Token:          "test-token",
		DestinationURI: server.URL,
		HttpClient:     server.Client(),
	}, server
}

func TestGetLastPrice(t *testing.T) {
	var requestedPath string
	var authorization string

	gateway, server := newTestClient(func(w http.ResponseWriter, req *http.Request) {
		requestedPath = req.URL.Path
		authorization = req.Header.Get("Authorization")

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"lastPrices": []map[string]interface{}{
				{
					"figi":  "BBG004730N88",
					"price": map[string]interface{}{"units": "105", "nano": 250000000},
				},
			},
		})
	})
	defer server.Close()

	price, err := gateway.GetLastPrice("BBG004730N88")

	assertion := assert.New(t)
	assertion.Nil(err)
	assertion.Equal(105.25, price)
	assertion.Equal("/tinkoff.public.invest.api.contract.v1.MarketDataService/GetLastPrices", requestedPath)
	assertion.Equal("Bearer test-token", authorization)
}

func TestPostOrderSandboxRouting(t *testing.T) {
	var requestedPath string
	var decoded model.OrderRequest

	gateway, server := newTestClient(func(w http.ResponseWriter, req *http.Request) {
		requestedPath = req.URL.Path
		_ = json.NewDecoder(req.Body).Decode(&decoded)

		_ = json.NewEncoder(w).Encode(map[string]string{
			"orderId":               "broker-1",
			"executionReportStatus": model.OrderStatusNew,
		})
	})
	defer server.Close()
	gateway.Sandbox = true

	response, err := gateway.PostOrder(model.OrderRequest{
		OrderId:   "client-1",
		Figi:      "BBG004730N88",
		Quantity:  10,
		Direction: model.OrderDirectionBuy,
		AccountId: "account-1",
		OrderType: model.OrderTypeMarket,
	})

	assertion := assert.New(t)
	assertion.Nil(err)
	assertion.Equal("broker-1", response.OrderId)
	assertion.Equal("/tinkoff.public.invest.api.contract.v1.SandboxService/PostSandboxOrder", requestedPath)
	assertion.Equal("client-1", decoded.OrderId)
	assertion.Equal(int64(10), decoded.Quantity)
}

func TestGetAccountsLiveRouting(t *testing.T) {
	var requestedPath string

	gateway, server := newTestClient(func(w http.ResponseWriter, req *http.Request) {
		requestedPath = req.URL.Path

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"accounts": []map[string]string{
				{"id": "account-1", "name": "main"},
			},
		})
	})
	defer server.Close()

	accounts, err := gateway.GetAccounts()

	assertion := assert.New(t)
	assertion.Nil(err)
	assertion.Len(accounts, 1)
	assertion.Equal("account-1", accounts[0].Id)
	assertion.Equal("/tinkoff.public.invest.api.contract.v1.UsersService/GetAccounts", requestedPath)
}

func TestGetOrderStateParsing(t *testing.T) {
	gateway, server := newTestClient(func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"orderId":               "broker-1",
			"figi":                  "BBG004730N88",
			"direction":             model.OrderDirectionSell,
			"executionReportStatus": model.OrderStatusFill,
			"lotsRequested":         "7",
			"lotsExecuted":          "7",
			"totalOrderAmount": map[string]interface{}{
				"currency": "rub",
				"units":    "770",
				"nano":     0,
			},
		})
	})
	defer server.Close()

	state, err := gateway.GetOrderState("account-1", "broker-1")

	assertion := assert.New(t)
	assertion.Nil(err)
	assertion.Equal(model.OrderStatusFill, state.ExecutionReportStatus)
	assertion.Equal(int64(7), state.LotsRequested)
	assertion.Equal(770.0, state.TotalOrderAmount.ToFloat())
	assertion.True(state.IsFinal())
}

func TestApiErrorIsSurfaced(t *testing.T) {
	gateway, server := newTestClient(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    8,
			"message": "request limit exceeded",
		})
	})
	defer server.Close()

	_, err := gateway.GetLastPrice("BBG004730N88")

	assertion := assert.New(t)
	assertion.NotNil(err)
	assertion.Contains(err.Error(), "request limit exceeded")
}

func TestGetHistoricalCandlesPagesByDay(t *testing.T) {
	requests := 0

	gateway, server := newTestClient(func(w http.ResponseWriter, req *http.Request) {
		requests++

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candles": []map[string]interface{}{
				{
					"close":      map[string]interface{}{"units": "100", "nano": 0},
					"volume":     "12",
					"isComplete": true,
				},
			},
		})
	})
	defer server.Close()

	to := time.Now()
	from := to.Add(-time.Hour * 24 * 3)

	candles, err := gateway.GetHistoricalCandles("BBG004730N88", from, to)

	assertion := assert.New(t)
	assertion.Nil(err)
	assertion.Equal(3, requests)
	assertion.Len(candles, 3)
	assertion.Equal(100.0, candles[0].Close.ToFloat())
}

func TestParseStreamCandle(t *testing.T) {
	assertion := assert.New(t)

	candle := ParseStreamCandle([]byte(`{
		"event": "candle",
		"payload": {"figi": "BBG004730N88", "interval": "1min", "o": 101.2, "c": 102.5, "h": 103.0, "l": 100.9, "v": 120}
	}`))

	assertion.NotNil(candle)
	assertion.Equal("BBG004730N88", candle.Figi)
	assertion.Equal(102.5, candle.Close)

	assertion.Nil(ParseStreamCandle([]byte(`{"event": "ping"}`)))
	assertion.Nil(ParseStreamCandle([]byte(`not json`)))
}
