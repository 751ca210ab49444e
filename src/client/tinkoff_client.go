package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitlab.com/open-soft/go-invest-bot/src/model"
)

type MarketDataAPIInterface interface {
	GetHistoricalCandles(figi string, from time.Time, to time.Time) ([]model.Candle, error)
	GetLastPrice(figi string) (float64, error)
	GetTradingStatus(figi string) (model.TradingStatus, error)
}

type TradingAPIInterface interface {
	GetAccounts() ([]model.Account, error)
	GetOrders(accountId string) ([]model.OrderState, error)
	GetPortfolio(accountId string) ([]model.Position, error)
	PostOrder(request model.OrderRequest) (model.PostOrderResponse, error)
}

type OrderStateAPIInterface interface {
	GetOrderState(accountId string, orderId string) (model.OrderState, error)
}

const apiContract = "tinkoff.public.invest.api.contract.v1"

// TinkoffClient talks to the Invest API REST surface, one JSON POST per
// service method. Sandbox mode reroutes account, portfolio and order calls
// to the SandboxService; market data is shared between both environments.
type TinkoffClient struct {
	Token          string
	Sandbox        bool
	DestinationURI string // https://invest-public-api.tinkoff.ru/rest
	HttpClient     *http.Client
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *TinkoffClient) post(service string, method string, request interface{}, response interface{}) error {
	encoded, err := json.Marshal(request)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s.%s/%s", c.DestinationURI, apiContract, service, method)
	req, err := http.NewRequest("POST", url, bytes.NewReader(encoded))
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.HttpClient.Do(req)
	if err != nil {
		return err
	}

	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode != 200 {
		var details apiError
		if err = json.Unmarshal(body, &details); err == nil && details.Message != "" {
			return errors.New(fmt.Sprintf("%s/%s: [%d] %s", service, method, details.Code, details.Message))
		}

		return errors.New(fmt.Sprintf("%s/%s: http %d", service, method, res.StatusCode))
	}

	return json.Unmarshal(body, response)
}

func (c *TinkoffClient) GetAccounts() ([]model.Account, error) {
	var response struct {
		Accounts []model.Account `json:"accounts"`
	}

	var err error
	if c.Sandbox {
		err = c.post("SandboxService", "GetSandboxAccounts", struct{}{}, &response)
	} else {
		err = c.post("UsersService", "GetAccounts", struct{}{}, &response)
	}

	if err != nil {
		return nil, err
	}

	return response.Accounts, nil
}

func (c *TinkoffClient) GetOrders(accountId string) ([]model.OrderState, error) {
	request := struct {
		AccountId string `json:"accountId"`
	}{accountId}

	var response struct {
		Orders []model.OrderState `json:"orders"`
	}

	var err error
	if c.Sandbox {
		err = c.post("SandboxService", "GetSandboxOrders", request, &response)
	} else {
		err = c.post("OrdersService", "GetOrders", request, &response)
	}

	if err != nil {
		return nil, err
	}

	return response.Orders, nil
}

func (c *TinkoffClient) GetPortfolio(accountId string) ([]model.Position, error) {
	request := struct {
		AccountId string `json:"accountId"`
	}{accountId}

	var response struct {
		Positions []model.Position `json:"positions"`
	}

	var err error
	if c.Sandbox {
		err = c.post("SandboxService", "GetSandboxPortfolio", request, &response)
	} else {
		err = c.post("OperationsService", "GetPortfolio", request, &response)
	}

	if err != nil {
		return nil, err
	}

	return response.Positions, nil
}

// GetHistoricalCandles pages the minute-candle endpoint in one-day windows,
// the REST call does not serve longer ranges at this granularity.
func (c *TinkoffClient) GetHistoricalCandles(figi string, from time.Time, to time.Time) ([]model.Candle, error) {
	candles := make([]model.Candle, 0)

	for windowStart := from; windowStart.Before(to); windowStart = windowStart.Add(time.Hour * 24) {
		windowEnd := windowStart.Add(time.Hour * 24)
		if windowEnd.After(to) {
			windowEnd = to
		}

		request := struct {
			Figi     string `json:"figi"`
			From     string `json:"from"`
			To       string `json:"to"`
			Interval string `json:"interval"`
		}{figi, windowStart.Format(time.RFC3339), windowEnd.Format(time.RFC3339), model.CandleInterval1Min}

		var response struct {
			Candles []model.Candle `json:"candles"`
		}

		if err := c.post("MarketDataService", "GetCandles", request, &response); err != nil {
			return nil, err
		}

		candles = append(candles, response.Candles...)
	}

	return candles, nil
}

func (c *TinkoffClient) GetLastPrice(figi string) (float64, error) {
	request := struct {
		Figi []string `json:"figi"`
	}{[]string{figi}}

	var response struct {
		LastPrices []model.LastPrice `json:"lastPrices"`
	}

	if err := c.post("MarketDataService", "GetLastPrices", request, &response); err != nil {
		return 0.00, err
	}

	if len(response.LastPrices) == 0 {
		return 0.00, errors.New(fmt.Sprintf("no last price for %s", figi))
	}

	return response.LastPrices[len(response.LastPrices)-1].Price.ToFloat(), nil
}

func (c *TinkoffClient) GetTradingStatus(figi string) (model.TradingStatus, error) {
	request := struct {
		Figi string `json:"figi"`
	}{figi}

	var response model.TradingStatus

	if err := c.post("MarketDataService", "GetTradingStatus", request, &response); err != nil {
		return model.TradingStatus{}, err
	}

	return response, nil
}

func (c *TinkoffClient) PostOrder(request model.OrderRequest) (model.PostOrderResponse, error) {
	var response model.PostOrderResponse

	var err error
	if c.Sandbox {
		err = c.post("SandboxService", "PostSandboxOrder", request, &response)
	} else {
		err = c.post("OrdersService", "PostOrder", request, &response)
	}

	if err != nil {
		return model.PostOrderResponse{}, err
	}

	return response, nil
}

func (c *TinkoffClient) GetOrderState(accountId string, orderId string) (model.OrderState, error) {
	request := struct {
		AccountId string `json:"accountId"`
		OrderId   string `json:"orderId"`
	}{accountId, orderId}

	var response model.OrderState

	var err error
	if c.Sandbox {
		err = c.post("SandboxService", "GetSandboxOrderState", request, &response)
	} else {
		err = c.post("OrdersService", "GetOrderState", request, &response)
	}

	if err != nil {
		return model.OrderState{}, err
	}

	return response, nil
}
