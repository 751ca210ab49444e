package strategy

import (
	"github.com/stretchr/testify/mock"

	"gitlab.com/open-soft/go-invest-bot/src/model"
	"gitlab.com/open-soft/go-invest-bot/src/service"
)

type TradingAPIMock struct {
	mock.Mock
}

func (m *TradingAPIMock) GetAccounts() ([]model.Account, error) {
	args := m.Called()
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *TradingAPIMock) GetOrders(accountId string) ([]model.OrderState, error) {
	args := m.Called(accountId)
	return args.Get(0).([]model.OrderState), args.Error(1)
}

func (m *TradingAPIMock) GetPortfolio(accountId string) ([]model.Position, error) {
	args := m.Called(accountId)
	return args.Get(0).([]model.Position), args.Error(1)
}

func (m *TradingAPIMock) PostOrder(request model.OrderRequest) (model.PostOrderResponse, error) {
	args := m.Called(request)
	return args.Get(0).(model.PostOrderResponse), args.Error(1)
}

type MarketDataMock struct {
	mock.Mock
}

func (m *MarketDataMock) GetCandlesCached(figi string, daysBack int) ([]model.Candle, error) {
	args := m.Called(figi, daysBack)
	return args.Get(0).([]model.Candle), args.Error(1)
}

func (m *MarketDataMock) GetLastPrice(figi string) (float64, error) {
	args := m.Called(figi)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MarketDataMock) GetTradingStatus(figi string) (model.TradingStatus, error) {
	args := m.Called(figi)
	return args.Get(0).(model.TradingStatus), args.Error(1)
}

type TrackerMock struct {
	mock.Mock
	TrackedOrders []service.TrackedOrder
}

func (m *TrackerMock) Track(order service.TrackedOrder) bool {
	m.TrackedOrders = append(m.TrackedOrders, order)
	args := m.Called(order)
	return args.Bool(0)
}
