package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"gitlab.com/open-soft/go-invest-bot/src/client"
	"gitlab.com/open-soft/go-invest-bot/src/model"
)

type MarketDataRepositoryInterface interface {
	GetCandlesCached(figi string, daysBack int) ([]model.Candle, error)
	GetLastPrice(figi string) (float64, error)
	GetTradingStatus(figi string) (model.TradingStatus, error)
}

type LastPriceWriterInterface interface {
	SetLastPrice(figi string, price float64)
}

// MarketRepository is a read-through cache in front of the market-data API.
// Cache failures fall back to direct calls, a dead redis never blocks trading.
type MarketRepository struct {
	RDB *redis.Client
	Ctx *context.Context

	MarketDataAPI client.MarketDataAPIInterface

	CandleTTL        time.Duration
	LastPriceTTL     time.Duration
	TradingStatusTTL time.Duration
}

func (m *MarketRepository) GetCandlesCached(figi string, daysBack int) ([]model.Candle, error) {
	cacheKey := fmt.Sprintf("historical-candles-%s-%d", figi, daysBack)

	res := m.RDB.Get(*m.Ctx, cacheKey).Val()
	if len(res) > 0 {
		var candles []model.Candle
		if err := json.Unmarshal([]byte(res), &candles); err == nil {
			return candles, nil
		}
	}

	to := time.Now()
	from := to.Add(-time.Hour * 24 * time.Duration(daysBack))

	candles, err := m.MarketDataAPI.GetHistoricalCandles(figi, from, to)
	if err != nil {
		return nil, err
	}

	if len(candles) > 0 {
		if encoded, err := json.Marshal(candles); err == nil {
			m.RDB.Set(*m.Ctx, cacheKey, string(encoded), m.CandleTTL)
		}
	}

	return candles, nil
}

func (m *MarketRepository) lastPriceCacheKey(figi string) string {
	return fmt.Sprintf("last-price-%s", figi)
}

func (m *MarketRepository) GetLastPrice(figi string) (float64, error) {
	res := m.RDB.Get(*m.Ctx, m.lastPriceCacheKey(figi)).Val()
	if len(res) > 0 {
		if price, err := strconv.ParseFloat(res, 64); err == nil && price > 0 {
			return price, nil
		}
	}

	price, err := m.MarketDataAPI.GetLastPrice(figi)
	if err != nil {
		return 0.00, err
	}

	m.SetLastPrice(figi, price)

	return price, nil
}

// SetLastPrice is fed by the websocket stream listener and by REST reads.
func (m *MarketRepository) SetLastPrice(figi string, price float64) {
	m.RDB.Set(*m.Ctx, m.lastPriceCacheKey(figi), strconv.FormatFloat(price, 'f', -1, 64), m.LastPriceTTL)
}

func (m *MarketRepository) GetTradingStatus(figi string) (model.TradingStatus, error) {
	cacheKey := fmt.Sprintf("trading-status-%s", figi)

	res := m.RDB.Get(*m.Ctx, cacheKey).Val()
	if len(res) > 0 {
		var status model.TradingStatus
		if err := json.Unmarshal([]byte(res), &status); err == nil {
			return status, nil
		}
	}

	status, err := m.MarketDataAPI.GetTradingStatus(figi)
	if err != nil {
		return model.TradingStatus{}, err
	}

	if encoded, err := json.Marshal(status); err == nil {
		m.RDB.Set(*m.Ctx, cacheKey, string(encoded), m.TradingStatusTTL)
	}

	return status, nil
}
