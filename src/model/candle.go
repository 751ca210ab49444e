package model

import (
	"time"
)

const CandleInterval1Min = "CANDLE_INTERVAL_1_MIN"

type Candle struct {
	Open       Quotation `json:"open"`
	Close      Quotation `json:"close"`
	High       Quotation `json:"high"`
	Low        Quotation `json:"low"`
	Volume     int64     `json:"volume,string"`
	Time       time.Time `json:"time"`
	IsComplete bool      `json:"isComplete"`
}

type LastPrice struct {
	Figi  string    `json:"figi"`
	Price Quotation `json:"price"`
	Time  time.Time `json:"time"`
}

type TradingStatus struct {
	Figi                     string `json:"figi"`
	TradingStatus            string `json:"tradingStatus"`
	MarketOrderAvailableFlag bool   `json:"marketOrderAvailableFlag"`
	ApiTradeAvailableFlag    bool   `json:"apiTradeAvailableFlag"`
}

func (t *TradingStatus) IsTradingAvailable() bool {
	return t.MarketOrderAvailableFlag && t.ApiTradeAvailableFlag
}
