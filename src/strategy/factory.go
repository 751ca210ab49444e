package strategy

import (
	"errors"
	"fmt"
	"time"

	"gitlab.com/open-soft/go-invest-bot/src/client"
	"gitlab.com/open-soft/go-invest-bot/src/repository"
	"gitlab.com/open-soft/go-invest-bot/src/service"
)

type StrategyName string

const StrategyNameInterval StrategyName = "interval"

type UnsupportedStrategyError struct {
	StrategyName StrategyName
}

func (e *UnsupportedStrategyError) Error() string {
	return fmt.Sprintf("strategy %s is not supported", e.StrategyName)
}

// StrategyFactory builds strategy instances from config, the set of
// strategy names is closed.
type StrategyFactory struct {
	TradingAPI client.TradingAPIInterface
	MarketData repository.MarketDataRepositoryInterface
	Tracker    service.OrderTrackerInterface
}

func (f *StrategyFactory) Create(name StrategyName, figi string, config IntervalStrategyConfig) (service.RunnableStrategyInterface, error) {
	if figi == "" {
		return nil, errors.New("instrument figi is empty")
	}

	switch name {
	case StrategyNameInterval:
		return &IntervalStrategy{
			Figi:              figi,
			Config:            config,
			TradingAPI:        f.TradingAPI,
			MarketData:        f.MarketData,
			Tracker:           f.Tracker,
			MarketOpenBackoff: time.Minute,
		}, nil
	}

	return nil, &UnsupportedStrategyError{StrategyName: name}
}
