package strategy

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"gitlab.com/open-soft/go-invest-bot/src/client"
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"gitlab.com/open-soft/go-invest-bot/src/repository"
	"gitlab.com/open-soft/go-invest-bot/src/service"
	"gitlab.com/open-soft/go-invest-bot/src/utils"
)

// IntervalStrategyConfig is immutable after construction.
type IntervalStrategyConfig struct {
	IntervalSize       float64
	DaysBackToConsider int
	CheckInterval      int
	StopLossPercentage float64
	QuantityLimit      int64
}

// IntervalStrategy trades one instrument against a percentile corridor of
// recent closes: sell the position when the price crosses the top border,
// buy up to the quantity limit when it crosses the bottom one. Runs forever
// once the account is resolved, any mid-cycle error skips the iteration.
type IntervalStrategy struct {
	Figi   string
	Config IntervalStrategyConfig

	TradingAPI client.TradingAPIInterface
	MarketData repository.MarketDataRepositoryInterface
	Tracker    service.OrderTrackerInterface

	AccountId string
	Corridor  *model.Corridor

	MarketOpenBackoff time.Duration
}

func (s *IntervalStrategy) GetFigi() string {
	return s.Figi
}

func (s *IntervalStrategy) Start() {
	accountId, err := s.resolveAccount()
	if err != nil {
		log.Printf("[%s] Account resolution failed: %s. Strategy is not started.", s.Figi, err.Error())
		return
	}

	s.AccountId = accountId
	log.Printf("[%s] Trading on account %s", s.Figi, s.AccountId)

	for {
		s.ProcessCycle()
		time.Sleep(time.Duration(s.Config.CheckInterval) * time.Second)
	}
}

func (s *IntervalStrategy) resolveAccount() (string, error) {
	accounts, err := s.TradingAPI.GetAccounts()
	if err != nil {
		return "", err
	}

	if len(accounts) == 0 {
		return "", errors.New("no accounts available")
	}

	return accounts[len(accounts)-1].Id, nil
}

// ProcessCycle is one decision iteration, everything between two sleeps.
func (s *IntervalStrategy) ProcessCycle() {
	s.awaitMarketOpen()

	if err := s.UpdateCorridor(); err != nil {
		log.Printf("[%s] Corridor update failed: %s", s.Figi, err.Error())
		return
	}

	if s.Corridor == nil {
		return
	}

	orders, err := s.TradingAPI.GetOrders(s.AccountId)
	if err != nil {
		log.Printf("[%s] Orders check failed: %s", s.Figi, err.Error())
		return
	}

	if model.HasOrder(orders, s.Figi) {
		log.Printf("[%s] There are orders in progress. Waiting.", s.Figi)
		return
	}

	lastPrice, err := s.MarketData.GetLastPrice(s.Figi)
	if err != nil {
		log.Printf("[%s] Last price fetch failed: %s", s.Figi, err.Error())
		return
	}

	stopLossTriggered, err := s.CheckStopLoss(lastPrice)
	if err != nil {
		log.Printf("[%s] Stop loss check failed: %s", s.Figi, err.Error())
		return
	}

	if stopLossTriggered {
		return
	}

	if s.Corridor.IsCrossedTop(lastPrice) {
		if err = s.HandleCorridorCrossingTop(lastPrice); err != nil {
			log.Printf("[%s] Sell failed: %s", s.Figi, err.Error())
		}
	} else if s.Corridor.IsCrossedBottom(lastPrice) {
		if err = s.HandleCorridorCrossingBottom(lastPrice); err != nil {
			log.Printf("[%s] Buy failed: %s", s.Figi, err.Error())
		}
	}
}

func (s *IntervalStrategy) awaitMarketOpen() {
	for {
		status, err := s.MarketData.GetTradingStatus(s.Figi)
		if err == nil && status.IsTradingAvailable() {
			return
		}

		if err != nil {
			log.Printf("[%s] Trading status check failed: %s", s.Figi, err.Error())
		} else {
			log.Printf("[%s] Market is not open for trading. Waiting.", s.Figi)
		}

		time.Sleep(s.MarketOpenBackoff)
	}
}

// UpdateCorridor recomputes the percentile band over recent closes.
// An empty candle history keeps the previous corridor.
func (s *IntervalStrategy) UpdateCorridor() error {
	candles, err := s.MarketData.GetCandlesCached(s.Figi, s.Config.DaysBackToConsider)
	if err != nil {
		return err
	}

	if len(candles) == 0 {
		log.Printf("[%s] No historical candles, corridor is kept", s.Figi)
		return nil
	}

	values := make([]float64, 0, len(candles))
	for _, candle := range candles {
		values = append(values, candle.Close.ToFloat())
	}

	lowerPercentile := (1 - s.Config.IntervalSize) / 2 * 100

	corridor := model.Corridor{
		Bottom: utils.Percentile(values, lowerPercentile),
		Top:    utils.Percentile(values, 100-lowerPercentile),
	}

	log.Printf(
		"[%s] Corridor: [%f, %f]. daysBackToConsider=%d",
		s.Figi,
		corridor.Bottom,
		corridor.Top,
		s.Config.DaysBackToConsider,
	)
	s.Corridor = &corridor

	return nil
}

// CheckStopLoss liquidates the whole position once the price moves past
// the configured percentage from the average entry price. The comparison
// direction is kept from the deployed behavior: it fires on a price RISE
// above the entry, which exits with a profit rather than cutting a loss.
func (s *IntervalStrategy) CheckStopLoss(lastPrice float64) (bool, error) {
	position, err := s.getPosition()
	if err != nil {
		return false, err
	}

	if position == nil || position.GetQuantity() <= 0 {
		return false, nil
	}

	averagePrice := position.AveragePositionPrice.ToFloat()
	if averagePrice <= 0 {
		return false, nil
	}

	threshold := averagePrice * (1 + s.Config.StopLossPercentage)
	if lastPrice < threshold {
		return false, nil
	}

	log.Printf(
		"[%s] Stop loss triggered: last price %f passed %f (average %f). Selling %d lots.",
		s.Figi,
		lastPrice,
		threshold,
		averagePrice,
		position.GetQuantity(),
	)

	return true, s.placeOrder(model.OrderDirectionSell, position.GetQuantity(), lastPrice)
}

func (s *IntervalStrategy) HandleCorridorCrossingTop(lastPrice float64) error {
	log.Printf("[%s] Last price %f is higher than the top corridor border %f", s.Figi, lastPrice, s.Corridor.Top)

	position, err := s.getPosition()
	if err != nil {
		return err
	}

	if position == nil || position.GetQuantity() <= 0 {
		return nil
	}

	quantityToSell := position.GetQuantity()
	if quantityToSell > s.Config.QuantityLimit {
		quantityToSell = s.Config.QuantityLimit
	}

	if quantityToSell <= 0 {
		return nil
	}

	log.Printf("[%s] Selling %d lots. Last price=%f", s.Figi, quantityToSell, lastPrice)

	return s.placeOrder(model.OrderDirectionSell, quantityToSell, lastPrice)
}

func (s *IntervalStrategy) HandleCorridorCrossingBottom(lastPrice float64) error {
	log.Printf("[%s] Last price %f is lower than the bottom corridor border %f", s.Figi, lastPrice, s.Corridor.Bottom)

	position, err := s.getPosition()
	if err != nil {
		return err
	}

	positionQuantity := int64(0)
	if position != nil {
		positionQuantity = position.GetQuantity()
	}

	if positionQuantity >= s.Config.QuantityLimit {
		return nil
	}

	quantityToBuy := s.Config.QuantityLimit - positionQuantity

	log.Printf("[%s] Buying %d lots. Last price=%f", s.Figi, quantityToBuy, lastPrice)

	return s.placeOrder(model.OrderDirectionBuy, quantityToBuy, lastPrice)
}

func (s *IntervalStrategy) getPosition() (*model.Position, error) {
	positions, err := s.TradingAPI.GetPortfolio(s.AccountId)
	if err != nil {
		return nil, err
	}

	return model.GetPosition(positions, s.Figi), nil
}

func (s *IntervalStrategy) placeOrder(direction string, quantity int64, lastPrice float64) error {
	orderId := uuid.New().String()

	response, err := s.TradingAPI.PostOrder(model.OrderRequest{
		OrderId:   orderId,
		Figi:      s.Figi,
		Quantity:  quantity,
		Direction: direction,
		AccountId: s.AccountId,
		OrderType: model.OrderTypeMarket,
	})

	if err != nil {
		return err
	}

	if response.OrderId != "" {
		orderId = response.OrderId
	}

	s.Tracker.Track(service.TrackedOrder{
		AccountId: s.AccountId,
		OrderId:   orderId,
		Figi:      s.Figi,
		Direction: direction,
		Price:     lastPrice,
		Quantity:  quantity,
	})

	return nil
}
