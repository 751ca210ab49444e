package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPosition(t *testing.T) {
	assertion := assert.New(t)

	positions := []Position{
		{Figi: "BBG004730N88", Quantity: Quotation{Units: 10}},
		{Figi: "BBG0013HGFT4", Quantity: Quotation{Units: 3}},
	}

	position := GetPosition(positions, "BBG0013HGFT4")
	assertion.NotNil(position)
	assertion.Equal(int64(3), position.GetQuantity())

	assertion.Nil(GetPosition(positions, "BBG000000000"))
	assertion.Nil(GetPosition(nil, "BBG004730N88"))
}

func TestCorridorCrossing(t *testing.T) {
	assertion := assert.New(t)

	corridor := Corridor{Top: 109.0, Bottom: 91.0}

	assertion.True(corridor.IsCrossedTop(109.0))
	assertion.True(corridor.IsCrossedTop(120.0))
	assertion.False(corridor.IsCrossedTop(108.99))

	assertion.True(corridor.IsCrossedBottom(91.0))
	assertion.True(corridor.IsCrossedBottom(80.0))
	assertion.False(corridor.IsCrossedBottom(91.01))
}

func TestTradingStatusAvailability(t *testing.T) {
	assertion := assert.New(t)

	status := TradingStatus{MarketOrderAvailableFlag: true, ApiTradeAvailableFlag: true}
	assertion.True(status.IsTradingAvailable())

	status.MarketOrderAvailableFlag = false
	assertion.False(status.IsTradingAvailable())

	status = TradingStatus{MarketOrderAvailableFlag: true}
	assertion.False(status.IsTradingAvailable())
}
