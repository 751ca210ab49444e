package model

type Account struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Type   string `json:"type"`
}

type Position struct {
	Figi                 string     `json:"figi"`
	InstrumentType       string     `json:"instrumentType"`
	Quantity             Quotation  `json:"quantity"`
	AveragePositionPrice MoneyValue `json:"averagePositionPrice"`
}

func (p *Position) GetQuantity() int64 {
	return int64(p.Quantity.ToFloat())
}

// GetPosition finds the portfolio position by instrument id, nil when the
// instrument is not held.
func GetPosition(positions []Position, figi string) *Position {
	for index, position := range positions {
		if position.Figi == figi {
			return &positions[index]
		}
	}

	return nil
}

// HasOrder reports whether any of the orders belongs to the instrument.
func HasOrder(orders []OrderState, figi string) bool {
	for _, order := range orders {
		if order.Figi == figi {
			return true
		}
	}

	return false
}
