package model

import (
	"github.com/shopspring/decimal"
)

// Quotation is the broker's fixed-point price: integer units plus
// nano fractional part, nano in [-999999999, 999999999]. Units and
// Nano carry the same sign for negative values.
type Quotation struct {
	Units int64 `json:"units,string"`
	Nano  int32 `json:"nano"`
}

func (q Quotation) ToFloat() float64 {
	return float64(q.Units) + float64(q.Nano)/1e9
}

func (q Quotation) IsZero() bool {
	return q.Units == 0 && q.Nano == 0
}

var nanoFactor = decimal.NewFromInt(1e9)

// QuotationFromFloat splits at the decimal boundary. The fractional
// part goes through decimal so values with up to nine fractional
// digits survive the round trip exactly.
func QuotationFromFloat(value float64) Quotation {
	d := decimal.NewFromFloat(value)
	units := d.IntPart()
	nano := d.Sub(decimal.NewFromInt(units)).Mul(nanoFactor).Round(0).IntPart()

	// rounding the fractional part can carry into the next unit
	if nano >= 1e9 {
		units++
		nano -= 1e9
	} else if nano <= -1e9 {
		units--
		nano += 1e9
	}

	return Quotation{Units: units, Nano: int32(nano)}
}

// MoneyValue is a Quotation with a currency attached.
type MoneyValue struct {
	Currency string `json:"currency"`
	Units    int64  `json:"units,string"`
	Nano     int32  `json:"nano"`
}

func (m MoneyValue) ToFloat() float64 {
	return float64(m.Units) + float64(m.Nano)/1e9
}
