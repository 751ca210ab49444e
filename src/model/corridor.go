package model

// Corridor is the price band a strategy trades against, Top >= Bottom.
// A strategy instance is the only writer of its corridor, readers see
// an immutable snapshot between updates.
type Corridor struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

func (c *Corridor) IsCrossedTop(price float64) bool {
	return price >= c.Top
}

func (c *Corridor) IsCrossedBottom(price float64) bool {
	return price <= c.Bottom
}
