package model

const OrderDirectionBuy = "ORDER_DIRECTION_BUY"
const OrderDirectionSell = "ORDER_DIRECTION_SELL"

const OrderTypeMarket = "ORDER_TYPE_MARKET"

const OrderStatusNew = "EXECUTION_REPORT_STATUS_NEW"
const OrderStatusPartiallyFill = "EXECUTION_REPORT_STATUS_PARTIALLYFILL"
const OrderStatusFill = "EXECUTION_REPORT_STATUS_FILL"
const OrderStatusRejected = "EXECUTION_REPORT_STATUS_REJECTED"
const OrderStatusCancelled = "EXECUTION_REPORT_STATUS_CANCELLED"

// Order is a ledger row: one submitted order and its last known status.
type Order struct {
	OrderId   string  `json:"orderId"`
	Figi      string  `json:"figi"`
	Direction string  `json:"direction"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

func (o *Order) IsFinal() bool {
	return IsFinalStatus(o.Status)
}

func IsFinalStatus(status string) bool {
	switch status {
	case OrderStatusFill, OrderStatusRejected, OrderStatusCancelled:
		return true
	}

	return false
}

// OrderState is the gateway's view of an order.
type OrderState struct {
	OrderId               string     `json:"orderId"`
	Figi                  string     `json:"figi"`
	Direction             string     `json:"direction"`
	ExecutionReportStatus string     `json:"executionReportStatus"`
	LotsRequested         int64      `json:"lotsRequested,string"`
	LotsExecuted          int64      `json:"lotsExecuted,string"`
	TotalOrderAmount      MoneyValue `json:"totalOrderAmount"`
}

func (o *OrderState) IsFinal() bool {
	return IsFinalStatus(o.ExecutionReportStatus)
}

type OrderRequest struct {
	OrderId   string `json:"orderId"`
	Figi      string `json:"figi"`
	Quantity  int64  `json:"quantity,string"`
	Direction string `json:"direction"`
	AccountId string `json:"accountId"`
	OrderType string `json:"orderType"`
}

type PostOrderResponse struct {
	OrderId               string `json:"orderId"`
	ExecutionReportStatus string `json:"executionReportStatus"`
}
