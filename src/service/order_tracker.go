package service

import (
	"log"
	"time"

	"gitlab.com/open-soft/go-invest-bot/src/client"
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"gitlab.com/open-soft/go-invest-bot/src/repository"
)

type OrderTrackerInterface interface {
	Track(order TrackedOrder) bool
}

// TrackedOrder carries the attributes known at submission time, used to
// fill the first ledger write when the gateway omits them.
type TrackedOrder struct {
	AccountId string
	OrderId   string
	Figi      string
	Direction string
	Price     float64
	Quantity  int64
}

// OrderTracker follows submitted orders to a terminal status on a worker
// pool so a slow settlement never delays the strategy that placed the order.
// Every order gets at most MaxPolls status reads, an order that never
// settles is dropped with a log line and its ledger row keeps the last
// status seen.
type OrderTracker struct {
	OrderStateAPI   client.OrderStateAPIInterface
	OrderRepository repository.OrderStorageInterface

	Queue     chan TrackedOrder
	Completed chan TrackedOrder

	PollInterval time.Duration
	MaxPolls     int
}

func (t *OrderTracker) StartWorkers(count int) {
	for i := 0; i < count; i++ {
		go func() {
			for order := range t.Queue {
				t.track(order)
			}
		}()
	}
}

// Track enqueues and returns immediately. A full queue drops the order:
// the ledger loses one entry, the trading loop stays on its clock.
func (t *OrderTracker) Track(order TrackedOrder) bool {
	select {
	case t.Queue <- order:
		return true
	default:
		log.Printf("[%s] Order %s is not tracked: tracker queue is full", order.Figi, order.OrderId)
		return false
	}
}

func (t *OrderTracker) track(order TrackedOrder) {
	state, err := t.OrderStateAPI.GetOrderState(order.AccountId, order.OrderId)
	if err != nil {
		// first read failed: abandon, no ledger entry
		log.Printf("[%s] Order %s: initial state read failed: %s", order.Figi, order.OrderId, err.Error())
		return
	}

	if err = t.OrderRepository.Create(t.buildRecord(order, state)); err != nil {
		log.Printf("[%s] Order %s is not recorded: %s", order.Figi, order.OrderId, err.Error())
	}

	polls := 0

	for !state.IsFinal() {
		if polls >= t.MaxPolls {
			log.Printf(
				"[%s] Order %s did not reach a final status within %d polls, tracking stopped",
				order.Figi,
				order.OrderId,
				t.MaxPolls,
			)
			t.notify(order)

			return
		}

		time.Sleep(t.PollInterval)
		polls++

		next, err := t.OrderStateAPI.GetOrderState(order.AccountId, order.OrderId)
		if err != nil {
			log.Printf("[%s] Order %s state poll failed: %s", order.Figi, order.OrderId, err.Error())
			continue
		}

		state = next
	}

	if err = t.OrderRepository.UpdateStatus(order.OrderId, state.ExecutionReportStatus); err != nil {
		log.Printf("[%s] Order %s status is not updated: %s", order.Figi, order.OrderId, err.Error())
	} else {
		log.Printf("[%s] Order %s reached %s", order.Figi, order.OrderId, state.ExecutionReportStatus)
	}

	t.notify(order)
}

// buildRecord prefers the gateway view and falls back to the values
// captured at submission time, the sandbox omits some of them.
func (t *OrderTracker) buildRecord(order TrackedOrder, state model.OrderState) model.Order {
	record := model.Order{
		OrderId:   order.OrderId,
		Figi:      state.Figi,
		Direction: state.Direction,
		Price:     state.TotalOrderAmount.ToFloat(),
		Quantity:  state.LotsRequested,
		Status:    state.ExecutionReportStatus,
	}

	if record.Figi == "" {
		record.Figi = order.Figi
	}

	if record.Direction == "" {
		record.Direction = order.Direction
	}

	if record.Price == 0.00 {
		record.Price = order.Price
	}

	if record.Quantity == 0 {
		record.Quantity = order.Quantity
	}

	return record
}

func (t *OrderTracker) notify(order TrackedOrder) {
	if t.Completed == nil {
		return
	}

	select {
	case t.Completed <- order:
	default:
	}
}
