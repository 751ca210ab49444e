package service

import (
	"log"
	"sync"
)

type RunnableStrategyInterface interface {
	Start()
	GetFigi() string
}

// StrategySupervisor runs one goroutine per configured strategy and keeps
// them independent: a strategy that stops takes nothing else down with it.
type StrategySupervisor struct {
	Tracker *OrderTracker

	waitGroup sync.WaitGroup
}

func (s *StrategySupervisor) Supervise(strategies []RunnableStrategyInterface) {
	if s.Tracker != nil && s.Tracker.Completed != nil {
		go func() {
			for order := range s.Tracker.Completed {
				log.Printf("[%s] Tracking finished for order %s", order.Figi, order.OrderId)
			}
		}()
	}

	for _, item := range strategies {
		s.waitGroup.Add(1)

		go func(runnable RunnableStrategyInterface) {
			defer s.waitGroup.Done()

			runnable.Start()
			log.Printf("[%s] Strategy stopped", runnable.GetFigi())
		}(item)
	}
}

func (s *StrategySupervisor) Wait() {
	s.waitGroup.Wait()
}
