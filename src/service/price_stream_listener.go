package service

import (
	"gitlab.com/open-soft/go-invest-bot/src/client"
	"gitlab.com/open-soft/go-invest-bot/src/repository"
)

// PriceStreamListener drains the market-data websocket and keeps the
// last-price cache warm so strategies rarely need the REST fallback.
type PriceStreamListener struct {
	Channel     chan []byte
	PriceWriter repository.LastPriceWriterInterface
}

func (l *PriceStreamListener) Listen() {
	go func() {
		for message := range l.Channel {
			candle := client.ParseStreamCandle(message)
			if candle == nil || candle.Close <= 0 {
				continue
			}

			l.PriceWriter.SetLastPrice(candle.Figi, candle.Close)
		}
	}()
}
