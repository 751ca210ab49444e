package client

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type StreamEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type StreamCandle struct {
	Figi     string  `json:"figi"`
	Interval string  `json:"interval"`
	Open     float64 `json:"o"`
	Close    float64 `json:"c"`
	High     float64 `json:"h"`
	Low      float64 `json:"l"`
	Volume   float64 `json:"v"`
	Time     string  `json:"time"`
}

// StreamClient keeps a websocket subscription to the market-data stream
// and pushes raw frames into Channel. Losing the stream is harmless,
// strategies fall back to the REST last-price call.
type StreamClient struct {
	Token   string
	Figis   []string
	Channel chan []byte

	connection *websocket.Conn
}

func (s *StreamClient) Connect(address string) {
	header := http.Header{}
	header.Set("Authorization", fmt.Sprintf("Bearer %s", s.Token))

	connection, _, err := websocket.DefaultDialer.Dial(address, header)
	if err != nil {
		log.Printf("Market data WS [%s]: %s, wait and reconnect...", address, err.Error())
		time.Sleep(time.Second * 10)
		s.Connect(address)
		return
	}

	s.connection = connection

	for _, figi := range s.Figis {
		request := map[string]string{
			"event":    "candle:subscribe",
			"figi":     figi,
			"interval": "1min",
		}
		serialized, _ := json.Marshal(request)

		if err = connection.WriteMessage(websocket.TextMessage, serialized); err != nil {
			log.Printf("Market data WS: subscribe %s failed: %s", figi, err.Error())
		}
	}

	// reader channel
	go func() {
		for {
			_, message, err := connection.ReadMessage()
			if err != nil {
				log.Println("read: ", err)

				_ = connection.Close()
				log.Printf("Market data WS, wait and reconnect...")
				time.Sleep(time.Second * 10)
				s.Connect(address)
				return
			}

			s.Channel <- message
		}
	}()
}

// ParseStreamCandle decodes a raw frame, nil when the frame is not a
// candle event.
func ParseStreamCandle(message []byte) *StreamCandle {
	var event StreamEvent
	if err := json.Unmarshal(message, &event); err != nil {
		return nil
	}

	if event.Event != "candle" {
		return nil
	}

	var candle StreamCandle
	if err := json.Unmarshal(event.Payload, &candle); err != nil {
		return nil
	}

	return &candle
}
