package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gitlab.com/open-soft/go-invest-bot/src/model"
	"gitlab.com/open-soft/go-invest-bot/src/repository"
)

// StatsController serves the order journal to the reporting side,
// optionally filtered by instrument.
type StatsController struct {
	OrderRepository repository.OrderListReaderInterface
}

func (s *StatsController) GetOrderListAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	if req.Method != "GET" {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)

		return
	}

	figi := req.URL.Query().Get("figi")

	var list []model.Order
	if figi != "" {
		list = s.OrderRepository.GetListByFigi(figi)
	} else {
		list = s.OrderRepository.GetList()
	}

	encoded, _ := json.Marshal(list)
	fmt.Fprintf(w, string(encoded))
}
