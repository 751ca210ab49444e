package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	InvestClient "gitlab.com/open-soft/go-invest-bot/src/client"
	"gitlab.com/open-soft/go-invest-bot/src/config"
	"gitlab.com/open-soft/go-invest-bot/src/controller"
	"gitlab.com/open-soft/go-invest-bot/src/repository"
	"gitlab.com/open-soft/go-invest-bot/src/service"
	"gitlab.com/open-soft/go-invest-bot/src/strategy"
)

func main() {
	pwd, _ := os.Getwd()
	if _, err := os.Stat(fmt.Sprintf("%s/.env", pwd)); err == nil {
		log.Println(".env is found, loading variables...")
		err = godotenv.Load()
		if err != nil {
			log.Println(err)
		}
	}

	instrumentsFile := os.Getenv("INSTRUMENTS_CONFIG")
	if instrumentsFile == "" {
		instrumentsFile = "instruments_config.json"
	}

	instruments, err := config.GetInstruments(instrumentsFile)
	if err != nil {
		log.Fatal(fmt.Sprintf("Instruments config: %s", err.Error()))
	}

	driver := os.Getenv("DATABASE_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}

	dsn := os.Getenv("DATABASE_DSN") // root:go_invest_bot@tcp(mysql:3306)/go_invest_bot or stats.db
	if dsn == "" {
		dsn = "stats.db"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Fatal(fmt.Sprintf("Database can't connect: %s", err.Error()))
	}
	defer db.Close()

	db.SetMaxIdleConns(16)
	db.SetMaxOpenConns(16)
	db.SetConnMaxLifetime(time.Minute)

	var ctx = context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_DSN"), // "redis:6379"
		Password: "",
		DB:       0,
	})

	sandbox, _ := strconv.ParseBool(os.Getenv("TINKOFF_SANDBOX"))

	httpClient := http.Client{}
	gateway := InvestClient.TinkoffClient{
		Token:          os.Getenv("TINKOFF_TOKEN"),
		Sandbox:        sandbox,
		DestinationURI: os.Getenv("TINKOFF_API_DSN"), // "https://invest-public-api.tinkoff.ru/rest"
		HttpClient:     &httpClient,
	}

	orderRepository := repository.OrderRepository{
		DB: db,
	}

	if err = orderRepository.InitSchema(driver); err != nil {
		log.Fatal(fmt.Sprintf("Orders schema: %s", err.Error()))
	}

	marketRepository := repository.MarketRepository{
		RDB:              rdb,
		Ctx:              &ctx,
		MarketDataAPI:    &gateway,
		CandleTTL:        time.Minute * 5,
		LastPriceTTL:     time.Second * 15,
		TradingStatusTTL: time.Second * 30,
	}

	trackerMaxPolls := 8640
	if value, err := strconv.Atoi(os.Getenv("ORDER_TRACKER_MAX_POLLS")); err == nil && value > 0 {
		trackerMaxPolls = value
	}

	orderTracker := service.OrderTracker{
		OrderStateAPI:   &gateway,
		OrderRepository: &orderRepository,
		Queue:           make(chan service.TrackedOrder, 128),
		Completed:       make(chan service.TrackedOrder, 128),
		PollInterval:    time.Second * 10,
		MaxPolls:        trackerMaxPolls,
	}
	orderTracker.StartWorkers(8)

	factory := strategy.StrategyFactory{
		TradingAPI: &gateway,
		MarketData: &marketRepository,
		Tracker:    &orderTracker,
	}

	strategies := make([]service.RunnableStrategyInterface, 0)
	figis := make([]string, 0)

	for _, instrument := range instruments.Instruments {
		parameters := instrument.Strategy.Parameters

		runnable, err := factory.Create(
			strategy.StrategyName(instrument.Strategy.Name),
			instrument.Figi,
			strategy.IntervalStrategyConfig{
				IntervalSize:       parameters.IntervalSize,
				DaysBackToConsider: parameters.DaysBackToConsider,
				CheckInterval:      parameters.CheckInterval,
				StopLossPercentage: parameters.StopLossPercentage,
				QuantityLimit:      parameters.QuantityLimit,
			},
		)

		if err != nil {
			log.Fatal(fmt.Sprintf("[%s] %s", instrument.Figi, err.Error()))
		}

		strategies = append(strategies, runnable)
		figis = append(figis, instrument.Figi)
	}

	if wsDsn := os.Getenv("TINKOFF_WS_DSN"); wsDsn != "" {
		stream := InvestClient.StreamClient{
			Token:   os.Getenv("TINKOFF_TOKEN"),
			Figis:   figis,
			Channel: make(chan []byte),
		}
		stream.Connect(wsDsn)

		listener := service.PriceStreamListener{
			Channel:     stream.Channel,
			PriceWriter: &marketRepository,
		}
		listener.Listen()
	}

	supervisor := service.StrategySupervisor{
		Tracker: &orderTracker,
	}
	supervisor.Supervise(strategies)

	statsController := controller.StatsController{
		OrderRepository: &orderRepository,
	}

	http.HandleFunc("/stats/orders", statsController.GetOrderListAction)

	listen := os.Getenv("HTTP_LISTEN")
	if listen == "" {
		listen = ":8090"
	}

	go func() {
		if err := http.ListenAndServe(listen, nil); err != nil {
			log.Println(err)
		}
	}()

	supervisor.Wait()
}
