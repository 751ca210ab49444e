package repository

import (
	"database/sql"
	"log"
	"time"

	"gitlab.com/open-soft/go-invest-bot/src/model"
)

type OrderStorageInterface interface {
	Create(order model.Order) error
	UpdateStatus(orderId string, status string) error
}

type OrderListReaderInterface interface {
	GetList() []model.Order
	GetListByFigi(figi string) []model.Order
}

// OrderRepository is the order ledger: append-only rows keyed by the
// client-generated order id, status rewritten once on the terminal state.
// Works against mysql in deployment and the pure-Go sqlite driver locally,
// every write is a single statement so concurrent trackers need no locks.
type OrderRepository struct {
	DB *sql.DB
}

func (repo *OrderRepository) InitSchema(driver string) error {
	_, err := repo.DB.Exec(`
		CREATE TABLE IF NOT EXISTS orders (
			order_id VARCHAR(64) NOT NULL PRIMARY KEY,
			figi VARCHAR(32) NOT NULL,
			direction VARCHAR(32) NOT NULL,
			price DOUBLE NOT NULL,
			quantity BIGINT NOT NULL,
			status VARCHAR(64) NOT NULL,
			created_at VARCHAR(32) NOT NULL
		)
	`)

	if err != nil {
		return err
	}

	// mysql has no CREATE INDEX IF NOT EXISTS
	if driver == "sqlite" {
		_, err = repo.DB.Exec(`CREATE INDEX IF NOT EXISTS orders_figi ON orders (figi)`)
		return err
	}

	_, _ = repo.DB.Exec(`CREATE INDEX orders_figi ON orders (figi)`)

	return nil
}

func (repo *OrderRepository) Create(order model.Order) error {
	createdAt := order.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().Format("2006-01-02 15:04:05")
	}

	_, err := repo.DB.Exec(`
		INSERT INTO orders (order_id, figi, direction, price, quantity, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.OrderId,
		order.Figi,
		order.Direction,
		order.Price,
		order.Quantity,
		order.Status,
		createdAt,
	)

	return err
}

func (repo *OrderRepository) UpdateStatus(orderId string, status string) error {
	_, err := repo.DB.Exec(`UPDATE orders SET status = ? WHERE order_id = ?`, status, orderId)

	return err
}

func (repo *OrderRepository) GetList() []model.Order {
	return repo.selectList(`
		SELECT order_id, figi, direction, price, quantity, status, created_at
		FROM orders ORDER BY created_at`,
	)
}

func (repo *OrderRepository) GetListByFigi(figi string) []model.Order {
	return repo.selectList(`
		SELECT order_id, figi, direction, price, quantity, status, created_at
		FROM orders WHERE figi = ? ORDER BY created_at`,
		figi,
	)
}

func (repo *OrderRepository) selectList(query string, args ...interface{}) []model.Order {
	list := make([]model.Order, 0)

	res, err := repo.DB.Query(query, args...)
	if err != nil {
		log.Println(err)
		return list
	}

	defer res.Close()

	for res.Next() {
		var order model.Order
		err := res.Scan(
			&order.OrderId,
			&order.Figi,
			&order.Direction,
			&order.Price,
			&order.Quantity,
			&order.Status,
			&order.CreatedAt,
		)

		if err != nil {
			log.Println(err)
			continue
		}

		list = append(list, order)
	}

	return list
}
