package repository

import (
	"context"
	"errors"

	"GameMarketAPI/internal/apperr"
	"GameMarketAPI/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB pgdb
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) InTx(ctx context.Context, fn func(OrderStore) error) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return storeErr("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&OrderRepository{DB: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit tx", err)
	}
	return nil
}

// GetOrder returns the order with its line items, or (nil, nil) when no
// order has that id.
func (r *OrderRepository) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	query := `SELECT id, userid, creationdate, ispaid, status FROM orders WHERE id=$1`
	err := r.DB.QueryRow(ctx, query, id).Scan(&o.ID, &o.UserID, &o.CreationDate, &o.IsPaid, &o.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get order", err)
	}

	items, err := r.orderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// GetOrderForUpdate is GetOrder with the row locked via FOR UPDATE, so a
// concurrent finalization commits before the caller's IsPaid check runs
// rather than after it.
func (r *OrderRepository) GetOrderForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	query := `SELECT id, userid, creationdate, ispaid, status FROM orders WHERE id=$1 FOR UPDATE`
	err := r.DB.QueryRow(ctx, query, id).Scan(&o.ID, &o.UserID, &o.CreationDate, &o.IsPaid, &o.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get order for update", err)
	}

	items, err := r.orderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepository) orderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	query := `SELECT orderid, productid, quantity, price FROM order_items WHERE orderid=$1 ORDER BY productid`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, storeErr("get order items", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.OrderID, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return nil, storeErr("scan order item", err)
		}
		items = append(items, it)
	}
	return items, nil
}

// SaveOrder inserts the order when its id is zero, otherwise updates it.
// The item set is replaced wholesale so one call persists the whole batch.
// Mutating callers wrap SaveOrder in InTx: the order row and its item rows
// must land together.
func (r *OrderRepository) SaveOrder(ctx context.Context, o *model.Order) error {
	if o.ID == 0 {
		query := `INSERT INTO orders (userid, creationdate, ispaid, status) VALUES ($1, $2, $3, $4) RETURNING id`
		if err := r.DB.QueryRow(ctx, query, o.UserID, o.CreationDate, o.IsPaid, o.Status).Scan(&o.ID); err != nil {
			return storeErr("insert order", err)
		}
	} else {
		query := `UPDATE orders SET ispaid=$1, status=$2 WHERE id=$3`
		tag, err := r.DB.Exec(ctx, query, o.IsPaid, o.Status, o.ID)
		if err != nil {
			return storeErr("update order", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.Newf(apperr.NotFound, "Order with id %d does not exist.", o.ID)
		}
		if _, err := r.DB.Exec(ctx, `DELETE FROM order_items WHERE orderid=$1`, o.ID); err != nil {
			return storeErr("clear order items", err)
		}
	}

	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		it := o.Items[i]
		query := `INSERT INTO order_items (orderid, productid, quantity, price) VALUES ($1, $2, $3, $4)`
		if _, err := r.DB.Exec(ctx, query, it.OrderID, it.ProductID, it.Quantity, it.Price); err != nil {
			return storeErr("insert order item", err)
		}
	}
	return nil
}

func (r *OrderRepository) DeleteOrder(ctx context.Context, o *model.Order) error {
	// order_items cascade with the order row
	if _, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, o.ID); err != nil {
		return storeErr("delete order", err)
	}
	return nil
}

func (r *OrderRepository) ListOrdersForUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := `SELECT id, userid, creationdate, ispaid, status FROM orders WHERE userid=$1 ORDER BY id DESC`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr("list orders", err)
	}

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreationDate, &o.IsPaid, &o.Status); err != nil {
			rows.Close()
			return nil, storeErr("scan order", err)
		}
		orders = append(orders, o)
	}
	rows.Close()

	for i := range orders {
		items, err := r.orderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}
