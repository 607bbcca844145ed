package services

import (
	"context"
	"time"

	"GameMarketAPI/internal/apperr"
	"GameMarketAPI/internal/model"
	"GameMarketAPI/internal/repository"

	"github.com/google/uuid"
)

// OrderService is the order lifecycle state machine: Pending orders have
// mutable items, a paid order is permanently immutable. All mutations
// re-read the order with a row lock and re-check IsPaid inside the same
// transaction that writes, so a late BuyItems cannot race an item update.
type OrderService struct {
	Orders  repository.OrderStore
	Catalog repository.CatalogStore
}

func NewOrderService(or repository.OrderStore, cs repository.CatalogStore) *OrderService {
	return &OrderService{Orders: or, Catalog: cs}
}

// CreateOrder builds a Pending order for the user, snapshotting each
// product's current price into the line item.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, items []model.OrderItemInput) (*model.Order, error) {
	if len(items) == 0 {
		return nil, apperr.New(apperr.InvalidData, "Order must contain at least one item.")
	}

	order := &model.Order{
		UserID:       userID,
		CreationDate: time.Now(),
		IsPaid:       false,
		Status:       model.OrderPending,
	}

	seen := make(map[int64]bool, len(items))
	for _, in := range items {
		if in.Quantity <= 0 {
			return nil, apperr.New(apperr.InvalidData, "Quantity must be greater than zero.")
		}
		if seen[in.ProductID] {
			return nil, apperr.New(apperr.InvalidData, "Order contains duplicate products.")
		}
		seen[in.ProductID] = true
		product, err := s.Catalog.GetProduct(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperr.Newf(apperr.NotFound, "Product with id %d does not exist.", in.ProductID)
		}
		order.Items = append(order.Items, model.OrderItem{
			ProductID: product.ID,
			Quantity:  in.Quantity,
			Price:     product.Price,
		})
	}

	err := s.Orders.InTx(ctx, func(tx repository.OrderStore) error {
		return tx.SaveOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrders returns the single order when orderID > 0, otherwise every
// order the user owns. A missing order and someone else's order are not
// distinguished.
func (s *OrderService) GetOrders(ctx context.Context, userID uuid.UUID, orderID int64) ([]model.Order, error) {
	if orderID > 0 {
		order, err := s.Orders.GetOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if order == nil || order.UserID != userID {
			return nil, apperr.Newf(apperr.NotFound, "Order with id %d does not exist.", orderID)
		}
		return []model.Order{*order}, nil
	}
	return s.Orders.ListOrdersForUser(ctx, userID)
}

// UpdateOrderItems overwrites (never sums) the quantity of each named line
// item already present in the order. Pairs naming a product the order does
// not contain are ignored; updates never add items. A quantity of zero or
// less drops the line, and an order emptied this way is deleted.
func (s *OrderService) UpdateOrderItems(ctx context.Context, userID uuid.UUID, orderID int64, updates []model.OrderItemInput) (*model.Order, error) {
	var updated *model.Order
	err := s.Orders.InTx(ctx, func(tx repository.OrderStore) error {
		order, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil || order.UserID != userID || order.IsPaid {
			return apperr.New(apperr.InvalidOperation, "Can not update this order.")
		}

		for _, u := range updates {
			item := order.Item(u.ProductID)
			if item == nil {
				continue
			}
			item.Quantity = u.Quantity
		}

		kept := order.Items[:0]
		for _, it := range order.Items {
			if it.Quantity > 0 {
				kept = append(kept, it)
			}
		}
		order.Items = kept

		if len(order.Items) == 0 {
			if err := tx.DeleteOrder(ctx, order); err != nil {
				return err
			}
			updated = order
			return nil
		}
		if err := tx.SaveOrder(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveOrderItems removes the named line items; ids the order does not
// contain are ignored. An order left without items is deleted outright,
// empty unpaid orders do not persist.
func (s *OrderService) RemoveOrderItems(ctx context.Context, userID uuid.UUID, orderID int64, productIDs []int64) error {
	return s.Orders.InTx(ctx, func(tx repository.OrderStore) error {
		order, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil || order.UserID != userID || order.IsPaid {
			return apperr.New(apperr.InvalidOperation, "Can not remove items from this order.")
		}

		remove := make(map[int64]bool, len(productIDs))
		for _, id := range productIDs {
			remove[id] = true
		}
		kept := order.Items[:0]
		for _, it := range order.Items {
			if !remove[it.ProductID] {
				kept = append(kept, it)
			}
		}
		order.Items = kept

		if len(order.Items) == 0 {
			return tx.DeleteOrder(ctx, order)
		}
		return tx.SaveOrder(ctx, order)
	})
}

// BuyItems finalizes the order. The transition is terminal: nothing in
// this service mutates an order once IsPaid is set.
func (s *OrderService) BuyItems(ctx context.Context, userID uuid.UUID, orderID int64) error {
	return s.Orders.InTx(ctx, func(tx repository.OrderStore) error {
		order, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil || order.UserID != userID || order.IsPaid {
			return apperr.New(apperr.InvalidOperation, "Can not complete this order.")
		}

		order.IsPaid = true
		order.Status = model.OrderCompleted
		return tx.SaveOrder(ctx, order)
	})
}
