package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderCompleted OrderStatus = "Completed"
)

type Order struct {
	ID           int64       `json:"id"`
	UserID       uuid.UUID   `json:"userid"`
	CreationDate time.Time   `json:"creationdate"`
	IsPaid       bool        `json:"ispaid"`
	Status       OrderStatus `json:"status"`
	Items        []OrderItem `json:"items"`
}

// Amount is the total number of units across all line items.
func (o *Order) Amount() int {
	var n int
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// TotalAmount sums quantity times the price snapshot of every line item.
// Prices are captured when an item is added, so a later catalog price
// change does not move this value.
func (o *Order) TotalAmount() float64 {
	var total float64
	for _, it := range o.Items {
		total += float64(it.Quantity) * it.Price
	}
	return total
}

// Item returns the line item for productID, or nil if the order has none.
func (o *Order) Item(productID int64) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}

type OrderItem struct {
	OrderID   int64   `json:"orderid"`
	ProductID int64   `json:"productid"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderItemInput is a (product, quantity) pair supplied by the caller when
// creating an order or updating its items.
type OrderItemInput struct {
	ProductID int64 `json:"productid"`
	Quantity  int   `json:"quantity"`
}
