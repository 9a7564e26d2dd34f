package entities

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyOrder rejects orders that carry no line items
var ErrEmptyOrder = errors.New("order must contain at least one line item")

// OrderID identifies a placed order
type OrderID int64

// CustomerID identifies the customer an order was placed for. It is an
// opaque reference; the ledger keeps no customer registry.
type CustomerID int64

// OrderStatus represents the fulfillment status of an order
type OrderStatus int

const (
	StatusPending OrderStatus = iota
	StatusShipped
	StatusDelivered
	StatusCancelled
)

// String method for OrderStatus enum
func (s OrderStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusShipped:
		return "Shipped"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// ParseOrderStatus converts a status name to its OrderStatus value
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "Pending":
		return StatusPending, nil
	case "Shipped":
		return StatusShipped, nil
	case "Delivered":
		return StatusDelivered, nil
	case "Cancelled":
		return StatusCancelled, nil
	default:
		return 0, fmt.Errorf("unknown order status: %q", s)
	}
}

// LineItems maps product ids to ordered quantities
type LineItems map[ProductID]Quantity

// Clone returns an independent copy of the line items
func (li LineItems) Clone() LineItems {
	out := make(LineItems, len(li))
	for id, qty := range li {
		out[id] = qty
	}
	return out
}

// Order represents a placed customer order
type Order struct {
	ID         OrderID
	CustomerID CustomerID
	Lines      LineItems
	CreatedAt  time.Time
	Status     OrderStatus
}

// NewOrder creates a validated Order. The line items are copied, so later
// mutation of the caller's map does not affect the stored order.
func NewOrder(id OrderID, customerID CustomerID, lines LineItems, createdAt time.Time) (*Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("order id must be positive, got %d", id)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	for productID, qty := range lines {
		if qty <= 0 {
			return nil, fmt.Errorf("line item quantity for product %d must be positive, got %d", productID, qty)
		}
	}

	return &Order{
		ID:         id,
		CustomerID: customerID,
		Lines:      lines.Clone(),
		CreatedAt:  createdAt,
		Status:     StatusPending,
	}, nil
}

// Clone returns a deep copy of the order
func (o *Order) Clone() *Order {
	out := *o
	out.Lines = o.Lines.Clone()
	return &out
}
