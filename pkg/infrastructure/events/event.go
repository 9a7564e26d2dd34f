// Package events provides an in-memory journal of ledger mutations. Each
// entity gets its own stream with per-stream versions, so the history of a
// single product or order can be read back independently of the global feed.
package events

import (
	"fmt"
	"time"

	"github.com/tgrange/supplyline/pkg/domain/entities"
)

const (
	SupplierAdded      = "supplier.added"
	ProductAdded       = "product.added"
	ProductRestocked   = "product.restocked"
	OrderPlaced        = "order.placed"
	OrderStatusChanged = "order.status.changed"
)

// Entry is a single journaled mutation. Version is assigned on append and
// counts from 1 within the entry's stream.
type Entry struct {
	Type      string
	Stream    string
	Data      interface{}
	Timestamp time.Time
	Version   int
}

// SupplierAddedData is the payload of a supplier.added entry
type SupplierAddedData struct {
	SupplierID entities.SupplierID
	Name       string
}

// ProductAddedData is the payload of a product.added entry
type ProductAddedData struct {
	ProductID  entities.ProductID
	Name       string
	Quantity   entities.Quantity
	SupplierID entities.SupplierID
}

// ProductRestockedData is the payload of a product.restocked entry
type ProductRestockedData struct {
	ProductID entities.ProductID
	Quantity  entities.Quantity
}

// OrderPlacedData is the payload of an order.placed entry
type OrderPlacedData struct {
	OrderID    entities.OrderID
	CustomerID entities.CustomerID
	Lines      entities.LineItems
}

// OrderStatusChangedData is the payload of an order.status.changed entry
type OrderStatusChangedData struct {
	OrderID entities.OrderID
	Status  entities.OrderStatus
}

// SupplierStream returns the stream id for a supplier
func SupplierStream(id entities.SupplierID) string {
	return fmt.Sprintf("supplier/%d", id)
}

// ProductStream returns the stream id for a product
func ProductStream(id entities.ProductID) string {
	return fmt.Sprintf("product/%d", id)
}

// OrderStream returns the stream id for an order
func OrderStream(id entities.OrderID) string {
	return fmt.Sprintf("order/%d", id)
}
