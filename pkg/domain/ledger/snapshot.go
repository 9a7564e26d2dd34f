package ledger

import (
	"fmt"

	"github.com/tgrange/supplyline/pkg/domain/entities"
)

// Snapshot is a point-in-time deep copy of the ledger's three collections,
// each in insertion order. Report generation works from snapshots so that
// formatting never holds the ledger lock and never observes a torn write.
type Snapshot struct {
	Products  []entities.Product
	Suppliers []entities.Supplier
	Orders    []entities.Order
}

// Snapshot returns a deep copy of the current ledger state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := Snapshot{
		Products:  make([]entities.Product, 0, len(l.productIDs)),
		Suppliers: make([]entities.Supplier, 0, len(l.supplierIDs)),
		Orders:    make([]entities.Order, 0, len(l.orderIDs)),
	}
	for _, id := range l.productIDs {
		snap.Products = append(snap.Products, *l.products[id])
	}
	for _, id := range l.supplierIDs {
		snap.Suppliers = append(snap.Suppliers, *l.suppliers[id].Clone())
	}
	for _, id := range l.orderIDs {
		snap.Orders = append(snap.Orders, *l.orders[id].Clone())
	}
	return snap
}

// Product returns a copy of the product with the given id.
func (l *Ledger) Product(id entities.ProductID) (*entities.Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	product, ok := l.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
	}
	copied := *product
	return &copied, nil
}

// Supplier returns a copy of the supplier with the given id.
func (l *Ledger) Supplier(id entities.SupplierID) (*entities.Supplier, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	supplier, ok := l.suppliers[id]
	if !ok {
		return nil, fmt.Errorf("supplier %d: %w", id, ErrSupplierNotFound)
	}
	return supplier.Clone(), nil
}

// Order returns a copy of the order with the given id.
func (l *Ledger) Order(id entities.OrderID) (*entities.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	order, ok := l.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
	}
	return order.Clone(), nil
}
