// Package ledger implements the in-memory inventory ledger: a single
// aggregate owning the product catalog, the supplier registry and the
// order book, with monotonically increasing integer ids per entity kind.
package ledger

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tgrange/supplyline/pkg/domain/entities"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Ledger is the in-memory aggregate. All mutating operations serialize
// behind the write lock; snapshot reads take the read lock, so an order's
// check-then-commit sequence can never interleave with another writer.
type Ledger struct {
	mu sync.RWMutex

	products  map[entities.ProductID]*entities.Product
	suppliers map[entities.SupplierID]*entities.Supplier
	orders    map[entities.OrderID]*entities.Order

	// insertion order, for deterministic reports
	productIDs  []entities.ProductID
	supplierIDs []entities.SupplierID
	orderIDs    []entities.OrderID

	nextProductID  entities.ProductID
	nextSupplierID entities.SupplierID
	nextOrderID    entities.OrderID

	now func() time.Time
}

// New creates an empty ledger. Ids for all three entity kinds start at 1.
func New() *Ledger {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty ledger using the given clock for order
// creation dates.
func NewWithClock(now func() time.Time) *Ledger {
	return &Ledger{
		products:       make(map[entities.ProductID]*entities.Product),
		suppliers:      make(map[entities.SupplierID]*entities.Supplier),
		orders:         make(map[entities.OrderID]*entities.Order),
		nextProductID:  1,
		nextSupplierID: 1,
		nextOrderID:    1,
		now:            now,
	}
}

// AddSupplier registers a supplier with an empty supplied-products list.
// It always succeeds and returns a copy of the stored supplier.
func (l *Ledger) AddSupplier(name, contact string) *entities.Supplier {
	l.mu.Lock()
	defer l.mu.Unlock()

	supplier := &entities.Supplier{
		ID:               l.nextSupplierID,
		Name:             name,
		Contact:          contact,
		ProductsSupplied: []entities.ProductID{},
	}
	l.suppliers[supplier.ID] = supplier
	l.supplierIDs = append(l.supplierIDs, supplier.ID)
	l.nextSupplierID++

	return supplier.Clone()
}

// AddProduct adds a product to the catalog. A supplierID with no registered
// supplier is accepted: the product is stored without a supplier back-link
// and no error is reported. When the supplier exists, the new product id is
// appended to its ProductsSupplied.
func (l *Ledger) AddProduct(name string, unitPrice decimal.Decimal, quantity entities.Quantity, supplierID entities.SupplierID) (*entities.Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	product, err := entities.NewProduct(l.nextProductID, name, unitPrice, quantity, supplierID)
	if err != nil {
		return nil, err
	}

	l.products[product.ID] = product
	l.productIDs = append(l.productIDs, product.ID)
	l.nextProductID++

	if supplier, ok := l.suppliers[supplierID]; ok {
		supplier.ProductsSupplied = append(supplier.ProductsSupplied, product.ID)
	}

	copied := *product
	return &copied, nil
}

// PlaceOrder places an order for the given line items. Every line is
// validated before any stock moves: an unknown product id fails with
// ErrProductNotFound, an under-stocked one with ErrInsufficientStock, and
// in either case no order is created and no quantity changes. On success
// the order is stored with status Pending and each product's on-hand
// quantity is decremented by the ordered amount.
func (l *Ledger) PlaceOrder(customerID entities.CustomerID, lines entities.LineItems) (*entities.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	order, err := entities.NewOrder(l.nextOrderID, customerID, lines, l.now())
	if err != nil {
		return nil, err
	}

	// Check phase: no mutation until every line has passed.
	for _, productID := range sortedLineIDs(order.Lines) {
		requested := order.Lines[productID]
		product, ok := l.products[productID]
		if !ok {
			return nil, fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
		}
		if requested > product.Quantity {
			return nil, fmt.Errorf("product %d: requested %d, on hand %d: %w",
				productID, requested, product.Quantity, ErrInsufficientStock)
		}
	}

	// Commit phase.
	for productID, requested := range order.Lines {
		l.products[productID].Quantity -= requested
	}
	l.orders[order.ID] = order
	l.orderIDs = append(l.orderIDs, order.ID)
	l.nextOrderID++

	return order.Clone(), nil
}

// UpdateOrderStatus overwrites the status of an existing order. Any status
// may replace any other; there is no transition graph.
func (l *Ledger) UpdateOrderStatus(orderID entities.OrderID, status entities.OrderStatus) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	order, ok := l.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d: %w", orderID, ErrOrderNotFound)
	}
	order.Status = status
	return nil
}

// RestockProduct adds quantity to a product's on-hand stock.
func (l *Ledger) RestockProduct(productID entities.ProductID, quantity entities.Quantity) error {
	if quantity < 0 {
		return fmt.Errorf("restock quantity cannot be negative, got %d", quantity)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	product, ok := l.products[productID]
	if !ok {
		return fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
	}
	product.Quantity += quantity
	return nil
}

func sortedLineIDs(lines entities.LineItems) []entities.ProductID {
	ids := make([]entities.ProductID, 0, len(lines))
	for id := range lines {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
