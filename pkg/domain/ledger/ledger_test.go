package ledger

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tgrange/supplyline/pkg/domain/entities"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLedger_IDsAreMonotonicFromOne(t *testing.T) {
	l := New()

	for i := 1; i <= 3; i++ {
		supplier := l.AddSupplier("Supplier", "contact")
		if supplier.ID != entities.SupplierID(i) {
			t.Errorf("Expected supplier id %d, got %d", i, supplier.ID)
		}
	}

	for i := 1; i <= 3; i++ {
		product, err := l.AddProduct("Product", price("1.00"), 10, 1)
		if err != nil {
			t.Fatalf("Failed to add product: %v", err)
		}
		if product.ID != entities.ProductID(i) {
			t.Errorf("Expected product id %d, got %d", i, product.ID)
		}
	}

	for i := 1; i <= 3; i++ {
		order, err := l.PlaceOrder(7, entities.LineItems{1: 1})
		if err != nil {
			t.Fatalf("Failed to place order: %v", err)
		}
		if order.ID != entities.OrderID(i) {
			t.Errorf("Expected order id %d, got %d", i, order.ID)
		}
	}
}

func TestLedger_AddProduct_LinksExistingSupplier(t *testing.T) {
	l := New()
	supplier := l.AddSupplier("Acme Corp", "acme@example.com")

	first, err := l.AddProduct("Widget", price("9.99"), 5, supplier.ID)
	if err != nil {
		t.Fatalf("Failed to add product: %v", err)
	}
	second, err := l.AddProduct("Gadget", price("4.50"), 8, supplier.ID)
	if err != nil {
		t.Fatalf("Failed to add product: %v", err)
	}

	stored, err := l.Supplier(supplier.ID)
	if err != nil {
		t.Fatalf("Failed to get supplier: %v", err)
	}
	if len(stored.ProductsSupplied) != 2 {
		t.Fatalf("Expected 2 supplied products, got %d", len(stored.ProductsSupplied))
	}
	if stored.ProductsSupplied[0] != first.ID || stored.ProductsSupplied[1] != second.ID {
		t.Errorf("Expected supplied products [%d %d] in creation order, got %v",
			first.ID, second.ID, stored.ProductsSupplied)
	}
}

func TestLedger_AddProduct_UnknownSupplierIsAccepted(t *testing.T) {
	l := New()

	product, err := l.AddProduct("Orphan", price("2.00"), 3, 42)
	if err != nil {
		t.Fatalf("Expected product with unknown supplier to be accepted: %v", err)
	}
	if product.SupplierID != 42 {
		t.Errorf("Expected supplier id 42 to be kept, got %d", product.SupplierID)
	}

	// Registering the supplier afterwards does not link retroactively
	supplier := l.AddSupplier("Late Supplier", "late@example.com")
	stored, err := l.Supplier(supplier.ID)
	if err != nil {
		t.Fatalf("Failed to get supplier: %v", err)
	}
	if len(stored.ProductsSupplied) != 0 {
		t.Errorf("Expected no supplied products, got %v", stored.ProductsSupplied)
	}
}

func TestLedger_AddProduct_Validation(t *testing.T) {
	l := New()

	if _, err := l.AddProduct("", price("1.00"), 1, 1); err == nil {
		t.Error("Expected error for empty name, got none")
	}
	if _, err := l.AddProduct("Widget", price("-1.00"), 1, 1); err == nil {
		t.Error("Expected error for negative price, got none")
	}
	if _, err := l.AddProduct("Widget", price("1.00"), -1, 1); err == nil {
		t.Error("Expected error for negative quantity, got none")
	}

	// A rejected product must not consume an id
	product, err := l.AddProduct("Widget", price("1.00"), 1, 1)
	if err != nil {
		t.Fatalf("Failed to add product: %v", err)
	}
	if product.ID != 1 {
		t.Errorf("Expected first accepted product to get id 1, got %d", product.ID)
	}
}

func TestLedger_PlaceOrder_AllOrNothing(t *testing.T) {
	l := New()
	supplier := l.AddSupplier("Acme Corp", "acme@example.com")
	productA, err := l.AddProduct("A", price("10.00"), 5, supplier.ID)
	if err != nil {
		t.Fatalf("Failed to add product: %v", err)
	}

	// Product B does not exist: nothing may change
	_, err = l.PlaceOrder(1, entities.LineItems{productA.ID: 3, 999: 1})
	if err == nil {
		t.Fatal("Expected order with unknown product to fail, got none")
	}
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}

	stored, err := l.Product(productA.ID)
	if err != nil {
		t.Fatalf("Failed to get product: %v", err)
	}
	if stored.Quantity != 5 {
		t.Errorf("Expected quantity 5 after rejected order, got %d", stored.Quantity)
	}
	if len(l.Snapshot().Orders) != 0 {
		t.Error("Expected no order to be created")
	}

	// Under-stocked line alongside a satisfiable one: still nothing changes
	productB, err := l.AddProduct("B", price("1.00"), 2, supplier.ID)
	if err != nil {
		t.Fatalf("Failed to add product: %v", err)
	}
	_, err = l.PlaceOrder(1, entities.LineItems{productA.ID: 1, productB.ID: 3})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("Expected ErrInsufficientStock, got %v", err)
	}
	if !strings.Contains(err.Error(), "requested 3, on hand 2") {
		t.Errorf("Expected error to report requested and on-hand quantities, got %v", err)
	}

	storedA, _ := l.Product(productA.ID)
	storedB, _ := l.Product(productB.ID)
	if storedA.Quantity != 5 || storedB.Quantity != 2 {
		t.Errorf("Expected quantities (5, 2) untouched, got (%d, %d)", storedA.Quantity, storedB.Quantity)
	}
}

func TestLedger_PlaceOrder_EmptyOrderIsRejected(t *testing.T) {
	l := New()

	_, err := l.PlaceOrder(1, entities.LineItems{})
	if !errors.Is(err, entities.ErrEmptyOrder) {
		t.Errorf("Expected ErrEmptyOrder, got %v", err)
	}
	if len(l.Snapshot().Orders) != 0 {
		t.Error("Expected no order to be created")
	}
}

func TestLedger_PlaceOrder_DecrementsExactly(t *testing.T) {
	l := New()
	supplier := l.AddSupplier("Acme Corp", "acme@example.com")
	productA, _ := l.AddProduct("A", price("10.00"), 5, supplier.ID)
	productB, _ := l.AddProduct("B", price("2.00"), 7, supplier.ID)

	order, err := l.PlaceOrder(3, entities.LineItems{productA.ID: 4})
	if err != nil {
		t.Fatalf("Failed to place order: %v", err)
	}
	if order.Status != entities.StatusPending {
		t.Errorf("Expected status Pending, got %s", order.Status)
	}
	if order.CustomerID != 3 {
		t.Errorf("Expected customer id 3, got %d", order.CustomerID)
	}

	storedA, _ := l.Product(productA.ID)
	storedB, _ := l.Product(productB.ID)
	if storedA.Quantity != 1 {
		t.Errorf("Expected product A quantity 1, got %d", storedA.Quantity)
	}
	if storedB.Quantity != 7 {
		t.Errorf("Expected product B quantity unchanged at 7, got %d", storedB.Quantity)
	}

	// Ordering the exact remaining stock drains it to zero
	if _, err := l.PlaceOrder(3, entities.LineItems{productA.ID: 1}); err != nil {
		t.Fatalf("Failed to place draining order: %v", err)
	}
	storedA, _ = l.Product(productA.ID)
	if storedA.Quantity != 0 {
		t.Errorf("Expected product A quantity 0, got %d", storedA.Quantity)
	}
}

func TestLedger_PlaceOrder_UsesClock(t *testing.T) {
	fixed := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	l := NewWithClock(func() time.Time { return fixed })
	supplier := l.AddSupplier("Acme Corp", "acme@example.com")
	product, _ := l.AddProduct("A", price("1.00"), 1, supplier.ID)

	order, err := l.PlaceOrder(1, entities.LineItems{product.ID: 1})
	if err != nil {
		t.Fatalf("Failed to place order: %v", err)
	}
	if !order.CreatedAt.Equal(fixed) {
		t.Errorf("Expected creation date %v, got %v", fixed, order.CreatedAt)
	}
}

func TestLedger_UpdateOrderStatus(t *testing.T) {
	l := New()
	supplier := l.AddSupplier("Acme Corp", "acme@example.com")
	product, _ := l.AddProduct("A", price("1.00"), 5, supplier.ID)
	order, _ := l.PlaceOrder(1, entities.LineItems{product.ID: 1})

	err := l.UpdateOrderStatus(999, entities.StatusShipped)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound for unknown id, got %v", err)
	}

	// Any status may replace any other, including backwards moves
	transitions := []entities.OrderStatus{
		entities.StatusShipped,
		entities.StatusDelivered,
		entities.StatusPending,
		entities.StatusCancelled,
	}
	for _, status := range transitions {
		if err := l.UpdateOrderStatus(order.ID, status); err != nil {
			t.Fatalf("Failed to update status to %s: %v", status, err)
		}
		stored, _ := l.Order(order.ID)
		if stored.Status != status {
			t.Errorf("Expected status %s, got %s", status, stored.Status)
		}
	}
}

func TestLedger_RestockProduct(t *testing.T) {
	l := New()
	supplier := l.AddSupplier("Acme Corp", "acme@example.com")
	product, _ := l.AddProduct("A", price("1.00"), 2, supplier.ID)

	if err := l.RestockProduct(product.ID, 5); err != nil {
		t.Fatalf("Failed to restock: %v", err)
	}
	stored, _ := l.Product(product.ID)
	if stored.Quantity != 7 {
		t.Errorf("Expected quantity 7 after restock, got %d", stored.Quantity)
	}

	err := l.RestockProduct(999, 5)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound for unknown id, got %v", err)
	}

	err = l.RestockProduct(product.ID, -1)
	if err == nil {
		t.Fatal("Expected error for negative restock quantity, got none")
	}
	if !strings.Contains(err.Error(), "cannot be negative") {
		t.Errorf("Expected negative-quantity error, got %v", err)
	}
	stored, _ = l.Product(product.ID)
	if stored.Quantity != 7 {
		t.Errorf("Expected quantity unchanged at 7, got %d", stored.Quantity)
	}
}

func TestLedger_Snapshot_IsIsolated(t *testing.T) {
	l := New()
	supplier := l.AddSupplier("Acme Corp", "acme@example.com")
	product, _ := l.AddProduct("A", price("1.00"), 5, supplier.ID)
	l.PlaceOrder(1, entities.LineItems{product.ID: 2})

	snap := l.Snapshot()
	snap.Products[0].Quantity = 999
	snap.Suppliers[0].ProductsSupplied[0] = 999
	snap.Orders[0].Lines[product.ID] = 999

	stored, _ := l.Product(product.ID)
	if stored.Quantity != 3 {
		t.Errorf("Expected ledger quantity 3 after snapshot mutation, got %d", stored.Quantity)
	}
	storedSupplier, _ := l.Supplier(supplier.ID)
	if storedSupplier.ProductsSupplied[0] != product.ID {
		t.Error("Expected supplier back-link unaffected by snapshot mutation")
	}
	storedOrder, _ := l.Order(1)
	if storedOrder.Lines[product.ID] != 2 {
		t.Errorf("Expected stored line quantity 2, got %d", storedOrder.Lines[product.ID])
	}
}

func TestLedger_ConcurrentOrders_NeverOversell(t *testing.T) {
	l := New()
	supplier := l.AddSupplier("Acme Corp", "acme@example.com")
	product, _ := l.AddProduct("Scarce", price("1.00"), 10, supplier.ID)

	const attempts = 50
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.PlaceOrder(1, entities.LineItems{product.ID: 1})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, ErrInsufficientStock) {
			t.Errorf("Expected only ErrInsufficientStock failures, got %v", err)
		}
	}

	if succeeded != 10 {
		t.Errorf("Expected exactly 10 orders to succeed, got %d", succeeded)
	}
	stored, _ := l.Product(product.ID)
	if stored.Quantity != 0 {
		t.Errorf("Expected quantity drained to 0, got %d", stored.Quantity)
	}
}

func TestLedger_EndToEndScenario(t *testing.T) {
	l := New()

	s1 := l.AddSupplier("S1", "s1@example.com")
	p1, err := l.AddProduct("P1", price("10.00"), 5, s1.ID)
	if err != nil {
		t.Fatalf("Failed to add product: %v", err)
	}

	order, err := l.PlaceOrder(1, entities.LineItems{p1.ID: 3})
	if err != nil {
		t.Fatalf("Failed to place order: %v", err)
	}
	if order.Status != entities.StatusPending {
		t.Errorf("Expected status Pending, got %s", order.Status)
	}
	stored, _ := l.Product(p1.ID)
	if stored.Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", stored.Quantity)
	}

	_, err = l.PlaceOrder(1, entities.LineItems{p1.ID: 10})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("Expected ErrInsufficientStock, got %v", err)
	}
	stored, _ = l.Product(p1.ID)
	if stored.Quantity != 2 {
		t.Errorf("Expected quantity still 2 after rejected order, got %d", stored.Quantity)
	}

	if err := l.RestockProduct(p1.ID, 5); err != nil {
		t.Fatalf("Failed to restock: %v", err)
	}
	stored, _ = l.Product(p1.ID)
	if stored.Quantity != 7 {
		t.Errorf("Expected quantity 7 after restock, got %d", stored.Quantity)
	}
}
