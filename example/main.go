package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tgrange/supplyline/pkg/application/reports"
	"github.com/tgrange/supplyline/pkg/domain/entities"
	"github.com/tgrange/supplyline/pkg/domain/ledger"
)

func main() {
	l := ledger.New()

	fmt.Println("🏭 Seeding a small catalog...")
	acme := l.AddSupplier("Acme Corp", "orders@acme.example.com")
	globex := l.AddSupplier("Globex", "supply@globex.example.com")

	widget, err := l.AddProduct("Widget", decimal.RequireFromString("10.00"), 5, acme.ID)
	if err != nil {
		fmt.Printf("❌ Failed to add product: %v\n", err)
		return
	}
	if _, err := l.AddProduct("Gadget", decimal.RequireFromString("4.50"), 20, globex.ID); err != nil {
		fmt.Printf("❌ Failed to add product: %v\n", err)
		return
	}

	fmt.Printf("Catalog ready: widget stock %d\n\n", widget.Quantity)

	fmt.Println("🛒 Placing an order for 3 widgets...")
	order, err := l.PlaceOrder(1, entities.LineItems{widget.ID: 3})
	if err != nil {
		fmt.Printf("❌ Order failed: %v\n", err)
		return
	}
	fmt.Printf("Order %d placed, status %s\n", order.ID, order.Status)

	stock, _ := l.Product(widget.ID)
	fmt.Printf("Widget stock after order: %d\n\n", stock.Quantity)

	fmt.Println("🛒 Trying to order 10 widgets (only 2 left)...")
	_, err = l.PlaceOrder(1, entities.LineItems{widget.ID: 10})
	if errors.Is(err, ledger.ErrInsufficientStock) {
		fmt.Printf("Rejected as expected: %v\n", err)
	} else {
		fmt.Printf("❌ Unexpected result: %v\n", err)
		return
	}

	stock, _ = l.Product(widget.ID)
	fmt.Printf("Widget stock unchanged: %d\n\n", stock.Quantity)

	fmt.Println("📦 Restocking 5 widgets...")
	if err := l.RestockProduct(widget.ID, 5); err != nil {
		fmt.Printf("❌ Restock failed: %v\n", err)
		return
	}
	stock, _ = l.Product(widget.ID)
	fmt.Printf("Widget stock after restock: %d\n\n", stock.Quantity)

	if err := l.UpdateOrderStatus(order.ID, entities.StatusShipped); err != nil {
		fmt.Printf("❌ Status update failed: %v\n", err)
		return
	}

	snap := l.Snapshot()
	fmt.Print(reports.Inventory(snap))
	fmt.Println()
	fmt.Print(reports.Sales(snap))
	fmt.Println()
	fmt.Print(reports.Suppliers(snap))
}
