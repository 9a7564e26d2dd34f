// Package reports renders text projections over a ledger snapshot. The
// functions are pure: they never touch the ledger itself, only the copy
// handed to them.
package reports

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tgrange/supplyline/pkg/domain/entities"
	"github.com/tgrange/supplyline/pkg/domain/ledger"
)

const recentOrderCount = 5

// Inventory generates the inventory report: every product with its stock
// level and price, plus the total valuation of stock on hand.
func Inventory(snap ledger.Snapshot) string {
	var output string

	output += "═══════════════════════════════════════════════════════════════\n"
	output += "                      INVENTORY REPORT\n"
	output += "═══════════════════════════════════════════════════════════════\n\n"

	output += fmt.Sprintf("📦 PRODUCTS (%d)\n", len(snap.Products))
	output += "────────────────────────────────────────────────────────────────\n"

	valuation := decimal.Zero
	for _, product := range snap.Products {
		lineValue := product.UnitPrice.Mul(decimal.NewFromInt(int64(product.Quantity)))
		valuation = valuation.Add(lineValue)

		output += fmt.Sprintf("[%d] %-24s Qty: %6d  Price: %10s  Supplier: %d\n",
			product.ID,
			product.Name,
			product.Quantity,
			product.UnitPrice.StringFixed(2),
			product.SupplierID)
	}

	output += "\n"
	output += fmt.Sprintf("  Total Inventory Value: %s\n", valuation.StringFixed(2))

	return output
}

// Sales generates the sales report. Revenue is recomputed from the catalog's
// current prices, so historical orders reprice when the catalog changes.
// Cancelled orders are excluded from revenue; the listing at the end shows
// the last five orders in insertion order.
func Sales(snap ledger.Snapshot) string {
	priceByProduct := make(map[entities.ProductID]decimal.Decimal, len(snap.Products))
	for _, product := range snap.Products {
		priceByProduct[product.ID] = product.UnitPrice
	}

	var output string

	output += "═══════════════════════════════════════════════════════════════\n"
	output += "                        SALES REPORT\n"
	output += "═══════════════════════════════════════════════════════════════\n\n"

	revenue := decimal.Zero
	countByStatus := make(map[entities.OrderStatus]int)
	for _, order := range snap.Orders {
		countByStatus[order.Status]++
		if order.Status == entities.StatusCancelled {
			continue
		}
		for productID, qty := range order.Lines {
			price, ok := priceByProduct[productID]
			if !ok {
				continue
			}
			revenue = revenue.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		}
	}

	output += "📊 SUMMARY\n"
	output += fmt.Sprintf("  Total Orders: %d\n", len(snap.Orders))
	for _, status := range []entities.OrderStatus{
		entities.StatusPending,
		entities.StatusShipped,
		entities.StatusDelivered,
		entities.StatusCancelled,
	} {
		output += fmt.Sprintf("  %-10s %d\n", status.String()+":", countByStatus[status])
	}
	output += fmt.Sprintf("  Total Revenue (current prices, excl. cancelled): %s\n", revenue.StringFixed(2))
	output += "\n"

	recent := snap.Orders
	if len(recent) > recentOrderCount {
		recent = recent[len(recent)-recentOrderCount:]
	}

	if len(recent) > 0 {
		output += "📝 RECENT ORDERS\n"
		output += "────────────────────────────────────────────────────────────────\n"
		for _, order := range recent {
			output += fmt.Sprintf("Order %d  Customer: %d  Status: %-9s  Date: %s\n",
				order.ID,
				order.CustomerID,
				order.Status,
				order.CreatedAt.Format("2006-01-02"))
			for _, productID := range sortedLineIDs(order.Lines) {
				output += fmt.Sprintf("  Product %d x %d\n", productID, order.Lines[productID])
			}
		}
	}

	return output
}

// Suppliers generates the supplier report: each supplier with its contact
// and the products it supplies, in creation order.
func Suppliers(snap ledger.Snapshot) string {
	nameByProduct := make(map[entities.ProductID]string, len(snap.Products))
	for _, product := range snap.Products {
		nameByProduct[product.ID] = product.Name
	}

	var output string

	output += "═══════════════════════════════════════════════════════════════\n"
	output += "                      SUPPLIER REPORT\n"
	output += "═══════════════════════════════════════════════════════════════\n\n"

	for _, supplier := range snap.Suppliers {
		output += fmt.Sprintf("🏭 [%d] %s\n", supplier.ID, supplier.Name)
		output += fmt.Sprintf("  Contact: %s\n", supplier.Contact)
		if len(supplier.ProductsSupplied) == 0 {
			output += "  Supplies: (none)\n"
		} else {
			output += fmt.Sprintf("  Supplies: %d product(s)\n", len(supplier.ProductsSupplied))
			for _, productID := range supplier.ProductsSupplied {
				output += fmt.Sprintf("    [%d] %s\n", productID, nameByProduct[productID])
			}
		}
		output += "\n"
	}

	return output
}

func sortedLineIDs(lines entities.LineItems) []entities.ProductID {
	ids := make([]entities.ProductID, 0, len(lines))
	for id := range lines {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
