package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductID identifies a product in the catalog
type ProductID int64

// Quantity represents a discrete count of units on hand or on order
type Quantity int64

// Product represents a catalog product with its current stock level
type Product struct {
	ID         ProductID
	Name       string
	UnitPrice  decimal.Decimal
	Quantity   Quantity
	SupplierID SupplierID
}

// NewProduct creates a validated Product
func NewProduct(id ProductID, name string, unitPrice decimal.Decimal, quantity Quantity, supplierID SupplierID) (*Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("product id must be positive, got %d", id)
	}
	if name == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative, got %s", unitPrice.String())
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative, got %d", quantity)
	}

	return &Product{
		ID:         id,
		Name:       name,
		UnitPrice:  unitPrice,
		Quantity:   quantity,
		SupplierID: supplierID,
	}, nil
}
