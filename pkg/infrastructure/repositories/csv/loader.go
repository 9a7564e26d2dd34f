// Package csv loads scenario files for seeding a ledger. Ids are not part
// of the files: suppliers and products receive their ids when the records
// are replayed into a fresh ledger, so a products.csv supplier_id column
// refers to the 1-based row position in suppliers.csv.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/tgrange/supplyline/pkg/domain/entities"
)

// SupplierRecord is one row of suppliers.csv
type SupplierRecord struct {
	Name    string
	Contact string
}

// ProductRecord is one row of products.csv
type ProductRecord struct {
	Name       string
	UnitPrice  decimal.Decimal
	Quantity   entities.Quantity
	SupplierID entities.SupplierID
}

// OrderRecord is one order from orders.csv, with its rows grouped by
// order_ref into line items
type OrderRecord struct {
	Ref        string
	CustomerID entities.CustomerID
	Lines      entities.LineItems
}

// RestockRecord is one row of restocks.csv
type RestockRecord struct {
	ProductID entities.ProductID
	Quantity  entities.Quantity
}

// StatusUpdateRecord is one row of status_updates.csv
type StatusUpdateRecord struct {
	OrderID entities.OrderID
	Status  entities.OrderStatus
}

// Loader handles loading scenario data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadSuppliers loads supplier records from a CSV file
func (l *Loader) LoadSuppliers(filename string) ([]SupplierRecord, error) {
	records, err := readAll(filename, []string{"name", "contact"})
	if err != nil {
		return nil, fmt.Errorf("suppliers CSV: %w", err)
	}

	var suppliers []SupplierRecord
	for i, record := range records {
		if record[0] == "" {
			return nil, fmt.Errorf("suppliers CSV row %d: name cannot be empty", i+2)
		}
		suppliers = append(suppliers, SupplierRecord{
			Name:    record[0],
			Contact: record[1],
		})
	}
	return suppliers, nil
}

// LoadProducts loads product records from a CSV file
func (l *Loader) LoadProducts(filename string) ([]ProductRecord, error) {
	records, err := readAll(filename, []string{"name", "unit_price", "quantity", "supplier_id"})
	if err != nil {
		return nil, fmt.Errorf("products CSV: %w", err)
	}

	var products []ProductRecord
	for i, record := range records {
		unitPrice, err := decimal.NewFromString(record[1])
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: invalid unit_price %q", i+2, record[1])
		}
		quantity, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: invalid quantity %q", i+2, record[2])
		}
		supplierID, err := strconv.ParseInt(record[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: invalid supplier_id %q", i+2, record[3])
		}

		products = append(products, ProductRecord{
			Name:       record[0],
			UnitPrice:  unitPrice,
			Quantity:   entities.Quantity(quantity),
			SupplierID: entities.SupplierID(supplierID),
		})
	}
	return products, nil
}

// LoadOrders loads order records from a CSV file. Rows sharing an order_ref
// form one order; refs keep their first-appearance order.
func (l *Loader) LoadOrders(filename string) ([]OrderRecord, error) {
	records, err := readAll(filename, []string{"order_ref", "customer_id", "product_id", "quantity"})
	if err != nil {
		return nil, fmt.Errorf("orders CSV: %w", err)
	}

	byRef := make(map[string]*OrderRecord)
	var refOrder []string

	for i, record := range records {
		ref := record[0]
		if ref == "" {
			return nil, fmt.Errorf("orders CSV row %d: order_ref cannot be empty", i+2)
		}
		customerID, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: invalid customer_id %q", i+2, record[1])
		}
		productID, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: invalid product_id %q", i+2, record[2])
		}
		quantity, err := strconv.ParseInt(record[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: invalid quantity %q", i+2, record[3])
		}

		order, ok := byRef[ref]
		if !ok {
			order = &OrderRecord{
				Ref:        ref,
				CustomerID: entities.CustomerID(customerID),
				Lines:      entities.LineItems{},
			}
			byRef[ref] = order
			refOrder = append(refOrder, ref)
		} else if order.CustomerID != entities.CustomerID(customerID) {
			return nil, fmt.Errorf("orders CSV row %d: order %s has conflicting customer ids %d and %d",
				i+2, ref, order.CustomerID, customerID)
		}

		if _, exists := order.Lines[entities.ProductID(productID)]; exists {
			return nil, fmt.Errorf("orders CSV row %d: duplicate product %d in order %s", i+2, productID, ref)
		}
		order.Lines[entities.ProductID(productID)] = entities.Quantity(quantity)
	}

	orders := make([]OrderRecord, 0, len(refOrder))
	for _, ref := range refOrder {
		orders = append(orders, *byRef[ref])
	}
	return orders, nil
}

// LoadRestocks loads restock records from a CSV file
func (l *Loader) LoadRestocks(filename string) ([]RestockRecord, error) {
	records, err := readAll(filename, []string{"product_id", "quantity"})
	if err != nil {
		return nil, fmt.Errorf("restocks CSV: %w", err)
	}

	var restocks []RestockRecord
	for i, record := range records {
		productID, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("restocks CSV row %d: invalid product_id %q", i+2, record[0])
		}
		quantity, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("restocks CSV row %d: invalid quantity %q", i+2, record[1])
		}

		restocks = append(restocks, RestockRecord{
			ProductID: entities.ProductID(productID),
			Quantity:  entities.Quantity(quantity),
		})
	}
	return restocks, nil
}

// LoadStatusUpdates loads order status updates from a CSV file. Statuses
// are given by name and must parse to a known status.
func (l *Loader) LoadStatusUpdates(filename string) ([]StatusUpdateRecord, error) {
	records, err := readAll(filename, []string{"order_id", "status"})
	if err != nil {
		return nil, fmt.Errorf("status updates CSV: %w", err)
	}

	var updates []StatusUpdateRecord
	for i, record := range records {
		orderID, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("status updates CSV row %d: invalid order_id %q", i+2, record[0])
		}
		status, err := entities.ParseOrderStatus(record[1])
		if err != nil {
			return nil, fmt.Errorf("status updates CSV row %d: %w", i+2, err)
		}

		updates = append(updates, StatusUpdateRecord{
			OrderID: entities.OrderID(orderID),
			Status:  status,
		})
	}
	return updates, nil
}

// readAll reads a CSV file, validates its header and returns the data rows
func readAll(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s must have header and at least one data row", filename)
	}

	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, column := range expected {
		if header[i] != column {
			return false
		}
	}
	return true
}
