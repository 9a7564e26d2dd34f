// Package output renders a ledger snapshot and its reports in the formats
// the CLI supports.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/tgrange/supplyline/pkg/domain/entities"
	"github.com/tgrange/supplyline/pkg/domain/ledger"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Reports bundles the three rendered text reports
type Reports struct {
	Inventory string
	Sales     string
	Suppliers string
}

// Generate creates output in the specified format
func Generate(snap ledger.Snapshot, reports Reports, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(reports, config)
	case "json":
		return generateJSONOutput(snap, config)
	case "csv":
		return generateCSVOutput(snap, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput prints the reports and optionally saves them to a file
func generateTextOutput(reports Reports, config Config) error {
	combined := reports.Inventory + "\n" + reports.Sales + "\n" + reports.Suppliers
	fmt.Print(combined)

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		filename := filepath.Join(config.OutputDir, "reports.txt")
		if err := os.WriteFile(filename, []byte(combined), 0644); err != nil {
			return fmt.Errorf("failed to write text output: %w", err)
		}
		if config.Verbose {
			fmt.Printf("💾 Reports saved to: %s\n", filename)
		}
	}
	return nil
}

type jsonProduct struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	UnitPrice  string `json:"unit_price"`
	Quantity   int64  `json:"quantity"`
	SupplierID int64  `json:"supplier_id"`
}

type jsonSupplier struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Contact          string  `json:"contact"`
	ProductsSupplied []int64 `json:"products_supplied"`
}

type jsonOrderLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type jsonOrder struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customer_id"`
	Status     string          `json:"status"`
	CreatedAt  string          `json:"created_at"`
	Lines      []jsonOrderLine `json:"lines"`
}

type jsonSnapshot struct {
	Metadata struct {
		GeneratedAt string `json:"generated_at"`
	} `json:"metadata"`
	Summary struct {
		ProductCount  int `json:"product_count"`
		SupplierCount int `json:"supplier_count"`
		OrderCount    int `json:"order_count"`
	} `json:"summary"`
	Products  []jsonProduct  `json:"products"`
	Suppliers []jsonSupplier `json:"suppliers"`
	Orders    []jsonOrder    `json:"orders"`
}

// generateJSONOutput creates JSON output
func generateJSONOutput(snap ledger.Snapshot, config Config) error {
	var result jsonSnapshot
	result.Metadata.GeneratedAt = time.Now().Format(time.RFC3339)
	result.Summary.ProductCount = len(snap.Products)
	result.Summary.SupplierCount = len(snap.Suppliers)
	result.Summary.OrderCount = len(snap.Orders)
	result.Products = []jsonProduct{}
	result.Suppliers = []jsonSupplier{}
	result.Orders = []jsonOrder{}

	for _, product := range snap.Products {
		result.Products = append(result.Products, jsonProduct{
			ID:         int64(product.ID),
			Name:       product.Name,
			UnitPrice:  product.UnitPrice.StringFixed(2),
			Quantity:   int64(product.Quantity),
			SupplierID: int64(product.SupplierID),
		})
	}
	for _, supplier := range snap.Suppliers {
		supplied := []int64{}
		for _, id := range supplier.ProductsSupplied {
			supplied = append(supplied, int64(id))
		}
		result.Suppliers = append(result.Suppliers, jsonSupplier{
			ID:               int64(supplier.ID),
			Name:             supplier.Name,
			Contact:          supplier.Contact,
			ProductsSupplied: supplied,
		})
	}
	for _, order := range snap.Orders {
		lines := []jsonOrderLine{}
		for _, productID := range sortedLineIDs(order) {
			lines = append(lines, jsonOrderLine{
				ProductID: int64(productID),
				Quantity:  int64(order.Lines[productID]),
			})
		}
		result.Orders = append(result.Orders, jsonOrder{
			ID:         int64(order.ID),
			CustomerID: int64(order.CustomerID),
			Status:     order.Status.String(),
			CreatedAt:  order.CreatedAt.Format(time.RFC3339),
			Lines:      lines,
		})
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		filename := filepath.Join(config.OutputDir, "ledger.json")
		if err := os.WriteFile(filename, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}
		if config.Verbose {
			fmt.Printf("📄 JSON output written to: %s\n", filename)
		}
	} else {
		fmt.Printf("%s\n", jsonBytes)
	}

	return nil
}

// generateCSVOutput creates CSV output files
func generateCSVOutput(snap ledger.Snapshot, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("CSV output requires an output directory (-output)")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeProductsCSV(snap, filepath.Join(config.OutputDir, "products.csv")); err != nil {
		return fmt.Errorf("failed to write products CSV: %w", err)
	}
	if err := writeSuppliersCSV(snap, filepath.Join(config.OutputDir, "suppliers.csv")); err != nil {
		return fmt.Errorf("failed to write suppliers CSV: %w", err)
	}
	if err := writeOrdersCSV(snap, filepath.Join(config.OutputDir, "orders.csv")); err != nil {
		return fmt.Errorf("failed to write orders CSV: %w", err)
	}

	if config.Verbose {
		fmt.Printf("📄 CSV output written to: %s\n", config.OutputDir)
	}
	return nil
}

func writeProductsCSV(snap ledger.Snapshot, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"id", "name", "unit_price", "quantity", "supplier_id"}); err != nil {
		return err
	}
	for _, product := range snap.Products {
		record := []string{
			strconv.FormatInt(int64(product.ID), 10),
			product.Name,
			product.UnitPrice.StringFixed(2),
			strconv.FormatInt(int64(product.Quantity), 10),
			strconv.FormatInt(int64(product.SupplierID), 10),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeSuppliersCSV(snap ledger.Snapshot, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"id", "name", "contact", "product_count"}); err != nil {
		return err
	}
	for _, supplier := range snap.Suppliers {
		record := []string{
			strconv.FormatInt(int64(supplier.ID), 10),
			supplier.Name,
			supplier.Contact,
			strconv.Itoa(len(supplier.ProductsSupplied)),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeOrdersCSV(snap ledger.Snapshot, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"order_id", "customer_id", "status", "created_at", "product_id", "quantity"}); err != nil {
		return err
	}
	for _, order := range snap.Orders {
		for _, productID := range sortedLineIDs(order) {
			record := []string{
				strconv.FormatInt(int64(order.ID), 10),
				strconv.FormatInt(int64(order.CustomerID), 10),
				order.Status.String(),
				order.CreatedAt.Format("2006-01-02"),
				strconv.FormatInt(int64(productID), 10),
				strconv.FormatInt(int64(order.Lines[productID]), 10),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedLineIDs(order entities.Order) []entities.ProductID {
	ids := make([]entities.ProductID, 0, len(order.Lines))
	for id := range order.Lines {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
