package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tgrange/supplyline/pkg/application/reports"
	"github.com/tgrange/supplyline/pkg/domain/ledger"
	"github.com/tgrange/supplyline/pkg/infrastructure/events"
	"github.com/tgrange/supplyline/pkg/infrastructure/repositories/csv"
	"github.com/tgrange/supplyline/pkg/interfaces/cli/output"
)

// Config holds configuration for the report command
type Config struct {
	ScenarioDir       string
	SuppliersFile     string
	ProductsFile      string
	OrdersFile        string
	RestocksFile      string
	StatusUpdatesFile string
	OutputDir         string
	Format            string
	Verbose           bool
	Help              bool
}

// Scenario bundles the loaded records of one scenario in replay order
type Scenario struct {
	Suppliers     []csv.SupplierRecord
	Products      []csv.ProductRecord
	Orders        []csv.OrderRecord
	Restocks      []csv.RestockRecord
	StatusUpdates []csv.StatusUpdateRecord
}

// ReportCommand loads a scenario, replays it through a fresh ledger and
// renders the reports
type ReportCommand struct {
	config Config
}

// NewReportCommand creates a new report command with the given configuration
func NewReportCommand(config Config) *ReportCommand {
	return &ReportCommand{
		config: config,
	}
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("📂 Loading scenario from CSV files...")
	}

	loader := csv.NewLoader()

	suppliers, err := loader.LoadSuppliers(files["Suppliers"])
	if err != nil {
		return fmt.Errorf("error loading suppliers: %w", err)
	}

	products, err := loader.LoadProducts(files["Products"])
	if err != nil {
		return fmt.Errorf("error loading products: %w", err)
	}

	scenario := Scenario{
		Suppliers: suppliers,
		Products:  products,
	}
	if files["Orders"] != "" {
		scenario.Orders, err = loader.LoadOrders(files["Orders"])
		if err != nil {
			return fmt.Errorf("error loading orders: %w", err)
		}
	}
	if files["Restocks"] != "" {
		scenario.Restocks, err = loader.LoadRestocks(files["Restocks"])
		if err != nil {
			return fmt.Errorf("error loading restocks: %w", err)
		}
	}
	if files["StatusUpdates"] != "" {
		scenario.StatusUpdates, err = loader.LoadStatusUpdates(files["StatusUpdates"])
		if err != nil {
			return fmt.Errorf("error loading status updates: %w", err)
		}
	}

	if c.config.Verbose {
		fmt.Printf("✅ Scenario loaded:\n")
		fmt.Printf("  Suppliers: %d\n", len(scenario.Suppliers))
		fmt.Printf("  Products: %d\n", len(scenario.Products))
		fmt.Printf("  Orders: %d\n", len(scenario.Orders))
		fmt.Printf("  Restocks: %d\n", len(scenario.Restocks))
		fmt.Printf("  Status Updates: %d\n", len(scenario.StatusUpdates))
		fmt.Println()
	}

	l := ledger.New()
	journal := events.NewJournal()

	if err := Replay(l, journal, scenario); err != nil {
		return fmt.Errorf("failed to replay scenario: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("📜 Journal entries recorded: %d\n\n", journal.Len())
	}

	snap := l.Snapshot()
	rendered := output.Reports{
		Inventory: reports.Inventory(snap),
		Sales:     reports.Sales(snap),
		Suppliers: reports.Suppliers(snap),
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}
	return output.Generate(snap, rendered, outputConfig)
}

// Replay applies loaded scenario records to a ledger in order: suppliers,
// products, orders, restocks, status updates. Every applied mutation is
// journaled; a nil journal disables recording. A product referencing a
// supplier position that was never loaded is accepted unlinked, matching
// the ledger's semantics; any failing record aborts the replay.
func Replay(l *ledger.Ledger, journal *events.Journal, scenario Scenario) error {
	record := func(eventType, stream string, data interface{}) {
		if journal != nil {
			journal.Append(eventType, stream, data)
		}
	}

	for _, r := range scenario.Suppliers {
		supplier := l.AddSupplier(r.Name, r.Contact)
		record(events.SupplierAdded, events.SupplierStream(supplier.ID), events.SupplierAddedData{
			SupplierID: supplier.ID,
			Name:       supplier.Name,
		})
	}

	for _, r := range scenario.Products {
		product, err := l.AddProduct(r.Name, r.UnitPrice, r.Quantity, r.SupplierID)
		if err != nil {
			return fmt.Errorf("product %q: %w", r.Name, err)
		}
		record(events.ProductAdded, events.ProductStream(product.ID), events.ProductAddedData{
			ProductID:  product.ID,
			Name:       product.Name,
			Quantity:   product.Quantity,
			SupplierID: product.SupplierID,
		})
	}

	for _, r := range scenario.Orders {
		order, err := l.PlaceOrder(r.CustomerID, r.Lines)
		if err != nil {
			return fmt.Errorf("order %s: %w", r.Ref, err)
		}
		record(events.OrderPlaced, events.OrderStream(order.ID), events.OrderPlacedData{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			Lines:      order.Lines,
		})
	}

	for _, r := range scenario.Restocks {
		if err := l.RestockProduct(r.ProductID, r.Quantity); err != nil {
			return fmt.Errorf("restock for product %d: %w", r.ProductID, err)
		}
		record(events.ProductRestocked, events.ProductStream(r.ProductID), events.ProductRestockedData{
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
		})
	}

	for _, r := range scenario.StatusUpdates {
		if err := l.UpdateOrderStatus(r.OrderID, r.Status); err != nil {
			return fmt.Errorf("status update for order %d: %w", r.OrderID, err)
		}
		record(events.OrderStatusChanged, events.OrderStream(r.OrderID), events.OrderStatusChangedData{
			OrderID: r.OrderID,
			Status:  r.Status,
		})
	}

	return nil
}

// resolveInputFiles determines the input files from the configuration
func (c *ReportCommand) resolveInputFiles() (map[string]string, error) {
	files := map[string]string{
		"Suppliers":     c.config.SuppliersFile,
		"Products":      c.config.ProductsFile,
		"Orders":        c.config.OrdersFile,
		"Restocks":      c.config.RestocksFile,
		"StatusUpdates": c.config.StatusUpdatesFile,
	}

	if c.config.ScenarioDir != "" {
		defaults := map[string]string{
			"Suppliers":     "suppliers.csv",
			"Products":      "products.csv",
			"Orders":        "orders.csv",
			"Restocks":      "restocks.csv",
			"StatusUpdates": "status_updates.csv",
		}
		for key, name := range defaults {
			if files[key] == "" {
				candidate := filepath.Join(c.config.ScenarioDir, name)
				if _, err := os.Stat(candidate); err == nil {
					files[key] = candidate
				}
			}
		}
	}

	if files["Suppliers"] == "" {
		return nil, fmt.Errorf("suppliers file is required (use -scenario or -suppliers)")
	}
	if files["Products"] == "" {
		return nil, fmt.Errorf("products file is required (use -scenario or -products)")
	}
	// Orders, restocks and status updates are optional: a scenario may
	// describe stock only

	return files, nil
}

func (c *ReportCommand) showHelp() {
	fmt.Println("supplyline - in-memory inventory and order ledger")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  supplyline -scenario <dir> [flags]")
	fmt.Println("  supplyline -suppliers <file> -products <file> [-orders <file>] [flags]")
	fmt.Println()
	fmt.Println("A scenario directory contains suppliers.csv, products.csv and")
	fmt.Println("optionally orders.csv, restocks.csv and status_updates.csv. The")
	fmt.Println("files are replayed through a fresh ledger and the inventory,")
	fmt.Println("sales and supplier reports are rendered.")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -scenario        Path to scenario directory")
	fmt.Println("  -suppliers       Path to suppliers CSV file")
	fmt.Println("  -products        Path to products CSV file")
	fmt.Println("  -orders          Path to orders CSV file")
	fmt.Println("  -restocks        Path to restocks CSV file")
	fmt.Println("  -status-updates  Path to status updates CSV file")
	fmt.Println("  -output          Output directory for results (optional)")
	fmt.Println("  -format          Output format: text, json, csv")
	fmt.Println("  -verbose         Enable verbose output")
	fmt.Println("  -help            Show this help message")
}
