package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tgrange/supplyline/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		suppliersFile     = flag.String("suppliers", "", "Path to suppliers CSV file")
		productsFile      = flag.String("products", "", "Path to products CSV file")
		ordersFile        = flag.String("orders", "", "Path to orders CSV file")
		restocksFile      = flag.String("restocks", "", "Path to restocks CSV file")
		statusUpdatesFile = flag.String("status-updates", "", "Path to status updates CSV file")
		outputDir         = flag.String("output", "", "Output directory for results (optional)")
		format            = flag.String("format", "text", "Output format: text, json, csv")
		verbose           = flag.Bool("verbose", false, "Enable verbose output")
		help              = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioDir:       *scenarioDir,
		SuppliersFile:     *suppliersFile,
		ProductsFile:      *productsFile,
		OrdersFile:        *ordersFile,
		RestocksFile:      *restocksFile,
		StatusUpdatesFile: *statusUpdatesFile,
		OutputDir:         *outputDir,
		Format:            *format,
		Verbose:           *verbose,
		Help:              *help,
	}

	// Create and execute command
	cmd := commands.NewReportCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
