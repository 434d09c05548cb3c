package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/relationhq/relmig/internal/domain/services"
	"github.com/relationhq/relmig/internal/infrastructure/parsers"
)

// CustomerImportHandler handles importing customers from export files.
type CustomerImportHandler struct {
	service *services.CustomerImportService
}

// NewCustomerImportHandler creates a new customer import handler.
func NewCustomerImportHandler(service *services.CustomerImportService) *CustomerImportHandler {
	return &CustomerImportHandler{service: service}
}

// CustomerImportOptions controls customer import behavior.
type CustomerImportOptions struct {
	Format string // "csv", "json", or "auto"
	DryRun bool
	Clear  bool
}

// Handle imports customers from a file.
func (h *CustomerImportHandler) Handle(ctx context.Context, filePath string, opts CustomerImportOptions) (*services.CustomerImportResult, error) {
	var parser parsers.CustomerParser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.CustomersForFile(filePath)
	} else {
		parser = parsers.CustomersForFormat(opts.Format)
	}
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	rows, err := parser.ParseCustomers(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	return h.service.Import(ctx, rows, services.CustomerImportOptions{
		DryRun: opts.DryRun,
		Clear:  opts.Clear,
	})
}
