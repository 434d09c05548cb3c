// Package handlers connects the CLI commands to the domain services:
// opening files, picking parsers and writing report artifacts.
package handlers

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/relationhq/relmig/internal/domain/entities"
	"github.com/relationhq/relmig/internal/domain/services"
	"github.com/relationhq/relmig/internal/infrastructure/parsers"
)

// OfferImportHandler handles importing offers from export files.
type OfferImportHandler struct {
	service *services.OfferImportService
}

// NewOfferImportHandler creates a new offer import handler.
func NewOfferImportHandler(service *services.OfferImportService) *OfferImportHandler {
	return &OfferImportHandler{service: service}
}

// OfferImportOptions controls offer import behavior.
type OfferImportOptions struct {
	Format      string // "csv", "json", or "auto"
	DryRun      bool
	Clear       bool
	SkippedPath string // Side file for unresolved offers ("" disables)
}

// OfferImportResult is the service result plus handler-side bookkeeping.
type OfferImportResult struct {
	services.OfferImportResult
	SkippedFile string // Path of the written side file, if any
}

// Handle imports offers from a file.
func (h *OfferImportHandler) Handle(ctx context.Context, filePath string, opts OfferImportOptions) (*OfferImportResult, error) {
	var parser parsers.OfferParser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.OffersForFile(filePath)
	} else {
		parser = parsers.OffersForFormat(opts.Format)
	}
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	rows, err := parser.ParseOffers(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	serviceResult, err := h.service.Import(ctx, rows, services.OfferImportOptions{
		DryRun: opts.DryRun,
		Clear:  opts.Clear,
	})
	if err != nil {
		return nil, err
	}

	result := &OfferImportResult{OfferImportResult: *serviceResult}

	if opts.SkippedPath != "" && len(serviceResult.Unresolved) > 0 {
		if err := writeUnresolved(opts.SkippedPath, serviceResult.Unresolved); err != nil {
			return nil, fmt.Errorf("writing unresolved offers: %w", err)
		}
		result.SkippedFile = opts.SkippedPath
	}

	return result, nil
}

// writeUnresolved writes unresolved offers to a CSV side file for manual
// follow-up.
func writeUnresolved(path string, offers []entities.Offer) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"customer_name", "title", "value", "phase", "location"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range offers {
		o := &offers[i]
		record := []string{
			o.CustomerName,
			o.Title,
			strconv.FormatFloat(o.Value, 'f', -1, 64),
			string(o.Phase),
			o.Location,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
