package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/relationhq/relmig/internal/domain/entities"
	"github.com/relationhq/relmig/internal/domain/ports"
	"github.com/relationhq/relmig/internal/infrastructure/parsers"
)

// defaultCountry is filled in when the export leaves the country blank.
const defaultCountry = "Norway"

// CustomerImportOptions controls customer import behavior.
type CustomerImportOptions struct {
	DryRun bool // Convert and validate without saving
	Clear  bool // Delete all existing customers first
}

// CustomerImportResult contains the result of a customer import.
type CustomerImportResult struct {
	Imported          int
	SkippedDuplicates int // Rows repeating an org number already seen
	SkippedEmptyName  int // Rows without a customer name
	Cleared           bool
}

// CustomerImportService migrates customer rows into the store.
type CustomerImportService struct {
	store ports.Store
}

// NewCustomerImportService creates a new customer import service.
func NewCustomerImportService(store ports.Store) *CustomerImportService {
	return &CustomerImportService{store: store}
}

// Import converts parsed customer rows and persists them. Rows repeating an
// org number keep the first occurrence; rows without a name are skipped.
func (s *CustomerImportService) Import(ctx context.Context, rows []parsers.RawCustomerRow, opts CustomerImportOptions) (*CustomerImportResult, error) {
	result := &CustomerImportResult{}
	customers := s.convertRows(rows, result)

	if opts.Clear && !opts.DryRun {
		if err := s.store.DeleteAllCustomers(ctx); err != nil {
			return nil, fmt.Errorf("clearing customers: %w", err)
		}
		result.Cleared = true
	}

	if opts.DryRun {
		result.Imported = len(customers)
		return result, nil
	}

	if len(customers) > 0 {
		if err := s.store.SaveCustomers(ctx, customers); err != nil {
			return nil, fmt.Errorf("saving customers: %w", err)
		}
	}
	result.Imported = len(customers)

	return result, nil
}

// convertRows turns parsed rows into customers, recording skips in result.
func (s *CustomerImportService) convertRows(rows []parsers.RawCustomerRow, result *CustomerImportResult) []entities.Customer {
	customers := make([]entities.Customer, 0, len(rows))
	seenOrgNumbers := make(map[string]bool)
	now := timeNow().UTC()

	for i := range rows {
		row := &rows[i]

		if row.Name == "" {
			result.SkippedEmptyName++
			continue
		}
		if row.OrgNumber != "" {
			if seenOrgNumbers[row.OrgNumber] {
				result.SkippedDuplicates++
				continue
			}
			seenOrgNumbers[row.OrgNumber] = true
		}

		status := entities.CustomerActive
		if row.Inactive {
			status = entities.CustomerInactive
		}

		country := row.Country
		if country == "" {
			country = defaultCountry
		}

		// Prefer mobile over landline.
		phone := row.Mobile
		if phone == "" {
			phone = row.Landline
		}

		customers = append(customers, entities.Customer{
			ID:            uuid.New().String(),
			Name:          row.Name,
			OrgNumber:     row.OrgNumber,
			Email:         row.Email,
			Phone:         phone,
			Address:       row.Address,
			City:          row.City,
			PostalCode:    row.PostalCode,
			Country:       country,
			ContactPerson: row.ContactPerson,
			Status:        status,
			CustomerClass: row.CustomerClass,
			CreditLimit:   row.CreditLimit,
			IsInternal:    row.IsInternal,
			Municipality:  row.Municipality,
			County:        row.County,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	return customers
}
