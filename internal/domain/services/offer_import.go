package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/relationhq/relmig/internal/domain/entities"
	"github.com/relationhq/relmig/internal/domain/ports"
	"github.com/relationhq/relmig/internal/infrastructure/parsers"
)

// fallbackCustomerName stands in for rows with an empty customer cell, so
// the aliased placeholder mapping can pick them up.
const fallbackCustomerName = "Ukjent kunde"

// OfferImportOptions controls offer import behavior.
type OfferImportOptions struct {
	DryRun bool // Resolve and number without saving
	Clear  bool // Delete the company's existing offers first
}

// OfferImportResult contains the result of an offer import.
type OfferImportResult struct {
	Imported       int
	Unresolved     []entities.Offer // No customer match; routed to manual review
	SkippedEmpty   int              // Rows without a project title
	SkippedExpired int              // Rows flagged UTGÅR/UTLØPT
	Cleared        int              // Pre-existing offers deleted via Clear
	PhaseCounts    map[entities.Phase]int
	YearCounts     map[int]int
	TotalValue     float64
}

// OfferImportService migrates offer rows into the store: it converts rows to
// offers, assigns offer numbers, resolves customers against the store
// snapshot and persists the resolved set. Unresolved offers are returned for
// manual follow-up, never guessed or dropped.
type OfferImportService struct {
	store        ports.Store
	resolver     *Resolver
	assigner     *SequenceAssigner
	responsibles map[string]string
	companyID    string
}

// NewOfferImportService creates a new offer import service. responsibles
// maps responsible-person initials to full names; unknown initials pass
// through unchanged.
func NewOfferImportService(store ports.Store, resolver *Resolver, assigner *SequenceAssigner, responsibles map[string]string, companyID string) *OfferImportService {
	return &OfferImportService{
		store:        store,
		resolver:     resolver,
		assigner:     assigner,
		responsibles: responsibles,
		companyID:    companyID,
	}
}

// Import runs the offer migration over parsed rows.
func (s *OfferImportService) Import(ctx context.Context, rows []parsers.RawOfferRow, opts OfferImportOptions) (*OfferImportResult, error) {
	result := &OfferImportResult{
		PhaseCounts: make(map[entities.Phase]int),
		YearCounts:  make(map[int]int),
	}

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	offers := s.convertRows(rows, result)

	offers, err := s.assigner.Assign(offers)
	if err != nil {
		return nil, fmt.Errorf("assigning offer numbers: %w", err)
	}
	for i := range offers {
		result.YearCounts[numberYear(&offers[i])]++
	}

	importable := s.resolveCustomers(offers, result)

	for i := range importable {
		result.PhaseCounts[importable[i].Phase]++
		result.TotalValue += importable[i].Value
	}

	if opts.Clear && !opts.DryRun {
		cleared, err := s.store.DeleteOffersByCompany(ctx, s.companyID)
		if err != nil {
			return nil, fmt.Errorf("clearing offers: %w", err)
		}
		result.Cleared = cleared
	}

	if opts.DryRun {
		result.Imported = len(importable)
		return result, nil
	}

	if len(importable) > 0 {
		if err := s.store.SaveOffers(ctx, importable); err != nil {
			return nil, fmt.Errorf("saving offers: %w", err)
		}
	}
	result.Imported = len(importable)

	return result, nil
}

// ensureLoaded populates the resolver snapshot from the store on first use.
func (s *OfferImportService) ensureLoaded(ctx context.Context) error {
	if s.resolver.Loaded() {
		return nil
	}
	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return fmt.Errorf("loading customers: %w", err)
	}
	s.resolver.Load(customers)
	return nil
}

// convertRows turns parsed rows into offers, skipping empty and expired
// rows and recording the skips in result.
func (s *OfferImportService) convertRows(rows []parsers.RawOfferRow, result *OfferImportResult) []entities.Offer {
	offers := make([]entities.Offer, 0, len(rows))
	now := timeNow().UTC()

	for i := range rows {
		row := &rows[i]
		if row.ProjectTitle == "" {
			result.SkippedEmpty++
			continue
		}

		phase, status, skip := entities.MapStatus(row.Status, row.SentDate)
		if skip {
			result.SkippedExpired++
			continue
		}

		externalRef, title := splitProjectTitle(row.ProjectTitle)

		customerName := row.CustomerName
		if customerName == "" {
			customerName = fallbackCustomerName
		}

		cost := 0.0
		if row.Value > 0 {
			cost = row.Value - row.Margin
		}

		createdAt := now
		if row.SentDate != nil {
			createdAt = *row.SentDate
		}
		updatedAt := now
		if row.LastUpdated != nil {
			updatedAt = *row.LastUpdated
		}

		offers = append(offers, entities.Offer{
			ID:                  uuid.New().String(),
			Title:               title,
			ExternalReference:   externalRef,
			CustomerName:        customerName,
			CompanyID:           s.companyID,
			Phase:               phase,
			Status:              status,
			Probability:         entities.ProbabilityFor(phase),
			Value:               row.Value,
			Cost:                cost,
			Location:            row.Location,
			Notes:               row.Notes,
			ResponsibleUserName: s.responsibleName(row.Responsible),
			SentDate:            row.SentDate,
			DueDate:             row.DueDate,
			CreatedAt:           createdAt,
			UpdatedAt:           updatedAt,
		})
	}

	return offers
}

// resolveCustomers splits offers into importable and unresolved sets.
func (s *OfferImportService) resolveCustomers(offers []entities.Offer, result *OfferImportResult) []entities.Offer {
	importable := make([]entities.Offer, 0, len(offers))
	for i := range offers {
		match, ok := s.resolver.Resolve(offers[i].CustomerName)
		if !ok {
			result.Unresolved = append(result.Unresolved, offers[i])
			continue
		}
		offers[i].CustomerID = match.CustomerID
		offers[i].MatchedCustomerName = match.DisplayName
		importable = append(importable, offers[i])
	}
	return importable
}

// responsibleName maps initials to a full name, falling back to the
// uppercased initials themselves.
func (s *OfferImportService) responsibleName(initials string) string {
	initials = strings.ToUpper(strings.TrimSpace(initials))
	if name, ok := s.responsibles[initials]; ok {
		return name
	}
	return initials
}

// splitProjectTitle splits "22000 Hjalmar Bjørges vei 105" into the numeric
// external reference and the project name. Titles without a leading number
// keep an empty reference.
func splitProjectTitle(projectTitle string) (externalRef, title string) {
	parts := strings.SplitN(projectTitle, " ", 2)
	if len(parts) == 2 && isDigits(parts[0]) {
		return parts[0], parts[1]
	}
	return "", projectTitle
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
