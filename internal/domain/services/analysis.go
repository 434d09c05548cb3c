package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/relationhq/relmig/internal/domain/ports"
	"github.com/relationhq/relmig/internal/infrastructure/parsers"
)

// MatchRow is one incoming name scored against the store.
type MatchRow struct {
	IncomingName string
	OfferCount   int // How many offer rows carry this name
	Match        Match
	Score        float64
	Band         MatchBand
}

// AnalysisResult buckets incoming customer names by match band. The
// analysis is advisory: it previews how an import would resolve and where
// alias entries are still missing, without touching the store.
type AnalysisResult struct {
	IncomingCount int // Unique incoming names
	StoreCount    int // Customers in the store
	Confident     []MatchRow
	Probable      []MatchRow
	NeedsReview   []MatchRow
}

// MatchAnalysisService scores offer-export customer names against the store
// customers using the fuzzy path of the resolver.
type MatchAnalysisService struct {
	store      ports.Store
	normalizer *Normalizer
}

// NewMatchAnalysisService creates a new match analysis service.
func NewMatchAnalysisService(store ports.Store, normalizer *Normalizer) *MatchAnalysisService {
	return &MatchAnalysisService{
		store:      store,
		normalizer: normalizer,
	}
}

// Analyze scores the unique customer names in the parsed offer rows. Rows
// with an empty customer cell are ignored.
func (s *MatchAnalysisService) Analyze(ctx context.Context, rows []parsers.RawOfferRow) (*AnalysisResult, error) {
	counts := make(map[string]int)
	for i := range rows {
		if name := rows[i].CustomerName; name != "" {
			counts[name]++
		}
	}

	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading customers: %w", err)
	}

	// Fresh resolver per analysis; the snapshot is load-once.
	resolver := NewResolver(s.normalizer)
	resolver.Load(customers)

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	result := &AnalysisResult{
		IncomingCount: len(names),
		StoreCount:    len(customers),
	}

	for _, name := range names {
		row := MatchRow{IncomingName: name, OfferCount: counts[name]}
		if match, score, ok := resolver.BestMatch(name); ok {
			row.Match = match
			row.Score = score
		}
		row.Band = BandFor(row.Score)

		switch row.Band {
		case BandConfident:
			result.Confident = append(result.Confident, row)
		case BandProbable:
			result.Probable = append(result.Probable, row)
		default:
			result.NeedsReview = append(result.NeedsReview, row)
		}
	}

	// Probable matches read best ordered by descending score.
	sort.SliceStable(result.Probable, func(i, j int) bool {
		return result.Probable[i].Score > result.Probable[j].Score
	})

	return result, nil
}
