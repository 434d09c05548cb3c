package services

import (
	"strings"

	"github.com/relationhq/relmig/internal/domain/entities"
)

// MatchBand classifies a similarity score for reporting. Bands are a
// reporting convenience only; the import decision uses the exact path.
type MatchBand string

const (
	// BandConfident covers scores at or above 0.95.
	BandConfident MatchBand = "confident"
	// BandProbable covers scores at or above 0.6.
	BandProbable MatchBand = "probable"
	// BandNeedsReview covers everything below 0.6.
	BandNeedsReview MatchBand = "needs_review"
)

// BandFor returns the reporting band for a similarity score.
func BandFor(score float64) MatchBand {
	switch {
	case score >= 0.95:
		return BandConfident
	case score >= 0.6:
		return BandProbable
	default:
		return BandNeedsReview
	}
}

// Match is a resolved store customer.
type Match struct {
	CustomerID  string
	DisplayName string
	OrgNumber   string
}

// Resolver maps raw customer names to existing store customers. It holds a
// read-only snapshot of the store's customers keyed by canonical name,
// loaded once per run and never invalidated.
type Resolver struct {
	normalizer *Normalizer
	cache      map[string]Match
	order      []string // canonical names in load order, for deterministic scans
	loaded     bool
}

// NewResolver creates a Resolver using the given normalizer.
func NewResolver(normalizer *Normalizer) *Resolver {
	return &Resolver{
		normalizer: normalizer,
		cache:      make(map[string]Match),
	}
}

// Load populates the snapshot from the store's customers. Calling Load again
// after a successful load is a no-op. When two customers normalize to the
// same canonical name the most recently loaded one wins; source data is
// assumed pre-deduplicated, so this is a documented tie policy rather than
// an expected case.
func (r *Resolver) Load(customers []entities.Customer) {
	if r.loaded {
		return
	}
	for _, c := range customers {
		canonical := r.normalizer.Normalize(c.Name)
		if canonical == "" {
			continue
		}
		if _, exists := r.cache[canonical]; !exists {
			r.order = append(r.order, canonical)
		}
		r.cache[canonical] = Match{
			CustomerID:  c.ID,
			DisplayName: c.Name,
			OrgNumber:   c.OrgNumber,
		}
	}
	r.loaded = true
}

// Loaded reports whether the snapshot has been populated.
func (r *Resolver) Loaded() bool {
	return r.loaded
}

// Size returns the number of distinct canonical names in the snapshot.
func (r *Resolver) Size() int {
	return len(r.cache)
}

// Resolve finds the customer whose canonical name equals the canonical form
// of rawName. This is the authoritative path used by the import: O(1) and no
// false positives, because the alias table has already absorbed the known
// spelling variants. A false second return is a routine outcome, not an
// error; the caller routes the record to manual review.
func (r *Resolver) Resolve(rawName string) (Match, bool) {
	canonical := r.normalizer.Normalize(rawName)
	if canonical == "" {
		return Match{}, false
	}
	m, ok := r.cache[canonical]
	return m, ok
}

// BestMatch scans the snapshot for the highest-scoring customer for rawName.
// Advisory only: it backs the pre-import match analysis report and never
// drives the import decision. Ties go to the customer loaded first. Returns
// false when the snapshot is empty.
func (r *Resolver) BestMatch(rawName string) (Match, float64, bool) {
	var (
		best      Match
		bestScore float64
		found     bool
	)
	for _, canonical := range r.order {
		score := r.Score(rawName, r.cache[canonical].DisplayName)
		if !found || score > bestScore {
			best = r.cache[canonical]
			bestScore = score
			found = true
		}
	}
	return best, bestScore, found
}

// Score computes the similarity between two raw names on their canonical
// forms: 1.0 when identical, 0.9 when one contains the other, otherwise the
// Jaccard index of their word sets (0.0 when either side has no words).
// Score is symmetric.
func (r *Resolver) Score(a, b string) float64 {
	na := r.normalizer.Normalize(a)
	nb := r.normalizer.Normalize(b)

	if na == nb {
		return 1.0
	}
	if na != "" && nb != "" && (strings.Contains(na, nb) || strings.Contains(nb, na)) {
		return 0.9
	}

	wordsA := wordSet(na)
	wordsB := wordSet(nb)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0.0
	}

	overlap := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			overlap++
		}
	}
	union := len(wordsA) + len(wordsB) - overlap
	return float64(overlap) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}
