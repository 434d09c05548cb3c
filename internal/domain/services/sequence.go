package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/relationhq/relmig/internal/domain/entities"
)

// maxSequencePerYear is the largest sequence number the fixed-width
// PREFIX-YYYY-NNN format can carry.
const maxSequencePerYear = 999

// ErrSequenceOverflow is returned when a single year needs more offer
// numbers than the three-digit format allows. Widening silently would break
// the fixed-width convention downstream systems rely on.
var ErrSequenceOverflow = fmt.Errorf("more than %d offers in one year", maxSequencePerYear)

// sentinelDate sorts offers without a sent date after all dated ones. A
// fixed date, not "now", so ordering is reproducible across runs.
var sentinelDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// timeNow returns the current time (can be swapped in tests).
var timeNow = time.Now

// SequenceAssigner assigns chronological offer numbers of the form
// {PREFIX}-{YEAR}-{SEQ:03d}, with per-year counters starting at 1.
type SequenceAssigner struct {
	prefix string
}

// NewSequenceAssigner creates an assigner using the given company prefix,
// e.g. "TK" for TK-2024-007.
func NewSequenceAssigner(prefix string) *SequenceAssigner {
	return &SequenceAssigner{prefix: prefix}
}

// Assign returns a copy of offers with OfferNumber set, in the same order as
// the input. Numbering follows a stable sort by (sent date, external
// reference): offers without a sent date sort last under a fixed far-future
// sentinel, and the external reference breaks ties deterministically. The
// year of each number comes from the sent date, else the created-at
// timestamp, else the current date.
//
// Given the same multiset of offers, every offer receives the same number
// regardless of input permutation, provided external references are stable.
// Returns ErrSequenceOverflow if any year exceeds 999 offers.
func (a *SequenceAssigner) Assign(offers []entities.Offer) ([]entities.Offer, error) {
	out := make([]entities.Offer, len(offers))
	copy(out, offers)

	// Sort indices rather than the offers themselves so the output keeps
	// the input order.
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		oa, ob := &out[idx[i]], &out[idx[j]]
		da, db := anchorDate(oa), anchorDate(ob)
		if !da.Equal(db) {
			return da.Before(db)
		}
		return oa.ExternalReference < ob.ExternalReference
	})

	yearSeq := make(map[int]int)
	for _, i := range idx {
		year := numberYear(&out[i])
		seq := yearSeq[year] + 1
		if seq > maxSequencePerYear {
			return nil, fmt.Errorf("assigning number for %d: %w", year, ErrSequenceOverflow)
		}
		yearSeq[year] = seq
		out[i].OfferNumber = fmt.Sprintf("%s-%d-%03d", a.prefix, year, seq)
	}

	return out, nil
}

// anchorDate returns the date an offer sorts by.
func anchorDate(o *entities.Offer) time.Time {
	if o.SentDate != nil {
		return *o.SentDate
	}
	return sentinelDate
}

// numberYear returns the calendar year an offer's number belongs to.
func numberYear(o *entities.Offer) int {
	if o.SentDate != nil {
		return o.SentDate.Year()
	}
	if !o.CreatedAt.IsZero() {
		return o.CreatedAt.Year()
	}
	return timeNow().Year()
}
